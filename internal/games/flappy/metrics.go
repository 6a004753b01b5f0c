// Package flappy implements the Flappy Bird Lite game core.
//
// A bird falls under a growing fall accumulator and climbs in short bursts
// when the player jumps. Tube pairs scroll in from the right with a random
// gap, and a looping background scrolls behind them. Every component is a
// small state machine whose periodic tick runs on the scene's game loop.
package flappy

import (
	"errors"
	"fmt"
	"image"
	"time"

	"github.com/vovakirdan/flappy-lite/internal/config"
)

// ErrInvalidArgument is returned by constructors given a nil collaborator or
// an unusable size.
var ErrInvalidArgument = errors.New("flappy: invalid argument")

// MinWorldSize is the smallest world edge the metrics can be derived for.
const MinWorldSize = 100

// ImageSource provides images scaled to an exact size.
type ImageSource interface {
	Load(name string, w, h int) (*image.RGBA, error)
}

// Metrics are the tuning values resolved for one world size.
type Metrics struct {
	Width  int // World width
	Height int // World height

	BirdW         int           // Bird image width
	BirdH         int           // Bird image height
	MaxDescend    int           // Cap of the fall accumulator
	MaxClimb      int           // Units climbed per jump
	FallIncrement float64       // Added to the fall accumulator each tick
	DescendDelay  time.Duration // Bird tick period
	ClimbDelay    time.Duration // Delay between climb steps
	Tolerance     float64       // Out-of-bounds margin above and below
	Inset         config.Inset  // Collision box trim, as fractions of the bird size

	TubeW       int           // Tube image width
	MouthH      int           // Tube mouth height
	MinDistance int           // Minimum scroll distance between pairs
	TubeStep    float64       // Tube scroll step
	TubeDelay   time.Duration // Tube tick period

	BackgroundStep  float64
	BackgroundDelay time.Duration
}

// NewMetrics derives the metrics for a w×h world.
func NewMetrics(w, h int, t config.Tuning) (Metrics, error) {
	if w < MinWorldSize || h < MinWorldSize {
		return Metrics{}, fmt.Errorf("%w: world %dx%d is smaller than %d", ErrInvalidArgument, w, h, MinWorldSize)
	}

	m := Metrics{
		Width:  w,
		Height: h,

		BirdW:         int(float64(w/100) * t.Bird.WidthPercent),
		BirdH:         int(float64(h/100) * t.Bird.HeightPercent),
		MaxDescend:    atLeastOne(int(t.Bird.MaxDescendRatio*float64(h) + 0.5)),
		MaxClimb:      atLeastOne(int(t.Bird.MaxClimbRatio*float64(h) + 0.5)),
		FallIncrement: t.Bird.FallIncrement,
		DescendDelay:  scaledDelay(t.Bird.DescendDelay, h),
		ClimbDelay:    time.Duration(atLeastOne(t.Bird.ClimbDelayMS)) * time.Millisecond,
		Tolerance:     t.Bird.Tolerance,
		Inset:         t.Bird.Inset,

		TubeW:     int(t.Tubes.WidthRatio * float64(w)),
		MouthH:    int(t.Tubes.MouthHeightRatio * float64(h)),
		TubeStep:  t.Tubes.Step,
		TubeDelay: scaledDelay(t.Tubes.Delay, w),

		BackgroundStep:  t.Background.Step,
		BackgroundDelay: scaledDelay(t.Background.Delay, w),
	}
	m.MinDistance = int(float64(m.TubeW) * t.Tubes.SpacingFactor)

	if m.BirdW <= 0 || m.BirdH <= 0 || m.TubeW <= 0 || m.MouthH <= 0 {
		return Metrics{}, fmt.Errorf("%w: tuning yields empty sprites", ErrInvalidArgument)
	}
	if m.TubeStep <= 0 || m.BackgroundStep <= 0 || m.FallIncrement <= 0 {
		return Metrics{}, fmt.Errorf("%w: steps must be positive", ErrInvalidArgument)
	}
	return m, nil
}

// BirdLeft returns the x coordinate of the bird's left edge. The bird never
// moves horizontally.
func (m Metrics) BirdLeft() float64 {
	return float64(m.Width-m.BirdW) / 2
}

// GapHeight returns the distance between the two mouth centers of a pair.
func (m Metrics) GapHeight() int {
	return 2*m.BirdH + m.MouthH
}

// scaledDelay turns a delay factor into a tick period: factor / (size/100)
// milliseconds, truncated, at least 1 ms.
func scaledDelay(factor float64, size int) time.Duration {
	ms := int(factor / (float64(size) / 100))
	return time.Duration(atLeastOne(ms)) * time.Millisecond
}

func atLeastOne(v int) int {
	if v < 1 {
		return 1
	}
	return v
}
