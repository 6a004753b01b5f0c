package flappy

import (
	"fmt"
	"image"

	"github.com/vovakirdan/flappy-lite/internal/assets"
	"github.com/vovakirdan/flappy-lite/internal/loop"
	"github.com/vovakirdan/flappy-lite/internal/scene"
)

// Background is the looping backdrop: a static copy that covers the seam
// and two world-wide segments scrolling left side by side.
type Background struct {
	scene *scene.Scene
	m     Metrics
	img   *image.RGBA

	static   scene.ID
	segments []scene.ID
	stopped  bool
	tick     *loop.Handle
}

// NewBackground loads the background image and places the initial copies.
func NewBackground(sc *scene.Scene, images ImageSource, m Metrics) (*Background, error) {
	if sc == nil || images == nil {
		return nil, fmt.Errorf("%w: background needs a scene and images", ErrInvalidArgument)
	}

	img, err := images.Load(assets.Background, m.Width, m.Height)
	if err != nil {
		return nil, fmt.Errorf("flappy: load background: %w", err)
	}

	bg := &Background{scene: sc, m: m, img: img}
	bg.build()
	return bg, nil
}

func (bg *Background) build() {
	w, h := float64(bg.m.Width), float64(bg.m.Height)
	bg.static = bg.scene.CreateImage(w/2, h/2, bg.img)
	bg.segments = []scene.ID{
		bg.scene.CreateImage(w/2, h/2, bg.img),
		bg.scene.CreateImage(w+w/2, h/2, bg.img),
	}
}

// Start begins scrolling.
func (bg *Background) Start() {
	bg.stopped = false
	if bg.tick.Active() {
		return
	}
	bg.tick = bg.scene.Every(bg.m.BackgroundDelay, bg.step)
}

// Stop halts scrolling. A tick already queued still runs once but changes
// nothing and is not re-armed.
func (bg *Background) Stop() {
	bg.stopped = true
}

// Reset clears the whole scene and rebuilds the initial backdrop.
func (bg *Background) Reset() {
	bg.scene.DeleteAll()
	bg.stopped = false
	bg.build()
}

func (bg *Background) step() bool {
	if bg.stopped {
		return false
	}

	step := bg.m.BackgroundStep
	bg.scene.Move(bg.segments[0], -step, 0)
	bg.scene.Move(bg.segments[1], -step, 0)
	bg.scene.LowerToBack(bg.segments[0])
	bg.scene.LowerToBack(bg.segments[1])
	bg.scene.LowerToBack(bg.static)

	if box, ok := bg.scene.BBox(bg.segments[0]); ok && box.X2 <= 0 {
		bg.scene.Delete(bg.segments[0])
		bg.segments = bg.segments[1:]

		next, _ := bg.scene.BBox(bg.segments[0])
		x := next.X2 + float64(bg.m.Width)/2
		bg.segments = append(bg.segments, bg.scene.CreateImage(x, float64(bg.m.Height)/2, bg.img))
	}
	return true
}

// IDs returns every backdrop object: the static copy and the segments.
func (bg *Background) IDs() []scene.ID {
	return append([]scene.ID{bg.static}, bg.Segments()...)
}

// Segments returns the scrolling segments, leftmost first.
func (bg *Background) Segments() []scene.ID {
	return append([]scene.ID(nil), bg.segments...)
}

// Stopped reports whether scrolling is halted.
func (bg *Background) Stopped() bool {
	return bg.stopped
}
