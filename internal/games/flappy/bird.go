package flappy

import (
	"fmt"

	"github.com/vovakirdan/flappy-lite/internal/assets"
	"github.com/vovakirdan/flappy-lite/internal/core"
	"github.com/vovakirdan/flappy-lite/internal/loop"
	"github.com/vovakirdan/flappy-lite/internal/scene"
)

// Backdrop reports the scene objects the bird may overlap without dying.
type Backdrop interface {
	IDs() []scene.ID
}

// Bird is the player-controlled sprite. It sits at the horizontal center of
// the world; only its height changes.
//
// The bird is Falling while its tick runs and no climb is in progress,
// Climbing for MaxClimb steps after a jump, and Dead once a collision check
// fails. Death ends the tick chain and reports game over exactly once.
type Bird struct {
	scene    *scene.Scene
	backdrop Backdrop
	m        Metrics
	id       scene.ID

	descend   float64 // Fall accumulator, moved down by this much per tick
	climbed   int     // Climb steps done in the current jump
	ascending bool    // A climb is in progress
	alive     bool
	stopped   bool
	immortal  bool

	onGameOver func()
	reported   bool

	tick  *loop.Handle
	climb *loop.Handle
}

// NewBird places a bird at the center of the world. It stays still until
// Start is called. onGameOver runs once, when the bird dies.
func NewBird(sc *scene.Scene, backdrop Backdrop, images ImageSource, m Metrics, immortal bool, onGameOver func()) (*Bird, error) {
	if sc == nil || backdrop == nil || images == nil || onGameOver == nil {
		return nil, fmt.Errorf("%w: bird needs a scene, a backdrop, images and a game over callback", ErrInvalidArgument)
	}

	img, err := images.Load(assets.Bird, m.BirdW, m.BirdH)
	if err != nil {
		return nil, fmt.Errorf("flappy: load bird: %w", err)
	}

	b := &Bird{
		scene:      sc,
		backdrop:   backdrop,
		m:          m,
		alive:      true,
		stopped:    true,
		immortal:   immortal,
		onGameOver: onGameOver,
	}
	b.id = sc.CreateImage(float64(m.Width)/2, float64(m.Height)/2, img)
	return b, nil
}

// Start begins falling.
func (b *Bird) Start() {
	b.stopped = false
	b.schedule()
}

// Stop freezes the bird. A tick already queued still runs once but changes
// nothing and is not re-armed.
func (b *Bird) Stop() {
	b.stopped = true
}

// Resume undoes Stop.
func (b *Bird) Resume() {
	b.stopped = false
	b.schedule()
}

func (b *Bird) schedule() {
	if b.tick.Active() {
		return
	}
	b.tick = b.scene.Every(b.m.DescendDelay, b.step)
}

// Jump starts a climb of MaxClimb units. Pressing again while climbing
// restarts the count from the current height; the climb keeps a single
// running task.
func (b *Bird) Jump() {
	if !b.immortal {
		b.CheckCollision()
	}
	if !b.alive || b.stopped {
		b.ascending = false
		return
	}

	b.ascending = true
	b.descend = 0
	b.climbed = 0

	if b.climb.Active() {
		return
	}
	// The first step happens on the key press itself.
	if b.climbStep() {
		b.climb = b.scene.Every(b.m.ClimbDelay, b.climbStep)
	}
}

func (b *Bird) climbStep() bool {
	if !b.immortal {
		b.CheckCollision()
	}
	if !b.alive || b.stopped {
		b.ascending = false
		return false
	}

	b.descend = 0
	if b.climbed < b.m.MaxClimb {
		b.scene.Move(b.id, 0, -1)
		b.climbed++
		return true
	}

	b.ascending = false
	b.climbed = 0
	return false
}

// step is the periodic fall tick.
func (b *Bird) step() bool {
	if b.stopped {
		return false
	}

	if b.immortal {
		// Parked below the screen: wait without sinking further.
		if box, ok := b.scene.BBox(b.id); ok && box.Y2 >= float64(b.m.Height)+b.m.Tolerance {
			return true
		}
	} else {
		b.CheckCollision()
	}

	b.descend = core.ClampF(b.descend+b.m.FallIncrement, 0, float64(b.m.MaxDescend))

	if !b.alive {
		b.stopped = true
		b.reportGameOver()
		return false
	}

	if !b.ascending {
		b.scene.Move(b.id, 0, b.descend)
	}
	return true
}

// CheckCollision marks the bird dead if it left the world or its trimmed
// box overlaps anything other than itself and the backdrop. Returns true
// if the bird is dead.
func (b *Bird) CheckCollision() bool {
	box, ok := b.scene.BBox(b.id)
	if !ok {
		return !b.alive
	}

	if box.Y1 <= -b.m.Tolerance || box.Y2 >= float64(b.m.Height)+b.m.Tolerance {
		b.alive = false
	}

	w, h := float64(b.m.BirdW), float64(b.m.BirdH)
	inner := box.Inset(
		float64(int(b.m.Inset.Left*w)),
		float64(int(b.m.Inset.Top*h)),
		float64(int(b.m.Inset.Right*w)),
		float64(int(b.m.Inset.Bottom*h)),
	)

	ignored := make(map[scene.ID]bool)
	ignored[b.id] = true
	for _, id := range b.backdrop.IDs() {
		ignored[id] = true
	}

	for _, id := range b.scene.FindOverlapping(inner) {
		if !ignored[id] {
			b.alive = false
			break
		}
	}
	return !b.alive
}

// Kill marks the bird dead. The next tick reports game over.
func (b *Bird) Kill() {
	b.alive = false
}

func (b *Bird) reportGameOver() {
	if b.reported {
		return
	}
	b.reported = true
	b.onGameOver()
}

// IsAlive reports whether the bird is still alive.
func (b *Bird) IsAlive() bool { return b.alive }

// Stopped reports whether the bird's tick is halted.
func (b *Bird) Stopped() bool { return b.stopped }

// Ascending reports whether a climb is in progress.
func (b *Bird) Ascending() bool { return b.ascending }

// Descend returns the fall accumulator.
func (b *Bird) Descend() float64 { return b.descend }

// Climbed returns the climb steps done in the current jump.
func (b *Bird) Climbed() int { return b.climbed }

// ID returns the bird's scene id.
func (b *Bird) ID() scene.ID { return b.id }

// Width returns the bird's image width.
func (b *Bird) Width() int { return b.m.BirdW }

// Height returns the bird's image height.
func (b *Bird) Height() int { return b.m.BirdH }

// BBox returns the bird's bounding box.
func (b *Bird) BBox() core.Rect {
	box, _ := b.scene.BBox(b.id)
	return box
}
