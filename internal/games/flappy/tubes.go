package flappy

import (
	"fmt"
	"image"
	"io"
	"math/rand"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/flappy-lite/internal/assets"
	"github.com/vovakirdan/flappy-lite/internal/core"
	"github.com/vovakirdan/flappy-lite/internal/loop"
	"github.com/vovakirdan/flappy-lite/internal/scene"
)

// Tube is one half of a pair: the mouth next to the gap and the body
// stretched from the mouth to the screen edge.
type Tube struct {
	Mouth scene.ID
	Body  scene.ID
}

// Pair is a top and a bottom tube sharing one x position.
type Pair struct {
	Top    Tube
	Bottom Tube
}

// Tubes spawns, scrolls, scores and evicts tube pairs.
//
// pairs, bodies and scored are parallel: index i of each describes the same
// pair, oldest first.
type Tubes struct {
	scene  *scene.Scene
	m      Metrics
	images ImageSource
	rng    *rand.Rand
	logger *log.Logger

	mouth  *image.RGBA
	pairs  []Pair
	bodies [][2]*image.RGBA
	scored []bool

	distance float64 // Scroll distance since the last spawn
	stopped  bool
	onScore  func()
	tick     *loop.Handle
}

// NewTubes creates an empty tube stream. onScore runs each time the bird
// gets past a pair. A nil logger discards output.
func NewTubes(sc *scene.Scene, bird *Bird, images ImageSource, m Metrics, rng *rand.Rand, onScore func(), logger *log.Logger) (*Tubes, error) {
	if sc == nil || bird == nil || images == nil || rng == nil || onScore == nil {
		return nil, fmt.Errorf("%w: tubes need a scene, a bird, images, a random source and a score callback", ErrInvalidArgument)
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}

	// Gap sizing follows the actual bird on screen.
	m.BirdW, m.BirdH = bird.Width(), bird.Height()

	mouth, err := images.Load(assets.TubeMouth, m.TubeW, m.MouthH)
	if err != nil {
		return nil, fmt.Errorf("flappy: load tube mouth: %w", err)
	}

	return &Tubes{
		scene:   sc,
		m:       m,
		images:  images,
		rng:     rng,
		logger:  logger,
		mouth:   mouth,
		onScore: onScore,
	}, nil
}

// Start begins scrolling.
func (t *Tubes) Start() {
	t.stopped = false
	t.schedule()
}

// Stop halts scrolling. A tick already queued still runs once but changes
// nothing and is not re-armed.
func (t *Tubes) Stop() {
	t.stopped = true
}

// Resume undoes Stop.
func (t *Tubes) Resume() {
	t.stopped = false
	t.schedule()
}

func (t *Tubes) schedule() {
	if t.tick.Active() {
		return
	}
	t.tick = t.scene.Every(t.m.TubeDelay, t.step)
}

// CreatePair spawns a pair just past the right edge with a random gap and
// resets the spacing accumulator.
func (t *Tubes) CreatePair() error {
	w, h := t.m.Width, t.m.Height
	ih, bh := t.m.MouthH, t.m.BirdH
	x := float64(w + t.m.TubeW)

	lo, hi := ih/2, h-ih-2*bh
	if hi < lo {
		hi = lo
	}
	y := lo + t.rng.Intn(hi-lo+1)

	topBody, err := t.images.Load(assets.TubeBody, t.m.TubeW, core.Max(y, 1))
	if err != nil {
		return fmt.Errorf("flappy: load tube body: %w", err)
	}
	bottomY := y + t.m.GapHeight()
	bottomBody, err := t.images.Load(assets.TubeBody, t.m.TubeW, core.Max(h-bottomY, 1))
	if err != nil {
		return fmt.Errorf("flappy: load tube body: %w", err)
	}

	// Each body runs from its mouth's center out to the screen edge.
	top := Tube{
		Mouth: t.scene.CreateImage(x, float64(y), t.mouth),
		Body:  t.scene.CreateImage(x, float64((y-ih)/2), topBody),
	}
	bottom := Tube{
		Mouth: t.scene.CreateImage(x, float64(bottomY), t.mouth),
		Body:  t.scene.CreateImage(x, float64((h+bottomY+ih)/2), bottomBody),
	}

	t.pairs = append(t.pairs, Pair{Top: top, Bottom: bottom})
	t.bodies = append(t.bodies, [2]*image.RGBA{topBody, bottomBody})
	t.scored = append(t.scored, false)
	t.distance = 0

	t.logger.Debug("tube pair created", "gap_y", y, "pairs", len(t.pairs))
	return nil
}

// step is the periodic tube tick: evict, spawn or accumulate, then move.
func (t *Tubes) step() bool {
	if t.stopped {
		return false
	}

	if len(t.pairs) > 0 {
		mouth := t.pairs[0].Top.Mouth
		if !t.scene.Exists(mouth) {
			t.evictOldest()
		} else if box, _ := t.scene.BBox(mouth); box.X2 <= 0 {
			t.evictOldest()
		}
	}

	if t.distance >= float64(t.m.MinDistance) {
		if err := t.CreatePair(); err != nil {
			t.logger.Error("cannot create tube pair", "err", err)
		}
	} else {
		t.distance += t.m.TubeStep
	}

	t.move()
	return true
}

// move scrolls every pair left by one step. Before moving, a pair whose
// mouth right edge is about to pass the bird's left edge scores, once.
func (t *Tubes) move() {
	birdLeft := t.m.BirdLeft()
	step := t.m.TubeStep
	scoredThisTick := false

	for i, p := range t.pairs {
		if !scoredThisTick && !t.scored[i] {
			if box, ok := t.scene.BBox(p.Top.Mouth); ok && box.X2-step < birdLeft && birdLeft <= box.X2 {
				t.scored[i] = true
				scoredThisTick = true
				t.onScore()
			}
		}

		for _, id := range []scene.ID{p.Top.Mouth, p.Top.Body, p.Bottom.Mouth, p.Bottom.Body} {
			t.scene.Move(id, -step, 0)
		}
	}
}

func (t *Tubes) evictOldest() {
	p := t.pairs[0]
	for _, id := range []scene.ID{p.Top.Mouth, p.Top.Body, p.Bottom.Mouth, p.Bottom.Body} {
		t.scene.Delete(id)
	}

	t.pairs[0] = Pair{}
	t.bodies[0] = [2]*image.RGBA{}
	t.pairs = t.pairs[1:]
	t.bodies = t.bodies[1:]
	t.scored = t.scored[1:]
}

// Pairs returns the live pairs, oldest first.
func (t *Tubes) Pairs() []Pair {
	return append([]Pair(nil), t.pairs...)
}

// Len returns the number of live pairs.
func (t *Tubes) Len() int {
	return len(t.pairs)
}

// Stopped reports whether scrolling is halted.
func (t *Tubes) Stopped() bool {
	return t.stopped
}
