package flappy

import (
	"errors"
	"testing"

	"github.com/vovakirdan/flappy-lite/internal/core"
	"github.com/vovakirdan/flappy-lite/internal/loop"
	"github.com/vovakirdan/flappy-lite/internal/scene"
)

func backgroundFixture(t *testing.T) (*loop.Loop, *scene.Scene, *Background, Metrics) {
	t.Helper()
	m := testMetrics(t, 800, 600)
	lp, sc := newTestScene()
	bg, err := NewBackground(sc, &solidImages{}, m)
	if err != nil {
		t.Fatalf("NewBackground() error = %v", err)
	}
	return lp, sc, bg, m
}

func centerX(t *testing.T, sc *scene.Scene, id scene.ID) float64 {
	t.Helper()
	box, ok := sc.BBox(id)
	if !ok {
		t.Fatalf("object %d is not on the scene", id)
	}
	x, _ := box.Center()
	return x
}

func TestBackgroundInitialLayout(t *testing.T) {
	_, sc, bg, _ := backgroundFixture(t)

	if sc.Len() != 3 || len(bg.IDs()) != 3 {
		t.Fatalf("objects = %d, ids = %d, expected a static copy and two segments", sc.Len(), len(bg.IDs()))
	}
	segs := bg.Segments()
	if x := centerX(t, sc, segs[0]); x != 400 {
		t.Errorf("first segment at %v, expected 400", x)
	}
	if x := centerX(t, sc, segs[1]); x != 1200 {
		t.Errorf("second segment at %v, expected 1200", x)
	}
	if x := centerX(t, sc, bg.IDs()[0]); x != 400 {
		t.Errorf("static copy at %v, expected 400", x)
	}
}

func TestBackgroundScrollsSeamlessly(t *testing.T) {
	lp, sc, bg, m := backgroundFixture(t)
	bg.Start()

	static := bg.IDs()[0]
	first := bg.Segments()[0]
	for i := 0; i < 300; i++ {
		lp.Advance(m.BackgroundDelay)

		segs := bg.Segments()
		if len(segs) != 2 {
			t.Fatalf("tick %d: %d segments, expected 2", i, len(segs))
		}
		a, _ := sc.BBox(segs[0])
		b, _ := sc.BBox(segs[1])
		if a.X2 != b.X1 {
			t.Fatalf("tick %d: gap between segments (%v, %v)", i, a.X2, b.X1)
		}
		if a.X2 <= 0 {
			t.Fatalf("tick %d: an off-screen segment was kept", i)
		}
		if below := sc.FindOverlapping(core.RectFromCenter(400, 300, 800, 600)); below[0] != static {
			t.Fatalf("tick %d: static copy is not at the back", i)
		}
		if x := centerX(t, sc, static); x != 400 {
			t.Fatalf("tick %d: static copy moved to %v", i, x)
		}
	}

	if sc.Exists(first) {
		t.Error("the first segment should have been recycled")
	}
	if sc.Len() != 3 {
		t.Errorf("objects = %d, expected 3", sc.Len())
	}
}

func TestBackgroundStopAllowsOneMoreTick(t *testing.T) {
	lp, sc, bg, m := backgroundFixture(t)
	bg.Start()
	lp.Advance(m.BackgroundDelay)

	bg.Stop()
	fired := lp.Fired()
	x := centerX(t, sc, bg.Segments()[0])

	lp.Advance(10 * m.BackgroundDelay)

	if got := lp.Fired() - fired; got != 1 {
		t.Errorf("ticks after Stop = %d, expected exactly 1", got)
	}
	if lp.Pending() != 0 {
		t.Errorf("pending tasks = %d, expected none", lp.Pending())
	}
	if got := centerX(t, sc, bg.Segments()[0]); got != x {
		t.Errorf("segment moved from %v to %v after Stop", x, got)
	}
}

func TestBackgroundReset(t *testing.T) {
	lp, sc, bg, m := backgroundFixture(t)
	bg.Start()
	lp.Advance(5 * m.BackgroundDelay)
	bg.Stop()

	block, _ := (&solidImages{}).Load("block", 10, 10)
	sc.CreateImage(10, 10, block)

	bg.Reset()

	if sc.Len() != 3 {
		t.Fatalf("objects after Reset = %d, expected 3", sc.Len())
	}
	if bg.Stopped() {
		t.Error("Reset should clear the stopped flag")
	}
	if x := centerX(t, sc, bg.Segments()[0]); x != 400 {
		t.Errorf("first segment at %v after Reset, expected 400", x)
	}
}

func TestNewBackgroundInvalidArguments(t *testing.T) {
	m := testMetrics(t, 800, 600)
	_, sc := newTestScene()

	if _, err := NewBackground(nil, &solidImages{}, m); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("nil scene: error = %v, expected ErrInvalidArgument", err)
	}
	if _, err := NewBackground(sc, failingImages{}, m); err == nil {
		t.Error("a failing image source should surface an error")
	}
}
