package flappy

import (
	"errors"
	"image"
	"testing"

	"github.com/vovakirdan/flappy-lite/internal/config"
	"github.com/vovakirdan/flappy-lite/internal/loop"
	"github.com/vovakirdan/flappy-lite/internal/scene"
)

// solidImages hands out fully opaque images of the requested size.
type solidImages struct {
	loads map[string]int
}

func (s *solidImages) Load(name string, w, h int) (*image.RGBA, error) {
	if s.loads == nil {
		s.loads = make(map[string]int)
	}
	s.loads[name]++
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for i := 3; i < len(img.Pix); i += 4 {
		img.Pix[i] = 0xff
	}
	return img, nil
}

type failingImages struct{}

func (failingImages) Load(name string, w, h int) (*image.RGBA, error) {
	return nil, errors.New("no such image: " + name)
}

// memStore is an in-memory ScoreStore.
type memStore struct {
	best  int
	saves int
}

func (m *memStore) LoadBestScore() (int, error) { return m.best, nil }

func (m *memStore) SaveBestScore(score int) error {
	m.best = score
	m.saves++
	return nil
}

func testMetrics(t *testing.T, w, h int) Metrics {
	t.Helper()
	m, err := NewMetrics(w, h, config.DefaultTuning())
	if err != nil {
		t.Fatalf("NewMetrics(%d, %d) error = %v", w, h, err)
	}
	return m
}

func newTestScene() (*loop.Loop, *scene.Scene) {
	lp := loop.New()
	return lp, scene.New(lp, nil)
}

// birdFixture builds a scene with a backdrop and a bird on it.
func birdFixture(t *testing.T, immortal bool) (*loop.Loop, *scene.Scene, *Bird, *int) {
	t.Helper()
	m := testMetrics(t, 800, 600)
	lp, sc := newTestScene()
	images := &solidImages{}

	bg, err := NewBackground(sc, images, m)
	if err != nil {
		t.Fatalf("NewBackground() error = %v", err)
	}

	gameOvers := 0
	bird, err := NewBird(sc, bg, images, m, immortal, func() { gameOvers++ })
	if err != nil {
		t.Fatalf("NewBird() error = %v", err)
	}
	return lp, sc, bird, &gameOvers
}
