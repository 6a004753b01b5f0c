package flappy

import (
	"errors"
	"testing"
	"time"

	"github.com/vovakirdan/flappy-lite/internal/config"
)

type sessionFixture struct {
	s         *Session
	store     *memStore
	gameOvers int
	scores    []int
}

func newSessionFixture(t *testing.T, mutate func(*Options)) *sessionFixture {
	t.Helper()
	f := &sessionFixture{store: &memStore{}}
	opts := Options{
		Width:               800,
		Height:              600,
		Tuning:              config.DefaultTuning(),
		Images:              &solidImages{},
		Store:               f.store,
		Seed:                1,
		BackgroundAnimation: true,
		OnGameOver:          func() { f.gameOvers++ },
		OnScore:             func(score int) { f.scores = append(f.scores, score) },
	}
	if mutate != nil {
		mutate(&opts)
	}

	s, err := NewSession(opts)
	if err != nil {
		t.Fatalf("NewSession() error = %v", err)
	}
	f.s = s
	return f
}

func TestSessionStartsIdle(t *testing.T) {
	f := newSessionFixture(t, nil)

	if f.s.State() != StateIdle || f.s.Playing() {
		t.Errorf("state = %v, expected Idle", f.s.State())
	}
	// Backdrop plus the resting bird
	if f.s.Scene().Len() != 4 {
		t.Errorf("objects = %d, expected 4", f.s.Scene().Len())
	}
	if f.s.Advance(time.Second) != 0 {
		t.Error("nothing should tick on the title screen")
	}
}

func TestSessionMinimalGame(t *testing.T) {
	f := newSessionFixture(t, nil)
	if err := f.s.Start(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	m := f.s.Metrics()

	ticks := 0
	for f.gameOvers == 0 && ticks < 10000 {
		f.s.Advance(m.DescendDelay)
		ticks++
	}

	if f.gameOvers != 1 {
		t.Fatalf("game over fired %d times, expected 1", f.gameOvers)
	}
	if f.s.Playing() || f.s.State() != StateGameOver {
		t.Errorf("state = %v, expected GameOver", f.s.State())
	}
	if float64(ticks)*m.FallIncrement < float64(m.MaxDescend) {
		t.Errorf("died after %d ticks, before the accumulator could reach its cap", ticks)
	}
	if y2 := f.s.Bird().BBox().Y2; y2 < float64(m.Height)+m.Tolerance {
		t.Errorf("bird bottom = %v, expected past %v", y2, float64(m.Height)+m.Tolerance)
	}

	f.s.Advance(10 * time.Second)
	if f.gameOvers != 1 {
		t.Errorf("game over fired %d times after more time passed, expected 1", f.gameOvers)
	}
	if !f.s.Tubes().Stopped() || !f.s.Background().Stopped() {
		t.Error("tubes and background should stop on game over")
	}
}

func TestSessionStartIsIdempotent(t *testing.T) {
	f := newSessionFixture(t, nil)
	if err := f.s.Start(); err != nil {
		t.Fatal(err)
	}
	bird, tubes := f.s.Bird(), f.s.Tubes()

	if err := f.s.Start(); err != nil {
		t.Fatal(err)
	}
	if f.s.Bird() != bird || f.s.Tubes() != tubes {
		t.Error("a second Start while playing must not rebuild the run")
	}
}

func TestSessionRestartAfterGameOver(t *testing.T) {
	f := newSessionFixture(t, nil)
	if err := f.s.Start(); err != nil {
		t.Fatal(err)
	}
	f.s.IncreaseScore()
	f.s.Bird().Kill()
	f.s.Advance(time.Second)
	if f.s.State() != StateGameOver {
		t.Fatalf("state = %v, expected GameOver", f.s.State())
	}

	old := f.s.Bird()
	if err := f.s.Start(); err != nil {
		t.Fatal(err)
	}
	if f.s.Bird() == old || !f.s.Playing() {
		t.Error("Start after game over should begin a fresh run")
	}
	if f.s.Score() != 0 {
		t.Errorf("score = %d after restart, expected 0", f.s.Score())
	}
	if f.s.Best() != 1 {
		t.Errorf("best = %d, expected it to survive the restart", f.s.Best())
	}
	// Backdrop plus the new bird; the old run's objects are gone.
	if f.s.Scene().Len() != 4 {
		t.Errorf("objects = %d, expected 4", f.s.Scene().Len())
	}
}

func TestSessionScoresWhilePlaying(t *testing.T) {
	f := newSessionFixture(t, func(o *Options) { o.Immortal = true })
	if err := f.s.Start(); err != nil {
		t.Fatal(err)
	}

	f.s.Advance(20 * time.Second)

	if f.s.Score() < 1 {
		t.Fatalf("score = %d after 20s, expected pairs to have passed", f.s.Score())
	}
	if len(f.scores) != f.s.Score() {
		t.Errorf("OnScore called %d times for score %d", len(f.scores), f.s.Score())
	}
	for i, s := range f.scores {
		if s != i+1 {
			t.Fatalf("OnScore sequence %v, expected 1, 2, 3...", f.scores)
		}
	}
}

func TestSessionBestScore(t *testing.T) {
	f := newSessionFixture(t, func(o *Options) { o.Immortal = true })
	f.store.best = 3

	// Reload so the session picks up the stored best.
	s, err := NewSession(f.s.opts)
	if err != nil {
		t.Fatal(err)
	}
	f.s = s
	if f.s.Best() != 3 {
		t.Fatalf("best = %d, expected the stored 3", f.s.Best())
	}

	if err := f.s.Start(); err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 2; i++ {
		f.s.IncreaseScore()
	}
	if f.s.Best() != 3 {
		t.Errorf("best = %d, expected 3 while the score is lower", f.s.Best())
	}
	f.s.GameOver()
	if f.store.saves != 0 {
		t.Errorf("saves = %d, a lower score must not be saved", f.store.saves)
	}

	if err := f.s.Start(); err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 5; i++ {
		f.s.IncreaseScore()
	}
	if f.s.Best() != 5 {
		t.Errorf("best = %d, expected 5", f.s.Best())
	}
	f.s.GameOver()
	if f.store.best != 5 || f.store.saves != 1 {
		t.Errorf("store best=%d saves=%d, expected 5 and 1", f.store.best, f.store.saves)
	}
}

func TestSessionScoreboard(t *testing.T) {
	f := newSessionFixture(t, func(o *Options) { o.Immortal = true })
	if err := f.s.Start(); err != nil {
		t.Fatal(err)
	}
	f.s.IncreaseScore()
	f.s.Advance(2500 * time.Millisecond)
	f.s.GameOver()
	f.s.Advance(time.Minute)

	lines := f.s.Scoreboard()
	expected := []string{"Score: 1", "Best Score: 1", "Time: 0:00:02"}
	if len(lines) != len(expected) {
		t.Fatalf("Scoreboard() = %q", lines)
	}
	for i := range expected {
		if lines[i] != expected[i] {
			t.Errorf("line %d = %q, expected %q", i, lines[i], expected[i])
		}
	}
}

func TestSessionPause(t *testing.T) {
	f := newSessionFixture(t, func(o *Options) { o.Immortal = true })
	if err := f.s.Start(); err != nil {
		t.Fatal(err)
	}
	f.s.Advance(300 * time.Millisecond)

	f.s.TogglePause()
	if !f.s.Paused() {
		t.Fatal("TogglePause() should pause")
	}
	box := f.s.Bird().BBox()
	f.s.Advance(5 * time.Second)

	if f.s.Bird().BBox() != box {
		t.Error("the bird moved while paused")
	}
	if f.s.Elapsed() != 300*time.Millisecond {
		t.Errorf("elapsed = %v while paused, expected 300ms", f.s.Elapsed())
	}

	f.s.Jump()
	if f.s.Bird().Ascending() {
		t.Error("jumps are ignored while paused")
	}

	f.s.TogglePause()
	f.s.Advance(time.Second)
	if f.s.Elapsed() != 1300*time.Millisecond {
		t.Errorf("elapsed = %v, expected 1.3s of play", f.s.Elapsed())
	}
	if f.s.Bird().BBox() == box {
		t.Error("the bird should move again after unpausing")
	}
}

func TestSessionJumpOnlyWhilePlaying(t *testing.T) {
	f := newSessionFixture(t, nil)
	y := f.s.Bird().BBox().Y1

	f.s.Jump()
	if f.s.Bird().BBox().Y1 != y {
		t.Error("jumping on the title screen should do nothing")
	}

	if err := f.s.Start(); err != nil {
		t.Fatal(err)
	}
	y = f.s.Bird().BBox().Y1
	f.s.Jump()
	if f.s.Bird().BBox().Y1 >= y {
		t.Error("jump should lift the bird while playing")
	}
}

func TestSessionToMenu(t *testing.T) {
	f := newSessionFixture(t, nil)
	f.s.ToMenu()
	if f.s.State() != StateIdle {
		t.Fatal("ToMenu from Idle should stay Idle")
	}

	if err := f.s.Start(); err != nil {
		t.Fatal(err)
	}
	f.s.ToMenu()
	if f.s.State() != StatePlaying {
		t.Fatal("ToMenu must not interrupt a run")
	}

	f.s.GameOver()
	f.s.ToMenu()
	if f.s.State() != StateIdle {
		t.Errorf("state = %v, expected Idle", f.s.State())
	}
}

func TestSessionClose(t *testing.T) {
	f := newSessionFixture(t, nil)
	if err := f.s.Start(); err != nil {
		t.Fatal(err)
	}
	f.s.IncreaseScore()

	if err := f.s.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if f.store.best != 1 {
		t.Errorf("stored best = %d, expected 1", f.store.best)
	}
	if !f.s.Scene().Destroyed() {
		t.Error("Close should destroy the scene")
	}
	if f.s.Advance(time.Minute) != 0 {
		t.Error("nothing should tick after Close")
	}
	if err := f.s.Start(); err != nil || f.s.Playing() {
		t.Error("Start after Close should do nothing")
	}
	if err := f.s.Close(); err != nil {
		t.Errorf("second Close() error = %v", err)
	}
	if f.gameOvers != 0 {
		t.Errorf("Close is not a game over, got %d callbacks", f.gameOvers)
	}
}

func TestNewSessionInvalidArguments(t *testing.T) {
	base := Options{Width: 800, Height: 600, Tuning: config.DefaultTuning(), Images: &solidImages{}, Store: &memStore{}}

	tests := []struct {
		name   string
		mutate func(*Options)
	}{
		{"no images", func(o *Options) { o.Images = nil }},
		{"no store", func(o *Options) { o.Store = nil }},
		{"tiny world", func(o *Options) { o.Width = 40 }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			opts := base
			tc.mutate(&opts)
			if _, err := NewSession(opts); !errors.Is(err, ErrInvalidArgument) {
				t.Errorf("NewSession() error = %v, expected ErrInvalidArgument", err)
			}
		})
	}
}
