package flappy

import (
	"fmt"
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/flappy-lite/internal/config"
	"github.com/vovakirdan/flappy-lite/internal/core"
	"github.com/vovakirdan/flappy-lite/internal/loop"
	"github.com/vovakirdan/flappy-lite/internal/scene"
)

// State is the session phase.
type State int

const (
	StateIdle     State = iota // Title screen, nothing moves
	StatePlaying               // A run is in progress
	StateGameOver              // The bird died; the scoreboard is up
)

// String returns a human-readable name for the state.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "Idle"
	case StatePlaying:
		return "Playing"
	case StateGameOver:
		return "GameOver"
	default:
		return "Unknown"
	}
}

// ScoreStore persists the best score.
type ScoreStore interface {
	LoadBestScore() (int, error)
	SaveBestScore(score int) error
}

// Options configure a Session.
type Options struct {
	Width  int // World width
	Height int // World height
	Tuning config.Tuning

	Images ImageSource
	Store  ScoreStore

	Seed                int64 // RNG seed for gap placement, 0 means current time
	BackgroundAnimation bool  // Scroll the background while playing
	Immortal            bool  // Disable collisions

	OnGameOver func()          // Called once per run, after the bird dies
	OnScore    func(score int) // Called after each point

	Logger *log.Logger
}

// Session owns the game loop, the scene and one run's components, and
// keeps the score.
type Session struct {
	opts   Options
	m      Metrics
	loop   *loop.Loop
	scene  *scene.Scene
	rng    *rand.Rand
	logger *log.Logger

	background *Background
	bird       *Bird
	tubes      *Tubes

	state  State
	paused bool
	closed bool

	score int
	best  int
	saved int // Best score as last persisted
	watch *core.Stopwatch
}

// NewSession builds the title screen: the backdrop and a resting bird. The
// best score is read from the store.
func NewSession(opts Options) (*Session, error) {
	if opts.Images == nil || opts.Store == nil {
		return nil, fmt.Errorf("%w: session needs images and a score store", ErrInvalidArgument)
	}
	m, err := NewMetrics(opts.Width, opts.Height, opts.Tuning)
	if err != nil {
		return nil, err
	}

	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	lp := loop.New()
	s := &Session{
		opts:   opts,
		m:      m,
		loop:   lp,
		scene:  scene.New(lp, logger),
		rng:    rand.New(rand.NewSource(seed)),
		logger: logger,
		watch:  core.NewStopwatch(lp.Now),
	}

	best, err := opts.Store.LoadBestScore()
	if err != nil {
		logger.Warn("cannot load best score", "err", err)
	}
	s.best, s.saved = best, best

	s.background, err = NewBackground(s.scene, opts.Images, m)
	if err != nil {
		return nil, err
	}
	s.bird, err = NewBird(s.scene, s.background, opts.Images, m, opts.Immortal, s.GameOver)
	if err != nil {
		return nil, err
	}

	logger.Debug("session ready", "world", fmt.Sprintf("%dx%d", m.Width, m.Height), "best", best)
	return s, nil
}

// Start begins a run. It does nothing while a run is already in progress.
func (s *Session) Start() error {
	if s.closed || s.state == StatePlaying {
		return nil
	}

	s.score = 0
	s.paused = false
	s.watch.Clear()
	s.bird.Stop()

	s.background.Reset()
	if s.opts.BackgroundAnimation {
		s.background.Start()
	}

	bird, err := NewBird(s.scene, s.background, s.opts.Images, s.m, s.opts.Immortal, s.GameOver)
	if err != nil {
		return err
	}
	tubes, err := NewTubes(s.scene, bird, s.opts.Images, s.m, s.rng, s.IncreaseScore, s.logger)
	if err != nil {
		return err
	}
	s.bird, s.tubes = bird, tubes

	s.state = StatePlaying
	_ = s.watch.Start()
	s.bird.Start()
	s.tubes.Start()

	s.logger.Info("run started", "best", s.best)
	return nil
}

// GameOver ends the run: scrolling stops, the time is frozen and an
// improved best score is saved.
func (s *Session) GameOver() {
	if s.state != StatePlaying {
		return
	}
	_ = s.watch.Stop()
	s.bird.Stop()
	s.background.Stop()
	if s.tubes != nil {
		s.tubes.Stop()
	}
	s.state = StateGameOver
	s.paused = false

	if s.best > s.saved {
		s.saveBest()
	}

	_, birdY := s.bird.BBox().Center()
	s.logger.Info("game over", "score", s.score, "best", s.best, "time", s.watch.String(), "bird_y", birdY)
	if s.opts.OnGameOver != nil {
		s.opts.OnGameOver()
	}
}

// IncreaseScore adds one point and raises the best score when exceeded.
func (s *Session) IncreaseScore() {
	s.score++
	if s.score > s.best {
		s.best = s.score
	}
	s.logger.Debug("score", "score", s.score)
	if s.opts.OnScore != nil {
		s.opts.OnScore(s.score)
	}
}

// Jump forwards a jump press to the bird while a run is in progress.
func (s *Session) Jump() {
	if s.state != StatePlaying || s.paused {
		return
	}
	s.bird.Jump()
}

// TogglePause freezes or unfreezes a run in progress.
func (s *Session) TogglePause() {
	if s.state != StatePlaying {
		return
	}

	s.paused = !s.paused
	if s.paused {
		s.bird.Stop()
		s.tubes.Stop()
		s.background.Stop()
		_ = s.watch.Pause()
		return
	}

	s.bird.Resume()
	s.tubes.Resume()
	if s.opts.BackgroundAnimation {
		s.background.Start()
	}
	_ = s.watch.Resume()
}

// ToMenu dismisses the scoreboard. The scene keeps the last run's picture
// until the next Start.
func (s *Session) ToMenu() {
	if s.state == StateGameOver {
		s.state = StateIdle
	}
}

// Close saves the best score, stops every component and destroys the
// scene. The session cannot be used afterwards.
func (s *Session) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true

	err := s.saveBest()

	s.background.Stop()
	s.bird.Kill()
	s.bird.Stop()
	if s.tubes != nil {
		s.tubes.Stop()
	}
	s.scene.Destroy()
	s.logger.Debug("session closed", "ticks", s.loop.Fired(), "pending", s.loop.Pending())
	s.loop.Clear()
	s.state = StateIdle
	s.paused = false
	return err
}

func (s *Session) saveBest() error {
	if err := s.opts.Store.SaveBestScore(s.best); err != nil {
		s.logger.Error("cannot save best score", "err", err)
		return fmt.Errorf("flappy: save best score: %w", err)
	}
	s.saved = s.best
	return nil
}

// Advance moves game time forward by dt and runs every tick that became
// due. Returns the number of ticks run.
func (s *Session) Advance(dt time.Duration) int {
	if s.closed {
		return 0
	}
	return s.loop.Advance(dt)
}

// Scoreboard returns the lines shown after a run.
func (s *Session) Scoreboard() []string {
	return []string{
		fmt.Sprintf("Score: %d", s.score),
		fmt.Sprintf("Best Score: %d", s.best),
		fmt.Sprintf("Time: %s", s.watch.String()),
	}
}

// State returns the current phase.
func (s *Session) State() State { return s.state }

// Playing reports whether a run is in progress.
func (s *Session) Playing() bool { return s.state == StatePlaying }

// Paused reports whether the run is paused.
func (s *Session) Paused() bool { return s.paused }

// Score returns the current run's score.
func (s *Session) Score() int { return s.score }

// Best returns the best score.
func (s *Session) Best() int { return s.best }

// Elapsed returns the run's play time.
func (s *Session) Elapsed() time.Duration { return s.watch.Elapsed() }

// Scene returns the scene surface for rendering.
func (s *Session) Scene() *scene.Scene { return s.scene }

// Metrics returns the resolved world metrics.
func (s *Session) Metrics() Metrics { return s.m }

// Bird returns the current bird.
func (s *Session) Bird() *Bird { return s.bird }

// Tubes returns the current run's tubes, or nil before the first run.
func (s *Session) Tubes() *Tubes { return s.tubes }

// Background returns the backdrop.
func (s *Session) Background() *Background { return s.background }
