package tui

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/flappy-lite/internal/config"
	"github.com/vovakirdan/flappy-lite/internal/core"
	"github.com/vovakirdan/flappy-lite/internal/games/flappy"
)

// Options configure the terminal program.
type Options struct {
	Settings config.Settings
	Tuning   config.Tuning
	Images   flappy.ImageSource
	Store    flappy.ScoreStore
	Runtime  core.RuntimeConfig // Screen size, tick rate and seed
	Immortal bool
	Logger   *log.Logger
}

// Model is the Bubble Tea model that runs one session.
type Model struct {
	session  *flappy.Session
	screen   *core.Screen
	renderer *Renderer
	overlay  *Overlay
	keys     KeyMap
	help     help.Model
	config   core.RuntimeConfig
	logger   *log.Logger

	last       time.Time
	fullscreen bool
	quitting   bool
	err        error
}

// NewModel builds the session for the screen size in opts.Runtime. The
// world keeps that size for the whole program; resizes only change how it
// is sampled.
func NewModel(opts Options) (Model, error) {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	cfg := opts.Runtime
	if cfg.ScreenW <= 0 || cfg.ScreenH <= 0 {
		def := core.DefaultConfig()
		cfg.ScreenW, cfg.ScreenH = def.ScreenW, def.ScreenH
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = core.DefaultConfig().TickRate
	}

	ow, oh := opts.Settings.WorldSize()
	cfg.WorldW, cfg.WorldH = core.WorldFromScreen(cfg.ScreenW, playRows(cfg.ScreenH), ow, oh)
	cfg.WorldW = max(cfg.WorldW, flappy.MinWorldSize)
	cfg.WorldH = max(cfg.WorldH, flappy.MinWorldSize)

	keys := NewKeyMap(opts.Settings)
	startKey := "start"
	if keys.Start.Enabled() {
		startKey = keys.Start.Help().Key
	}
	overlay := NewOverlay(startKey)

	session, err := flappy.NewSession(flappy.Options{
		Width:               cfg.WorldW,
		Height:              cfg.WorldH,
		Tuning:              opts.Tuning,
		Images:              opts.Images,
		Store:               opts.Store,
		Seed:                cfg.Seed,
		BackgroundAnimation: opts.Settings.BackgroundAnimation,
		Immortal:            opts.Immortal,
		OnGameOver:          overlay.ShowScoreboard,
		OnScore:             overlay.FlashScore,
		Logger:              logger,
	})
	if err != nil {
		return Model{}, fmt.Errorf("tui: %w", err)
	}

	h := help.New()
	h.ShowAll = false

	logger.Info("screen ready", "cols", cfg.ScreenW, "rows", cfg.ScreenH, "world_w", cfg.WorldW, "world_h", cfg.WorldH)
	return Model{
		session:    session,
		screen:     core.NewScreen(cfg.ScreenW, playRows(cfg.ScreenH)),
		renderer:   NewRenderer(),
		overlay:    overlay,
		keys:       keys,
		help:       h,
		config:     cfg,
		logger:     logger,
		fullscreen: opts.Settings.WindowFullscreen,
	}, nil
}

// playRows is the number of rows left for the scene after the help footer.
func playRows(rows int) int {
	return max(rows-1, 1)
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.config.TickRate)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick(time.Time(msg))
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keys.Action(msg) {
	case core.ActionExit:
		m.quitting = true
		if err := m.session.Close(); err != nil {
			m.err = err
		}
		m.logger.Info("exit", "best", m.session.Best())
		return m, tea.Quit

	case core.ActionStart:
		if m.session.Playing() {
			return m, nil
		}
		if err := m.session.Start(); err != nil {
			m.logger.Error("cannot start run", "err", err)
			m.err = err
			m.quitting = true
			return m, tea.Quit
		}

	case core.ActionJump:
		m.session.Jump()

	case core.ActionPause:
		// On the scoreboard the pause key goes back to the title screen.
		if m.session.State() == flappy.StateGameOver {
			m.session.ToMenu()
			return m, nil
		}
		m.session.TogglePause()

	case core.ActionFullscreen:
		m.fullscreen = !m.fullscreen
		if m.fullscreen {
			return m, tea.EnterAltScreen
		}
		return m, tea.ExitAltScreen
	}

	return m, nil
}

// handleResize processes window resize events.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, playRows(msg.Height))
	m.help.Width = msg.Width
	return m, nil
}

// handleTick advances game time by the real time since the last frame.
func (m Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	if m.quitting {
		return m, nil
	}
	dt := frameStep(m.last, now)
	m.last = now

	m.session.Advance(dt)
	m.overlay.Update(dt)

	return m, tickCmd(m.config.TickRate)
}

// View implements tea.Model.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	Rasterize(m.screen, m.session.Scene(), m.config.WorldW, m.config.WorldH)
	m.overlay.Draw(m.screen, m.session)
	return m.renderer.Render(m.screen) + "\n" + m.help.View(m.keys)
}

// Session returns the running session.
func (m Model) Session() *flappy.Session {
	return m.session
}

// Err returns the error that ended the program, if any.
func (m Model) Err() error {
	return m.err
}

// Run starts the Bubble Tea program and blocks until the player quits.
// The session is closed and the best score saved on the way out.
func Run(opts Options) error {
	model, err := NewModel(opts)
	if err != nil {
		return err
	}

	progOpts := []tea.ProgramOption{}
	if model.fullscreen {
		progOpts = append(progOpts, tea.WithAltScreen())
	}
	p := tea.NewProgram(model, progOpts...)
	final, runErr := p.Run()

	closeErr := model.session.Close()
	if fm, ok := final.(Model); ok && fm.err != nil {
		closeErr = errors.Join(closeErr, fm.err)
	}
	if runErr != nil {
		return fmt.Errorf("tui: %w", runErr)
	}
	return closeErr
}
