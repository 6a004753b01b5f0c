package tui

import (
	"fmt"
	"time"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"

	"github.com/vovakirdan/flappy-lite/internal/core"
	"github.com/vovakirdan/flappy-lite/internal/games/flappy"
)

const (
	title = "FLAPPY BIRD LITE"

	dropDuration = 0.9 // seconds
	bobDuration  = 1.2 // seconds, one way
	bobRows      = 2

	flashDuration = 300 * time.Millisecond
)

// SessionView is what the overlays read from the running session.
type SessionView interface {
	State() flappy.State
	Paused() bool
	Score() int
	Best() int
	Scoreboard() []string
}

// Overlay draws the title menu, the in-game score and the scoreboard on top
// of the rasterized scene.
type Overlay struct {
	startKey string

	drop    *gween.Tween
	dropPos float32 // 0 hidden above the screen, 1 resting

	bob    *gween.Tween
	bobPos float32
	bobUp  bool

	flash time.Duration // Left on the score highlight
}

// NewOverlay creates the overlays. startKey labels the start hint.
func NewOverlay(startKey string) *Overlay {
	o := &Overlay{startKey: startKey}
	o.bob = gween.New(0, 1, bobDuration, ease.InOutSine)
	o.dropPos = 1
	return o
}

// ShowScoreboard starts the scoreboard drop-in.
func (o *Overlay) ShowScoreboard() {
	o.dropPos = 0
	o.drop = gween.New(0, 1, dropDuration, ease.OutBounce)
}

// FlashScore highlights the in-game score for a moment after a point.
func (o *Overlay) FlashScore(int) {
	o.flash = flashDuration
}

// Flashing reports whether the score highlight is showing.
func (o *Overlay) Flashing() bool {
	return o.flash > 0
}

// Update advances the animations by dt.
func (o *Overlay) Update(dt time.Duration) {
	step := float32(dt.Seconds())
	o.flash = max(o.flash-dt, 0)

	if o.drop != nil {
		var done bool
		o.dropPos, done = o.drop.Update(step)
		if done {
			o.drop = nil
		}
	}

	var done bool
	o.bobPos, done = o.bob.Update(step)
	if done {
		o.bobUp = !o.bobUp
		if o.bobUp {
			o.bob = gween.New(1, 0, bobDuration, ease.InOutSine)
		} else {
			o.bob = gween.New(0, 1, bobDuration, ease.InOutSine)
		}
	}
}

// Dropping reports whether the scoreboard is still animating.
func (o *Overlay) Dropping() bool {
	return o.drop != nil
}

// Draw paints the overlay for the session's current state.
func (o *Overlay) Draw(s *core.Screen, sess SessionView) {
	switch sess.State() {
	case flappy.StateIdle:
		o.drawMenu(s, sess)
	case flappy.StatePlaying:
		o.drawHUD(s, sess)
	case flappy.StateGameOver:
		o.drawScoreboard(s, sess)
	}
}

func (o *Overlay) drawMenu(s *core.Screen, sess SessionView) {
	y := s.Height()/4 + int(o.bobPos*bobRows+0.5)
	s.DrawTextCentered(y, title, core.ColorYellow, core.ColorBrown)

	mid := s.Height() / 2
	s.DrawTextCentered(mid+2, fmt.Sprintf("Press %s to play", o.startKey), core.ColorWhite, core.ColorDefault)
	if sess.Best() > 0 {
		s.DrawTextCentered(mid+4, fmt.Sprintf("Best Score: %d", sess.Best()), core.ColorGray, core.ColorDefault)
	}
}

func (o *Overlay) drawHUD(s *core.Screen, sess SessionView) {
	fg := core.ColorWhite
	if o.Flashing() {
		fg = core.ColorYellow
	}
	s.DrawTextCentered(1, fmt.Sprintf(" %d ", sess.Score()), fg, core.ColorBlack)
	if sess.Paused() {
		s.DrawTextCentered(s.Height()/2, " PAUSED ", core.ColorOrange, core.ColorBrown)
	}
}

func (o *Overlay) drawScoreboard(s *core.Screen, sess SessionView) {
	lines := sess.Scoreboard()

	w := 0
	for _, l := range lines {
		w = max(w, len([]rune(l)))
	}
	w += 6
	h := len(lines) + 4

	x := (s.Width() - w) / 2
	rest := (s.Height() - h) / 2
	y := -h + int(float32(rest+h)*o.dropPos)

	s.FillRect(x, y, w, h, ' ', core.ColorBrown, core.ColorPanel)
	s.DrawBox(x, y, w, h, core.ColorBrown)
	for i, l := range lines {
		s.DrawTextColor(x+3, y+2+i, l, core.ColorBrown, core.ColorPanel)
	}

	if !o.Dropping() {
		s.DrawTextCentered(y+h+1, fmt.Sprintf("Press %s to play again", o.startKey), core.ColorWhite, core.ColorDefault)
	}
}
