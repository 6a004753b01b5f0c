package tui

import (
	"image/color"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/flappy-lite/internal/core"
)

// halfBlock shows the upper sample as foreground and the lower one as
// background, giving two pixels per cell.
const halfBlock = '▀'

// Sampler returns the visible color at a world point.
type Sampler interface {
	ColorAt(x, y float64) (color.RGBA, bool)
}

// emptyColor fills points no object covers.
var emptyColor = core.ColorBlack

// Rasterize samples a worldW×worldH world onto every cell of s. Each cell
// covers two vertically stacked samples taken at their centers.
func Rasterize(s *core.Screen, src Sampler, worldW, worldH int) {
	cols, rows := s.Width(), s.Height()
	if cols == 0 || rows == 0 {
		return
	}
	sx := float64(worldW) / float64(cols)
	sy := float64(worldH) / float64(2*rows)

	sample := func(x, y float64) core.Color {
		c, ok := src.ColorAt(x, y)
		if !ok {
			return emptyColor
		}
		return core.RGB(c.R, c.G, c.B)
	}

	for y := range rows {
		upper := (float64(2*y) + 0.5) * sy
		lower := (float64(2*y) + 1.5) * sy
		for x := range cols {
			wx := (float64(x) + 0.5) * sx
			s.SetCell(x, y, core.Cell{
				Rune: halfBlock,
				FG:   sample(wx, upper),
				BG:   sample(wx, lower),
			})
		}
	}
}

type colorPair struct {
	fg, bg core.Color
}

// styleCache keeps one lipgloss style per color pair; a frame reuses a
// handful of them.
type styleCache map[colorPair]lipgloss.Style

func (c styleCache) style(p colorPair) lipgloss.Style {
	if st, ok := c[p]; ok {
		return st
	}
	st := lipgloss.NewStyle()
	if p.fg.Set {
		st = st.Foreground(lipgloss.Color(p.fg.Hex()))
	}
	if p.bg.Set {
		st = st.Background(lipgloss.Color(p.bg.Hex()))
	}
	c[p] = st
	return st
}

// Renderer converts a Screen buffer to a styled string for display.
type Renderer struct {
	styles styleCache
}

// NewRenderer creates a renderer with an empty style cache.
func NewRenderer() *Renderer {
	return &Renderer{styles: make(styleCache)}
}

// Render groups adjacent cells with the same colors to minimize ANSI escape sequences.
func (r *Renderer) Render(s *core.Screen) string {
	var sb strings.Builder
	// Pre-allocate with extra space for ANSI codes
	sb.Grow(s.Width()*s.Height()*4 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			cell := s.GetCell(x, y)
			start := colorPair{cell.FG, cell.BG}

			var run strings.Builder
			for x < s.Width() {
				cell = s.GetCell(x, y)
				if (colorPair{cell.FG, cell.BG}) != start {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			if !start.fg.Set && !start.bg.Set {
				sb.WriteString(run.String())
				continue
			}
			sb.WriteString(r.styles.style(start).Render(run.String()))
		}
	}
	return sb.String()
}

// RenderScreen renders s with a throwaway style cache.
func RenderScreen(s *core.Screen) string {
	return NewRenderer().Render(s)
}
