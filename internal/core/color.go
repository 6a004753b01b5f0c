package core

import "fmt"

// Color is a 24-bit terminal color for a screen cell.
// The zero value means "terminal default".
type Color struct {
	R, G, B uint8
	Set     bool
}

// RGB returns an explicit color.
func RGB(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b, Set: true}
}

// Hex returns the color as "#rrggbb", or "" for the terminal default.
func (c Color) Hex() string {
	if !c.Set {
		return ""
	}
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// Predefined colors for overlays and text.
var (
	ColorDefault = Color{}
	ColorBlack   = RGB(0, 0, 0)
	ColorWhite   = RGB(255, 255, 255)
	ColorYellow  = RGB(250, 220, 60)
	ColorOrange  = RGB(240, 140, 40)
	ColorGray    = RGB(140, 140, 140)
	ColorPanel   = RGB(222, 216, 149)
	ColorBrown   = RGB(84, 56, 71)
)
