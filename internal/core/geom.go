// Package core provides fundamental types and utilities for the game.
// It contains no external dependencies (especially no Bubble Tea) to keep game
// logic pure and testable.
package core

// Rect is an axis-aligned bounding box in world coordinates.
// (X1, Y1) is the top-left corner and (X2, Y2) the bottom-right corner.
type Rect struct {
	X1, Y1 float64
	X2, Y2 float64
}

// NewRect creates a rectangle from its corner coordinates.
func NewRect(x1, y1, x2, y2 float64) Rect {
	return Rect{X1: x1, Y1: y1, X2: x2, Y2: y2}
}

// RectFromCenter creates a w×h rectangle centered on (cx, cy).
func RectFromCenter(cx, cy, w, h float64) Rect {
	return Rect{X1: -w / 2, Y1: -h / 2, X2: w / 2, Y2: h / 2}.Translate(cx, cy)
}

// Width returns the horizontal extent.
func (r Rect) Width() float64 {
	return r.X2 - r.X1
}

// Height returns the vertical extent.
func (r Rect) Height() float64 {
	return r.Y2 - r.Y1
}

// Center returns the center point of the rectangle.
func (r Rect) Center() (float64, float64) {
	return (r.X1 + r.X2) / 2, (r.Y1 + r.Y2) / 2
}

// Translate returns the rectangle moved by (dx, dy).
func (r Rect) Translate(dx, dy float64) Rect {
	return Rect{X1: r.X1 + dx, Y1: r.Y1 + dy, X2: r.X2 + dx, Y2: r.Y2 + dy}
}

// Inset shrinks each edge inward by the given margins.
// Negative margins grow the rectangle.
func (r Rect) Inset(left, top, right, bottom float64) Rect {
	return Rect{X1: r.X1 + left, Y1: r.Y1 + top, X2: r.X2 - right, Y2: r.Y2 - bottom}
}

// Overlaps reports whether two rectangles share any point.
// Touching edges count as overlap, matching canvas hit-testing.
func (r Rect) Overlaps(other Rect) bool {
	if r.X1 > other.X2 || other.X1 > r.X2 {
		return false
	}
	if r.Y1 > other.Y2 || other.Y1 > r.Y2 {
		return false
	}
	return true
}

// Contains returns true if the point (x, y) is inside this rectangle.
// The right and bottom edges are exclusive.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X1 && x < r.X2 && y >= r.Y1 && y < r.Y2
}

// Clamp restricts a value to be within [min, max].
func Clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// ClampF restricts a float64 value to be within [min, max].
func ClampF(val, min, max float64) float64 {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// Min returns the smaller of two integers.
func Min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// Max returns the larger of two integers.
func Max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
