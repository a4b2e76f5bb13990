// Package core provides the shared primitives of the flapgap engine:
// world geometry, input actions, the terminal cell buffer and the
// injectable random source. It has no dependency on Bubble Tea so the
// simulation stays pure and testable.
package core

import "math"

// Vec is a point or displacement in world units (pixels of the logical
// play area).
type Vec struct {
	X, Y float64
}

// Add returns v+o.
func (v Vec) Add(o Vec) Vec {
	return Vec{X: v.X + o.X, Y: v.Y + o.Y}
}

// Sub returns v-o.
func (v Vec) Sub(o Vec) Vec {
	return Vec{X: v.X - o.X, Y: v.Y - o.Y}
}

// Scale returns v multiplied by k.
func (v Vec) Scale(k float64) Vec {
	return Vec{X: v.X * k, Y: v.Y * k}
}

// Len returns the Euclidean length of v.
func (v Vec) Len() float64 {
	return math.Hypot(v.X, v.Y)
}

// Dist returns the Euclidean distance between two points.
func Dist(a, b Vec) float64 {
	return a.Sub(b).Len()
}

// Lerp moves from a toward b by fraction t (0 = a, 1 = b).
func Lerp(a, b Vec, t float64) Vec {
	return a.Add(b.Sub(a).Scale(t))
}

// Span is a closed interval on one axis.
type Span struct {
	Min, Max float64
}

// Overlaps reports whether two spans share more than a boundary point.
func (s Span) Overlaps(o Span) bool {
	return s.Min < o.Max && o.Min < s.Max
}

// Rect is an integer cell rectangle on the terminal screen.
type Rect struct {
	X, Y int
	W, H int
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate of the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Viewport maps world coordinates onto a screen area of cols×rows cells.
type Viewport struct {
	WorldW, WorldH float64
	Cols, Rows     int
}

// CellX converts a world x to a screen column.
func (v Viewport) CellX(x float64) int {
	if v.WorldW <= 0 {
		return 0
	}
	return int(math.Floor(x * float64(v.Cols) / v.WorldW))
}

// CellY converts a world y to a screen row.
func (v Viewport) CellY(y float64) int {
	if v.WorldH <= 0 {
		return 0
	}
	return int(math.Floor(y * float64(v.Rows) / v.WorldH))
}

// Finite reports whether f is neither NaN nor infinite.
func Finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
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
