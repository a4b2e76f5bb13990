package flappy

import "github.com/vovakirdan/flapgap/internal/core"

// HitsPipe reports whether the body overlaps the pipe horizontally while
// some part of it is outside the gap. extra widens the gap symmetrically.
func HitsPipe(b Body, p Pipe, extra float64) bool {
	if !b.Horizontal().Overlaps(p.Horizontal()) {
		return false
	}
	top, bottom := p.Opening(extra)
	return b.Y-b.Radius < top || b.Y+b.Radius > bottom
}

// Touches reports whether two points are closer than radius.
func Touches(a, b core.Vec, radius float64) bool {
	return core.Dist(a, b) < radius
}
