// Package flappy implements the flap-past-gaps simulation: the player
// body, procedural pipes, arcade collectibles and power-ups, collision
// and the session lifecycle shared by all play modes.
package flappy

import "github.com/vovakirdan/flapgap/internal/core"

// Body is the player-controlled entity. X is fixed for a round; Y is
// unbounded until the bounds check ends the round.
type Body struct {
	X        float64
	Y        float64
	Velocity float64 // positive = down
	Radius   float64
	Rotation float64 // degrees, cosmetic

	gravity float64
	impulse float64
}

// NewBody places a resting body at (x, y).
func NewBody(x, y, radius, gravity, impulse float64) Body {
	return Body{
		X:       x,
		Y:       y,
		Radius:  radius,
		gravity: gravity,
		impulse: impulse,
	}
}

// ApplyImpulse sets the velocity to the flap impulse. Impulses do not
// accumulate.
func (b *Body) ApplyImpulse() {
	b.Velocity = b.impulse
}

// Integrate advances the body by one tick.
func (b *Body) Integrate() {
	b.Velocity += b.gravity
	b.Y += b.Velocity
	b.Rotation = core.ClampF(b.Velocity*3, -25, 90)
}

// OutOfBounds reports whether the body left the play area vertically.
func (b Body) OutOfBounds(height float64) bool {
	return b.Y-b.Radius < 0 || b.Y+b.Radius > height
}

// Pos returns the body centre.
func (b Body) Pos() core.Vec {
	return core.Vec{X: b.X, Y: b.Y}
}

// Horizontal returns the body's horizontal extent.
func (b Body) Horizontal() core.Span {
	return core.Span{Min: b.X - b.Radius, Max: b.X + b.Radius}
}
