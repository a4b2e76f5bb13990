package flappy

import (
	"github.com/vovakirdan/flapgap/internal/config"
	"github.com/vovakirdan/flapgap/internal/core"
)

// Pipe is a paired top/bottom barrier. Top and Bottom are the stored gap
// edges; they never change after spawn.
type Pipe struct {
	X      float64 // left edge
	Width  float64
	Top    float64 // gap top
	Bottom float64 // gap bottom
	Passed bool    // false -> true once, never reverts
}

// Gap returns the stored gap height.
func (p Pipe) Gap() float64 {
	return p.Bottom - p.Top
}

// Opening returns the gap edges widened symmetrically by extra.
func (p Pipe) Opening(extra float64) (top, bottom float64) {
	if extra <= 0 {
		return p.Top, p.Bottom
	}
	return p.Top - extra/2, p.Bottom + extra/2
}

// Trailing returns the x of the pipe's right edge.
func (p Pipe) Trailing() float64 {
	return p.X + p.Width
}

// Horizontal returns the pipe's horizontal extent.
func (p Pipe) Horizontal() core.Span {
	return core.Span{Min: p.X, Max: p.Trailing()}
}

// Spawner creates pipes on a tick counter and scrolls them left.
type Spawner struct {
	pipes   []Pipe
	counter int
	rng     core.RNG

	worldW float64
	worldH float64
	width  float64
	minGap float64
	margin float64
}

// NewSpawner creates an empty spawner for the configured world.
func NewSpawner(cfg config.GameConfig, rng core.RNG) *Spawner {
	return &Spawner{
		pipes:  make([]Pipe, 0, 8),
		rng:    rng,
		worldW: cfg.World.Width,
		worldH: cfg.World.Height,
		width:  cfg.Obstacles.Width,
		minGap: cfg.Obstacles.MinGap,
		margin: cfg.Obstacles.Margin,
	}
}

// Pipes returns the live pipes, oldest first.
func (s *Spawner) Pipes() []Pipe {
	return s.pipes
}

// Move scrolls every pipe left by speed.
func (s *Spawner) Move(speed float64) {
	for i := range s.pipes {
		s.pipes[i].X -= speed
	}
}

// MarkPassed flips Passed on pipes whose trailing edge is now left of
// playerX and returns how many flipped.
func (s *Spawner) MarkPassed(playerX float64) int {
	passed := 0
	for i := range s.pipes {
		if !s.pipes[i].Passed && s.pipes[i].Trailing() < playerX {
			s.pipes[i].Passed = true
			passed++
		}
	}
	return passed
}

// Retire drops pipes that are fully off-screen to the left.
func (s *Spawner) Retire() {
	live := s.pipes[:0]
	for _, p := range s.pipes {
		if p.Trailing() >= 0 {
			live = append(live, p)
		}
	}
	s.pipes = live
}

// Advance counts one tick and, once the counter exceeds interval, spawns
// a pipe at the right edge with the given gap and resets the counter.
func (s *Spawner) Advance(interval int, gap float64) (Pipe, bool) {
	s.counter++
	if s.counter <= interval {
		return Pipe{}, false
	}
	s.counter = 0
	return s.spawn(gap), true
}

func (s *Spawner) spawn(gap float64) Pipe {
	usable := s.worldH - 2*s.margin
	gap = core.ClampF(gap, s.minGap, max(usable, s.minGap))

	top := s.margin
	if room := usable - gap; room > 0 {
		top += s.rng.Float64() * room
	}

	p := Pipe{
		X:      s.worldW,
		Width:  s.width,
		Top:    top,
		Bottom: top + gap,
	}
	s.pipes = append(s.pipes, p)
	return p
}

// Push moves every pipe the player has not passed yet right by distance
// and restarts the spawn counter, opening a recovery window.
func (s *Spawner) Push(distance float64) {
	for i := range s.pipes {
		if !s.pipes[i].Passed {
			s.pipes[i].X += distance
		}
	}
	s.counter = 0
}
