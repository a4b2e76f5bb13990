// Package modes holds the play-mode strategies and registers them.
package modes

import (
	"github.com/vovakirdan/flapgap/internal/config"
	"github.com/vovakirdan/flapgap/internal/games/flappy"
	"github.com/vovakirdan/flapgap/internal/registry"
)

// Classic is endless flapping: score until the first hit.
type Classic struct{}

func (Classic) ID() string          { return config.ModeClassic }
func (Classic) Title() string       { return "Classic" }
func (Classic) Description() string { return "Endless pipes, one life, no pickups" }
func (Classic) RequiresLevel() bool { return false }
func (Classic) Collectibles() bool  { return false }

// OnObstaclePassed speeds the round up as the score grows.
func (Classic) OnObstaclePassed(r *flappy.Round) {
	r.Retune()
}

// OnCollision ends the round on any hit.
func (Classic) OnCollision(*flappy.Round, flappy.Collision) flappy.Resolution {
	return flappy.Fatal
}

// EvaluateTerminal never wins.
func (Classic) EvaluateTerminal(*flappy.Round) (flappy.Result, bool) {
	return flappy.Lost, false
}

func init() {
	registry.Register(config.ModeClassic, func() flappy.Mode { return Classic{} })
}
