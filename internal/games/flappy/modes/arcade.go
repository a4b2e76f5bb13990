package modes

import (
	"github.com/vovakirdan/flapgap/internal/config"
	"github.com/vovakirdan/flapgap/internal/games/flappy"
	"github.com/vovakirdan/flapgap/internal/registry"
)

// Arcade adds coins and power-ups to the endless run.
type Arcade struct{}

func (Arcade) ID() string          { return config.ModeArcade }
func (Arcade) Title() string       { return "Arcade" }
func (Arcade) Description() string { return "Collect coins, grab shields, magnets, ghosts and wider gaps" }
func (Arcade) RequiresLevel() bool { return false }
func (Arcade) Collectibles() bool  { return true }

// OnObstaclePassed speeds the round up as the score grows.
func (Arcade) OnObstaclePassed(r *flappy.Round) {
	r.Retune()
}

// OnCollision lets ghost pass through pipes and spends a shield before
// a hit becomes fatal.
func (Arcade) OnCollision(r *flappy.Round, _ flappy.Collision) flappy.Resolution {
	if r.Powerups().Active(flappy.Ghost) {
		return flappy.Ignored
	}
	if r.BreakShield() {
		return flappy.Absorbed
	}
	return flappy.Fatal
}

// EvaluateTerminal never wins.
func (Arcade) EvaluateTerminal(*flappy.Round) (flappy.Result, bool) {
	return flappy.Lost, false
}

func init() {
	registry.Register(config.ModeArcade, func() flappy.Mode { return Arcade{} })
}
