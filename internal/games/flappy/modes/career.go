package modes

import (
	"github.com/vovakirdan/flapgap/internal/config"
	"github.com/vovakirdan/flapgap/internal/games/flappy"
	"github.com/vovakirdan/flapgap/internal/registry"
)

// Career plays fixed-difficulty levels with a target score.
type Career struct{}

func (Career) ID() string          { return config.ModeCareer }
func (Career) Title() string       { return "Career" }
func (Career) Description() string { return "Clear levels by reaching their target score" }
func (Career) RequiresLevel() bool { return true }
func (Career) Collectibles() bool  { return false }

// OnObstaclePassed does nothing; level difficulty is fixed.
func (Career) OnObstaclePassed(*flappy.Round) {}

// OnCollision ends the round on any hit before the target.
func (Career) OnCollision(*flappy.Round, flappy.Collision) flappy.Resolution {
	return flappy.Fatal
}

// EvaluateTerminal wins once the level target is reached.
func (Career) EvaluateTerminal(r *flappy.Round) (flappy.Result, bool) {
	if r.Progress().Reached() {
		return flappy.Won, true
	}
	return flappy.Lost, false
}

func init() {
	registry.Register(config.ModeCareer, func() flappy.Mode { return Career{} })
}
