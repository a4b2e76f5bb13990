package flappy

// Result is the terminal result of a round.
type Result int

const (
	Lost Result = iota
	Won
)

func (r Result) String() string {
	if r == Won {
		return "won"
	}
	return "lost"
}

// Resolution is a mode's answer to an obstacle collision.
type Resolution int

const (
	Fatal    Resolution = iota // round ends lost
	Absorbed                   // the hit was used up by an effect
	Ignored                    // the hit does not count
)

// Collision describes an obstacle hit.
type Collision struct {
	Pipe  Pipe
	Index int
}

// Mode specializes the shared round rules. Bounds violations are always
// fatal and never reach a mode.
type Mode interface {
	ID() string
	Title() string
	Description() string

	// RequiresLevel is true when rounds start through StartLevel.
	RequiresLevel() bool
	// Collectibles enables coins, items and power-ups.
	Collectibles() bool

	OnObstaclePassed(r *Round)
	OnCollision(r *Round, c Collision) Resolution
	// EvaluateTerminal runs after scoring and before any collision check.
	EvaluateTerminal(r *Round) (Result, bool)
}
