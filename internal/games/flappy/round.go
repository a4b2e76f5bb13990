package flappy

import (
	"github.com/vovakirdan/flapgap/internal/config"
	"github.com/vovakirdan/flapgap/internal/core"
)

// Round owns every entity of one run. A fresh Round is built for each
// start; nothing is shared between rounds.
type Round struct {
	cfg    config.GameConfig
	params config.Params
	mode   Mode
	level  *config.Level
	run    uint64
	tick   int

	body        Body
	pipes       *Spawner
	collectible *Collectibles // nil unless the mode enables collectibles
	powerups    *Powerups
	gap         *GapTween
	progress    Progress
	difficulty  *config.DifficultyManager

	// Current values after difficulty scaling.
	speed    float64
	gapSize  float64
	interval int

	events []Event
}

// NewRound builds a standalone round with fixed difficulty. Sessions
// build their own; this is for hosts that drive a Round directly.
func NewRound(cfg config.GameConfig, params config.Params, mode Mode, level *config.Level, rng core.RNG) *Round {
	return newRound(0, cfg, params, mode, level, rng, nil)
}

func newRound(run uint64, cfg config.GameConfig, params config.Params, mode Mode, level *config.Level, rng core.RNG, dm *config.DifficultyManager) *Round {
	if dm == nil {
		dm = config.Disabled()
	}
	r := &Round{
		cfg:        cfg,
		params:     params,
		mode:       mode,
		level:      level,
		run:        run,
		body:       NewBody(cfg.Player.X, cfg.World.Height/2, cfg.Player.Radius, cfg.Physics.Gravity, cfg.Physics.Impulse),
		pipes:      NewSpawner(cfg, rng),
		powerups:   NewPowerups(params.PowerupDuration),
		gap:        NewGapTween(params.Gap, cfg.Powerups.WidenBy, cfg.Powerups.WidenTicks),
		difficulty: dm,
	}
	if mode.RequiresLevel() {
		r.progress.Target = params.Target
	}
	if mode.Collectibles() {
		r.collectible = NewCollectibles(cfg, rng)
	}
	r.Retune()
	return r
}

// Step advances the round by one tick and reports whether it ended.
func (r *Round) Step() (Result, bool) {
	r.tick++
	if r.difficulty.ByTime() {
		r.Retune()
	}

	r.powerups.Decay()
	r.gap.Update(r.powerups.Active(GapWiden))

	r.body.Integrate()

	r.pipes.Move(r.speed)
	passed := r.pipes.MarkPassed(r.body.X)
	r.pipes.Retire()
	if p, ok := r.pipes.Advance(r.interval, r.gapSize); ok && r.collectible != nil {
		r.collectible.OnPipeSpawned(p, r.tuned())
	}
	if r.collectible != nil {
		r.collectible.Move(r.speed, r.body.Pos(), r.powerups.Active(Magnet), r.params.MagnetRadius)
	}

	for range passed {
		r.progress.Passed(1)
		r.emit(Event{Kind: ObstaclePassed})
		r.mode.OnObstaclePassed(r)
	}

	// Win is evaluated before any other terminal check and ends the tick.
	if res, done := r.mode.EvaluateTerminal(r); done {
		return res, true
	}

	if r.collectible != nil {
		r.pickUp()
	}

	if r.body.OutOfBounds(r.cfg.World.Height) {
		return Lost, true
	}

	extra := r.gap.Extra()
	for i := 0; i < len(r.pipes.pipes); i++ {
		p := r.pipes.pipes[i]
		if !HitsPipe(r.body, p, extra) {
			continue
		}
		switch r.mode.OnCollision(r, Collision{Pipe: p, Index: i}) {
		case Fatal:
			return Lost, true
		case Absorbed:
			// The absorbing effect moved the pipes; stop checking this tick.
			return 0, false
		}
	}
	return 0, false
}

func (r *Round) pickUp() {
	coins, kinds := r.collectible.Collect(r.body.Pos(), r.cfg.Collectibles.CoinPickupRadius, r.cfg.Collectibles.ItemPickupRadius)
	for range coins {
		r.progress.Collected(1)
		r.emit(Event{Kind: CoinCollected})
	}
	for _, k := range kinds {
		r.powerups.Activate(k)
		r.emit(Event{Kind: PowerupUsed, Powerup: k})
	}
	r.collectible.Retire()
}

// finish builds the outcome and emits the terminal event.
func (r *Round) finish(res Result) Outcome {
	out := Outcome{
		Result:  res,
		Mode:    r.mode.ID(),
		LevelID: r.LevelID(),
		Score:   r.progress.Score,
		Coins:   r.progress.Coins,
		Ticks:   r.tick,
	}
	kind := RoundLost
	if res == Won {
		kind = RoundWon
	}
	r.emit(Event{Kind: kind, Outcome: &out})
	return out
}

func (r *Round) emit(e Event) {
	e.Run = r.run
	e.Tick = r.tick
	e.Mode = r.mode.ID()
	e.LevelID = r.LevelID()
	e.Score = r.progress.Score
	e.Coins = r.progress.Coins
	r.events = append(r.events, e)
}

// ApplyImpulse flaps the player body.
func (r *Round) ApplyImpulse() {
	r.body.ApplyImpulse()
}

// Drain hands over the events queued since the last drain.
func (r *Round) Drain() []Event {
	events := r.events
	r.events = nil
	return events
}

// Retune applies difficulty scaling for the current score and tick.
func (r *Round) Retune() {
	score, tick := r.progress.Score, r.tick
	r.speed = r.difficulty.Speed(r.params.Speed, score, tick)
	r.gapSize = r.difficulty.Gap(r.params.Gap, r.cfg.Obstacles.MinGap, score, tick)
	r.interval = r.difficulty.SpawnInterval(r.params.SpawnInterval, score, tick)
}

func (r *Round) tuned() config.Params {
	p := r.params
	p.Speed = r.speed
	p.Gap = r.gapSize
	p.SpawnInterval = r.interval
	return p
}

// BreakShield spends an active shield: the shield ends, unpassed pipes
// and the collectibles ahead of the player are pushed away and
// ShieldBroken is emitted.
func (r *Round) BreakShield() bool {
	if !r.powerups.Active(Shield) {
		return false
	}
	r.powerups.Consume(Shield)
	r.pipes.Push(r.cfg.Powerups.ShieldPush)
	if r.collectible != nil {
		r.collectible.Push(r.cfg.Powerups.ShieldPush, r.body.X)
	}
	r.emit(Event{Kind: ShieldBroken})
	return true
}

// Powerups returns the round's power-up timers.
func (r *Round) Powerups() *Powerups { return r.powerups }

// Progress returns the score state.
func (r *Round) Progress() Progress { return r.progress }

// Params returns the round's resolved base parameters.
func (r *Round) Params() config.Params { return r.params }

// Level returns the career level, or nil.
func (r *Round) Level() *config.Level { return r.level }

// LevelID returns the career level id, or "".
func (r *Round) LevelID() string {
	if r.level == nil {
		return ""
	}
	return r.level.ID
}

// Tick returns the number of completed ticks.
func (r *Round) Tick() int { return r.tick }

// Body returns a copy of the player body.
func (r *Round) Body() Body { return r.body }

// Pipes returns the live pipes.
func (r *Round) Pipes() []Pipe { return r.pipes.Pipes() }
