package flappy

import (
	"math"
	"sync"

	"github.com/vovakirdan/flapgap/internal/core"
)

// Snapshot is the per-tick render data handed to the render sink. It
// shares no memory with the session.
type Snapshot struct {
	Run     uint64
	Tick    int
	State   State
	Mode    string
	LevelID string

	WorldW float64
	WorldH float64

	Player   Body
	Pipes    []PipeView
	Coins    []Coin
	Items    []ItemView
	Powerups []ActivePowerup
	Gap      float64 // effective gap after widening

	Score     int
	Collected int // coins picked up this round
	Target    int
	Outcome   *Outcome
}

// PipeView is a pipe with its effective (possibly widened) opening.
type PipeView struct {
	X      float64
	Width  float64
	Top    float64
	Bottom float64
	Passed bool
}

// ItemView is an item with its cosmetic bob applied.
type ItemView struct {
	Pos  core.Vec
	Kind Kind
}

// ActivePowerup is one running power-up timer.
type ActivePowerup struct {
	Kind      Kind
	Remaining int
}

// itemBob is the amplitude of the cosmetic item oscillation.
const itemBob = 5

// snapshot copies the round into render data.
func (r *Round) snapshot(state State, out *Outcome) Snapshot {
	snap := Snapshot{
		Run:       r.run,
		Tick:      r.tick,
		State:     state,
		Mode:      r.mode.ID(),
		LevelID:   r.LevelID(),
		WorldW:    r.cfg.World.Width,
		WorldH:    r.cfg.World.Height,
		Player:    r.body,
		Gap:       r.gap.Current(),
		Score:     r.progress.Score,
		Collected: r.progress.Coins,
		Target:    r.progress.Target,
		Outcome:   out,
	}

	extra := r.gap.Extra()
	snap.Pipes = make([]PipeView, 0, len(r.pipes.pipes))
	for _, p := range r.pipes.pipes {
		top, bottom := p.Opening(extra)
		snap.Pipes = append(snap.Pipes, PipeView{X: p.X, Width: p.Width, Top: top, Bottom: bottom, Passed: p.Passed})
	}

	if r.collectible != nil {
		snap.Coins = append([]Coin(nil), r.collectible.coins...)
		for _, it := range r.collectible.items {
			pos := it.Pos
			pos.Y += math.Sin(it.Phase) * itemBob
			snap.Items = append(snap.Items, ItemView{Pos: pos, Kind: it.Kind})
		}
	}

	for _, k := range Kinds {
		if n := r.powerups.Remaining(k); n > 0 {
			snap.Powerups = append(snap.Powerups, ActivePowerup{Kind: k, Remaining: n})
		}
	}
	return snap
}

// Snapshot copies a directly driven round into render data.
func (r *Round) Snapshot() Snapshot {
	return r.snapshot(Running, nil)
}

// Hash returns a simple hash of the snapshot for determinism testing.
func (s *Snapshot) Hash() uint64 {
	h := uint64(s.Tick) //#nosec G115 -- hash computation
	mix := func(v float64) {
		h = h*31 + math.Float64bits(v)
	}

	h = h*31 + uint64(s.State)     //#nosec G115 -- hash computation
	h = h*31 + uint64(s.Score)     //#nosec G115 -- hash computation
	h = h*31 + uint64(s.Collected) //#nosec G115 -- hash computation
	mix(s.Player.Y)
	mix(s.Player.Velocity)
	mix(s.Gap)
	for _, p := range s.Pipes {
		mix(p.X)
		mix(p.Top)
		mix(p.Bottom)
	}
	for _, c := range s.Coins {
		mix(c.Pos.X)
		mix(c.Pos.Y)
	}
	for _, it := range s.Items {
		mix(it.Pos.X)
		h = h*31 + uint64(it.Kind) //#nosec G115 -- hash computation
	}
	for _, p := range s.Powerups {
		h = h*31 + uint64(p.Kind)*1000 + uint64(p.Remaining) //#nosec G115 -- hash computation
	}
	return h
}

// RenderSink consumes one snapshot per tick. Like EventSink it runs
// under the session lock and must not block.
type RenderSink interface {
	Render(Snapshot)
}

// RenderFunc adapts a function to RenderSink.
type RenderFunc func(Snapshot)

// Render calls f.
func (f RenderFunc) Render(s Snapshot) { f(s) }

// LatestFrame keeps the most recent snapshot for hosts that draw on their
// own cadence.
type LatestFrame struct {
	mu   sync.Mutex
	snap Snapshot
	ok   bool
}

// Render implements RenderSink.
func (l *LatestFrame) Render(s Snapshot) {
	l.mu.Lock()
	l.snap = s
	l.ok = true
	l.mu.Unlock()
}

// Latest returns the last snapshot, or false before the first one.
func (l *LatestFrame) Latest() (Snapshot, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.snap, l.ok
}
