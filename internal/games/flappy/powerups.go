package flappy

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Kind is a power-up kind.
type Kind int

const (
	Shield   Kind = iota // absorbs one obstacle hit
	Magnet               // pulls nearby coins
	Ghost                // passes through obstacles
	GapWiden             // eases every gap wider
	kindCount
)

// Kinds lists every power-up kind in roll order.
var Kinds = [kindCount]Kind{Shield, Magnet, Ghost, GapWiden}

// String returns the name of the power-up kind.
func (k Kind) String() string {
	switch k {
	case Shield:
		return "shield"
	case Magnet:
		return "magnet"
	case Ghost:
		return "ghost"
	case GapWiden:
		return "gap-widen"
	default:
		return "unknown"
	}
}

// Glyph returns the display character for a power-up kind.
func (k Kind) Glyph() rune {
	switch k {
	case Shield:
		return '◈'
	case Magnet:
		return 'U'
	case Ghost:
		return '☁'
	case GapWiden:
		return '↕'
	default:
		return '?'
	}
}

// Powerups holds one countdown per kind; zero means inactive.
type Powerups struct {
	remaining [kindCount]int
	duration  int
}

// NewPowerups creates a controller whose pickups last duration ticks.
func NewPowerups(duration int) *Powerups {
	return &Powerups{duration: duration}
}

// Activate sets the kind's countdown to the full duration. Picking up an
// active kind refreshes it; durations never add up.
func (p *Powerups) Activate(k Kind) {
	if k < 0 || k >= kindCount {
		return
	}
	p.remaining[k] = p.duration
}

// Consume ends a kind immediately.
func (p *Powerups) Consume(k Kind) {
	if k < 0 || k >= kindCount {
		return
	}
	p.remaining[k] = 0
}

// Decay counts every active kind down by one tick and returns the kinds
// that ran out.
func (p *Powerups) Decay() []Kind {
	var expired []Kind
	for k := range p.remaining {
		if p.remaining[k] == 0 {
			continue
		}
		p.remaining[k]--
		if p.remaining[k] == 0 {
			expired = append(expired, Kind(k))
		}
	}
	return expired
}

// Remaining returns the ticks left for a kind.
func (p *Powerups) Remaining(k Kind) int {
	if k < 0 || k >= kindCount {
		return 0
	}
	return p.remaining[k]
}

// Active reports whether a kind is running.
func (p *Powerups) Active(k Kind) bool {
	return p.Remaining(k) > 0
}

// Duration returns the configured pickup duration.
func (p *Powerups) Duration() int {
	return p.duration
}

// GapTween eases the effective gap between the base and base plus a fixed
// widening.
// Each change of target restarts an exponential ease-out from wherever the
// gap currently is.
type GapTween struct {
	base    float64
	widened float64
	ticks   float32

	target  float64
	current float64
	tween   *gween.Tween
}

// NewGapTween starts at base and widens by widenBy. One ease takes ticks
// updates.
func NewGapTween(base, widenBy float64, ticks int) *GapTween {
	if ticks <= 0 {
		ticks = 1
	}
	return &GapTween{
		base:    base,
		widened: base + max(widenBy, 0),
		ticks:   float32(ticks),
		target:  base,
		current: base,
	}
}

// Update advances one tick toward the widened gap while widen is set and
// toward the base gap otherwise. It returns the effective gap.
func (g *GapTween) Update(widen bool) float64 {
	target := g.base
	if widen {
		target = g.widened
	}
	if target != g.target {
		g.target = target
		g.tween = gween.New(float32(g.current), float32(target), g.ticks, ease.OutExpo)
	}
	if g.tween == nil {
		return g.current
	}

	v, done := g.tween.Update(1)
	g.current = float64(v)
	if done {
		g.current = g.target
		g.tween = nil
	}
	return g.current
}

// Current returns the effective gap.
func (g *GapTween) Current() float64 {
	return g.current
}

// Extra returns how much wider than base the gap currently is.
func (g *GapTween) Extra() float64 {
	return max(g.current-g.base, 0)
}
