package config

import (
	"fmt"

	"github.com/vovakirdan/flapgap/internal/core"
)

// Normalize replaces non-positive or non-finite values with the built-in
// defaults so a hand-edited YAML file cannot produce invalid geometry.
func (c *GameConfig) Normalize() {
	def := DefaultGameConfig()

	posF(&c.World.Width, def.World.Width)
	posF(&c.World.Height, def.World.Height)
	posF(&c.Physics.Gravity, def.Physics.Gravity)
	if !core.Finite(c.Physics.Impulse) || c.Physics.Impulse >= 0 {
		c.Physics.Impulse = def.Physics.Impulse
	}
	posF(&c.Player.X, def.Player.X)
	posF(&c.Player.Radius, def.Player.Radius)
	posF(&c.Obstacles.Width, def.Obstacles.Width)
	posF(&c.Obstacles.MinGap, def.Obstacles.MinGap)
	posF(&c.Obstacles.Margin, def.Obstacles.Margin)
	posF(&c.Collectibles.CoinPickupRadius, def.Collectibles.CoinPickupRadius)
	posF(&c.Collectibles.ItemPickupRadius, def.Collectibles.ItemPickupRadius)
	posF(&c.Collectibles.MagnetPull, def.Collectibles.MagnetPull)
	c.Collectibles.MagnetPull = core.ClampF(c.Collectibles.MagnetPull, 0, 1)
	posF(&c.Collectibles.OffscreenMargin, def.Collectibles.OffscreenMargin)
	posF(&c.Powerups.WidenBy, def.Powerups.WidenBy)
	posI(&c.Powerups.WidenTicks, def.Powerups.WidenTicks)
	posF(&c.Powerups.ShieldPush, def.Powerups.ShieldPush)

	// The gap must fit between the margins.
	if c.maxGap() < c.Obstacles.MinGap {
		c.World = def.World
		c.Obstacles = def.Obstacles
	}

	if c.Modes == nil {
		c.Modes = make(map[string]Params)
	}
	for id, d := range def.Modes {
		p, ok := c.Modes[id]
		if !ok {
			c.Modes[id] = d
			continue
		}
		c.Modes[id] = c.sanitize(p, d)
	}
	for id, p := range c.Modes {
		if _, builtin := def.Modes[id]; !builtin {
			c.Modes[id] = c.sanitize(p, def.Modes[ModeClassic])
		}
	}
}

// ModeDefaults returns the configured defaults for a mode.
func (c GameConfig) ModeDefaults(mode string) (Params, error) {
	p, ok := c.Modes[mode]
	if !ok {
		return Params{}, fmt.Errorf("%w: %q", ErrUnknownMode, mode)
	}
	return p, nil
}

// Resolve merges caller options over a mode's defaults. Invalid numbers
// (non-positive, NaN, Inf) fall back to the default; chances are clamped
// to [0, 1] and the gap to what fits in the play area.
func (c GameConfig) Resolve(mode string, opts Options) (Params, error) {
	def, err := c.ModeDefaults(mode)
	if err != nil {
		return Params{}, err
	}

	p := def
	if opts.Speed != nil {
		p.Speed = *opts.Speed
	}
	if opts.Gap != nil {
		p.Gap = *opts.Gap
	}
	if opts.SpawnInterval != nil {
		p.SpawnInterval = *opts.SpawnInterval
	}
	if opts.Target != nil {
		p.Target = *opts.Target
	}
	if opts.CoinChance != nil {
		p.CoinChance = *opts.CoinChance
	}
	if opts.ItemChance != nil {
		p.ItemChance = *opts.ItemChance
	}
	if opts.MagnetRadius != nil {
		p.MagnetRadius = *opts.MagnetRadius
	}
	if opts.PowerupDuration != nil {
		p.PowerupDuration = *opts.PowerupDuration
	}
	return c.sanitize(p, def), nil
}

// ResolveLevel builds the parameters of a career level on top of the
// career defaults. The level must pass Validate.
func (c GameConfig) ResolveLevel(l Level) (Params, error) {
	if err := l.Validate(); err != nil {
		return Params{}, err
	}
	opts := Options{Target: Int(l.Target)}
	if l.Speed != 0 {
		opts.Speed = F64(l.Speed)
	}
	if l.Gap != 0 {
		opts.Gap = F64(l.Gap)
	}
	if l.SpawnInterval != 0 {
		opts.SpawnInterval = Int(l.SpawnInterval)
	}
	return c.Resolve(ModeCareer, opts)
}

func (c GameConfig) sanitize(p, def Params) Params {
	posF(&p.Speed, def.Speed)
	posF(&p.Gap, def.Gap)
	p.Gap = core.ClampF(p.Gap, c.Obstacles.MinGap, c.maxGap())
	posI(&p.SpawnInterval, def.SpawnInterval)
	posI(&p.Target, def.Target)
	p.CoinChance = chance(p.CoinChance, def.CoinChance)
	p.ItemChance = chance(p.ItemChance, def.ItemChance)
	posF(&p.MagnetRadius, def.MagnetRadius)
	posI(&p.PowerupDuration, def.PowerupDuration)
	return p
}

func (c GameConfig) maxGap() float64 {
	return c.World.Height - 2*c.Obstacles.Margin
}

func posF(v *float64, def float64) {
	if !core.Finite(*v) || *v <= 0 {
		*v = def
	}
}

func posI(v *int, def int) {
	if *v <= 0 {
		*v = def
	}
}

func chance(v, def float64) float64 {
	if !core.Finite(v) {
		v = def
	}
	return core.ClampF(v, 0, 1)
}
