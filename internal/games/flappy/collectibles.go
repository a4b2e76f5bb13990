package flappy

import (
	"github.com/vovakirdan/flapgap/internal/config"
	"github.com/vovakirdan/flapgap/internal/core"
)

// animStep is the per-tick advance of coin spin and item bob phases.
const animStep = 0.1

// Coin sits in a gap centre and is worth one coin.
type Coin struct {
	Pos       core.Vec
	Angle     float64
	Collected bool
}

// Item is a power-up pickup floating between pipes.
type Item struct {
	Pos   core.Vec
	Kind  Kind
	Phase float64
	Taken bool
}

// Collectibles spawns and scrolls coins and power-up items. Only arcade
// rounds use one.
type Collectibles struct {
	coins []Coin
	items []Item
	rng   core.RNG

	worldH    float64
	margin    float64
	offscreen float64
	pull      float64
}

// NewCollectibles creates an empty collectible set.
func NewCollectibles(cfg config.GameConfig, rng core.RNG) *Collectibles {
	return &Collectibles{
		rng:       rng,
		worldH:    cfg.World.Height,
		margin:    cfg.Obstacles.Margin,
		offscreen: cfg.Collectibles.OffscreenMargin,
		pull:      cfg.Collectibles.MagnetPull,
	}
}

// Coins returns the live coins.
func (c *Collectibles) Coins() []Coin {
	return c.coins
}

// Items returns the live items.
func (c *Collectibles) Items() []Item {
	return c.items
}

// OnPipeSpawned rolls for a coin in the new pipe's gap and, independently,
// for a random power-up half a spacing behind it.
func (c *Collectibles) OnPipeSpawned(p Pipe, params config.Params) {
	if c.rng.Float64() < params.CoinChance {
		c.coins = append(c.coins, Coin{
			Pos: core.Vec{X: p.X + p.Width/2, Y: (p.Top + p.Bottom) / 2},
		})
	}

	if c.rng.Float64() < params.ItemChance {
		kind := Kinds[c.rng.Intn(len(Kinds))]
		y := c.margin + c.rng.Float64()*(c.worldH-2*c.margin)
		spacing := params.Speed * float64(params.SpawnInterval)
		c.items = append(c.items, Item{
			Pos:  core.Vec{X: p.Trailing() + (spacing-p.Width)/2, Y: y},
			Kind: kind,
		})
	}
}

// Move scrolls collectibles left. With magnet set, coins within radius of
// player are pulled toward it instead.
func (c *Collectibles) Move(speed float64, player core.Vec, magnet bool, radius float64) {
	for i := range c.coins {
		coin := &c.coins[i]
		coin.Angle += animStep
		if magnet && core.Dist(coin.Pos, player) <= radius {
			coin.Pos = core.Lerp(coin.Pos, player, c.pull)
			continue
		}
		coin.Pos.X -= speed
	}
	for i := range c.items {
		c.items[i].Pos.X -= speed
		c.items[i].Phase += animStep
	}
}

// Push moves coins and items still ahead of playerX right by distance,
// keeping them with the pipes a shield pushed away.
func (c *Collectibles) Push(distance, playerX float64) {
	for i := range c.coins {
		if c.coins[i].Pos.X > playerX {
			c.coins[i].Pos.X += distance
		}
	}
	for i := range c.items {
		if c.items[i].Pos.X > playerX {
			c.items[i].Pos.X += distance
		}
	}
}

// Collect marks coins within coinRadius and items within itemRadius of
// player as taken. It returns the coin count and the item kinds picked up.
func (c *Collectibles) Collect(player core.Vec, coinRadius, itemRadius float64) (int, []Kind) {
	coins := 0
	for i := range c.coins {
		if !c.coins[i].Collected && Touches(player, c.coins[i].Pos, coinRadius) {
			c.coins[i].Collected = true
			coins++
		}
	}

	var kinds []Kind
	for i := range c.items {
		if !c.items[i].Taken && Touches(player, c.items[i].Pos, itemRadius) {
			c.items[i].Taken = true
			kinds = append(kinds, c.items[i].Kind)
		}
	}
	return coins, kinds
}

// Retire drops collected and off-screen entities.
func (c *Collectibles) Retire() {
	coins := c.coins[:0]
	for _, coin := range c.coins {
		if !coin.Collected && coin.Pos.X >= -c.offscreen {
			coins = append(coins, coin)
		}
	}
	c.coins = coins

	items := c.items[:0]
	for _, it := range c.items {
		if !it.Taken && it.Pos.X >= -c.offscreen {
			items = append(items, it)
		}
	}
	c.items = items
}
