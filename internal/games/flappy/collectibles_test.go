package flappy

import (
	"testing"

	"github.com/vovakirdan/flapgap/internal/config"
	"github.com/vovakirdan/flapgap/internal/core"
)

func arcadeParams(t *testing.T) config.Params {
	t.Helper()
	p, err := config.DefaultGameConfig().Resolve(config.ModeArcade, config.Options{})
	if err != nil {
		t.Fatalf("Resolve() failed: %v", err)
	}
	return p
}

func TestCollectiblesSpawnWithPipe(t *testing.T) {
	params := arcadeParams(t)
	params.CoinChance = 1
	params.ItemChance = 1

	c := NewCollectibles(config.DefaultGameConfig(), core.FixedRNG{Value: 0})
	pipe := Pipe{X: 400, Width: 60, Top: 200, Bottom: 350}
	c.OnPipeSpawned(pipe, params)

	if len(c.Coins()) != 1 {
		t.Fatalf("coins = %d, expected 1", len(c.Coins()))
	}
	if got := c.Coins()[0].Pos; got != (core.Vec{X: 430, Y: 275}) {
		t.Errorf("coin at %+v, expected gap centre {430 275}", got)
	}

	if len(c.Items()) != 1 {
		t.Fatalf("items = %d, expected 1", len(c.Items()))
	}
	item := c.Items()[0]
	if item.Kind != Shield {
		t.Errorf("item kind = %v, expected shield for roll 0", item.Kind)
	}
	// Halfway between this pipe's trailing edge and the next pipe.
	if item.Pos.X != 565 || item.Pos.Y != 50 {
		t.Errorf("item at %+v, expected {565 50}", item.Pos)
	}
}

func TestCollectiblesRespectChances(t *testing.T) {
	params := arcadeParams(t)
	params.CoinChance = 0
	params.ItemChance = 0

	c := NewCollectibles(config.DefaultGameConfig(), core.FixedRNG{Value: 0})
	for range 10 {
		c.OnPipeSpawned(Pipe{X: 400, Width: 60, Top: 200, Bottom: 350}, params)
	}
	if len(c.Coins()) != 0 || len(c.Items()) != 0 {
		t.Errorf("zero chances spawned %d coins and %d items", len(c.Coins()), len(c.Items()))
	}
}

func TestMagnetPullsCoinsStrictlyCloser(t *testing.T) {
	c := NewCollectibles(config.DefaultGameConfig(), core.FixedRNG{})
	player := core.Vec{X: 80, Y: 300}
	c.coins = []Coin{
		{Pos: core.Vec{X: 200, Y: 340}}, // within 150
		{Pos: core.Vec{X: 330, Y: 300}}, // outside
	}

	prev := core.Dist(c.coins[0].Pos, player)
	for i := range 20 {
		c.Move(3, player, true, 150)
		d := core.Dist(c.coins[0].Pos, player)
		if d >= prev {
			t.Fatalf("tick %d: distance %f did not shrink from %f", i, d, prev)
		}
		prev = d
	}

	// The far coin scrolled normally until it entered the radius.
	if c.coins[1].Pos.Y != 300 {
		t.Errorf("far coin Y = %f, expected unchanged", c.coins[1].Pos.Y)
	}
}

func TestCoinsScrollWithoutMagnet(t *testing.T) {
	c := NewCollectibles(config.DefaultGameConfig(), core.FixedRNG{})
	c.coins = []Coin{{Pos: core.Vec{X: 100, Y: 300}}}
	c.items = []Item{{Pos: core.Vec{X: 100, Y: 300}, Kind: Ghost}}

	c.Move(3, core.Vec{X: 80, Y: 300}, false, 150)
	if c.coins[0].Pos.X != 97 || c.items[0].Pos.X != 97 {
		t.Errorf("positions = %f, %f; expected 97", c.coins[0].Pos.X, c.items[0].Pos.X)
	}
	if c.coins[0].Angle == 0 || c.items[0].Phase == 0 {
		t.Error("animation phases should advance")
	}
}

func TestCollectAndRetire(t *testing.T) {
	c := NewCollectibles(config.DefaultGameConfig(), core.FixedRNG{})
	player := core.Vec{X: 80, Y: 300}
	c.coins = []Coin{
		{Pos: core.Vec{X: 90, Y: 310}},
		{Pos: core.Vec{X: 80, Y: 330}},
		{Pos: core.Vec{X: -50, Y: 300}},
	}
	c.items = []Item{
		{Pos: core.Vec{X: 100, Y: 300}, Kind: Magnet},
		{Pos: core.Vec{X: 200, Y: 300}, Kind: Ghost},
	}

	coins, kinds := c.Collect(player, 22, 30)
	if coins != 1 {
		t.Errorf("collected %d coins, expected 1", coins)
	}
	if len(kinds) != 1 || kinds[0] != Magnet {
		t.Errorf("picked up %v, expected [magnet]", kinds)
	}

	// A second pass does not collect the same entities again.
	if again, k := c.Collect(player, 22, 30); again != 0 || len(k) != 0 {
		t.Errorf("second Collect = %d, %v", again, k)
	}

	c.Retire()
	if len(c.Coins()) != 1 || len(c.Items()) != 1 {
		t.Errorf("after Retire: %d coins, %d items; expected 1 and 1", len(c.Coins()), len(c.Items()))
	}
}

func TestPushMovesCollectiblesAheadOfPlayer(t *testing.T) {
	c := NewCollectibles(config.DefaultGameConfig(), core.FixedRNG{})
	c.coins = []Coin{
		{Pos: core.Vec{X: 40, Y: 300}},
		{Pos: core.Vec{X: 150, Y: 300}},
	}
	c.items = []Item{{Pos: core.Vec{X: 260, Y: 300}, Kind: Shield}}

	c.Push(200, 80)

	expected := []float64{40, 350}
	for i, coin := range c.Coins() {
		if coin.Pos.X != expected[i] {
			t.Errorf("coin %d x = %f, expected %f", i, coin.Pos.X, expected[i])
		}
	}
	if x := c.Items()[0].Pos.X; x != 460 {
		t.Errorf("item x = %f, expected 460", x)
	}
}
