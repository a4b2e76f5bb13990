// Package config provides YAML-based game configuration loading, per-mode
// parameter resolution, career levels and difficulty management.
package config

import "errors"

// Mode identifiers used as keys under `modes:` in game.yaml.
const (
	ModeClassic = "classic"
	ModeArcade  = "arcade"
	ModeCareer  = "career"
)

var (
	// ErrUnknownMode is returned when no defaults exist for a mode id.
	ErrUnknownMode = errors.New("config: unknown mode")
	// ErrInvalidLevel is returned for a level without id or positive target.
	ErrInvalidLevel = errors.New("config: invalid level")
)

// GameConfig contains everything the simulation needs that is not chosen
// per round.
type GameConfig struct {
	World        WorldConfig       `yaml:"world"`
	Physics      PhysicsConfig     `yaml:"physics"`
	Player       PlayerConfig      `yaml:"player"`
	Obstacles    ObstacleConfig    `yaml:"obstacles"`
	Collectibles CollectibleConfig `yaml:"collectibles"`
	Powerups     PowerupConfig     `yaml:"powerups"`
	Modes        map[string]Params `yaml:"modes"`
	Difficulty   DifficultyConfig  `yaml:"difficulty"`
}

// WorldConfig is the logical play area in pixels.
type WorldConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// PhysicsConfig defines the gravity/impulse model.
type PhysicsConfig struct {
	Gravity float64 `yaml:"gravity"`
	Impulse float64 `yaml:"impulse"` // negative = up
}

// PlayerConfig places the player body.
type PlayerConfig struct {
	X      float64 `yaml:"x"`
	Radius float64 `yaml:"radius"`
}

// ObstacleConfig defines pipe geometry.
type ObstacleConfig struct {
	Width  float64 `yaml:"width"`
	MinGap float64 `yaml:"min_gap"`
	Margin float64 `yaml:"margin"` // keeps gaps away from floor and ceiling
}

// CollectibleConfig defines coin and item pickup behaviour.
type CollectibleConfig struct {
	CoinPickupRadius float64 `yaml:"coin_pickup_radius"`
	ItemPickupRadius float64 `yaml:"item_pickup_radius"`
	MagnetPull       float64 `yaml:"magnet_pull"` // lerp fraction per tick
	OffscreenMargin  float64 `yaml:"offscreen_margin"`
}

// PowerupConfig defines power-up effect strength.
type PowerupConfig struct {
	WidenBy    float64 `yaml:"widen_by"`    // added to the round's gap while gap-widen runs
	WidenTicks int     `yaml:"widen_ticks"` // duration of one gap ease
	ShieldPush float64 `yaml:"shield_push"`
}

// Params is one mode's tunable set. In game.yaml it holds mode defaults;
// after Resolve it holds the values a round actually runs with.
type Params struct {
	Speed           float64 `yaml:"speed"`
	Gap             float64 `yaml:"gap"`
	SpawnInterval   int     `yaml:"spawn_interval"`
	Target          int     `yaml:"target"`
	CoinChance      float64 `yaml:"coin_chance"`
	ItemChance      float64 `yaml:"item_chance"`
	MagnetRadius    float64 `yaml:"magnet_radius"`
	PowerupDuration int     `yaml:"powerup_duration"`
}

// Options are caller overrides for one round. Nil fields keep the mode
// default.
type Options struct {
	Speed           *float64
	Gap             *float64
	SpawnInterval   *int
	Target          *int
	CoinChance      *float64
	ItemChance      *float64
	MagnetRadius    *float64
	PowerupDuration *int
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases over a round.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "score", "time", or "none"
	MaxAt int    `yaml:"max_at"` // score/ticks at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes at max level.
type ScalingConfig struct {
	SpeedMultiplier   float64 `yaml:"speed_multiplier"`
	GapReduction      float64 `yaml:"gap_reduction"`
	IntervalReduction int     `yaml:"interval_reduction"`
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// ApplyPreset switches progression on or off for a preset.
func (c *GameConfig) ApplyPreset(preset DifficultyPreset) {
	if preset == DifficultyFixed {
		c.Difficulty.Enabled = false
		return
	}
	c.Difficulty.Enabled = true
	c.Difficulty.InitialLevel = InitialLevelForPreset(preset)
}

// F64 returns a pointer to v, for filling Options.
func F64(v float64) *float64 { return &v }

// Int returns a pointer to v.
func Int(v int) *int { return &v }
