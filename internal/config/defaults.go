package config

import (
	_ "embed"
)

//go:embed defaults/game.yaml
var defaultGameYAML []byte

//go:embed defaults/levels.yaml
var defaultLevelsYAML []byte

// DefaultGameConfig returns the built-in configuration. The embedded
// game.yaml carries the same values.
func DefaultGameConfig() GameConfig {
	return GameConfig{
		World: WorldConfig{
			Width:  400,
			Height: 600,
		},
		Physics: PhysicsConfig{
			Gravity: 0.5,
			Impulse: -8,
		},
		Player: PlayerConfig{
			X:      80,
			Radius: 12,
		},
		Obstacles: ObstacleConfig{
			Width:  60,
			MinGap: 80,
			Margin: 50,
		},
		Collectibles: CollectibleConfig{
			CoinPickupRadius: 22,
			ItemPickupRadius: 30,
			MagnetPull:       0.15,
			OffscreenMargin:  40,
		},
		Powerups: PowerupConfig{
			WidenBy:    70,
			WidenTicks: 30,
			ShieldPush: 200,
		},
		Modes: map[string]Params{
			ModeClassic: {
				Speed:         2.5,
				Gap:           160,
				SpawnInterval: 90,
			},
			ModeArcade: {
				Speed:           3,
				Gap:             150,
				SpawnInterval:   90,
				CoinChance:      0.7,
				ItemChance:      0.2,
				MagnetRadius:    150,
				PowerupDuration: 400,
			},
			ModeCareer: {
				Speed:         3,
				Gap:           150,
				SpawnInterval: 90,
				Target:        10,
			},
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "score",
				MaxAt: 50,
			},
			Scaling: ScalingConfig{
				SpeedMultiplier:   0.6,
				GapReduction:      40,
				IntervalReduction: 25,
			},
		},
	}
}
