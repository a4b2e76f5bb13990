package config

import "math"

// minSpawnInterval is the floor applied after difficulty scaling.
const minSpawnInterval = 30

// DifficultyManager scales a round's speed, gap and spawn interval with
// score or elapsed ticks.
type DifficultyManager struct {
	cfg          DifficultyConfig
	initialLevel float64
}

// NewDifficultyManager creates a new difficulty manager.
func NewDifficultyManager(cfg DifficultyConfig) *DifficultyManager {
	return &DifficultyManager{
		cfg:          cfg,
		initialLevel: clampF(cfg.InitialLevel, 0.0, 1.0),
	}
}

// Disabled returns a manager that always reports the base values.
func Disabled() *DifficultyManager {
	return &DifficultyManager{cfg: DifficultyConfig{Progression: ProgressionConfig{Type: "none"}}}
}

// IsEnabled returns whether difficulty progression is active.
func (d *DifficultyManager) IsEnabled() bool {
	return d.cfg.Enabled && d.cfg.Progression.Type != "none"
}

// ByTime reports whether difficulty grows with elapsed ticks, so rounds
// must retune every tick rather than only when scoring.
func (d *DifficultyManager) ByTime() bool {
	return d.IsEnabled() && d.cfg.Progression.Type == "time"
}

// Level returns the current difficulty level (0.0 to 1.0) based on score/ticks.
func (d *DifficultyManager) Level(score int, ticks int) float64 {
	if !d.IsEnabled() {
		return d.initialLevel
	}

	maxAt := float64(d.cfg.Progression.MaxAt)
	if maxAt <= 0 {
		maxAt = 1
	}

	var progress float64
	switch d.cfg.Progression.Type {
	case "score":
		progress = float64(score) / maxAt
	case "time":
		progress = float64(ticks) / maxAt
	default:
		return d.initialLevel
	}

	progress = clampF(progress, 0.0, 1.0)
	return d.initialLevel + progress*(1.0-d.initialLevel)
}

// Speed returns base scaled up to base*(1+SpeedMultiplier) at max level.
func (d *DifficultyManager) Speed(base float64, score, ticks int) float64 {
	if !d.IsEnabled() {
		return base
	}
	return base * (1.0 + d.Level(score, ticks)*d.cfg.Scaling.SpeedMultiplier)
}

// Gap returns base shrunk by up to GapReduction, never below minGap.
func (d *DifficultyManager) Gap(base, minGap float64, score, ticks int) float64 {
	if !d.IsEnabled() {
		return base
	}
	return math.Max(minGap, base-d.Level(score, ticks)*d.cfg.Scaling.GapReduction)
}

// SpawnInterval returns base shortened by up to IntervalReduction.
func (d *DifficultyManager) SpawnInterval(base int, score, ticks int) int {
	if !d.IsEnabled() {
		return base
	}
	result := base - int(d.Level(score, ticks)*float64(d.cfg.Scaling.IntervalReduction))
	return max(result, min(base, minSpawnInterval))
}

// clampF restricts a float64 to [min, max].
func clampF(val, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, val))
}
