package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadGame loads the simulation configuration.
// Search order: customPath -> ~/.flapgap/configs/game.yaml -> ./configs/game.yaml -> embedded default
func LoadGame(customPath string) (GameConfig, error) {
	var cfg GameConfig
	if err := load(customPath, "game.yaml", defaultGameYAML, &cfg); err != nil {
		return cfg, err
	}
	if cfg.Modes == nil && cfg.World.Width == 0 {
		cfg = DefaultGameConfig()
	}
	cfg.Normalize()
	return cfg, nil
}

// LoadLevels loads the career ladder with the same search order as
// LoadGame, using levels.yaml.
func LoadLevels(customPath string) (LevelSet, error) {
	var set LevelSet
	if err := load(customPath, "levels.yaml", defaultLevelsYAML, &set); err != nil {
		return set, err
	}
	if len(set.Levels) == 0 {
		set = BuiltinLevels()
	}
	if err := set.Validate(); err != nil {
		return set, fmt.Errorf("failed to validate levels: %w", err)
	}
	return set, nil
}

// load decodes the first readable source into out. Only an explicit
// custom path is allowed to fail; the fallbacks are skipped silently.
func load(customPath, filename string, embedded []byte, out any) error {
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, out); err != nil {
			return fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return nil
	}

	if path := userConfigPath(filename); path != "" {
		if data, err := os.ReadFile(path); err == nil {
			if err := yaml.Unmarshal(data, out); err == nil {
				return nil
			}
		}
	}

	if data, err := os.ReadFile(filepath.Join("configs", filename)); err == nil {
		if err := yaml.Unmarshal(data, out); err == nil {
			return nil
		}
	}

	// A broken embed leaves out zero-valued; callers fill hardcoded defaults.
	_ = yaml.Unmarshal(embedded, out)
	return nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".flapgap", "configs", filename)
}
