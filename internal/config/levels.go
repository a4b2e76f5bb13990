package config

import "fmt"

// Level is one career stage. Zero Speed/Gap/SpawnInterval inherit the
// career defaults. A level is immutable once a round starts with it.
type Level struct {
	ID            string  `yaml:"id"`
	Name          string  `yaml:"name"`
	Target        int     `yaml:"target"`
	Speed         float64 `yaml:"speed"`
	Gap           float64 `yaml:"gap"`
	SpawnInterval int     `yaml:"spawn_interval"`
	Reward        int     `yaml:"reward"` // coins credited on completion
}

// Validate reports whether the level can be played.
func (l Level) Validate() error {
	if l.ID == "" {
		return fmt.Errorf("%w: missing id", ErrInvalidLevel)
	}
	if l.Target <= 0 {
		return fmt.Errorf("%w: level %s has target %d", ErrInvalidLevel, l.ID, l.Target)
	}
	return nil
}

// LevelSet is the ordered career ladder.
type LevelSet struct {
	Levels []Level `yaml:"levels"`
}

// ByID returns a copy of the level with the given id.
func (s LevelSet) ByID(id string) (*Level, bool) {
	for i := range s.Levels {
		if s.Levels[i].ID == id {
			l := s.Levels[i]
			return &l, true
		}
	}
	return nil, false
}

// Next returns the level after id, or false if id is last or unknown.
func (s LevelSet) Next(id string) (*Level, bool) {
	for i := range s.Levels {
		if s.Levels[i].ID == id && i+1 < len(s.Levels) {
			l := s.Levels[i+1]
			return &l, true
		}
	}
	return nil, false
}

// Validate checks every level and rejects duplicate ids.
func (s LevelSet) Validate() error {
	seen := make(map[string]bool, len(s.Levels))
	for _, l := range s.Levels {
		if err := l.Validate(); err != nil {
			return err
		}
		if seen[l.ID] {
			return fmt.Errorf("%w: duplicate id %s", ErrInvalidLevel, l.ID)
		}
		seen[l.ID] = true
	}
	return nil
}

// BuiltinLevels returns the career ladder shipped with the binary.
func BuiltinLevels() LevelSet {
	return LevelSet{Levels: []Level{
		{ID: "1", Name: "First Flight", Target: 5, Speed: 2.5, Gap: 170, SpawnInterval: 100, Reward: 10},
		{ID: "2", Name: "Updraft", Target: 8, Speed: 2.7, Gap: 165, SpawnInterval: 95, Reward: 15},
		{ID: "3", Name: "Narrows", Target: 10, Speed: 3.0, Gap: 150, SpawnInterval: 90, Reward: 20},
		{ID: "4", Name: "Crosswind", Target: 15, Speed: 3.2, Gap: 145, SpawnInterval: 85, Reward: 25},
		{ID: "5", Name: "Canyon Run", Target: 20, Speed: 3.5, Gap: 140, SpawnInterval: 80, Reward: 35},
		{ID: "6", Name: "Needle", Target: 25, Speed: 3.8, Gap: 130, SpawnInterval: 75, Reward: 50},
		{ID: "7", Name: "Storm Front", Target: 30, Speed: 4.0, Gap: 125, SpawnInterval: 72, Reward: 70},
		{ID: "8", Name: "Last Light", Target: 40, Speed: 4.5, Gap: 120, SpawnInterval: 70, Reward: 100},
	}}
}
