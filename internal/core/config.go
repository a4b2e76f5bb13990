package core

import (
	"math/rand"
	"time"
)

// RuntimeConfig is what the platform layer hands to a session host.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Simulation ticks per second (default 60)
	Seed     int64 // RNG seed; 0 means derive one from the clock
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
	}
}

// RNG is the random source consumed by spawners. *rand.Rand satisfies it.
type RNG interface {
	Float64() float64
	Intn(n int) int
}

// NewRNG returns a seeded generator. A zero seed picks one from the clock.
func NewRNG(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

// FixedRNG returns the same value from every Float64 call and a matching
// index from Intn. Useful for reproducible layouts in tests.
type FixedRNG struct {
	Value float64
}

// Float64 returns the fixed value.
func (f FixedRNG) Float64() float64 {
	return f.Value
}

// Intn scales the fixed value into [0, n).
func (f FixedRNG) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	i := int(f.Value * float64(n))
	if i >= n {
		i = n - 1
	}
	return i
}
