// Package economy tracks player lives, coins and career progress. It
// settles finished rounds into storage and gates career starts on an
// available life.
package economy

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/vovakirdan/flapgap/internal/config"
	"github.com/vovakirdan/flapgap/internal/games/flappy"
	"github.com/vovakirdan/flapgap/internal/storage"
)

var (
	// ErrNoLives is returned by ConsumeLife when the player must wait for
	// a life to regenerate.
	ErrNoLives = errors.New("economy: no lives left")
	// ErrUnknownPlayer is returned for players that were never created.
	ErrUnknownPlayer = errors.New("economy: unknown player")
)

const (
	// DefaultMaxLives is the life cap and the starting amount.
	DefaultMaxLives = 5
	// DefaultRegenEvery is how long one life takes to come back.
	DefaultRegenEvery = 20 * time.Minute
)

// Store is the persistence the economy needs. *storage.Store implements it.
type Store interface {
	EnsurePlayer(name string, lives int, now time.Time) (*storage.Player, error)
	Player(name string) (*storage.Player, error)
	UpdatePlayer(p storage.Player) error
	AddCoins(name string, coins int) error
	SaveScore(e storage.ScoreEntry) (int64, error)
	PlayerBest(player, mode string) (int, error)
	SaveLevelProgress(player, levelID string, score int) error
	CompletedLevels(player string) (map[string]int, error)
}

// Profile is a player's economy state after regeneration.
type Profile struct {
	Name      string
	Coins     int
	Lives     int
	MaxLives  int
	NextLife  time.Duration // zero when lives are full
	Best      map[string]int
	Completed map[string]int
}

// Economy applies life, coin and progress rules on top of a Store.
type Economy struct {
	store    Store
	levels   config.LevelSet
	now      func() time.Time
	maxLives int
	regen    time.Duration

	// Lives are read-modify-write; serialize them per process.
	mu sync.Mutex
}

// Option configures an Economy.
type Option func(*Economy)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(e *Economy) { e.now = now }
}

// WithLives sets the life cap and regeneration period.
func WithLives(limit int, regen time.Duration) Option {
	return func(e *Economy) {
		if limit > 0 {
			e.maxLives = limit
		}
		if regen > 0 {
			e.regen = regen
		}
	}
}

// New creates an economy. levels supplies career rewards.
func New(store Store, levels config.LevelSet, opts ...Option) *Economy {
	e := &Economy{
		store:    store,
		levels:   levels,
		now:      time.Now,
		maxLives: DefaultMaxLives,
		regen:    DefaultRegenEvery,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Join creates the player with full lives if needed.
func (e *Economy) Join(player string) (Profile, error) {
	if _, err := e.store.EnsurePlayer(player, e.maxLives, e.now()); err != nil {
		return Profile{}, fmt.Errorf("economy: cannot join %s: %w", player, err)
	}
	return e.Profile(player)
}

// Profile returns the player's state with regenerated lives applied.
func (e *Economy) Profile(player string) (Profile, error) {
	e.mu.Lock()
	p, err := e.load(player)
	e.mu.Unlock()
	if err != nil {
		return Profile{}, err
	}

	prof := e.profile(p)
	prof.Best = make(map[string]int)
	for _, mode := range []string{config.ModeClassic, config.ModeArcade, config.ModeCareer} {
		best, err := e.store.PlayerBest(player, mode)
		if err != nil {
			return Profile{}, fmt.Errorf("economy: cannot load best scores: %w", err)
		}
		if best > 0 {
			prof.Best[mode] = best
		}
	}
	prof.Completed, err = e.store.CompletedLevels(player)
	if err != nil {
		return Profile{}, fmt.Errorf("economy: cannot load progress: %w", err)
	}
	return prof, nil
}

// ConsumeLife spends one life before a career round. It fails with
// ErrNoLives when none is left after regeneration.
func (e *Economy) ConsumeLife(player string) (Profile, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	p, err := e.load(player)
	if err != nil {
		return Profile{}, err
	}
	if p.Lives <= 0 {
		return e.profile(p), ErrNoLives
	}

	if p.Lives >= e.maxLives {
		// The regen timer starts with the first missing life.
		p.LivesUpdatedAt = e.now()
	}
	p.Lives--
	if err := e.store.UpdatePlayer(*p); err != nil {
		return Profile{}, fmt.Errorf("economy: cannot spend life: %w", err)
	}
	return e.profile(p), nil
}

// Settle records a finished round: the score row, collected coins, and
// on a career win the level reward and progress.
func (e *Economy) Settle(player string, out flappy.Outcome) error {
	_, err := e.store.SaveScore(storage.ScoreEntry{
		Mode:    out.Mode,
		Player:  player,
		LevelID: out.LevelID,
		Score:   out.Score,
		Coins:   out.Coins,
		Won:     out.Result == flappy.Won,
		Ticks:   out.Ticks,
	})
	if err != nil {
		return fmt.Errorf("economy: cannot settle round: %w", err)
	}

	credit := out.Coins
	if out.Result == flappy.Won && out.LevelID != "" {
		if err := e.store.SaveLevelProgress(player, out.LevelID, out.Score); err != nil {
			return fmt.Errorf("economy: cannot settle round: %w", err)
		}
		if l, ok := e.levels.ByID(out.LevelID); ok {
			credit += l.Reward
		}
	}

	if credit > 0 {
		if err := e.store.AddCoins(player, credit); err != nil {
			return fmt.Errorf("economy: cannot settle round: %w", err)
		}
	}
	return nil
}

// Unlocked reports whether a level may be played: the first level always,
// later ones once the previous level is cleared.
func (e *Economy) Unlocked(player, levelID string) (bool, error) {
	if len(e.levels.Levels) == 0 {
		return false, nil
	}
	if e.levels.Levels[0].ID == levelID {
		return true, nil
	}
	done, err := e.store.CompletedLevels(player)
	if err != nil {
		return false, fmt.Errorf("economy: cannot load progress: %w", err)
	}
	for i := 1; i < len(e.levels.Levels); i++ {
		if e.levels.Levels[i].ID == levelID {
			_, ok := done[e.levels.Levels[i-1].ID]
			return ok, nil
		}
	}
	return false, nil
}

// load fetches the player and persists any regenerated lives. Caller
// holds mu.
func (e *Economy) load(player string) (*storage.Player, error) {
	p, err := e.store.Player(player)
	if err != nil {
		return nil, fmt.Errorf("economy: cannot load player: %w", err)
	}
	if p == nil {
		return nil, fmt.Errorf("%w: %s", ErrUnknownPlayer, player)
	}

	if e.regenerate(p, e.now()) {
		if err := e.store.UpdatePlayer(*p); err != nil {
			return nil, fmt.Errorf("economy: cannot regenerate lives: %w", err)
		}
	}
	return p, nil
}

// regenerate adds one life per elapsed period up to the cap. The leftover
// part of a period carries over. It reports whether p changed.
func (e *Economy) regenerate(p *storage.Player, now time.Time) bool {
	if p.Lives >= e.maxLives {
		return false
	}
	elapsed := now.Sub(p.LivesUpdatedAt)
	if elapsed < e.regen {
		return false
	}

	periods := int(elapsed / e.regen)
	if p.Lives+periods >= e.maxLives {
		p.Lives = e.maxLives
		p.LivesUpdatedAt = now
		return true
	}
	p.Lives += periods
	p.LivesUpdatedAt = p.LivesUpdatedAt.Add(time.Duration(periods) * e.regen)
	return true
}

func (e *Economy) profile(p *storage.Player) Profile {
	prof := Profile{
		Name:     p.Name,
		Coins:    p.Coins,
		Lives:    p.Lives,
		MaxLives: e.maxLives,
	}
	if p.Lives < e.maxLives {
		prof.NextLife = max(p.LivesUpdatedAt.Add(e.regen).Sub(e.now()), 0)
	}
	return prof
}
