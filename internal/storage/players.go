package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// Player is a persisted player profile.
type Player struct {
	Name           string
	Coins          int
	Lives          int
	LivesUpdatedAt time.Time // last time a life was regenerated or spent
	CreatedAt      time.Time
}

// EnsurePlayer creates the player with the given starting lives if it
// does not exist yet and returns the stored profile.
func (s *Store) EnsurePlayer(name string, lives int, now time.Time) (*Player, error) {
	_, err := s.db.Exec(s.q(
		`INSERT INTO players (name, coins, lives, lives_updated_at)
		 VALUES (?, 0, ?, ?)
		 ON CONFLICT (name) DO NOTHING`),
		name, lives, now.Unix(),
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot create player: %w", err)
	}

	p, err := s.Player(name)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, fmt.Errorf("storage: player %q vanished after insert", name)
	}
	return p, nil
}

// Player loads a profile. It returns nil, nil for unknown players.
func (s *Store) Player(name string) (*Player, error) {
	var p Player
	var updated int64
	var createdAt any

	err := s.db.QueryRow(s.q(
		`SELECT name, coins, lives, lives_updated_at, created_at
		 FROM players WHERE name = ?`),
		name,
	).Scan(&p.Name, &p.Coins, &p.Lives, &updated, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query player: %w", err)
	}

	p.LivesUpdatedAt = time.Unix(updated, 0)
	p.CreatedAt = parseTime(createdAt)
	return &p, nil
}

// UpdatePlayer writes coins and lives back.
func (s *Store) UpdatePlayer(p Player) error {
	res, err := s.db.Exec(s.q(
		`UPDATE players SET coins = ?, lives = ?, lives_updated_at = ? WHERE name = ?`),
		p.Coins, p.Lives, p.LivesUpdatedAt.Unix(), p.Name,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot update player: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("storage: cannot update player %q: %w", p.Name, sql.ErrNoRows)
	}
	return nil
}

// AddCoins credits coins to a player atomically.
func (s *Store) AddCoins(name string, coins int) error {
	_, err := s.db.Exec(s.q(`UPDATE players SET coins = coins + ? WHERE name = ?`), coins, name)
	if err != nil {
		return fmt.Errorf("storage: cannot credit coins: %w", err)
	}
	return nil
}

// SaveLevelProgress records a cleared level, keeping the best score.
func (s *Store) SaveLevelProgress(player, levelID string, score int) error {
	_, err := s.db.Exec(s.q(
		`INSERT INTO level_progress (player, level_id, best_score)
		 VALUES (?, ?, ?)
		 ON CONFLICT (player, level_id) DO UPDATE SET best_score =
		   CASE WHEN excluded.best_score > level_progress.best_score
		        THEN excluded.best_score ELSE level_progress.best_score END`),
		player, levelID, score,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save level progress: %w", err)
	}
	return nil
}

// CompletedLevels returns the best score of every level a player cleared.
func (s *Store) CompletedLevels(player string) (map[string]int, error) {
	rows, err := s.db.Query(s.q(`SELECT level_id, best_score FROM level_progress WHERE player = ?`), player)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query level progress: %w", err)
	}
	defer rows.Close()

	done := make(map[string]int)
	for rows.Next() {
		var id string
		var best int
		if err := rows.Scan(&id, &best); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		done[id] = best
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return done, nil
}
