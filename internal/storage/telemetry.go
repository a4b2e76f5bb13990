package storage

import "fmt"

// SaveTelemetry stores one event payload (JSON) for a player.
func (s *Store) SaveTelemetry(player, kind string, payload []byte) (int64, error) {
	id, err := s.insert(
		"INSERT INTO telemetry (player, kind, payload) VALUES (?, ?, ?)",
		player, kind, string(payload),
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save telemetry: %w", err)
	}
	return id, nil
}

// TelemetryCounts returns the number of stored events per kind for a
// player. An empty player counts everyone.
func (s *Store) TelemetryCounts(player string) (map[string]int, error) {
	query := "SELECT kind, COUNT(*) FROM telemetry GROUP BY kind"
	var args []any
	if player != "" {
		query = "SELECT kind, COUNT(*) FROM telemetry WHERE player = ? GROUP BY kind"
		args = append(args, player)
	}

	rows, err := s.db.Query(s.q(query), args...)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query telemetry: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var kind string
		var n int
		if err := rows.Scan(&kind, &n); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		counts[kind] = n
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return counts, nil
}
