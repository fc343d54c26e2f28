package archive

import (
	"context"
	"os"
)

// Stats holds archive database statistics.
type Stats struct {
	DBPath       string         `json:"db_path"`
	DBSizeBytes  int64          `json:"db_size_bytes"`
	TotalResults int            `json:"total_results"`
	Sessions     []SessionStats `json:"sessions"`
}

// SessionStats holds per-session result counts.
type SessionStats struct {
	SessionID string `json:"session_id"`
	Count     int    `json:"count"`
	Bytes     int64  `json:"bytes"`
}

// Stats returns archive statistics.
func (a *Archive) Stats(ctx context.Context) (*Stats, error) {
	st := &Stats{DBPath: a.path}

	if info, err := os.Stat(a.path); err == nil {
		st.DBSizeBytes = info.Size()
	}

	a.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM results`).Scan(&st.TotalResults)

	rows, err := a.db.QueryContext(ctx, `
		SELECT session_id, COUNT(*) AS cnt, SUM(LENGTH(content)) AS bytes
		FROM results GROUP BY session_id ORDER BY cnt DESC`)
	if err != nil {
		return st, err
	}
	defer rows.Close()

	for rows.Next() {
		var ss SessionStats
		rows.Scan(&ss.SessionID, &ss.Count, &ss.Bytes)
		st.Sessions = append(st.Sessions, ss)
	}

	return st, rows.Err()
}
