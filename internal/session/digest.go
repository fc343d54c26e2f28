package session

import (
	"fmt"
	"time"
)

// Digest summarizes one session's research activity.
type Digest struct {
	ID           string         `json:"id"`
	Label        string         `json:"label"`
	StartedAt    time.Time      `json:"started_at"`
	Duration     time.Duration  `json:"duration"`
	Interactions int            `json:"interactions"`
	KindCounts   map[string]int `json:"kind_counts,omitempty"`
	LastQueries  []string       `json:"last_queries,omitempty"`
}

// Digest builds an activity summary for a session without exposing its
// full history.
func (m *Manager) Digest(id string) (*Digest, error) {
	sess, err := m.store.Load(id)
	if err != nil {
		return nil, fmt.Errorf("digest %s: %w", id, err)
	}

	d := &Digest{
		ID:           sess.ID,
		Label:        sess.Label,
		StartedAt:    sess.CreatedAt,
		Interactions: len(sess.History),
		KindCounts:   map[string]int{},
	}

	for _, it := range sess.History {
		d.KindCounts[it.Kind]++
	}
	if n := len(sess.History); n > 0 {
		d.Duration = sess.History[n-1].Timestamp.Sub(sess.CreatedAt)
		start := n - 5
		if start < 0 {
			start = 0
		}
		for _, it := range sess.History[start:] {
			d.LastQueries = append(d.LastQueries, it.Query)
		}
	}

	return d, nil
}
