package store

import (
	"encoding/json"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/casetrail/casetrail/internal/model"
)

// entry is the indexed view of one session.
type entry struct {
	id        string
	label     string
	text      string // lowercased label + serialized metadata (+ query text)
	updatedAt time.Time
	count     int
}

// Index is a derived, rebuildable lookup over session labels and metadata.
// It holds no authoritative state: Refresh reconstructs it from the store,
// and callers refresh before searching so results reflect current state.
type Index struct {
	store        Store
	indexQueries bool

	mu      sync.RWMutex
	entries []entry
}

// NewIndex builds an empty index over the store. indexQueries controls
// whether interaction query text is searchable in addition to labels and
// metadata.
func NewIndex(s Store, indexQueries bool) *Index {
	return &Index{store: s, indexQueries: indexQueries}
}

// Refresh rebuilds the index from the store's current contents.
func (ix *Index) Refresh() error {
	ids, err := ix.store.ListIDs()
	if err != nil {
		return err
	}

	entries := make([]entry, 0, len(ids))
	for _, id := range ids {
		sess, err := ix.store.Load(id)
		if err != nil {
			return err
		}

		var sb strings.Builder
		sb.WriteString(strings.ToLower(sess.Label))
		if len(sess.Metadata) > 0 {
			b, _ := json.Marshal(sess.Metadata)
			sb.WriteByte('\n')
			sb.WriteString(strings.ToLower(string(b)))
		}
		if ix.indexQueries {
			for _, it := range sess.History {
				sb.WriteByte('\n')
				sb.WriteString(strings.ToLower(it.Query))
			}
		}

		entries = append(entries, entry{
			id:        sess.ID,
			label:     sess.Label,
			text:      sb.String(),
			updatedAt: sess.UpdatedAt,
			count:     len(sess.History),
		})
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].updatedAt.After(entries[j].updatedAt)
	})

	ix.mu.Lock()
	ix.entries = entries
	ix.mu.Unlock()
	return nil
}

// Search returns summaries of sessions whose label or serialized metadata
// contains term, case-insensitively, most recently updated first. An empty
// term matches every session.
func (ix *Index) Search(term string) []model.Summary {
	term = strings.ToLower(term)

	ix.mu.RLock()
	defer ix.mu.RUnlock()

	matches := make([]model.Summary, 0, len(ix.entries))
	for _, e := range ix.entries {
		if term != "" && !strings.Contains(e.text, term) {
			continue
		}
		matches = append(matches, model.Summary{
			ID:           e.id,
			Label:        e.label,
			UpdatedAt:    e.updatedAt,
			Interactions: e.count,
		})
	}
	return matches
}
