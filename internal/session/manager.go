// Package session coordinates session operations over the store, index,
// and result archive. The Manager is the single entry point for callers;
// it is injected everywhere rather than held as process-wide state.
package session

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/casetrail/casetrail/internal/archive"
	"github.com/casetrail/casetrail/internal/model"
	"github.com/casetrail/casetrail/internal/store"
)

// Options configures a Manager.
type Options struct {
	// IDPrefix prefixes generated session ids. Defaults to "sess".
	IDPrefix string
	// IndexQueries makes interaction query text searchable in addition
	// to labels and metadata.
	IndexQueries bool
}

// Manager mediates create/load/update/delete/list over the store. It
// serializes read-modify-write mutations per session id so concurrent
// appends to the same session cannot lose updates; reads take no locks.
type Manager struct {
	store   store.Store
	index   *store.Index
	archive *archive.Archive // nil when no archive is configured
	prefix  string

	mu      sync.Mutex
	locks   map[string]*sync.Mutex
	entropy *rand.Rand
}

// NewManager wires a Manager over its collaborators. arc may be nil for
// callers that never touch archived results.
func NewManager(st store.Store, arc *archive.Archive, opts Options) *Manager {
	prefix := opts.IDPrefix
	if prefix == "" {
		prefix = "sess"
	}
	return &Manager{
		store:   st,
		index:   store.NewIndex(st, opts.IndexQueries),
		archive: arc,
		prefix:  prefix,
		locks:   make(map[string]*sync.Mutex),
		entropy: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// newID combines a timestamp component with a random suffix, so ids sort
// by creation time and collisions are negligible.
func (m *Manager) newID() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.prefix + "_" + ulid.MustNew(ulid.Timestamp(time.Now()), m.entropy).String()
}

func (m *Manager) lockFor(id string) *sync.Mutex {
	m.mu.Lock()
	defer m.mu.Unlock()
	l, ok := m.locks[id]
	if !ok {
		l = &sync.Mutex{}
		m.locks[id] = l
	}
	return l
}

// Create builds an empty session under a fresh id and persists it. An
// empty label gets a timestamped default.
func (m *Manager) Create(label string) (*model.Session, error) {
	label = strings.TrimSpace(label)
	now := time.Now().UTC()
	if label == "" {
		label = "Session " + now.Format("2006-01-02 15:04")
	}

	sess := &model.Session{
		ID:        m.newID(),
		Label:     label,
		CreatedAt: now,
		UpdatedAt: now,
		History:   []model.Interaction{},
		Metadata:  map[string]any{},
	}
	if err := m.store.Save(sess); err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}
	return sess, nil
}

// Load returns the full session record for id.
func (m *Manager) Load(id string) (*model.Session, error) {
	sess, err := m.store.Load(id)
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	return sess, nil
}

// Append records one research step and persists immediately, so an
// interrupted process resumes with no lost history. A zero timestamp is
// filled in with the current time.
func (m *Manager) Append(id string, it model.Interaction) (*model.Session, error) {
	if it.Timestamp.IsZero() {
		it.Timestamp = time.Now().UTC()
	}
	if err := store.ValidateInteraction(&it); err != nil {
		return nil, fmt.Errorf("append to %s: %w", id, err)
	}

	l := m.lockFor(id)
	l.Lock()
	defer l.Unlock()

	sess, err := m.store.Load(id)
	if err != nil {
		return nil, fmt.Errorf("append to %s: %w", id, err)
	}
	sess.History = append(sess.History, it)
	sess.UpdatedAt = time.Now().UTC()
	if err := m.store.Save(sess); err != nil {
		return nil, fmt.Errorf("append to %s: %w", id, err)
	}
	return sess, nil
}

// Rename changes a session's label.
func (m *Manager) Rename(id, label string) (*model.Session, error) {
	label = strings.TrimSpace(label)
	if label == "" {
		return nil, fmt.Errorf("rename %s: %w", id, &store.ValidationError{Field: "label", Reason: "must not be empty"})
	}
	return m.mutate(id, "rename", func(sess *model.Session) {
		sess.Label = label
	})
}

// SetMeta sets one metadata key on a session.
func (m *Manager) SetMeta(id, key string, value any) (*model.Session, error) {
	if strings.TrimSpace(key) == "" {
		return nil, fmt.Errorf("set meta on %s: %w", id, &store.ValidationError{Field: "metadata key", Reason: "must not be empty"})
	}
	return m.mutate(id, "set meta on", func(sess *model.Session) {
		if sess.Metadata == nil {
			sess.Metadata = map[string]any{}
		}
		sess.Metadata[key] = value
	})
}

func (m *Manager) mutate(id, op string, fn func(*model.Session)) (*model.Session, error) {
	l := m.lockFor(id)
	l.Lock()
	defer l.Unlock()

	sess, err := m.store.Load(id)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", op, id, err)
	}
	fn(sess)
	sess.UpdatedAt = time.Now().UTC()
	if err := m.store.Save(sess); err != nil {
		return nil, fmt.Errorf("%s %s: %w", op, id, err)
	}
	return sess, nil
}

// Delete removes the session record and purges its archived results.
// Deleting an unknown or already-deleted id reports not-found.
func (m *Manager) Delete(ctx context.Context, id string) error {
	l := m.lockFor(id)
	l.Lock()
	defer l.Unlock()

	if err := m.store.Delete(id); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	if m.archive != nil {
		if err := m.archive.DeleteSession(ctx, id); err != nil {
			return fmt.Errorf("delete session %s: %w", id, err)
		}
	}
	if err := m.index.Refresh(); err != nil {
		return fmt.Errorf("delete session %s: %w", id, err)
	}
	return nil
}

// List returns summaries of all sessions, most recently updated first.
func (m *Manager) List() ([]model.Summary, error) {
	if err := m.index.Refresh(); err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	return m.index.Search(""), nil
}

// Search matches term case-insensitively against session labels and
// metadata (and query text when configured), most recently updated first.
func (m *Manager) Search(term string) ([]model.Summary, error) {
	if err := m.index.Refresh(); err != nil {
		return nil, fmt.Errorf("search sessions: %w", err)
	}
	return m.index.Search(term), nil
}
