// Package archive stores full crawl and search payloads outside session
// state, keyed by the result refs that session histories carry.
package archive

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
	_ "modernc.org/sqlite"
)

// ErrNotFound is returned when no archived result exists for a ref.
var ErrNotFound = errors.New("result not found")

// Result is one archived crawl or search payload.
type Result struct {
	Ref         string    `json:"ref"`
	SessionID   string    `json:"session_id"`
	URL         string    `json:"url,omitempty"`
	Kind        string    `json:"kind"`
	ContentType string    `json:"content_type"`
	Content     string    `json:"content"`
	CreatedAt   time.Time `json:"created_at"`
}

// Archive is a SQLite-backed result payload store.
type Archive struct {
	db   *sql.DB
	path string

	mu      sync.Mutex
	entropy *rand.Rand
}

// Open opens or creates the archive database at path.
func Open(path string) (*Archive, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create archive dir: %w", err)
	}

	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(wal)")
	if err != nil {
		return nil, fmt.Errorf("open archive: %w", err)
	}

	a := &Archive{
		db:      db,
		path:    path,
		entropy: rand.New(rand.NewSource(time.Now().UnixNano())),
	}

	if err := a.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate archive: %w", err)
	}

	return a, nil
}

func (a *Archive) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS results (
		ref          TEXT PRIMARY KEY,
		session_id   TEXT NOT NULL,
		url          TEXT,
		kind         TEXT NOT NULL,
		content_type TEXT NOT NULL DEFAULT 'text/markdown',
		content      TEXT NOT NULL,
		created_at   TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_results_session ON results(session_id);
	CREATE INDEX IF NOT EXISTS idx_results_created ON results(created_at DESC);
	`
	_, err := a.db.Exec(schema)
	return err
}

func (a *Archive) newRef() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return "res_" + ulid.MustNew(ulid.Timestamp(time.Now()), a.entropy).String()
}

// Put archives a payload and returns the ref the owning session should
// record in its history.
func (a *Archive) Put(ctx context.Context, r Result) (string, error) {
	ref := a.newRef()
	contentType := r.ContentType
	if contentType == "" {
		contentType = "text/markdown"
	}

	_, err := a.db.ExecContext(ctx,
		`INSERT INTO results (ref, session_id, url, kind, content_type, content, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		ref, r.SessionID, r.URL, r.Kind, contentType, r.Content,
		time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return "", fmt.Errorf("insert result: %w", err)
	}
	return ref, nil
}

// Get returns the archived result for a ref.
func (a *Archive) Get(ctx context.Context, ref string) (*Result, error) {
	row := a.db.QueryRowContext(ctx,
		`SELECT ref, session_id, url, kind, content_type, content, created_at
		 FROM results WHERE ref = ?`, ref)

	r, err := scanResult(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get %s: %w", ref, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return r, nil
}

// ListSession returns the results archived for one session, newest first.
func (a *Archive) ListSession(ctx context.Context, sessionID string) ([]Result, error) {
	rows, err := a.db.QueryContext(ctx,
		`SELECT ref, session_id, url, kind, content_type, content, created_at
		 FROM results WHERE session_id = ? ORDER BY created_at DESC`, sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []Result
	for rows.Next() {
		r, err := scanResult(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, *r)
	}
	return results, rows.Err()
}

// DeleteSession purges every result archived for a session, so deleting a
// session leaves no orphaned payloads behind.
func (a *Archive) DeleteSession(ctx context.Context, sessionID string) error {
	_, err := a.db.ExecContext(ctx, `DELETE FROM results WHERE session_id = ?`, sessionID)
	if err != nil {
		return fmt.Errorf("purge results for %s: %w", sessionID, err)
	}
	return nil
}

// Close closes the underlying database.
func (a *Archive) Close() error {
	return a.db.Close()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanResult(row scanner) (*Result, error) {
	var r Result
	var url sql.NullString
	var created string

	err := row.Scan(&r.Ref, &r.SessionID, &url, &r.Kind, &r.ContentType, &r.Content, &created)
	if err != nil {
		return nil, err
	}
	if url.Valid {
		r.URL = url.String
	}
	r.CreatedAt, _ = time.Parse(time.RFC3339, created)
	return &r, nil
}
