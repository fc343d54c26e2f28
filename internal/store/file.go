package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/casetrail/casetrail/internal/model"
)

// FileStore keeps each session as <id>.json inside a sessions directory.
// Saves go through a temp file in the same directory followed by a rename,
// so an interrupted write leaves the previous record intact.
type FileStore struct {
	dir string
}

// NewFileStore opens or creates the sessions directory.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, &StorageError{Op: "create sessions dir", Err: err}
	}
	return &FileStore{dir: dir}, nil
}

func (s *FileStore) path(id string) string {
	return filepath.Join(s.dir, id+".json")
}

// Save writes the full session record, replacing any prior version.
func (s *FileStore) Save(sess *model.Session) error {
	if err := validateSession(sess); err != nil {
		return err
	}

	b, err := json.MarshalIndent(sess, "", "  ")
	if err != nil {
		return &StorageError{Op: "encode", ID: sess.ID, Err: err}
	}

	tmp, err := os.CreateTemp(s.dir, "."+sess.ID+"-*.tmp")
	if err != nil {
		return &StorageError{Op: "save", ID: sess.ID, Err: err}
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(b); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return &StorageError{Op: "save", ID: sess.ID, Err: err}
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return &StorageError{Op: "save", ID: sess.ID, Err: err}
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return &StorageError{Op: "save", ID: sess.ID, Err: err}
	}
	if err := os.Rename(tmpName, s.path(sess.ID)); err != nil {
		os.Remove(tmpName)
		return &StorageError{Op: "save", ID: sess.ID, Err: err}
	}
	return nil
}

// Load returns the session for id, or ErrNotFound.
func (s *FileStore) Load(id string) (*model.Session, error) {
	b, err := os.ReadFile(s.path(id))
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, &StorageError{Op: "load", ID: id, Err: err}
	}

	var sess model.Session
	if err := json.Unmarshal(b, &sess); err != nil {
		return nil, &StorageError{Op: "load", ID: id, Err: fmt.Errorf("corrupt record: %w", err)}
	}
	if err := validateSession(&sess); err != nil {
		return nil, err
	}
	return &sess, nil
}

// Delete removes the record. A second delete on the same id is an error.
func (s *FileStore) Delete(id string) error {
	err := os.Remove(s.path(id))
	if errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("delete %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return &StorageError{Op: "delete", ID: id, Err: err}
	}
	return nil
}

// ListIDs returns all known session ids in unspecified order. Temp files
// from in-flight saves and foreign files are skipped.
func (s *FileStore) ListIDs() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, &StorageError{Op: "list", Err: err}
	}

	var ids []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || strings.HasPrefix(name, ".") || !strings.HasSuffix(name, ".json") {
			continue
		}
		ids = append(ids, strings.TrimSuffix(name, ".json"))
	}
	return ids, nil
}

func validateSession(sess *model.Session) error {
	if sess.ID == "" {
		return &ValidationError{Field: "id", Reason: "must not be empty"}
	}
	if sess.CreatedAt.IsZero() {
		return &ValidationError{Field: "created_at", Reason: "must be set"}
	}
	for i := range sess.History {
		if err := ValidateInteraction(&sess.History[i]); err != nil {
			return err
		}
	}
	return nil
}

// ValidateInteraction rejects records missing query text or carrying an
// unknown kind.
func ValidateInteraction(it *model.Interaction) error {
	if strings.TrimSpace(it.Query) == "" {
		return &ValidationError{Field: "query", Reason: "must not be empty"}
	}
	if !model.ValidKinds[it.Kind] {
		return &ValidationError{Field: "kind", Reason: fmt.Sprintf("unknown kind %q (use crawl, search, or chat)", it.Kind)}
	}
	return nil
}
