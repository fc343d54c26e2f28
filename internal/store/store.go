// Package store provides the session persistence interface, its
// file-backed implementation, and the derived search index.
package store

import "github.com/casetrail/casetrail/internal/model"

// Store defines the session persistence interface. It is the single unit
// of truth for session records; the index is derived from it.
type Store interface {
	// Save writes the full session record, replacing any prior version.
	// A crash mid-save must leave either the old record or the new one
	// visible, never a partial write.
	Save(sess *model.Session) error

	// Load returns the session for id, or ErrNotFound.
	Load(id string) (*model.Session, error)

	// Delete removes the record. Deleting an absent id is an error,
	// not a no-op.
	Delete(id string) error

	// ListIDs returns all known session ids in unspecified order.
	ListIDs() ([]string, error)
}
