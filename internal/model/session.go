// Package model defines the core session data types.
package model

import "time"

// Session is a named unit of research continuity. History is append-only,
// ordered oldest first; it is never reordered or mutated in place.
type Session struct {
	ID        string         `json:"id"`
	Label     string         `json:"label"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	History   []Interaction  `json:"history"`
	Metadata  map[string]any `json:"metadata,omitempty"`
}

// Interaction is one recorded research step. ResultRef points at a
// separately archived payload instead of embedding it, so session records
// stay small.
type Interaction struct {
	Query     string    `json:"query"`
	ResultRef string    `json:"result_ref,omitempty"`
	Timestamp time.Time `json:"timestamp"`
	Kind      string    `json:"kind"`
}

// Summary is the lightweight listing view of a session, cheap enough to
// produce without loading full histories.
type Summary struct {
	ID           string    `json:"id"`
	Label        string    `json:"label"`
	UpdatedAt    time.Time `json:"updated_at"`
	Interactions int       `json:"interactions"`
}

// ValidKinds are the allowed interaction kinds.
var ValidKinds = map[string]bool{
	"crawl":  true,
	"search": true,
	"chat":   true,
}
