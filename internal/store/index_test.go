package store

import (
	"testing"
	"time"

	"github.com/casetrail/casetrail/internal/model"
)

func TestIndexSearchLabel(t *testing.T) {
	s := newTestStore(t)
	s.Save(testSession("sess_a", "Acme Due Diligence"))
	s.Save(testSession("sess_b", "Beta Litigation"))

	ix := NewIndex(s, false)
	if err := ix.Refresh(); err != nil {
		t.Fatalf("refresh: %v", err)
	}

	got := ix.Search("ACME")
	if len(got) != 1 || got[0].ID != "sess_a" {
		t.Errorf("expected case-insensitive label match for sess_a, got %v", got)
	}
}

func TestIndexSearchMetadata(t *testing.T) {
	s := newTestStore(t)
	sess := testSession("sess_a", "plain label")
	sess.Metadata["jurisdiction"] = "Florida"
	s.Save(sess)
	s.Save(testSession("sess_b", "other"))

	ix := NewIndex(s, false)
	ix.Refresh()

	got := ix.Search("florida")
	if len(got) != 1 || got[0].ID != "sess_a" {
		t.Errorf("expected metadata match for sess_a, got %v", got)
	}
}

func TestIndexEmptyTermMatchesAll(t *testing.T) {
	s := newTestStore(t)
	s.Save(testSession("sess_a", "a"))
	s.Save(testSession("sess_b", "b"))

	ix := NewIndex(s, false)
	ix.Refresh()

	if got := ix.Search(""); len(got) != 2 {
		t.Errorf("expected all sessions for empty term, got %d", len(got))
	}
}

func TestIndexQueryTextConfigurable(t *testing.T) {
	s := newTestStore(t)
	sess := testSession("sess_a", "plain")
	sess.History = append(sess.History, model.Interaction{
		Query: "Acme Corp NY judgments", Kind: "search", Timestamp: time.Now().UTC(),
	})
	s.Save(sess)

	off := NewIndex(s, false)
	off.Refresh()
	if got := off.Search("judgments"); len(got) != 0 {
		t.Errorf("query text should not match when disabled, got %v", got)
	}

	on := NewIndex(s, true)
	on.Refresh()
	if got := on.Search("judgments"); len(got) != 1 {
		t.Errorf("query text should match when enabled, got %v", got)
	}
}

func TestIndexOrdersByUpdatedDesc(t *testing.T) {
	s := newTestStore(t)

	older := testSession("sess_old", "case one")
	older.UpdatedAt = time.Now().UTC().Add(-time.Hour)
	s.Save(older)

	newer := testSession("sess_new", "case two")
	newer.UpdatedAt = time.Now().UTC()
	s.Save(newer)

	ix := NewIndex(s, false)
	ix.Refresh()

	got := ix.Search("case")
	if len(got) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(got))
	}
	if got[0].ID != "sess_new" || got[1].ID != "sess_old" {
		t.Errorf("expected newest first, got %v then %v", got[0].ID, got[1].ID)
	}
}

func TestIndexRefreshDropsDeleted(t *testing.T) {
	s := newTestStore(t)
	s.Save(testSession("sess_a", "a"))
	s.Save(testSession("sess_b", "b"))

	ix := NewIndex(s, false)
	ix.Refresh()

	s.Delete("sess_a")
	ix.Refresh()

	got := ix.Search("")
	if len(got) != 1 || got[0].ID != "sess_b" {
		t.Errorf("expected only sess_b after refresh, got %v", got)
	}
}

func TestIndexSummaryFields(t *testing.T) {
	s := newTestStore(t)
	sess := testSession("sess_a", "Acme")
	sess.History = append(sess.History,
		model.Interaction{Query: "q1", Kind: "search", Timestamp: time.Now().UTC()},
		model.Interaction{Query: "q2", Kind: "chat", Timestamp: time.Now().UTC()},
	)
	s.Save(sess)

	ix := NewIndex(s, false)
	ix.Refresh()

	got := ix.Search("acme")
	if len(got) != 1 {
		t.Fatalf("expected 1 match, got %d", len(got))
	}
	if got[0].Label != "Acme" || got[0].Interactions != 2 {
		t.Errorf("unexpected summary: %+v", got[0])
	}
}
