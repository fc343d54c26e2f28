package archive

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
)

func newTestArchive(t *testing.T) *Archive {
	t.Helper()
	a, err := Open(filepath.Join(t.TempDir(), "archive.db"))
	if err != nil {
		t.Fatalf("open archive: %v", err)
	}
	t.Cleanup(func() { a.Close() })
	return a
}

func TestPutAndGet(t *testing.T) {
	ctx := context.Background()
	a := newTestArchive(t)

	ref, err := a.Put(ctx, Result{
		SessionID: "sess_01",
		URL:       "https://example.com/filing",
		Kind:      "crawl",
		Content:   "# Filing\n\nAcme Corp, registered 2019.",
	})
	if err != nil {
		t.Fatalf("put: %v", err)
	}
	if ref == "" {
		t.Fatal("expected non-empty ref")
	}

	got, err := a.Get(ctx, ref)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.SessionID != "sess_01" || got.URL != "https://example.com/filing" {
		t.Errorf("unexpected result: %+v", got)
	}
	if got.ContentType != "text/markdown" {
		t.Errorf("expected default content type, got %q", got.ContentType)
	}
	if got.CreatedAt.IsZero() {
		t.Error("expected created_at set")
	}
}

func TestGetNotFound(t *testing.T) {
	a := newTestArchive(t)

	_, err := a.Get(context.Background(), "res_missing")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestRefsUnique(t *testing.T) {
	ctx := context.Background()
	a := newTestArchive(t)

	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		ref, err := a.Put(ctx, Result{SessionID: "s", Kind: "search", Content: "x"})
		if err != nil {
			t.Fatalf("put: %v", err)
		}
		if seen[ref] {
			t.Fatalf("duplicate ref %s", ref)
		}
		seen[ref] = true
	}
}

func TestDeleteSessionPurges(t *testing.T) {
	ctx := context.Background()
	a := newTestArchive(t)

	ref1, _ := a.Put(ctx, Result{SessionID: "sess_a", Kind: "crawl", Content: "one"})
	ref2, _ := a.Put(ctx, Result{SessionID: "sess_a", Kind: "search", Content: "two"})
	keep, _ := a.Put(ctx, Result{SessionID: "sess_b", Kind: "crawl", Content: "three"})

	if err := a.DeleteSession(ctx, "sess_a"); err != nil {
		t.Fatalf("delete session: %v", err)
	}

	for _, ref := range []string{ref1, ref2} {
		if _, err := a.Get(ctx, ref); !errors.Is(err, ErrNotFound) {
			t.Errorf("expected %s purged, got %v", ref, err)
		}
	}
	if _, err := a.Get(ctx, keep); err != nil {
		t.Errorf("other session's result must survive, got %v", err)
	}
}

func TestListSession(t *testing.T) {
	ctx := context.Background()
	a := newTestArchive(t)

	a.Put(ctx, Result{SessionID: "sess_a", Kind: "crawl", Content: "one"})
	a.Put(ctx, Result{SessionID: "sess_a", Kind: "search", Content: "two"})
	a.Put(ctx, Result{SessionID: "sess_b", Kind: "crawl", Content: "other"})

	results, err := a.ListSession(ctx, "sess_a")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(results) != 2 {
		t.Errorf("expected 2 results, got %d", len(results))
	}
}

func TestStats(t *testing.T) {
	ctx := context.Background()
	a := newTestArchive(t)

	a.Put(ctx, Result{SessionID: "sess_a", Kind: "crawl", Content: "abcdef"})
	a.Put(ctx, Result{SessionID: "sess_a", Kind: "search", Content: "ghij"})

	st, err := a.Stats(ctx)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if st.TotalResults != 2 {
		t.Errorf("expected 2 results, got %d", st.TotalResults)
	}
	if len(st.Sessions) != 1 || st.Sessions[0].Count != 2 {
		t.Errorf("unexpected per-session stats: %+v", st.Sessions)
	}
}
