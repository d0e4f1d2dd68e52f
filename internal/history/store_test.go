package history

import (
	"path/filepath"
	"testing"

	"github.com/JIGGAI/ClawKitchen/internal/config"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	dir := t.TempDir()
	s, err := New(config.HistoryConfig{Path: filepath.Join(dir, "test.db")})
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestAppendAndRecent(t *testing.T) {
	s := newTestStore(t)

	first := &Entry{Kind: KindScaffold, Subject: "my-team", Args: `["recipes","scaffold-team","my-team"]`, OK: true}
	if err := s.Append(first); err != nil {
		t.Fatalf("append: %v", err)
	}
	if first.ID == "" {
		t.Error("expected generated id")
	}

	second := &Entry{Kind: KindPromotion, Subject: "ship-it", OK: false, ExitCode: 1, DurationMs: 120}
	if err := s.Append(second); err != nil {
		t.Fatalf("append: %v", err)
	}

	got, err := s.Recent(10)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(got))
	}
	subjects := map[string]bool{got[0].Subject: true, got[1].Subject: true}
	if !subjects["my-team"] || !subjects["ship-it"] {
		t.Errorf("unexpected subjects: %+v", got)
	}
	for _, e := range got {
		if e.CreatedAt.IsZero() {
			t.Errorf("entry %s missing created_at", e.ID)
		}
	}
}

func TestRecentLimit(t *testing.T) {
	s := newTestStore(t)
	for i := 0; i < 5; i++ {
		if err := s.Append(&Entry{Kind: KindScaffold, Subject: "r", OK: true}); err != nil {
			t.Fatalf("append %d: %v", i, err)
		}
	}
	got, err := s.Recent(3)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(got) != 3 {
		t.Errorf("expected 3 entries, got %d", len(got))
	}
}
