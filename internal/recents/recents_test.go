package recents

import (
	"os"
	"path/filepath"
	"testing"
)

func newTestStore(t *testing.T, limit int) *Store {
	t.Helper()
	s := New("emoji", filepath.Join(t.TempDir(), "emoji.json"), limit)
	s.Load()
	return s
}

func TestAddDedupsByValue(t *testing.T) {
	s := newTestStore(t, 10)

	s.Add(Item{Value: "😀"})
	s.Add(Item{Value: "🎉"})
	s.Add(Item{Value: "😀"})

	items := s.Items()
	if len(items) != 2 {
		t.Fatalf("len = %d, want 2", len(items))
	}
	if items[0].Value != "😀" || items[1].Value != "🎉" {
		t.Errorf("order = [%s %s], want [😀 🎉]", items[0].Value, items[1].Value)
	}
}

func TestAddTruncatesToLimit(t *testing.T) {
	s := newTestStore(t, 3)

	for _, v := range []string{"a", "b", "c", "d"} {
		s.Add(Item{Value: v})
	}

	items := s.Items()
	if len(items) != 3 {
		t.Fatalf("len = %d, want 3", len(items))
	}
	if items[0].Value != "d" || items[2].Value != "b" {
		t.Errorf("order = %v, want [d c b]", items)
	}
}

func TestAddEmptyValueRejected(t *testing.T) {
	s := newTestStore(t, 10)

	if err := s.Add(Item{Value: ""}); err == nil {
		t.Fatal("expected error for empty value")
	}
	if len(s.Items()) != 0 {
		t.Error("rejected item must not mutate the list")
	}
}

func TestInvalidLimitFallsBackToDefault(t *testing.T) {
	s := New("gifs", filepath.Join(t.TempDir(), "gifs.json"), 0)
	if s.Limit() != DefaultLimit {
		t.Errorf("Limit = %d, want %d", s.Limit(), DefaultLimit)
	}

	s.SetLimit(-5)
	if s.Limit() != DefaultLimit {
		t.Errorf("Limit after SetLimit(-5) = %d, want %d", s.Limit(), DefaultLimit)
	}
}

func TestSetLimitRetruncatesAndPersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kaomoji.json")
	s := New("kaomoji", path, 10)
	s.Load()

	for _, v := range []string{"a", "b", "c", "d"} {
		s.Add(Item{Value: v})
	}

	s.SetLimit(2)
	if len(s.Items()) != 2 {
		t.Fatalf("len = %d, want 2", len(s.Items()))
	}

	// The truncation must already be on disk
	reloaded := New("kaomoji", path, 10)
	reloaded.Load()
	if len(reloaded.Items()) != 2 {
		t.Errorf("reloaded len = %d, want 2", len(reloaded.Items()))
	}
}

func TestRoundTripPreservesMeta(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gifs.json")
	s := New("gifs", path, 10)
	s.Load()
	s.Add(Item{Value: "https://example.com/cat.gif", Meta: map[string]string{"preview": "cat-123.gif"}})

	reloaded := New("gifs", path, 10)
	reloaded.Load()

	items := reloaded.Items()
	if len(items) != 1 {
		t.Fatalf("len = %d, want 1", len(items))
	}
	if items[0].Meta["preview"] != "cat-123.gif" {
		t.Errorf("Meta = %v, want preview entry", items[0].Meta)
	}
}

func TestMalformedFileStartsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "emoji.json")
	if err := os.WriteFile(path, []byte("[[["), 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	s := New("emoji", path, 10)
	s.Load()
	if len(s.Items()) != 0 {
		t.Errorf("len = %d, want 0", len(s.Items()))
	}

	// And the store must still accept new items afterwards
	if err := s.Add(Item{Value: "x"}); err != nil {
		t.Fatalf("Add after malformed load failed: %v", err)
	}
}

func TestSubscribeNotifiedOnAdd(t *testing.T) {
	s := newTestStore(t, 10)

	calls := 0
	s.Subscribe(func() { calls++ })

	s.Add(Item{Value: "a"})
	if calls != 1 {
		t.Errorf("listener calls = %d, want 1", calls)
	}
}
