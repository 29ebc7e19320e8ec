package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/osamaGXDgaming/all-in-one-clipboard/internal/recents"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.MaxHistory != DefaultMaxHistory {
		t.Errorf("MaxHistory = %d, want %d", cfg.MaxHistory, DefaultMaxHistory)
	}
	if !cfg.UpdateRecencyOnCopy {
		t.Error("UpdateRecencyOnCopy should default to true")
	}
	if cfg.UnpinOnPaste {
		t.Error("UnpinOnPaste should default to false")
	}
}

func TestLoadNonExistentReturnsDefaults(t *testing.T) {
	m := NewManagerWithPath(filepath.Join(t.TempDir(), "config.yaml"))

	cfg := m.Load()
	if cfg.MaxHistory != DefaultMaxHistory {
		t.Errorf("MaxHistory = %d, want %d", cfg.MaxHistory, DefaultMaxHistory)
	}
}

func TestLoadMalformedReturnsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(":\n :bad"), 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	m := NewManagerWithPath(path)
	cfg := m.Load()
	if cfg.MaxHistory != DefaultMaxHistory {
		t.Errorf("MaxHistory = %d, want %d", cfg.MaxHistory, DefaultMaxHistory)
	}
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	m := NewManagerWithPath(path)

	cfg := DefaultConfig()
	cfg.MaxHistory = 100
	cfg.UnpinOnPaste = true
	cfg.RecentsMax = map[string]int{"gifs": 30}
	if err := m.Save(cfg); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded := NewManagerWithPath(path).Load()
	if loaded.MaxHistory != 100 {
		t.Errorf("MaxHistory = %d, want 100", loaded.MaxHistory)
	}
	if !loaded.UnpinOnPaste {
		t.Error("UnpinOnPaste = false, want true")
	}
	if loaded.RecentsMax["gifs"] != 30 {
		t.Errorf("RecentsMax[gifs] = %d, want 30", loaded.RecentsMax["gifs"])
	}
}

func TestMaxHistoryClamped(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("max_history: 5000\n"), 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	cfg := NewManagerWithPath(path).Load()
	if cfg.MaxHistory != MaxMaxHistory {
		t.Errorf("MaxHistory = %d, want clamp to %d", cfg.MaxHistory, MaxMaxHistory)
	}

	if err := os.WriteFile(path, []byte("max_history: 1\n"), 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	cfg = NewManagerWithPath(path).Load()
	if cfg.MaxHistory != MinMaxHistory {
		t.Errorf("MaxHistory = %d, want clamp to %d", cfg.MaxHistory, MinMaxHistory)
	}
}

func TestRecentsLimitFallback(t *testing.T) {
	cfg := DefaultConfig()
	cfg.RecentsMax = map[string]int{"emoji": 20, "gifs": -1}

	if got := cfg.RecentsLimit("emoji"); got != 20 {
		t.Errorf("RecentsLimit(emoji) = %d, want 20", got)
	}
	if got := cfg.RecentsLimit("gifs"); got != recents.DefaultLimit {
		t.Errorf("RecentsLimit(gifs) = %d, want %d", got, recents.DefaultLimit)
	}
	if got := cfg.RecentsLimit("kaomoji"); got != recents.DefaultLimit {
		t.Errorf("RecentsLimit(kaomoji) = %d, want %d", got, recents.DefaultLimit)
	}
}

func TestUpdateAndGet(t *testing.T) {
	m := NewManagerWithPath(filepath.Join(t.TempDir(), "config.yaml"))

	if err := m.Update("max-history", "75"); err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	got, err := m.Get("max-history")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got != "75" {
		t.Errorf("max-history = %s, want 75", got)
	}

	if err := m.Update("unpin-on-paste", "maybe"); err == nil {
		t.Error("expected error for invalid boolean value")
	}
	if err := m.Update("nope", "1"); err == nil {
		t.Error("expected error for unknown key")
	}
	if _, err := m.Get("nope"); err == nil {
		t.Error("expected error for unknown key")
	}
}

func TestUpdatePublishesToSubscribers(t *testing.T) {
	m := NewManagerWithPath(filepath.Join(t.TempDir(), "config.yaml"))

	var seen []int
	m.Subscribe(func(c Config) { seen = append(seen, c.MaxHistory) })

	if err := m.Update("max-history", "60"); err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if len(seen) != 1 || seen[0] != 60 {
		t.Errorf("seen = %v, want [60]", seen)
	}
}

func TestList(t *testing.T) {
	m := NewManagerWithPath(filepath.Join(t.TempDir(), "config.yaml"))

	got := m.List()
	if got["max-history"] != "50" {
		t.Errorf("max-history = %s, want 50", got["max-history"])
	}
	if got["update-recency-on-copy"] != "true" {
		t.Errorf("update-recency-on-copy = %s, want true", got["update-recency-on-copy"])
	}
	if got["unpin-on-paste"] != "false" {
		t.Errorf("unpin-on-paste = %s, want false", got["unpin-on-paste"])
	}
}
