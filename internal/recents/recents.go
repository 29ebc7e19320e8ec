// Package recents implements the bounded recent-items list shared by the
// emoji, kaomoji, symbol and GIF pickers. It follows the same persistence
// contract as the history list (single JSON document, atomic writes,
// missing file means empty, malformed file recovers as empty) but has no
// blob indirection: every item is a small self-contained value record.
package recents

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"sync"

	"github.com/osamaGXDgaming/all-in-one-clipboard/internal/appfs"
)

// DefaultLimit is the fallback bound when a feature's configured maximum
// is unset or invalid.
const DefaultLimit = 45

// Item is one recent picker selection, deduplicated by Value.
type Item struct {
	Value string            `json:"value"`
	Meta  map[string]string `json:"meta,omitempty"`
}

// Store is a bounded LRU list of Items for one picker feature.
// Unlike the engine-owned clipboard lists, a recents store is called
// directly from picker code, so it locks internally.
type Store struct {
	mu        sync.Mutex
	feature   string
	path      string
	limit     int
	items     []Item
	loaded    bool
	listeners []func()
}

// New creates a store for a picker feature backed by path. A non-positive
// limit falls back to DefaultLimit.
func New(feature, path string, limit int) *Store {
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &Store{feature: feature, path: path, limit: limit}
}

// Feature returns the picker feature this store belongs to.
func (s *Store) Feature() string { return s.feature }

// Subscribe registers fn to run after every persisted change.
func (s *Store) Subscribe(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}

// Load reads the backing file. Missing means empty; malformed is logged
// and recovered as empty.
func (s *Store) Load() {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		s.items = nil
		s.loaded = true
		return
	}
	if err != nil {
		slog.Warn("failed to read recents file, saves stay suppressed", "feature", s.feature, "error", err)
		s.items = nil
		return
	}

	var items []Item
	if err := json.Unmarshal(data, &items); err != nil {
		slog.Warn("malformed recents file, starting empty", "feature", s.feature, "error", err)
		items = nil
	}
	s.items = items
	s.loaded = true
}

// Add inserts item at the front, removing any older entry with the same
// value, truncates to the bound, persists and notifies. An empty value is
// rejected with a warning and no mutation.
func (s *Store) Add(item Item) error {
	if item.Value == "" {
		slog.Warn("rejecting recents item with empty value", "feature", s.feature)
		return fmt.Errorf("recents item for %s has empty value", s.feature)
	}

	s.mu.Lock()
	for i, it := range s.items {
		if it.Value == item.Value {
			s.items = append(s.items[:i], s.items[i+1:]...)
			break
		}
	}
	s.items = append([]Item{item}, s.items...)
	if len(s.items) > s.limit {
		s.items = s.items[:s.limit]
	}
	s.save()
	s.mu.Unlock()

	s.notify()
	return nil
}

// Items returns a snapshot copy; the caller must not mutate backing state
// and a copy guarantees it cannot.
func (s *Store) Items() []Item {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Item, len(s.items))
	copy(out, s.items)
	return out
}

// SetLimit applies a new bound. Shrinking truncates, persists and
// notifies immediately. Non-positive values fall back to DefaultLimit.
func (s *Store) SetLimit(n int) {
	if n <= 0 {
		n = DefaultLimit
	}

	s.mu.Lock()
	s.limit = n
	changed := len(s.items) > n
	if changed {
		s.items = s.items[:n]
		s.save()
	}
	s.mu.Unlock()

	if changed {
		s.notify()
	}
}

// Limit returns the current bound.
func (s *Store) Limit() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.limit
}

// save persists the list; callers hold s.mu. Failures are logged and the
// in-memory list stays authoritative.
func (s *Store) save() {
	if !s.loaded {
		slog.Warn("skipping recents save before initial load", "feature", s.feature)
		return
	}
	data, err := json.MarshalIndent(s.items, "", "  ")
	if err != nil {
		slog.Error("failed to marshal recents", "feature", s.feature, "error", err)
		return
	}
	if err := appfs.WriteFileAtomic(s.path, data, 0o644); err != nil {
		slog.Warn("failed to persist recents", "feature", s.feature, "error", err)
	}
}

func (s *Store) notify() {
	s.mu.Lock()
	listeners := make([]func(), len(s.listeners))
	copy(listeners, s.listeners)
	s.mu.Unlock()

	for _, fn := range listeners {
		fn()
	}
}
