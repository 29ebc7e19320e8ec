package store

import (
	"encoding/json"
	"errors"
	"io/fs"
	"log/slog"
	"os"

	"github.com/osamaGXDgaming/all-in-one-clipboard/internal/appfs"
)

// list is the shared core of HistoryStore and PinnedStore: an in-memory
// ordered slice of items mirrored to one JSON document with atomic writes.
//
// A list is owned by the engine, which serializes all access; the list
// itself performs no locking.
type list struct {
	path  string
	items []ClipItem

	// loaded guards against clobbering a pre-existing file with an empty
	// list if a save fires before the initial load has completed.
	loaded bool
}

// Load reads the backing file. A missing file means an empty list; a
// malformed file is logged and recovered as empty — lost history is
// recoverable, a crash is not. Only an unexpected read failure leaves
// saves suppressed.
func (l *list) Load() {
	data, err := os.ReadFile(l.path)
	if errors.Is(err, fs.ErrNotExist) {
		l.items = nil
		l.loaded = true
		return
	}
	if err != nil {
		slog.Warn("failed to read list file, saves stay suppressed", "path", l.path, "error", err)
		l.items = nil
		return
	}

	var items []ClipItem
	if err := json.Unmarshal(data, &items); err != nil {
		slog.Warn("malformed list file, starting empty", "path", l.path, "error", err)
		items = nil
	}
	l.items = items
	l.loaded = true
}

// Save serializes the list and writes it atomically. Failures are logged
// and swallowed; the in-memory list stays authoritative and the next
// mutation retries.
func (l *list) Save() {
	if !l.loaded {
		slog.Warn("skipping save before initial load", "path", l.path)
		return
	}

	data, err := json.MarshalIndent(l.items, "", "  ")
	if err != nil {
		slog.Error("failed to marshal list", "path", l.path, "error", err)
		return
	}
	if err := appfs.WriteFileAtomic(l.path, data, 0o644); err != nil {
		slog.Warn("failed to persist list", "path", l.path, "error", err)
	}
}

// InsertFront places item at the head of the list.
func (l *list) InsertFront(item ClipItem) {
	l.items = append([]ClipItem{item}, l.items...)
}

// Remove deletes the item with the given id and returns it.
func (l *list) Remove(id string) (ClipItem, bool) {
	for i, it := range l.items {
		if it.ID == id {
			l.items = append(l.items[:i], l.items[i+1:]...)
			return it, true
		}
	}
	return ClipItem{}, false
}

// MoveToFront promotes the item with the given id to the head.
func (l *list) MoveToFront(id string) bool {
	for i, it := range l.items {
		if it.ID == id {
			if i > 0 {
				l.items = append(l.items[:i], l.items[i+1:]...)
				l.items = append([]ClipItem{it}, l.items...)
			}
			return true
		}
	}
	return false
}

// FindByHash returns the item with the given content hash.
func (l *list) FindByHash(hash string) (ClipItem, bool) {
	for _, it := range l.items {
		if it.Hash == hash {
			return it, true
		}
	}
	return ClipItem{}, false
}

// Front returns the head item, if any.
func (l *list) Front() (ClipItem, bool) {
	if len(l.items) == 0 {
		return ClipItem{}, false
	}
	return l.items[0], true
}

// Find returns the item with the given id.
func (l *list) Find(id string) (ClipItem, bool) {
	for _, it := range l.items {
		if it.ID == id {
			return it, true
		}
	}
	return ClipItem{}, false
}

// Items returns a snapshot copy, safe for the caller to iterate while the
// engine keeps mutating the list.
func (l *list) Items() []ClipItem {
	out := make([]ClipItem, len(l.items))
	copy(out, l.items)
	return out
}

// Len returns the number of items.
func (l *list) Len() int { return len(l.items) }

// Loaded reports whether the initial load has completed.
func (l *list) Loaded() bool { return l.loaded }

// HistoryStore is the bounded most-recent-first list.
type HistoryStore struct {
	list
	limit int
}

// NewHistoryStore creates a history store backed by path with the given
// size bound.
func NewHistoryStore(path string, limit int) *HistoryStore {
	return &HistoryStore{list: list{path: path}, limit: limit}
}

// SetLimit changes the size bound. The caller is expected to Prune
// immediately afterwards so the bound holds again.
func (s *HistoryStore) SetLimit(n int) {
	if n > 0 {
		s.limit = n
	}
}

// Limit returns the current size bound.
func (s *HistoryStore) Limit() int { return s.limit }

// Prune pops oldest entries until the list fits the bound and returns
// them, oldest last, so the caller can delete their associated blobs.
func (s *HistoryStore) Prune() []ClipItem {
	var evicted []ClipItem
	for len(s.items) > s.limit {
		last := s.items[len(s.items)-1]
		s.items = s.items[:len(s.items)-1]
		evicted = append(evicted, last)
	}
	return evicted
}

// PinnedStore is the unbounded most-recently-pinned-first list. Pinned
// items are never implicitly evicted.
type PinnedStore struct {
	list
}

// NewPinnedStore creates a pinned store backed by path.
func NewPinnedStore(path string) *PinnedStore {
	return &PinnedStore{list: list{path: path}}
}
