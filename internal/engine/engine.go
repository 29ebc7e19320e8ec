// Package engine orchestrates the clipboard history: it classifies and
// dedups incoming clipboard content, maintains the History and Pinned
// lists, coordinates blob lifecycle, reclaims orphaned blobs, and fires
// typed change notifications to subscribers.
//
// All list mutations are serialized behind one mutex, so no observer can
// interleave into the middle of a dedup decision; readers only ever get
// snapshot copies.
package engine

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/osamaGXDgaming/all-in-one-clipboard/internal/blob"
	"github.com/osamaGXDgaming/all-in-one-clipboard/internal/clipboard"
	"github.com/osamaGXDgaming/all-in-one-clipboard/internal/hashutil"
	"github.com/osamaGXDgaming/all-in-one-clipboard/internal/store"
)

// Event is a typed change notification delivered to subscribers.
type Event int

const (
	EventHistoryChanged Event = iota
	EventPinnedChanged
)

// Settings are the configuration values the engine consumes. They may be
// reapplied at runtime via ApplySettings.
type Settings struct {
	MaxHistory          int
	UpdateRecencyOnCopy bool
	UnpinOnPaste        bool
}

// Options wires the engine's collaborators.
type Options struct {
	History  *store.HistoryStore
	Pinned   *store.PinnedStore
	Texts    *blob.Store
	Images   *blob.Store
	Board    clipboard.Board
	Settings Settings
}

// Engine is the clipboard history engine.
type Engine struct {
	mu      sync.Mutex
	history *store.HistoryStore
	pinned  *store.PinnedStore
	texts   *blob.Store
	images  *blob.Store
	board   clipboard.Board

	paused       bool
	debounceHint int
	lastRawText  string

	updateRecency bool
	unpinOnPaste  bool

	listenerMu sync.RWMutex
	listeners  []func(Event)
}

// New creates an engine. Call Start before use.
func New(opts Options) *Engine {
	e := &Engine{
		history:       opts.History,
		pinned:        opts.Pinned,
		texts:         opts.Texts,
		images:        opts.Images,
		board:         opts.Board,
		updateRecency: opts.Settings.UpdateRecencyOnCopy,
		unpinOnPaste:  opts.Settings.UnpinOnPaste,
	}
	if opts.Settings.MaxHistory > 0 {
		e.history.SetLimit(opts.Settings.MaxHistory)
	}
	return e
}

// Load reads both lists from disk and re-applies the history bound.
// Load failures degrade to an empty list and are never fatal.
func (e *Engine) Load() {
	e.mu.Lock()
	e.history.Load()
	e.pinned.Load()
	evicted := e.pruneLocked()
	if evicted > 0 {
		e.history.Save()
	}
	e.mu.Unlock()

	if evicted > 0 {
		e.emit(EventHistoryChanged)
	}
}

// Start performs daemon startup: load both lists, then reconcile the
// blob stores against the loaded state.
func (e *Engine) Start() {
	e.Load()
	e.CollectGarbage()
}

// Subscribe registers fn to receive change events. Delivery is
// synchronous, after the corresponding mutation has been persisted.
func (e *Engine) Subscribe(fn func(Event)) {
	e.listenerMu.Lock()
	defer e.listenerMu.Unlock()
	e.listeners = append(e.listeners, fn)
}

func (e *Engine) emit(evs ...Event) {
	if len(evs) == 0 {
		return
	}
	e.listenerMu.RLock()
	listeners := make([]func(Event), len(e.listeners))
	copy(listeners, e.listeners)
	e.listenerMu.RUnlock()

	for _, ev := range evs {
		for _, fn := range listeners {
			fn(ev)
		}
	}
}

// SetPaused toggles private mode: while paused, clipboard changes are
// observed but never ingested.
func (e *Engine) SetPaused(paused bool) {
	e.mu.Lock()
	e.paused = paused
	e.mu.Unlock()
}

// BumpDebounceHint tells the engine to discard the next observed
// clipboard change. Used around programmatic writes the engine performs
// itself so it never re-ingests its own output.
func (e *Engine) BumpDebounceHint() {
	e.mu.Lock()
	e.debounceHint++
	e.mu.Unlock()
}

// ApplySettings reapplies configuration at runtime. A smaller history
// bound triggers an immediate re-prune with blob cleanup.
func (e *Engine) ApplySettings(s Settings) {
	e.mu.Lock()
	e.updateRecency = s.UpdateRecencyOnCopy
	e.unpinOnPaste = s.UnpinOnPaste
	if s.MaxHistory > 0 {
		e.history.SetLimit(s.MaxHistory)
	}
	evicted := e.pruneLocked()
	if evicted > 0 {
		e.history.Save()
	}
	e.mu.Unlock()

	if evicted > 0 {
		e.emit(EventHistoryChanged)
	}
}

// HistoryItems returns a snapshot of the history list, newest first.
func (e *Engine) HistoryItems() []store.ClipItem {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.history.Items()
}

// PinnedItems returns a snapshot of the pinned list, most recently
// pinned first.
func (e *Engine) PinnedItems() []store.ClipItem {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.pinned.Items()
}

// IngestText processes an observed text clipboard change.
func (e *Engine) IngestText(text string) {
	e.mu.Lock()
	if !e.admitLocked() {
		e.mu.Unlock()
		return
	}
	if text == "" || text == e.lastRawText {
		e.mu.Unlock()
		return
	}
	e.lastRawText = text

	hash := hashutil.SumString(text)
	evs := e.dedupOrInsertLocked(hash, func(id string, now time.Time) store.ClipItem {
		item := store.ClipItem{
			ID:        id,
			Kind:      store.KindText,
			Timestamp: now,
			Hash:      hash,
		}
		item.Preview, item.HasFullContent = BuildPreview(text)
		if item.HasFullContent {
			if err := e.texts.Put(item.OverflowFilename(), []byte(text)); err != nil {
				// Readers fall back to the preview when the body is gone.
				slog.Warn("failed to persist overflow body", "id", id, "error", err)
			}
		}
		return item
	})
	e.mu.Unlock()
	e.emit(evs...)
}

// IngestImage processes an observed image clipboard change.
func (e *Engine) IngestImage(data []byte, mime string) {
	e.mu.Lock()
	if !e.admitLocked() {
		e.mu.Unlock()
		return
	}
	if len(data) == 0 {
		e.mu.Unlock()
		return
	}
	// The image is now the last observed content, so the same text may
	// legitimately arrive again after it.
	e.lastRawText = ""

	hash := hashutil.Sum(data)
	evs := e.dedupOrInsertLocked(hash, func(id string, now time.Time) store.ClipItem {
		item := store.ClipItem{
			ID:            id,
			Kind:          store.KindImage,
			Timestamp:     now,
			Hash:          hash,
			ImageFilename: imageFilename(id, now, mime),
		}
		if err := e.images.Put(item.ImageFilename, data); err != nil {
			slog.Warn("failed to persist image blob", "id", id, "error", err)
		}
		return item
	})
	e.mu.Unlock()
	e.emit(evs...)
}

// admitLocked applies the paused and debounce-hint gates.
func (e *Engine) admitLocked() bool {
	if e.paused {
		return false
	}
	if e.debounceHint > 0 {
		e.debounceHint--
		return false
	}
	return true
}

// dedupOrInsertLocked implements the dedup decision: promote an existing
// history item, leave (or transfer) a pinned item, or build and insert a
// new one. Returns the events to emit after the lock is released.
func (e *Engine) dedupOrInsertLocked(hash string, build func(id string, now time.Time) store.ClipItem) []Event {
	if item, ok := e.history.FindByHash(hash); ok {
		e.history.MoveToFront(item.ID)
		e.history.Save()
		return []Event{EventHistoryChanged}
	}

	if item, ok := e.pinned.FindByHash(hash); ok {
		if !e.unpinOnPaste {
			// Stays pinned; deliberately no state change and no
			// notification.
			return nil
		}
		e.pinned.Remove(item.ID)
		e.history.InsertFront(item)
		e.pruneLocked()
		e.history.Save()
		e.pinned.Save()
		return []Event{EventHistoryChanged, EventPinnedChanged}
	}

	item := build(uuid.NewString(), time.Now())
	e.history.InsertFront(item)
	e.pruneLocked()
	e.history.Save()
	return []Event{EventHistoryChanged}
}

// pruneLocked evicts history entries beyond the bound and deletes their
// blobs. Returns the number of evicted items.
func (e *Engine) pruneLocked() int {
	evicted := e.history.Prune()
	for _, it := range evicted {
		e.deleteBlobs(it)
	}
	return len(evicted)
}

// deleteBlobs removes the blobs an item references. Best-effort: a blob
// already collected by GC is an expected race.
func (e *Engine) deleteBlobs(it store.ClipItem) {
	switch it.Kind {
	case store.KindText:
		if it.HasFullContent {
			e.texts.Delete(it.OverflowFilename())
		}
	case store.KindImage:
		if it.ImageFilename != "" {
			e.images.Delete(it.ImageFilename)
		}
	}
}

// Pin moves an item from History to the front of Pinned.
func (e *Engine) Pin(id string) error {
	e.mu.Lock()
	item, ok := e.history.Remove(id)
	if !ok {
		e.mu.Unlock()
		slog.Warn("pin request for item not in history", "id", id)
		return fmt.Errorf("item %s is not in history", id)
	}
	e.pinned.InsertFront(item)
	e.history.Save()
	e.pinned.Save()
	e.mu.Unlock()

	e.emit(EventHistoryChanged, EventPinnedChanged)
	return nil
}

// Unpin moves an item from Pinned back to the front of History,
// re-applying the history bound.
func (e *Engine) Unpin(id string) error {
	e.mu.Lock()
	item, ok := e.pinned.Remove(id)
	if !ok {
		e.mu.Unlock()
		slog.Warn("unpin request for item not in pinned list", "id", id)
		return fmt.Errorf("item %s is not pinned", id)
	}
	e.history.InsertFront(item)
	e.pruneLocked()
	e.history.Save()
	e.pinned.Save()
	e.mu.Unlock()

	e.emit(EventHistoryChanged, EventPinnedChanged)
	return nil
}

// Delete removes an item from whichever list holds it and deletes its
// blobs.
func (e *Engine) Delete(id string) error {
	e.mu.Lock()
	if item, ok := e.history.Remove(id); ok {
		e.deleteBlobs(item)
		e.history.Save()
		e.mu.Unlock()
		e.emit(EventHistoryChanged)
		return nil
	}
	if item, ok := e.pinned.Remove(id); ok {
		e.deleteBlobs(item)
		e.pinned.Save()
		e.mu.Unlock()
		e.emit(EventPinnedChanged)
		return nil
	}
	e.mu.Unlock()
	slog.Warn("delete request for unknown item", "id", id)
	return fmt.Errorf("unknown item %s", id)
}

// PromoteToTop applies recency promotion for an item the user just
// copied back. Pinned items move to history only when unpin-on-paste is
// enabled; history items move to front only when update-recency-on-copy
// is enabled and the item is not already first.
func (e *Engine) PromoteToTop(id string) {
	e.mu.Lock()
	if item, ok := e.pinned.Find(id); ok {
		if !e.unpinOnPaste {
			e.mu.Unlock()
			return
		}
		e.pinned.Remove(id)
		e.history.InsertFront(item)
		e.pruneLocked()
		e.history.Save()
		e.pinned.Save()
		e.mu.Unlock()
		e.emit(EventHistoryChanged, EventPinnedChanged)
		return
	}

	if _, ok := e.history.Find(id); ok {
		if !e.updateRecency {
			e.mu.Unlock()
			return
		}
		if front, ok := e.history.Front(); ok && front.ID == id {
			e.mu.Unlock()
			return
		}
		e.history.MoveToFront(id)
		e.history.Save()
		e.mu.Unlock()
		e.emit(EventHistoryChanged)
		return
	}
	e.mu.Unlock()
}

// FullContent returns the complete text of a text item, falling back to
// the stored preview when the overflow body cannot be read. Degraded
// content beats a crash, so this never returns an error.
func (e *Engine) FullContent(id string) string {
	item, ok := e.find(id)
	if !ok || item.Kind != store.KindText {
		return ""
	}
	if !item.HasFullContent {
		return item.Preview
	}

	data, err := e.texts.Get(item.OverflowFilename())
	if err != nil || data == nil {
		slog.Warn("overflow body unavailable, falling back to preview", "id", id, "error", err)
		return item.Preview
	}
	return string(data)
}

// ImageData returns the raw bytes and MIME type of an image item. A
// missing blob yields ok=false; callers show a placeholder.
func (e *Engine) ImageData(id string) ([]byte, string, bool) {
	item, found := e.find(id)
	if !found || item.Kind != store.KindImage {
		return nil, "", false
	}

	data, err := e.images.Get(item.ImageFilename)
	if err != nil || data == nil {
		slog.Warn("image blob unavailable", "id", id, "filename", item.ImageFilename, "error", err)
		return nil, "", false
	}
	return data, clipboard.MIMEForExt(filepath.Ext(item.ImageFilename)), true
}

// CopyItem writes an item's content back to the system clipboard and
// bumps the debounce hint so the resulting owner-change is not
// re-ingested. This is the "item selected" entry point for the UI layer.
func (e *Engine) CopyItem(id string) error {
	if e.board == nil {
		return fmt.Errorf("no clipboard backend configured")
	}
	item, ok := e.find(id)
	if !ok {
		return fmt.Errorf("unknown item %s", id)
	}

	switch item.Kind {
	case store.KindText:
		if err := e.board.WriteText(e.FullContent(id)); err != nil {
			return fmt.Errorf("failed to write text to clipboard: %w", err)
		}
	case store.KindImage:
		data, mime, ok := e.ImageData(id)
		if !ok {
			return fmt.Errorf("image blob for item %s is missing", id)
		}
		if err := e.board.WriteImage(data, mime); err != nil {
			return fmt.Errorf("failed to write image to clipboard: %w", err)
		}
	}
	// Only a write that actually reached the clipboard produces an
	// owner-change to suppress.
	e.BumpDebounceHint()
	return nil
}

// find looks an item up in either list.
func (e *Engine) find(id string) (store.ClipItem, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if item, ok := e.history.Find(id); ok {
		return item, true
	}
	return e.pinned.Find(id)
}

// imageFilename derives the image blob name from the item's timestamp,
// an id prefix, and the MIME-appropriate extension.
func imageFilename(id string, ts time.Time, mime string) string {
	prefix := id
	if len(prefix) > 8 {
		prefix = prefix[:8]
	}
	return fmt.Sprintf("%d-%s%s", ts.UnixMilli(), prefix, clipboard.ExtForMIME(mime))
}
