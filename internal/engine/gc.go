package engine

import (
	"log/slog"

	"github.com/osamaGXDgaming/all-in-one-clipboard/internal/blob"
	"github.com/osamaGXDgaming/all-in-one-clipboard/internal/store"
)

// CollectGarbage reconciles both blob stores against the union of the
// History and Pinned lists: every blob not referenced by a live item is
// deleted. Runs once after startup load; idempotent and safe to run
// concurrently with ingestion because both sides tolerate a file that is
// already gone.
func (e *Engine) CollectGarbage() {
	e.mu.Lock()
	textRefs := make(map[string]struct{})
	imageRefs := make(map[string]struct{})
	for _, items := range [][]store.ClipItem{e.history.Items(), e.pinned.Items()} {
		for _, it := range items {
			switch it.Kind {
			case store.KindText:
				if it.HasFullContent {
					textRefs[it.OverflowFilename()] = struct{}{}
				}
			case store.KindImage:
				if it.ImageFilename != "" {
					imageRefs[it.ImageFilename] = struct{}{}
				}
			}
		}
	}
	e.mu.Unlock()

	deleted := sweep(e.texts, textRefs) + sweep(e.images, imageRefs)
	if deleted > 0 {
		slog.Info("garbage collection removed orphaned blobs", "count", deleted)
	}
}

// sweep deletes every blob in s whose name is not in refs.
func sweep(s *blob.Store, refs map[string]struct{}) int {
	names, err := s.List()
	if err != nil {
		slog.Warn("garbage collection could not list blobs", "dir", s.Dir(), "error", err)
		return 0
	}

	deleted := 0
	for _, name := range names {
		if _, ok := refs[name]; ok {
			continue
		}
		s.Delete(name)
		deleted++
	}
	return deleted
}
