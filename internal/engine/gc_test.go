package engine

import (
	"strings"
	"testing"
)

func TestGCDeletesOrphans(t *testing.T) {
	f := newFixture(t, Settings{})
	f.engine.IngestText(strings.Repeat("a", 300))
	f.engine.IngestImage([]byte{1, 2, 3}, "image/png")

	// Orphans left behind by a crash or bug.
	if err := f.texts.Put("dead-beef.txt", []byte("orphan")); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	if err := f.images.Put("0-orphan.png", []byte{9}); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	f.engine.CollectGarbage()

	if got := f.blobCount(t, f.texts); got != 1 {
		t.Errorf("text blobs = %d, want 1 (referenced body kept, orphan gone)", got)
	}
	if got := f.blobCount(t, f.images); got != 1 {
		t.Errorf("image blobs = %d, want 1", got)
	}

	// The referenced overflow body must still resolve.
	it := f.engine.HistoryItems()[1]
	if !it.HasFullContent {
		it = f.engine.HistoryItems()[0]
	}
	if got := f.engine.FullContent(it.ID); got != strings.Repeat("a", 300) {
		t.Error("GC deleted a referenced overflow body")
	}
}

func TestGCIdempotent(t *testing.T) {
	f := newFixture(t, Settings{})
	f.engine.IngestText(strings.Repeat("b", 300))
	if err := f.texts.Put("orphan.txt", []byte("x")); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	f.engine.CollectGarbage()
	after := f.blobCount(t, f.texts)

	f.engine.CollectGarbage()
	if got := f.blobCount(t, f.texts); got != after {
		t.Errorf("second GC pass changed blob count: %d -> %d", after, got)
	}
}

func TestGCKeepsPinnedReferences(t *testing.T) {
	f := newFixture(t, Settings{})
	f.engine.IngestImage([]byte{5, 5, 5}, "image/png")
	id := f.engine.HistoryItems()[0].ID
	if err := f.engine.Pin(id); err != nil {
		t.Fatalf("Pin failed: %v", err)
	}

	f.engine.CollectGarbage()
	if got := f.blobCount(t, f.images); got != 1 {
		t.Errorf("image blobs = %d, want 1 (pinned reference must survive GC)", got)
	}
}

func TestGCEmptyStateDeletesEverything(t *testing.T) {
	f := newFixture(t, Settings{})
	if err := f.texts.Put("a.txt", []byte("x")); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	if err := f.images.Put("b.png", []byte{1}); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	f.engine.CollectGarbage()
	if f.blobCount(t, f.texts) != 0 || f.blobCount(t, f.images) != 0 {
		t.Error("GC with no live items must delete all blobs")
	}
}
