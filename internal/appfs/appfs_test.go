package appfs

import (
	"os"
	"path/filepath"
	"testing"
)

func TestResolveWithOverrides(t *testing.T) {
	tempDir := t.TempDir()
	cache := filepath.Join(tempDir, "cache")
	data := filepath.Join(tempDir, "data")

	dirs, err := Resolve(cache, data)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}

	if dirs.Cache != cache {
		t.Errorf("Cache = %s, want %s", dirs.Cache, cache)
	}
	if dirs.Data != data {
		t.Errorf("Data = %s, want %s", dirs.Data, data)
	}

	// All state directories must exist after Resolve
	for _, dir := range []string{dirs.TextsDir(), dirs.ImagesDir(), dirs.GIFPreviewDir(), dirs.RecentsDir()} {
		info, err := os.Stat(dir)
		if err != nil {
			t.Fatalf("expected directory %s to exist: %v", dir, err)
		}
		if !info.IsDir() {
			t.Errorf("%s is not a directory", dir)
		}
	}
}

func TestDirsClassSplit(t *testing.T) {
	dirs := Dirs{Cache: "/c", Data: "/d"}

	if got := dirs.HistoryFile(); got != filepath.Join("/c", "history.json") {
		t.Errorf("HistoryFile = %s, want cache-class path", got)
	}
	if got := dirs.PinnedFile(); got != filepath.Join("/d", "pinned.json") {
		t.Errorf("PinnedFile = %s, want data-class path", got)
	}
	if got := dirs.GIFPreviewDir(); got != filepath.Join("/c", "gif-previews") {
		t.Errorf("GIFPreviewDir = %s, want cache-class path", got)
	}
	if got := dirs.RecentsFile("emoji"); got != filepath.Join("/d", "recents", "emoji.json") {
		t.Errorf("RecentsFile = %s, want data-class path", got)
	}
}

func TestWriteFileAtomic(t *testing.T) {
	tempDir := t.TempDir()
	path := filepath.Join(tempDir, "sub", "out.json")

	if err := WriteFileAtomic(path, []byte("first"), 0o644); err != nil {
		t.Fatalf("WriteFileAtomic failed: %v", err)
	}
	if err := WriteFileAtomic(path, []byte("second"), 0o644); err != nil {
		t.Fatalf("WriteFileAtomic overwrite failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if string(data) != "second" {
		t.Errorf("content = %q, want %q", string(data), "second")
	}

	// No temp files may be left behind
	entries, err := os.ReadDir(filepath.Dir(path))
	if err != nil {
		t.Fatalf("ReadDir failed: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("expected 1 file in directory, got %d", len(entries))
	}
}
