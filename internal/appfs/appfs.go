// Package appfs resolves the on-disk layout for clipboard state and provides
// the atomic file-write primitive every store in this module relies on.
//
// State is split across two roots with different durability expectations:
// the cache root holds regenerable data (the history list, GIF preview
// blobs), while the data root holds durable data (the pinned list, text
// overflow bodies, image blobs) that must survive cache-clearing tools.
package appfs

import (
	"fmt"
	"os"
	"path/filepath"
)

const appName = "all-in-one-clipboard"

// Dirs holds the resolved cache-class and data-class roots.
type Dirs struct {
	Cache string
	Data  string
}

// Resolve determines the cache and data roots, creating both. Empty
// overrides fall back to the platform cache dir and the XDG data dir.
func Resolve(cacheOverride, dataOverride string) (Dirs, error) {
	cache := cacheOverride
	if cache == "" {
		base, err := os.UserCacheDir()
		if err != nil {
			return Dirs{}, fmt.Errorf("failed to locate user cache directory: %w", err)
		}
		cache = filepath.Join(base, appName)
	}

	data := dataOverride
	if data == "" {
		base := os.Getenv("XDG_DATA_HOME")
		if base == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return Dirs{}, fmt.Errorf("failed to locate user home directory: %w", err)
			}
			base = filepath.Join(home, ".local", "share")
		}
		data = filepath.Join(base, appName)
	}

	d := Dirs{Cache: cache, Data: data}
	for _, dir := range []string{d.Cache, d.Data, d.TextsDir(), d.ImagesDir(), d.GIFPreviewDir(), d.RecentsDir()} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return Dirs{}, fmt.Errorf("failed to create state directory %s: %w", dir, err)
		}
	}
	return d, nil
}

// HistoryFile is the history list JSON document (cache class).
func (d Dirs) HistoryFile() string { return filepath.Join(d.Cache, "history.json") }

// PinnedFile is the pinned list JSON document (data class).
func (d Dirs) PinnedFile() string { return filepath.Join(d.Data, "pinned.json") }

// TextsDir holds text overflow bodies, one <id>.txt per item.
func (d Dirs) TextsDir() string { return filepath.Join(d.Data, "texts") }

// ImagesDir holds image blobs referenced by image items.
func (d Dirs) ImagesDir() string { return filepath.Join(d.Data, "images") }

// GIFPreviewDir holds the disposable GIF preview cache.
func (d Dirs) GIFPreviewDir() string { return filepath.Join(d.Cache, "gif-previews") }

// RecentsDir holds one recents JSON document per picker feature.
func (d Dirs) RecentsDir() string { return filepath.Join(d.Data, "recents") }

// RecentsFile is the recents document for a picker feature such as "emoji".
func (d Dirs) RecentsFile(feature string) string {
	return filepath.Join(d.RecentsDir(), feature+".json")
}

// DefaultConfigPath returns the config file location under the user config dir.
func DefaultConfigPath() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to locate user config directory: %w", err)
	}
	return filepath.Join(base, appName, "config.yaml"), nil
}

// WriteFileAtomic writes data to path via a temp file and rename, so a
// reader never observes a partially written file. The parent directory is
// created if missing.
func WriteFileAtomic(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmp.Chmod(perm); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to set permissions: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}
	return nil
}
