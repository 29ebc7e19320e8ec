// Package gifcache evicts GIF preview blobs from the cache-class
// directory by age and total size. Structurally a simpler sibling of the
// engine's garbage collector: it shares the "missing file is not an
// error" contract but needs no reference set, because everything here is
// regenerable.
package gifcache

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"time"
)

const (
	// DefaultMaxAge keeps previews for a month before they expire.
	DefaultMaxAge = 30 * 24 * time.Hour
	// DefaultMaxBytes bounds the preview cache to 50 MiB.
	DefaultMaxBytes = 50 << 20
)

// Cache manages one preview directory.
type Cache struct {
	dir string
}

// New creates a cache over dir. The directory is created lazily by
// whoever writes previews; a missing directory just means nothing to
// evict.
func New(dir string) *Cache {
	return &Cache{dir: dir}
}

// Dir returns the cache directory.
func (c *Cache) Dir() string { return c.dir }

// Evict removes previews older than maxAge, then removes oldest-first
// until the remaining total size fits maxBytes. Races with concurrent
// writers resolve as "already gone is fine".
func (c *Cache) Evict(maxAge time.Duration, maxBytes int64) {
	entries, err := os.ReadDir(c.dir)
	if errors.Is(err, fs.ErrNotExist) {
		return
	}
	if err != nil {
		slog.Warn("failed to list gif preview cache", "dir", c.dir, "error", err)
		return
	}

	type fileInfo struct {
		name    string
		size    int64
		modTime time.Time
	}

	now := time.Now()
	var files []fileInfo
	var total int64
	removed := 0

	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		info, err := e.Info()
		if err != nil {
			// File vanished between ReadDir and Stat; nothing to do.
			continue
		}
		if maxAge > 0 && now.Sub(info.ModTime()) > maxAge {
			c.remove(e.Name())
			removed++
			continue
		}
		files = append(files, fileInfo{name: e.Name(), size: info.Size(), modTime: info.ModTime()})
		total += info.Size()
	}

	if maxBytes > 0 && total > maxBytes {
		sort.Slice(files, func(i, j int) bool {
			return files[i].modTime.Before(files[j].modTime)
		})
		for _, f := range files {
			if total <= maxBytes {
				break
			}
			c.remove(f.name)
			total -= f.size
			removed++
		}
	}

	if removed > 0 {
		slog.Info("evicted gif previews", "count", removed, "dir", c.dir)
	}
}

func (c *Cache) remove(name string) {
	err := os.Remove(filepath.Join(c.dir, name))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		slog.Warn("failed to evict gif preview", "name", name, "error", err)
	}
}
