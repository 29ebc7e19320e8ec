package config

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"reflect"

	"github.com/fsnotify/fsnotify"
)

// Watch observes the config file and publishes a fresh snapshot to
// subscribers whenever it changes, so settings like max_history apply
// live. Watching the parent directory instead of the file itself keeps
// the watch alive across editors that replace the file on save.
func (m *Manager) Watch(ctx context.Context) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create config watcher: %w", err)
	}

	dir := filepath.Dir(m.configPath)
	if err := w.Add(dir); err != nil {
		w.Close()
		return fmt.Errorf("failed to watch config directory %s: %w", dir, err)
	}

	go func() {
		defer w.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				if ev.Name != m.configPath {
					continue
				}
				if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
					continue
				}
				cfg := m.read()

				m.mu.Lock()
				unchanged := m.current != nil && reflect.DeepEqual(m.current, cfg)
				if !unchanged {
					m.current = cfg
				}
				m.mu.Unlock()

				if unchanged {
					continue
				}
				slog.Info("configuration reloaded", "path", m.configPath)
				m.publish(*cfg)
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				slog.Warn("config watcher error", "error", err)
			}
		}
	}()
	return nil
}
