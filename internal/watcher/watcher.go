// Package watcher pumps clipboard-owner changes into the engine. It
// coalesces rapid-fire change signals with a short debounce delay so a
// burst of notifications for one logical copy results in a single
// ingestion of the final content.
package watcher

import (
	"context"
	"log/slog"
	"time"

	"github.com/osamaGXDgaming/all-in-one-clipboard/internal/clipboard"
)

// DefaultDebounce is the coalescing delay applied to change signals.
const DefaultDebounce = 50 * time.Millisecond

// Ingester is the engine-side surface the watcher delivers to.
type Ingester interface {
	IngestText(text string)
	IngestImage(data []byte, mime string)
}

// Watcher subscribes to a clipboard board and forwards debounced changes.
type Watcher struct {
	board    clipboard.Board
	engine   Ingester
	debounce time.Duration
}

// New creates a watcher. A non-positive debounce falls back to
// DefaultDebounce.
func New(board clipboard.Board, engine Ingester, debounce time.Duration) *Watcher {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &Watcher{board: board, engine: engine, debounce: debounce}
}

// Run consumes change events until ctx is cancelled. A pending debounce
// timer is stopped on shutdown so no delivery fires against a torn-down
// engine.
func (w *Watcher) Run(ctx context.Context) {
	changes := w.board.Changes(ctx)

	timer := time.NewTimer(w.debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	var pending *clipboard.Change
	slog.Debug("clipboard watcher running", "debounce", w.debounce)

	for {
		select {
		case <-ctx.Done():
			return
		case c, ok := <-changes:
			if !ok {
				return
			}
			// Latest content wins within one debounce window.
			pending = &c
			if !timer.Stop() {
				select {
				case <-timer.C:
				default:
				}
			}
			timer.Reset(w.debounce)
		case <-timer.C:
			if pending == nil {
				continue
			}
			w.deliver(*pending)
			pending = nil
		}
	}
}

func (w *Watcher) deliver(c clipboard.Change) {
	switch c.Format {
	case clipboard.FormatText:
		w.engine.IngestText(c.Text)
	case clipboard.FormatImage:
		w.engine.IngestImage(c.Data, c.MIME)
	}
}
