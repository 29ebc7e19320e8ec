// Package sysboard implements the clipboard Board against the real system
// clipboard via golang.design/x/clipboard. The underlying library exposes
// text and PNG image formats; other image MIME types are converted by the
// desktop environment before we ever see them.
package sysboard

import (
	"context"
	"fmt"
	"sync"

	xclip "golang.design/x/clipboard"

	"github.com/osamaGXDgaming/all-in-one-clipboard/internal/clipboard"
)

var (
	initOnce sync.Once
	initErr  error
)

// SystemBoard is the production clipboard backend.
type SystemBoard struct{}

// New initializes the system clipboard connection. Initialization happens
// once per process; a failure (e.g. no display) is returned to the caller
// rather than panicking.
func New() (*SystemBoard, error) {
	initOnce.Do(func() {
		initErr = xclip.Init()
	})
	if initErr != nil {
		return nil, fmt.Errorf("failed to initialize system clipboard: %w", initErr)
	}
	return &SystemBoard{}, nil
}

// WriteText implements Board.WriteText.
func (b *SystemBoard) WriteText(text string) error {
	xclip.Write(xclip.FmtText, []byte(text))
	return nil
}

// WriteImage implements Board.WriteImage. Only PNG round-trips through
// the underlying library.
func (b *SystemBoard) WriteImage(data []byte, mime string) error {
	if mime != "image/png" {
		return fmt.Errorf("system clipboard cannot write %s, only image/png", mime)
	}
	xclip.Write(xclip.FmtImage, data)
	return nil
}

// Changes implements Board.Changes by merging the text and image watch
// channels into one stream of classified changes.
func (b *SystemBoard) Changes(ctx context.Context) <-chan clipboard.Change {
	out := make(chan clipboard.Change)
	textCh := xclip.Watch(ctx, xclip.FmtText)
	imageCh := xclip.Watch(ctx, xclip.FmtImage)

	go func() {
		defer close(out)
		for {
			select {
			case <-ctx.Done():
				return
			case data, ok := <-textCh:
				if !ok {
					return
				}
				select {
				case out <- clipboard.Change{Format: clipboard.FormatText, Text: string(data)}:
				case <-ctx.Done():
					return
				}
			case data, ok := <-imageCh:
				if !ok {
					return
				}
				select {
				case out <- clipboard.Change{Format: clipboard.FormatImage, Data: data, MIME: "image/png"}:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return out
}
