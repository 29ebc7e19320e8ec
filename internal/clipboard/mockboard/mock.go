// Package mockboard provides a scriptable clipboard implementation for
// testing the engine and watcher without touching the system clipboard.
package mockboard

import (
	"context"
	"sync"

	"github.com/osamaGXDgaming/all-in-one-clipboard/internal/clipboard"
)

// MockBoard implements clipboard.Board. Tests push changes with PushText
// and PushImage and inspect what the engine wrote back with LastText and
// LastImage.
type MockBoard struct {
	mu        sync.Mutex
	lastText  string
	lastImage []byte
	lastMIME  string
	writes    int
	subs      []chan clipboard.Change
}

// New creates an empty MockBoard.
func New() *MockBoard {
	return &MockBoard{}
}

// WriteText implements Board.WriteText.
func (m *MockBoard) WriteText(text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lastText = text
	m.writes++
	return nil
}

// WriteImage implements Board.WriteImage.
func (m *MockBoard) WriteImage(data []byte, mime string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lastImage = append([]byte(nil), data...)
	m.lastMIME = mime
	m.writes++
	return nil
}

// Changes implements Board.Changes.
func (m *MockBoard) Changes(ctx context.Context) <-chan clipboard.Change {
	ch := make(chan clipboard.Change, 16)

	m.mu.Lock()
	m.subs = append(m.subs, ch)
	m.mu.Unlock()

	go func() {
		<-ctx.Done()
		m.mu.Lock()
		for i, s := range m.subs {
			if s == ch {
				m.subs = append(m.subs[:i], m.subs[i+1:]...)
				break
			}
		}
		m.mu.Unlock()
		close(ch)
	}()
	return ch
}

// PushText simulates a clipboard-owner change carrying text.
func (m *MockBoard) PushText(text string) {
	m.push(clipboard.Change{Format: clipboard.FormatText, Text: text})
}

// PushImage simulates a clipboard-owner change carrying an image.
func (m *MockBoard) PushImage(data []byte, mime string) {
	m.push(clipboard.Change{Format: clipboard.FormatImage, Data: data, MIME: mime})
}

func (m *MockBoard) push(c clipboard.Change) {
	m.mu.Lock()
	subs := make([]chan clipboard.Change, len(m.subs))
	copy(subs, m.subs)
	m.mu.Unlock()

	for _, s := range subs {
		s <- c
	}
}

// LastText returns the most recent text written by the engine.
func (m *MockBoard) LastText() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastText
}

// LastImage returns the most recent image written by the engine.
func (m *MockBoard) LastImage() ([]byte, string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastImage, m.lastMIME
}

// Writes returns the number of writes the engine performed.
func (m *MockBoard) Writes() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.writes
}
