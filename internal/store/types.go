// Package store defines the clipboard item model and the JSON-backed
// ordered lists that persist it. Two lists exist: History (most recent
// first, bounded) and Pinned (most recently pinned first, unbounded).
// An item lives in exactly one of the two lists at any time.
package store

import "time"

// Kind discriminates the two clipboard item variants.
type Kind string

const (
	KindText  Kind = "text"
	KindImage Kind = "image"
)

// ClipItem is one stored clipboard entry. ID, Kind, Timestamp and Hash are
// immutable after creation; Hash is never recomputed.
type ClipItem struct {
	ID        string    `json:"id"`
	Kind      Kind      `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Hash      string    `json:"hash"`

	// Text variant. Preview is the whitespace-collapsed prefix used for
	// display; HasFullContent reports that the original exceeded the
	// preview length and the full body lives in the text blob store.
	Preview        string `json:"preview"`
	HasFullContent bool   `json:"has_full_content"`

	// Image variant. ImageFilename names the blob in the image store.
	ImageFilename string `json:"image_filename,omitempty"`
}

// OverflowFilename returns the text blob store name for this item's full
// body. Only meaningful when HasFullContent is true.
func (it ClipItem) OverflowFilename() string {
	return it.ID + ".txt"
}
