// Package clipboard abstracts the system clipboard behind a Board
// interface so the engine and watcher can be tested without owning the
// real clipboard. The sysboard subpackage provides the production backend;
// mockboard provides a scriptable one for tests.
package clipboard

import "context"

// Format discriminates the payload of an observed change.
type Format int

const (
	FormatText Format = iota
	FormatImage
)

// Change is one observed clipboard-owner change with its content already
// probed. Text changes carry Text; image changes carry Data and MIME.
type Change struct {
	Format Format
	Text   string
	Data   []byte
	MIME   string
}

// Board is a clipboard the engine can write to and watch.
type Board interface {
	// WriteText places text on the clipboard.
	WriteText(text string) error

	// WriteImage places image bytes with the given MIME type on the
	// clipboard. Backends may support only a subset of ImageMIMEs.
	WriteImage(data []byte, mime string) error

	// Changes returns a channel of owner-change events. The channel is
	// closed when ctx is cancelled.
	Changes(ctx context.Context) <-chan Change
}

// ImageMIMEs is the fixed ordered list of image MIME types probed when
// classifying clipboard content. Order matters: the first readable,
// non-empty representation wins.
var ImageMIMEs = []string{
	"image/png",
	"image/jpeg",
	"image/gif",
	"image/webp",
	"image/bmp",
}

var mimeExt = map[string]string{
	"image/png":  ".png",
	"image/jpeg": ".jpg",
	"image/gif":  ".gif",
	"image/webp": ".webp",
	"image/bmp":  ".bmp",
}

// ExtForMIME returns the file extension for an image MIME type, falling
// back to ".png" for unknown types so a blob filename is always valid.
func ExtForMIME(mime string) string {
	if ext, ok := mimeExt[mime]; ok {
		return ext
	}
	return ".png"
}

// MIMEForExt returns the MIME type for an image file extension (with
// leading dot), falling back to "image/png".
func MIMEForExt(ext string) string {
	for mime, e := range mimeExt {
		if e == ext {
			return mime
		}
	}
	return "image/png"
}
