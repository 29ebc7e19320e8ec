package engine

import "strings"

// PreviewLength is the maximum preview size in runes. Text longer than
// this keeps its full body in the text blob store.
const PreviewLength = 150

// BuildPreview computes the display preview for text content and reports
// whether the original overflows the preview length. Runs of spaces and
// tabs collapse to a single space; newlines are preserved so multi-line
// previews keep their shape.
func BuildPreview(text string) (string, bool) {
	overflow := len([]rune(text)) > PreviewLength

	collapsed := collapseSpaces(text)
	runes := []rune(collapsed)
	if len(runes) > PreviewLength {
		runes = runes[:PreviewLength]
	}
	return string(runes), overflow
}

// collapseSpaces replaces each run of spaces and tabs with one space,
// leaving every other rune (including newlines) untouched.
func collapseSpaces(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	inRun := false
	for _, r := range s {
		if r == ' ' || r == '\t' {
			if !inRun {
				b.WriteRune(' ')
			}
			inRun = true
			continue
		}
		inRun = false
		b.WriteRune(r)
	}
	return b.String()
}
