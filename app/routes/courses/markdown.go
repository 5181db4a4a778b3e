package courses

import (
	"bytes"

	"github.com/yuin/goldmark"
)

// renderMarkdown converts a course description to HTML. Raw HTML in the
// source is dropped by goldmark's default renderer.
func renderMarkdown(src string) (string, error) {
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(src), &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}
