// Package render converts Markdown sources to HTML so the repricing
// pipeline, which operates on markup trees, can handle price lists
// maintained in Markdown.
package render

import (
	"bytes"
	"fmt"

	"github.com/yuin/goldmark"
)

// MarkdownToHTML renders a Markdown document as an HTML fragment.
func MarkdownToHTML(src []byte) ([]byte, error) {
	var buf bytes.Buffer
	if err := goldmark.Convert(src, &buf); err != nil {
		return nil, fmt.Errorf("render markdown: %w", err)
	}
	return buf.Bytes(), nil
}
