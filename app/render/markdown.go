// Package render wraps the markdown engine producing the HTML that the
// extractor consumes.
package render

import (
	"bytes"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/renderer/html"
)

// Renderer converts markdown source into HTML.
type Renderer struct {
	engine goldmark.Markdown
}

// NewRenderer creates new Renderer. Raw HTML in the source is passed
// through untouched, the extractor sanitizes it downstream.
func NewRenderer() *Renderer {
	return &Renderer{engine: goldmark.New(
		goldmark.WithRendererOptions(html.WithUnsafe()),
	)}
}

// Render converts markdown source into HTML.
func (r *Renderer) Render(src []byte) (string, error) {
	buf := &bytes.Buffer{}
	if err := r.engine.Convert(src, buf); err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}
	return buf.String(), nil
}
