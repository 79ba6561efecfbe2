// Package render provides output renderers for converted documents.
// This file implements the Markdown renderer, which is a simple passthrough.
package render

import (
	"github.com/gaurav-prasanna/pageconv/core"
)

// MarkdownRenderer writes Markdown as-is. It's the simplest renderer
// since Markdown is what the HTML conversion produces.
type MarkdownRenderer struct{}

// NewMarkdownRenderer creates a MarkdownRenderer.
func NewMarkdownRenderer() *MarkdownRenderer {
	return &MarkdownRenderer{}
}

// Render returns the Markdown as bytes (passthrough).
func (r *MarkdownRenderer) Render(doc core.Document) ([]byte, error) {
	return []byte(doc.Markdown), nil
}

// Extension returns the file extension for Markdown output.
func (r *MarkdownRenderer) Extension() string {
	return ".md"
}

// NeedsBlocks reports false: only the Markdown is written.
func (r *MarkdownRenderer) NeedsBlocks() bool {
	return false
}
