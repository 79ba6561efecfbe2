// Package render: JSON renderer.
// Writes the page metadata, the Markdown and its editor blocks as one
// indented JSON document.
package render

import (
	"encoding/json"
	"fmt"

	"github.com/gaurav-prasanna/pageconv/core"
	"github.com/gaurav-prasanna/pageconv/core/blocks"
)

// JSONRenderer produces structured JSON output.
type JSONRenderer struct {
	// BlocksOnly writes just the block array.
	BlocksOnly bool
}

// NewJSONRenderer creates a JSONRenderer.
func NewJSONRenderer(blocksOnly bool) *JSONRenderer {
	return &JSONRenderer{BlocksOnly: blocksOnly}
}

// Render marshals doc. A nil block slice is written as [].
func (r *JSONRenderer) Render(doc core.Document) ([]byte, error) {
	if doc.Blocks == nil {
		doc.Blocks = []blocks.Block{}
	}

	var v any = doc
	if r.BlocksOnly {
		v = doc.Blocks
	}

	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling JSON: %w", err)
	}
	return append(data, '\n'), nil
}

// Extension returns the file extension for JSON output.
func (r *JSONRenderer) Extension() string {
	return ".json"
}

// NeedsBlocks reports true.
func (r *JSONRenderer) NeedsBlocks() bool {
	return true
}
