// Package chunk splits text into pieces no longer than a character limit.
// It is used to keep rich-text content within the block editor's per-item
// length limit. Splits prefer whitespace; a single word longer than the
// limit is cut at the limit.
package chunk

import (
	"unicode"
	"unicode/utf8"
)

// DefaultSize is the editor's rich-text content limit in characters.
const DefaultSize = 2000

// Chunker splits text into chunks of at most Size runes.
type Chunker struct {
	Size int // maximum runes per chunk
}

// New creates a Chunker with the given chunk size.
// Defaults to DefaultSize if size <= 0.
func New(size int) *Chunker {
	if size <= 0 {
		size = DefaultSize
	}
	return &Chunker{Size: size}
}

// Chunk splits text into consecutive pieces of at most Size runes.
// Joining the result yields text unchanged. Empty text yields nil.
func (c *Chunker) Chunk(text string) []string {
	if text == "" {
		return nil
	}
	if utf8.RuneCountInString(text) <= c.Size {
		return []string{text}
	}

	var chunks []string
	for text != "" {
		cut := cutIndex(text, c.Size)
		chunks = append(chunks, text[:cut])
		text = text[cut:]
	}
	return chunks
}

// cutIndex returns the byte index to cut text at so that the head holds at
// most size runes, preferring the position just after the last whitespace.
func cutIndex(text string, size int) int {
	runes := 0
	lastSpace := -1
	for i, r := range text {
		if runes == size {
			if lastSpace > 0 {
				return lastSpace
			}
			return i
		}
		if unicode.IsSpace(r) {
			lastSpace = i + utf8.RuneLen(r)
		}
		runes++
	}
	return len(text)
}
