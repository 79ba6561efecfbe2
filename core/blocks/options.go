package blocks

import (
	"errors"
	"fmt"
)

var (
	// ErrUnsupported reports a Markdown construct with no block mapping.
	ErrUnsupported = errors.New("unsupported markdown construct")
	// ErrLimit reports content exceeding the editor's limits while
	// truncation is disabled.
	ErrLimit = errors.New("editor limit exceeded")
)

// Limits are the editor's payload limits.
type Limits struct {
	TextContent   int // characters per rich-text item
	RichTextItems int // items per rich-text array
	Children      int // children per block
	PayloadBlocks int // top-level blocks
	LinkURL       int // characters per link URL
}

// DefaultLimits returns the editor's documented limits.
func DefaultLimits() Limits {
	return Limits{
		TextContent:   2000,
		RichTextItems: 100,
		Children:      100,
		PayloadBlocks: 1000,
		LinkURL:       1000,
	}
}

func (l Limits) withDefaults() Limits {
	d := DefaultLimits()
	if l.TextContent <= 0 {
		l.TextContent = d.TextContent
	}
	if l.RichTextItems <= 0 {
		l.RichTextItems = d.RichTextItems
	}
	if l.Children <= 0 {
		l.Children = d.Children
	}
	if l.PayloadBlocks <= 0 {
		l.PayloadBlocks = d.PayloadBlocks
	}
	if l.LinkURL <= 0 {
		l.LinkURL = d.LinkURL
	}
	return l
}

// Options configure Convert. Zero limits take their default value.
type Options struct {
	// StrictImageURLs renders images whose URL the editor would reject as a
	// paragraph holding the URL instead of an image block.
	StrictImageURLs bool
	// Truncate cuts content that exceeds Limits. When false, exceeding a
	// limit fails the conversion with ErrLimit.
	Truncate bool
	Limits   Limits
}

// DefaultOptions returns strict image URLs with truncation enabled.
func DefaultOptions() Options {
	return Options{
		StrictImageURLs: true,
		Truncate:        true,
		Limits:          DefaultLimits(),
	}
}

func limitError(what string, got, limit int) error {
	return fmt.Errorf("%w: %s has %d, max %d", ErrLimit, what, got, limit)
}
