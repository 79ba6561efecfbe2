// Package core defines the request types and pipeline interfaces for pageconv.
// Each stage of the pipeline is a clean, testable interface.
package core

import (
	"context"

	"github.com/gaurav-prasanna/pageconv/core/blocks"
)

// HTMLRequest is the input of an HTML to Markdown conversion.
type HTMLRequest struct {
	// URL is the page location. It is handed to the readability stage so
	// relative references in the extracted article become absolute.
	URL string
	// HTML is the source markup.
	HTML string
	// Readable narrows the HTML to the extracted article before conversion.
	Readable bool
}

// MarkdownRequest is the input of a Markdown to blocks conversion.
// URL is carried for symmetry with HTMLRequest and is not used.
type MarkdownRequest struct {
	URL      string
	Markdown string
}

// FetchResult holds the raw HTML and response metadata from a fetch.
type FetchResult struct {
	URL        string
	StatusCode int
	HTML       string
}

// Article is the readable content extracted from a page.
type Article struct {
	Title    string
	Byline   string
	Excerpt  string
	SiteName string
	Content  string // HTML fragment
	Length   int
}

// PageMetadata holds metadata extracted from the page and URL.
type PageMetadata struct {
	URL       string `json:"url"`
	Domain    string `json:"domain,omitempty"`
	Path      string `json:"path,omitempty"`
	Canonical string `json:"canonical,omitempty"`
	Title     string `json:"title"`
	Byline    string `json:"byline,omitempty"`
	Excerpt   string `json:"excerpt,omitempty"`
	SiteName  string `json:"site_name,omitempty"`
	Language  string `json:"language"`
	FetchedAt string `json:"fetched_at,omitempty"` // ISO8601
}

// Document is everything a renderer may draw from.
type Document struct {
	Metadata PageMetadata   `json:"metadata"`
	Markdown string         `json:"markdown"`
	Blocks   []blocks.Block `json:"blocks"`
}

// Fetcher retrieves raw HTML from a URL.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (*FetchResult, error)
}

// Extractor pulls the readable article out of a full HTML page.
// pageURL may be empty.
type Extractor interface {
	Extract(html string, pageURL string) (*Article, error)
}

// Renderer converts a converted document into a final output format.
type Renderer interface {
	Render(doc Document) ([]byte, error)
	// Extension returns the file extension for this renderer (e.g. ".md", ".pdf").
	Extension() string
	// NeedsBlocks reports whether Render reads Document.Blocks.
	NeedsBlocks() bool
}
