// Package convert exposes the two conversions of pageconv:
// HTML to GitHub-Flavored Markdown, and Markdown to editor blocks.
//
// The two have deliberately different failure policies. HTMLToMarkdown fails
// loudly: a page without readable content is an error. MarkdownToBlocks
// fails open: any failure yields an empty slice.
package convert

import (
	"fmt"
	"log/slog"

	"github.com/gaurav-prasanna/pageconv/core"
	"github.com/gaurav-prasanna/pageconv/core/blocks"
	"github.com/gaurav-prasanna/pageconv/core/extract"
	"github.com/gaurav-prasanna/pageconv/core/normalize"
)

// Service runs conversions. It holds configuration only, so one Service may
// be shared by concurrent callers.
type Service struct {
	logger     *slog.Logger
	extractor  core.Extractor
	blockOpts  blocks.Options
	normalizer *normalize.MarkdownNormalizer
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the diagnostics logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithExtractor replaces the readability extractor.
func WithExtractor(e core.Extractor) Option {
	return func(s *Service) {
		if e != nil {
			s.extractor = e
		}
	}
}

// WithBlockOptions sets the block conversion options. StrictImageURLs is
// always turned off by MarkdownToBlocks.
func WithBlockOptions(opts blocks.Options) Option {
	return func(s *Service) {
		s.blockOpts = opts
	}
}

// New creates a Service with the readability extractor and default block
// options.
func New(opts ...Option) *Service {
	s := &Service{
		logger:    slog.Default(),
		extractor: extract.NewReadability(),
		blockOpts: blocks.DefaultOptions(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.normalizer = normalize.New(s.logger)
	return s
}

// HTMLToMarkdown converts req.HTML to Markdown. With req.Readable set, the
// page is first narrowed to its readable article; if there is none the
// error wraps extract.ErrNoArticle.
func (s *Service) HTMLToMarkdown(req core.HTMLRequest) (string, error) {
	html := req.HTML

	if req.Readable {
		article, err := s.extractor.Extract(req.HTML, req.URL)
		if err != nil {
			return "", fmt.Errorf("extract: %w", err)
		}
		html = article.Content
	}

	markdown, err := s.normalizer.Normalize(html)
	if err != nil {
		return "", fmt.Errorf("normalize: %w", err)
	}
	return markdown, nil
}

// MarkdownToBlocks converts req.Markdown to blocks with permissive image
// URLs. It never fails: when conversion does, the cause is logged at debug
// level and an empty slice is returned. Raw HTML anywhere in the input,
// inline tags such as <br> included, has no block form and so yields an
// empty slice for the whole document.
func (s *Service) MarkdownToBlocks(req core.MarkdownRequest) []blocks.Block {
	opts := s.blockOpts
	opts.StrictImageURLs = false

	out, err := blocks.Convert(req.Markdown, opts)
	if err != nil {
		s.logger.Debug("markdown to blocks failed", "error", err)
		return []blocks.Block{}
	}
	if out == nil {
		return []blocks.Block{}
	}
	return out
}

// HTMLToMarkdown converts with a default Service logging to slog.Default().
func HTMLToMarkdown(req core.HTMLRequest) (string, error) {
	return New().HTMLToMarkdown(req)
}

// MarkdownToBlocks converts with a default Service.
func MarkdownToBlocks(req core.MarkdownRequest) []blocks.Block {
	return New().MarkdownToBlocks(req)
}
