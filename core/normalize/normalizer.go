// Package normalize converts HTML into GitHub-Flavored Markdown.
// Link and image URLs are resolved against the document's first <base>
// element before html-to-markdown renders the tree.
package normalize

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/strikethrough"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
	"golang.org/x/net/html"

	"github.com/gaurav-prasanna/pageconv/core/resolve"
)

// MarkdownNormalizer converts HTML to Markdown using html-to-markdown.
type MarkdownNormalizer struct {
	logger *slog.Logger
}

// New creates a MarkdownNormalizer. Diagnostics, such as an invalid <base>
// href, go to logger; nil means slog.Default().
func New(logger *slog.Logger) *MarkdownNormalizer {
	if logger == nil {
		logger = slog.Default()
	}
	return &MarkdownNormalizer{logger: logger}
}

// Normalize converts an HTML document or fragment into Markdown.
// Every call works on its own parse tree and resolver state.
func (n *MarkdownNormalizer) Normalize(htmlText string) (string, error) {
	doc, err := html.Parse(strings.NewReader(htmlText))
	if err != nil {
		return "", fmt.Errorf("parsing HTML: %w", err)
	}

	state := resolve.NewState(n.logger)
	resolved := resolve.Walk(state, doc)

	conv := converter.NewConverter(
		converter.WithPlugins(
			base.NewBasePlugin(),
			commonmark.NewCommonmarkPlugin(),
			strikethrough.NewStrikethroughPlugin(),
			table.NewTablePlugin(),
			newResolvePlugin(resolved),
		),
	)

	markdown, err := conv.ConvertNode(doc)
	if err != nil {
		return "", fmt.Errorf("converting HTML to markdown: %w", err)
	}
	return string(markdown), nil
}
