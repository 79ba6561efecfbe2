// Package extract implements the Extractor interface.
// It isolates the readable article from a full HTML page. Two strategies
// are available:
//  1. Readability: the go-readability heuristics (the default)
//  2. Selector: strip noise elements and keep <main>, <article> or <body>
package extract

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	readability "github.com/go-shiori/go-readability"

	"github.com/gaurav-prasanna/pageconv/core"
)

// ErrNoArticle is returned when a page yields no readable content.
var ErrNoArticle = errors.New("no readable article content")

// New returns the extractor registered under name ("readability" or
// "selector"). An empty name selects readability.
func New(name string) (core.Extractor, error) {
	switch name {
	case "", "readability":
		return NewReadability(), nil
	case "selector":
		return NewSelector(), nil
	default:
		return nil, fmt.Errorf("unknown extractor %q", name)
	}
}

// ReadabilityExtractor extracts articles with go-readability.
type ReadabilityExtractor struct{}

// NewReadability creates a ReadabilityExtractor.
func NewReadability() *ReadabilityExtractor {
	return &ReadabilityExtractor{}
}

// Extract runs readability over html. pageURL, when it is a valid URL, is
// used to turn relative references in the article into absolute ones.
func (e *ReadabilityExtractor) Extract(html string, pageURL string) (*core.Article, error) {
	var base *url.URL
	if pageURL != "" {
		parsed, err := url.Parse(pageURL)
		if err == nil && parsed.IsAbs() {
			base = parsed
		}
	}

	article, err := readability.FromReader(strings.NewReader(html), base)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoArticle, err)
	}
	if strings.TrimSpace(article.Content) == "" || strings.TrimSpace(article.TextContent) == "" {
		return nil, ErrNoArticle
	}

	return &core.Article{
		Title:    article.Title,
		Byline:   article.Byline,
		Excerpt:  article.Excerpt,
		SiteName: article.SiteName,
		Content:  article.Content,
		Length:   article.Length,
	}, nil
}

// noiseSelectors are HTML elements removed by the selector strategy.
// These contribute no meaningful content to the page text.
var noiseSelectors = []string{
	"script", "style", "noscript",
	"nav", "footer", "header", "aside",
	"iframe", "video", "audio",
	"svg", "canvas",
	"form", "button", "input", "select", "textarea",
	".sidebar", ".menu", ".navigation", ".ads", ".advertisement",
}

// SelectorExtractor keeps the best semantic content container.
type SelectorExtractor struct{}

// NewSelector creates a SelectorExtractor.
func NewSelector() *SelectorExtractor {
	return &SelectorExtractor{}
}

// Extract removes noise elements and returns the first <main>, <article> or
// <body>, in that order of preference. pageURL is not used.
func (e *SelectorExtractor) Extract(html string, _ string) (*core.Article, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}

	title := strings.TrimSpace(doc.Find("title").First().Text())

	for _, sel := range noiseSelectors {
		doc.Find(sel).Remove()
	}

	var content *goquery.Selection
	for _, tag := range []string{"main", "article", "body"} {
		sel := doc.Find(tag)
		if sel.Length() > 0 {
			content = sel.First()
			break
		}
	}
	if content == nil || strings.TrimSpace(content.Text()) == "" {
		return nil, ErrNoArticle
	}

	result, err := goquery.OuterHtml(content)
	if err != nil {
		return nil, fmt.Errorf("serializing content: %w", err)
	}

	return &core.Article{
		Title:   title,
		Content: result,
		Length:  len(strings.TrimSpace(content.Text())),
	}, nil
}
