package extract

import (
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"

	"github.com/gaurav-prasanna/pageconv/core"
)

var (
	titleSel     = cascadia.MustCompile("head > title")
	langSel      = cascadia.MustCompile("html[lang]")
	canonicalSel = cascadia.MustCompile(`link[rel="canonical"][href]`)
)

// Metadata builds PageMetadata from the page URL and its raw HTML. Fields
// from article, when given, take precedence over those found in the page.
func Metadata(rawURL, html string, article *core.Article) core.PageMetadata {
	meta := core.PageMetadata{
		URL:       rawURL,
		Language:  "en",
		FetchedAt: time.Now().UTC().Format(time.RFC3339),
	}
	if parsed, err := url.Parse(rawURL); err == nil {
		meta.Domain = parsed.Host
		meta.Path = parsed.Path
	}

	if doc, err := goquery.NewDocumentFromReader(strings.NewReader(html)); err == nil {
		meta.Title = strings.TrimSpace(doc.FindMatcher(titleSel).First().Text())
		if lang, ok := doc.FindMatcher(langSel).First().Attr("lang"); ok && strings.TrimSpace(lang) != "" {
			meta.Language = strings.TrimSpace(lang)
		}
		if href, ok := doc.FindMatcher(canonicalSel).First().Attr("href"); ok {
			meta.Canonical = strings.TrimSpace(href)
		}
	}

	if article != nil {
		if article.Title != "" {
			meta.Title = article.Title
		}
		meta.Byline = article.Byline
		meta.Excerpt = article.Excerpt
		meta.SiteName = article.SiteName
	}
	return meta
}
