package resolve

import (
	"strings"

	"github.com/JohannesKaufmann/dom"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Kind tags the element kinds the resolver handles.
type Kind int

const (
	KindOther Kind = iota
	KindBase
	KindImage
	KindLink
)

// KindOf returns the resolver kind of an element node.
func KindOf(n *html.Node) Kind {
	if n == nil || n.Type != html.ElementNode {
		return KindOther
	}
	switch n.DataAtom {
	case atom.Base:
		return KindBase
	case atom.Img:
		return KindImage
	case atom.A:
		return KindLink
	}
	return KindOther
}

// Node is a resolved output node: *Image or *Link.
type Node interface {
	Kind() Kind
}

// Image is a resolved img element.
type Image struct {
	URL   string
	Title string // empty when absent
	Alt   string // empty when absent
}

// Kind implements Node.
func (*Image) Kind() Kind { return KindImage }

// Link is a resolved a element. Its children stay in the HTML tree and are
// converted by whoever renders the link.
type Link struct {
	URL   string
	Title string
}

// Kind implements Node.
func (*Link) Kind() Kind { return KindLink }

// Handle applies the handler for n's kind to s. Base elements update s and
// return nil, as do elements of any other kind.
func Handle(s *State, n *html.Node) Node {
	switch KindOf(n) {
	case KindBase:
		handleBase(s, n)
		return nil
	case KindImage:
		return handleImage(s, n)
	case KindLink:
		return handleLink(s, n)
	}
	return nil
}

func handleBase(s *State, n *html.Node) {
	s.SetBase(strings.TrimSpace(dom.GetAttributeOr(n, "href", "")))
}

// handleImage prefers a valid src, then a lazy-loading data-src, then
// whatever src held.
func handleImage(s *State, n *html.Node) *Image {
	src := strings.TrimSpace(dom.GetAttributeOr(n, "src", ""))
	raw := src
	if !IsValidURL(src) {
		if dataSrc := strings.TrimSpace(dom.GetAttributeOr(n, "data-src", "")); dataSrc != "" {
			raw = dataSrc
		}
	}
	return &Image{
		URL:   s.Resolve(raw),
		Title: dom.GetAttributeOr(n, "title", ""),
		Alt:   dom.GetAttributeOr(n, "alt", ""),
	}
}

func handleLink(s *State, n *html.Node) *Link {
	return &Link{
		URL:   s.Resolve(dom.GetAttributeOr(n, "href", "")),
		Title: dom.GetAttributeOr(n, "title", ""),
	}
}

// Resolved maps element nodes of one document to their resolved form.
type Resolved map[*html.Node]Node

// Image returns the resolved image for n, if any.
func (r Resolved) Image(n *html.Node) (*Image, bool) {
	img, ok := r[n].(*Image)
	return img, ok
}

// Link returns the resolved link for n, if any.
func (r Resolved) Link(n *html.Node) (*Link, bool) {
	link, ok := r[n].(*Link)
	return link, ok
}

// Walk visits doc depth-first in document order, so an element is resolved
// with whatever base had been seen before it.
func Walk(s *State, doc *html.Node) Resolved {
	resolved := make(Resolved)
	var visit func(n *html.Node)
	visit = func(n *html.Node) {
		if out := Handle(s, n); out != nil {
			resolved[n] = out
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			visit(c)
		}
	}
	visit(doc)
	return resolved
}
