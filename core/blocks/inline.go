package blocks

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark/ast"
	extast "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/util"
)

// segment is either a run of rich text or an image hoisted out of it.
type segment struct {
	text  []RichText
	image *Block
}

// inlineWriter collects the inline content of one block.
type inlineWriter struct {
	c           *converter
	hoistImages bool
	runs        []RichText
	segs        []segment
}

// segments flushes pending runs and returns the collected segments.
func (w *inlineWriter) segments() []segment {
	w.flush()
	return w.segs
}

func (w *inlineWriter) flush() {
	if len(w.runs) == 0 {
		return
	}
	w.segs = append(w.segs, segment{text: w.runs})
	w.runs = nil
}

func (w *inlineWriter) emit(content string, ann Annotations, link *Link) {
	if content == "" {
		return
	}
	rt := RichText{Type: "text", Annotations: ann, Text: Text{Content: content}}
	if link != nil && link.URL != "" {
		rt.Text.Link = &Link{URL: link.URL}
	}
	w.runs = append(w.runs, rt)
}

func (w *inlineWriter) walkChildren(n ast.Node, ann Annotations, link *Link) error {
	for child := n.FirstChild(); child != nil; child = child.NextSibling() {
		if err := w.walk(child, ann, link); err != nil {
			return err
		}
	}
	return nil
}

func (w *inlineWriter) walk(n ast.Node, ann Annotations, link *Link) error {
	src := w.c.src

	switch node := n.(type) {
	case *ast.Text:
		value := node.Segment.Value(src)
		if !node.IsRaw() {
			value = unescapeText(value)
		}
		content := string(value)
		if node.SoftLineBreak() || node.HardLineBreak() {
			content += "\n"
		}
		w.emit(content, ann, link)
		return nil

	case *ast.String:
		w.emit(string(node.Value), ann, link)
		return nil

	case *ast.CodeSpan:
		ann.Code = true
		return w.walkChildren(node, ann, link)

	case *ast.Emphasis:
		if node.Level >= 2 {
			ann.Bold = true
		} else {
			ann.Italic = true
		}
		return w.walkChildren(node, ann, link)

	case *extast.Strikethrough:
		ann.Strikethrough = true
		return w.walkChildren(node, ann, link)

	case *ast.Link:
		return w.walkChildren(node, ann, &Link{URL: string(node.Destination)})

	case *ast.AutoLink:
		u := string(node.URL(src))
		if node.AutoLinkType == ast.AutoLinkEmail && !strings.HasPrefix(u, "mailto:") {
			u = "mailto:" + u
		}
		w.emit(string(node.Label(src)), ann, &Link{URL: u})
		return nil

	case *ast.Image:
		dest := string(node.Destination)
		if w.hoistImages {
			w.flush()
			img := w.c.image(dest)
			w.segs = append(w.segs, segment{image: &img})
			return nil
		}
		label := altText(src, node)
		if label == "" {
			label = dest
		}
		w.emit(label, ann, &Link{URL: dest})
		return nil

	case *ast.RawHTML:
		var raw bytes.Buffer
		for i := 0; i < node.Segments.Len(); i++ {
			seg := node.Segments.At(i)
			raw.Write(seg.Value(src))
		}
		return fmt.Errorf("%w: inline HTML %q", ErrUnsupported, raw.String())

	case *extast.TaskCheckBox:
		return nil
	}

	return w.walkChildren(n, ann, link)
}

// altText is the plain text below an image node.
func altText(src []byte, n ast.Node) string {
	var b strings.Builder
	_ = ast.Walk(n, func(c ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch t := c.(type) {
		case *ast.Text:
			b.Write(t.Segment.Value(src))
		case *ast.String:
			b.Write(t.Value)
		}
		return ast.WalkContinue, nil
	})
	return b.String()
}

// unescapeText drops backslash escapes and resolves entity references the
// way the HTML renderer would.
func unescapeText(b []byte) []byte {
	return util.ResolveEntityNames(util.ResolveNumericReferences(util.UnescapePunctuations(b)))
}
