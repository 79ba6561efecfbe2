package blocks

import (
	"bytes"
	"fmt"
	"net/url"
	"path"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	extast "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"

	"github.com/gaurav-prasanna/pageconv/core/chunk"
	"github.com/gaurav-prasanna/pageconv/core/resolve"
)

// imageExtensions are the file types the editor embeds as external images.
var imageExtensions = map[string]bool{
	".png": true, ".jpg": true, ".jpeg": true, ".gif": true, ".tif": true,
	".tiff": true, ".bmp": true, ".svg": true, ".heic": true, ".webp": true,
}

// Convert parses markdown as GitHub-Flavored Markdown and maps it onto
// blocks. Unlike the fail-open entry points built on top of it, Convert
// reports every failure, including a panic inside the mapping.
func Convert(markdown string, opts Options) (out []Block, err error) {
	defer func() {
		if r := recover(); r != nil {
			out, err = nil, fmt.Errorf("converting markdown: panic: %v", r)
		}
	}()

	src := []byte(markdown)
	md := goldmark.New(goldmark.WithExtensions(extension.GFM))
	root := md.Parser().Parse(text.NewReader(src))

	opts.Limits = opts.Limits.withDefaults()
	c := &converter{
		src:     src,
		opts:    opts,
		chunker: chunk.New(opts.Limits.TextContent),
	}

	result, err := c.children(root)
	if err != nil {
		return nil, fmt.Errorf("converting markdown: %w", err)
	}
	result, err = c.limitBlocks(result, opts.Limits.PayloadBlocks, "document")
	if err != nil {
		return nil, fmt.Errorf("converting markdown: %w", err)
	}
	return result, nil
}

type converter struct {
	src     []byte
	opts    Options
	chunker *chunk.Chunker
}

// children converts the block children of n.
func (c *converter) children(n ast.Node) ([]Block, error) {
	var out []Block
	for child := n.FirstChild(); child != nil; child = child.NextSibling() {
		converted, err := c.block(child)
		if err != nil {
			return nil, err
		}
		out = append(out, converted...)
	}
	return out, nil
}

func (c *converter) block(n ast.Node) ([]Block, error) {
	switch node := n.(type) {
	case *ast.Paragraph, *ast.TextBlock:
		return c.paragraph(node)
	case *ast.Heading:
		rt, images, err := c.inlines(node)
		if err != nil {
			return nil, err
		}
		return append([]Block{Heading(node.Level, rt)}, images...), nil
	case *ast.List:
		return c.list(node)
	case *ast.Blockquote:
		return c.quote(node)
	case *ast.FencedCodeBlock:
		var info string
		if node.Info != nil {
			info = string(node.Language(c.src))
		}
		return c.code(node, Language(info))
	case *ast.CodeBlock:
		return c.code(node, DefaultLanguage)
	case *ast.ThematicBreak:
		return []Block{Divider()}, nil
	case *extast.Table:
		return c.table(node)
	case *ast.HTMLBlock:
		return nil, fmt.Errorf("%w: HTML block at line %d", ErrUnsupported, lineOf(c.src, node))
	}
	return nil, fmt.Errorf("%w: %s", ErrUnsupported, n.Kind())
}

// paragraph emits the text of n as paragraphs, splitting out images into
// their own blocks in document order.
func (c *converter) paragraph(n ast.Node) ([]Block, error) {
	w := &inlineWriter{c: c, hoistImages: true}
	if err := w.walkChildren(n, Annotations{Color: "default"}, nil); err != nil {
		return nil, err
	}

	var out []Block
	for _, seg := range w.segments() {
		if seg.image != nil {
			out = append(out, *seg.image)
			continue
		}
		if strings.TrimSpace(PlainText(seg.text)) == "" {
			continue
		}
		rt, err := c.finishRichText(seg.text)
		if err != nil {
			return nil, err
		}
		out = append(out, Paragraph(rt))
	}
	return out, nil
}

// inlines returns the rich text of n with images hoisted out as blocks.
func (c *converter) inlines(n ast.Node) ([]RichText, []Block, error) {
	w := &inlineWriter{c: c, hoistImages: true}
	if err := w.walkChildren(n, Annotations{Color: "default"}, nil); err != nil {
		return nil, nil, err
	}

	var rt []RichText
	var images []Block
	for _, seg := range w.segments() {
		if seg.image != nil {
			images = append(images, *seg.image)
			continue
		}
		rt = append(rt, seg.text...)
	}
	rt, err := c.finishRichText(rt)
	if err != nil {
		return nil, nil, err
	}
	return rt, images, nil
}

func (c *converter) list(n *ast.List) ([]Block, error) {
	var out []Block
	for item := n.FirstChild(); item != nil; item = item.NextSibling() {
		li, ok := item.(*ast.ListItem)
		if !ok {
			return nil, fmt.Errorf("%w: %s inside list", ErrUnsupported, item.Kind())
		}
		b, err := c.listItem(li, n.IsOrdered())
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, nil
}

func (c *converter) listItem(n *ast.ListItem, ordered bool) (Block, error) {
	var (
		rt       []RichText
		children []Block
		checkbox *extast.TaskCheckBox
	)

	rest := n.FirstChild()
	if first := n.FirstChild(); first != nil && isTextual(first) {
		if cb, ok := first.FirstChild().(*extast.TaskCheckBox); ok {
			checkbox = cb
		}
		var images []Block
		var err error
		rt, images, err = c.inlines(first)
		if err != nil {
			return Block{}, err
		}
		rt = trimLeadingSpace(rt, checkbox != nil)
		children = append(children, images...)
		rest = first.NextSibling()
	}

	for child := rest; child != nil; child = child.NextSibling() {
		converted, err := c.block(child)
		if err != nil {
			return Block{}, err
		}
		children = append(children, converted...)
	}

	children, err := c.limitBlocks(children, c.opts.Limits.Children, "list item children")
	if err != nil {
		return Block{}, err
	}

	switch {
	case checkbox != nil:
		return ToDo(checkbox.IsChecked, rt, children), nil
	case ordered:
		return NumberedListItem(rt, children), nil
	default:
		return BulletedListItem(rt, children), nil
	}
}

func (c *converter) quote(n *ast.Blockquote) ([]Block, error) {
	inner, err := c.children(n)
	if err != nil {
		return nil, err
	}

	var rt []RichText
	if len(inner) > 0 && inner[0].Type == TypeParagraph {
		rt = inner[0].Paragraph.RichText
		inner = inner[1:]
	}
	if len(inner) == 0 {
		inner = nil
	}
	inner, err = c.limitBlocks(inner, c.opts.Limits.Children, "quote children")
	if err != nil {
		return nil, err
	}
	return []Block{Quote(rt, inner)}, nil
}

func (c *converter) code(n ast.Node, language string) ([]Block, error) {
	var buf bytes.Buffer
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		buf.Write(seg.Value(c.src))
	}
	content := strings.TrimRight(buf.String(), "\n")

	var rt []RichText
	for _, piece := range c.chunker.Chunk(content) {
		rt = append(rt, Plain(piece))
	}
	rt, err := c.limitRichText(rt, "code")
	if err != nil {
		return nil, err
	}
	return []Block{Code(language, rt)}, nil
}

func (c *converter) table(n *extast.Table) ([]Block, error) {
	var rows []Block
	width := 0
	hasHeader := false

	for row := n.FirstChild(); row != nil; row = row.NextSibling() {
		switch row.(type) {
		case *extast.TableHeader:
			hasHeader = true
		case *extast.TableRow:
		default:
			return nil, fmt.Errorf("%w: %s inside table", ErrUnsupported, row.Kind())
		}

		var cells [][]RichText
		for cell := row.FirstChild(); cell != nil; cell = cell.NextSibling() {
			w := &inlineWriter{c: c}
			if err := w.walkChildren(cell, Annotations{Color: "default"}, nil); err != nil {
				return nil, err
			}
			rt, err := c.finishRichText(w.runs)
			if err != nil {
				return nil, err
			}
			cells = append(cells, nonNil(rt))
		}
		if width == 0 {
			width = len(cells)
		}
		for len(cells) < width {
			cells = append(cells, []RichText{})
		}
		rows = append(rows, TableRow(cells[:width]))
	}

	rows, err := c.limitBlocks(rows, c.opts.Limits.Children, "table rows")
	if err != nil {
		return nil, err
	}
	return []Block{Table(width, hasHeader, rows)}, nil
}

// image returns the block for an image reference.
func (c *converter) image(dest string) Block {
	if c.opts.StrictImageURLs && !IsSupportedImageURL(dest) {
		return Paragraph([]RichText{Plain(dest)})
	}
	return Image(dest)
}

// IsSupportedImageURL reports whether the editor accepts u as an external
// image: an absolute http(s) URL whose path ends in a known image extension.
func IsSupportedImageURL(u string) bool {
	if !resolve.IsValidURL(u) {
		return false
	}
	parsed, err := url.Parse(u)
	if err != nil {
		return false
	}
	return imageExtensions[strings.ToLower(path.Ext(parsed.Path))]
}

// finishRichText merges adjacent runs, applies the content, link and array
// limits.
func (c *converter) finishRichText(rt []RichText) ([]RichText, error) {
	rt = mergeRuns(rt)

	var out []RichText
	for _, r := range rt {
		if r.Text.Link != nil && len(r.Text.Link.URL) > c.opts.Limits.LinkURL {
			if !c.opts.Truncate {
				return nil, limitError("link URL", len(r.Text.Link.URL), c.opts.Limits.LinkURL)
			}
			r.Text.Link = nil
		}
		pieces := c.chunker.Chunk(r.Text.Content)
		if len(pieces) <= 1 {
			out = append(out, r)
			continue
		}
		for _, p := range pieces {
			split := r
			split.Text.Content = p
			out = append(out, split)
		}
	}
	return c.limitRichText(out, "rich text")
}

func (c *converter) limitRichText(rt []RichText, what string) ([]RichText, error) {
	limit := c.opts.Limits.RichTextItems
	if len(rt) <= limit {
		return rt, nil
	}
	if !c.opts.Truncate {
		return nil, limitError(what, len(rt), limit)
	}
	return rt[:limit], nil
}

func (c *converter) limitBlocks(b []Block, limit int, what string) ([]Block, error) {
	if len(b) <= limit {
		return b, nil
	}
	if !c.opts.Truncate {
		return nil, limitError(what, len(b), limit)
	}
	return b[:limit], nil
}

// mergeRuns joins neighbouring runs that share annotations and link.
func mergeRuns(rt []RichText) []RichText {
	var out []RichText
	for _, r := range rt {
		if r.Text.Content == "" {
			continue
		}
		if n := len(out); n > 0 && sameStyle(out[n-1], r) {
			out[n-1].Text.Content += r.Text.Content
			continue
		}
		out = append(out, r)
	}
	return out
}

func sameStyle(a, b RichText) bool {
	if a.Annotations != b.Annotations {
		return false
	}
	switch {
	case a.Text.Link == nil && b.Text.Link == nil:
		return true
	case a.Text.Link == nil || b.Text.Link == nil:
		return false
	}
	return a.Text.Link.URL == b.Text.Link.URL
}

// trimLeadingSpace drops the space goldmark leaves after a task checkbox.
func trimLeadingSpace(rt []RichText, enabled bool) []RichText {
	if !enabled || len(rt) == 0 {
		return rt
	}
	rt[0].Text.Content = strings.TrimLeft(rt[0].Text.Content, " ")
	if rt[0].Text.Content == "" {
		return rt[1:]
	}
	return rt
}

func isTextual(n ast.Node) bool {
	switch n.(type) {
	case *ast.Paragraph, *ast.TextBlock:
		return true
	}
	return false
}

func lineOf(src []byte, n ast.Node) int {
	lines := n.Lines()
	if lines.Len() == 0 {
		return 0
	}
	return bytes.Count(src[:lines.At(0).Start], []byte("\n")) + 1
}
