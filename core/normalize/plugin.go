package normalize

import (
	"bytes"
	"net/url"
	"strings"
	"unicode"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"golang.org/x/net/html"

	"github.com/gaurav-prasanna/pageconv/core/resolve"
)

// resolvePlugin renders a, img and base elements from their resolved form.
// Elements missing from the resolved set fall through to commonmark.
type resolvePlugin struct {
	resolved resolve.Resolved
}

func newResolvePlugin(resolved resolve.Resolved) *resolvePlugin {
	return &resolvePlugin{resolved: resolved}
}

func (p *resolvePlugin) Name() string {
	return "resolve"
}

func (p *resolvePlugin) Init(conv *converter.Converter) error {
	conv.Register.RendererFor("base", converter.TagTypeInline, p.renderBase, converter.PriorityEarly)
	conv.Register.RendererFor("img", converter.TagTypeInline, p.renderImage, converter.PriorityEarly)
	conv.Register.RendererFor("a", converter.TagTypeInline, p.renderLink, converter.PriorityEarly)
	return nil
}

func (p *resolvePlugin) renderBase(_ converter.Context, _ converter.Writer, _ *html.Node) converter.RenderStatus {
	return converter.RenderSuccess
}

func (p *resolvePlugin) renderImage(_ converter.Context, w converter.Writer, n *html.Node) converter.RenderStatus {
	img, ok := p.resolved.Image(n)
	if !ok {
		return converter.RenderTryNext
	}
	w.WriteString("![")
	w.WriteString(escapeLabel(img.Alt))
	w.WriteString("](")
	if img.URL != "" {
		w.WriteString(destination(img.URL))
		writeTitle(w, img.Title)
	}
	w.WriteString(")")
	return converter.RenderSuccess
}

func (p *resolvePlugin) renderLink(ctx converter.Context, w converter.Writer, n *html.Node) converter.RenderStatus {
	link, ok := p.resolved.Link(n)
	if !ok {
		return converter.RenderTryNext
	}

	if link.URL == "" {
		ctx.RenderChildNodes(ctx, w, n)
		return converter.RenderSuccess
	}
	if text, ok := autolinkText(link, n); ok {
		w.WriteString("<" + text + ">")
		return converter.RenderSuccess
	}

	// Text inside a link gets its brackets escaped by the commonmark
	// text transform.
	ctx = ctx.WithValue("is_inside_link", true)

	var buf bytes.Buffer
	ctx.RenderChildNodes(ctx, &buf, n)
	before, content, after := surroundingSpaces(buf.Bytes())
	content = escapeMultiLine(trimConsecutiveNewlines(content))

	w.Write(before)
	w.WriteString("[")
	w.Write(content)
	w.WriteString("](")
	w.WriteString(destination(link.URL))
	writeTitle(w, link.Title)
	w.WriteString(")")
	w.Write(after)
	return converter.RenderSuccess
}

// autolinkText returns the text of a GFM autolink for link: an absolute
// URL without title whose text is the URL itself. A mailto link whose text
// is the address becomes an email autolink.
func autolinkText(link *resolve.Link, n *html.Node) (string, bool) {
	if link.Title != "" || strings.ContainsAny(link.URL, " \t\n<>") {
		return "", false
	}
	u, err := url.Parse(link.URL)
	if err != nil || !u.IsAbs() {
		return "", false
	}
	text := strings.TrimSpace(textContent(n))
	switch {
	case text == link.URL:
		return link.URL, true
	case u.Scheme == "mailto" && "mailto:"+text == link.URL && strings.Contains(text, "@"):
		return text, true
	}
	return "", false
}

func textContent(n *html.Node) string {
	var b strings.Builder
	var visit func(*html.Node)
	visit = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			visit(c)
		}
	}
	visit(n)
	return b.String()
}

// destination formats a link destination, switching to the <...> form when
// the URL holds characters the bare form cannot carry.
func destination(u string) string {
	if strings.ContainsAny(u, " \t\n<>") || !balancedParens(u) {
		r := strings.NewReplacer("<", "%3C", ">", "%3E", "\n", "%0A")
		return "<" + r.Replace(u) + ">"
	}
	return u
}

func balancedParens(s string) bool {
	depth := 0
	for _, r := range s {
		switch r {
		case '(':
			depth++
		case ')':
			depth--
			if depth < 0 {
				return false
			}
		}
	}
	return depth == 0
}

func writeTitle(w converter.Writer, title string) {
	if title == "" {
		return
	}
	title = strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\n", " ").Replace(title)
	w.WriteString(` "` + title + `"`)
}

func escapeLabel(s string) string {
	return strings.NewReplacer(`\`, `\\`, "[", `\[`, "]", `\]`, "\n", " ").Replace(s)
}

// surroundingSpaces splits content into its leading whitespace, the
// trimmed text and its trailing whitespace.
func surroundingSpaces(content []byte) ([]byte, []byte, []byte) {
	right := bytes.TrimRightFunc(content, unicode.IsSpace)
	trimmed := bytes.TrimLeftFunc(right, unicode.IsSpace)
	return content[:len(right)-len(trimmed)], trimmed, content[len(right):]
}

// trimConsecutiveNewlines keeps at most two newlines in a row, dropping the
// spaces that preceded any discarded ones.
func trimConsecutiveNewlines(content []byte) []byte {
	out := make([]byte, 0, len(content))
	var spaces []byte
	newlines := 0
	for _, b := range content {
		switch b {
		case '\n':
			newlines++
			if newlines <= 2 {
				out = append(out, spaces...)
				out = append(out, '\n')
			}
			spaces = spaces[:0]
		case ' ':
			spaces = append(spaces, b)
		default:
			newlines = 0
			out = append(out, spaces...)
			out = append(out, b)
			spaces = spaces[:0]
		}
	}
	return append(out, spaces...)
}

// escapeMultiLine keeps multi-line link text inside the link: every line
// but the last ends in a hard break and blank lines become "\".
func escapeMultiLine(content []byte) []byte {
	lines := bytes.Split(content, []byte{'\n'})
	if len(lines) == 1 {
		return content
	}

	out := make([]byte, 0, len(content)+2*len(lines))
	for i, line := range lines {
		line = bytes.TrimLeftFunc(line, unicode.IsSpace)
		switch {
		case len(line) == 0:
			out = append(out, '\\', '\n')
		case i == len(lines)-1:
			out = append(out, line...)
		case bytes.HasSuffix(line, []byte("  ")):
			out = append(out, line...)
			out = append(out, '\n')
		default:
			out = append(out, line...)
			out = append(out, ' ', ' ', '\n')
		}
	}
	return out
}
