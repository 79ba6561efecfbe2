package blocks

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func permissive() Options {
	opts := DefaultOptions()
	opts.StrictImageURLs = false
	return opts
}

func convert(t *testing.T, md string) []Block {
	t.Helper()
	out, err := Convert(md, permissive())
	require.NoError(t, err)
	return out
}

func types(b []Block) []Type {
	out := make([]Type, 0, len(b))
	for _, x := range b {
		out = append(out, x.Type)
	}
	return out
}

func TestConvert_Empty(t *testing.T) {
	assert.Empty(t, convert(t, ""))
	assert.Empty(t, convert(t, "\n\n   \n"))
}

func TestConvert_Headings(t *testing.T) {
	got := convert(t, "# One\n\n## Two\n\n### Three\n\n#### Four\n")
	assert.Equal(t, []Type{TypeHeading1, TypeHeading2, TypeHeading3, TypeHeading3}, types(got))
	assert.Equal(t, "One", PlainText(got[0].RichTextOf()))
	assert.Equal(t, "Four", PlainText(got[3].RichTextOf()))
}

func TestConvert_InlineAnnotations(t *testing.T) {
	got := convert(t, "plain **bold** *it* ~~gone~~ `code` [link](https://example.com)")
	require.Len(t, got, 1)
	require.Equal(t, TypeParagraph, got[0].Type)

	rt := got[0].Paragraph.RichText
	byText := map[string]RichText{}
	for _, r := range rt {
		byText[strings.TrimSpace(r.Text.Content)] = r
	}

	assert.True(t, byText["bold"].Annotations.Bold)
	assert.True(t, byText["it"].Annotations.Italic)
	assert.True(t, byText["gone"].Annotations.Strikethrough)
	assert.True(t, byText["code"].Annotations.Code)
	require.NotNil(t, byText["link"].Text.Link)
	assert.Equal(t, "https://example.com", byText["link"].Text.Link.URL)
	assert.Equal(t, "default", byText["plain"].Annotations.Color)
	assert.Equal(t, "plain bold it gone code link", PlainText(rt))
}

func TestConvert_EscapesAndEntities(t *testing.T) {
	got := convert(t, "\\*not em\\* a &amp; b &#65; [\\[1\\]](https://e.com/wiki) `\\*raw\\*`")
	require.Len(t, got, 1)

	rt := got[0].Paragraph.RichText
	assert.Equal(t, `*not em* a & b A [1] \*raw\*`, PlainText(rt))

	var link *RichText
	for i := range rt {
		if rt[i].Text.Link != nil {
			link = &rt[i]
		}
	}
	require.NotNil(t, link)
	assert.Equal(t, "[1]", link.Text.Content)
	assert.Equal(t, "https://e.com/wiki", link.Text.Link.URL)
}

func TestConvert_Autolinks(t *testing.T) {
	got := convert(t, "see https://example.com/x and <me@example.com>")
	require.Len(t, got, 1)

	var links []string
	for _, r := range got[0].Paragraph.RichText {
		if r.Text.Link != nil {
			links = append(links, r.Text.Link.URL)
		}
	}
	assert.Equal(t, []string{"https://example.com/x", "mailto:me@example.com"}, links)
}

func TestConvert_Lists(t *testing.T) {
	md := "- a\n  - nested\n- b\n\n1. first\n2. second\n"
	got := convert(t, md)

	assert.Equal(t, []Type{
		TypeBulletedListItem, TypeBulletedListItem,
		TypeNumberedListItem, TypeNumberedListItem,
	}, types(got))

	children := got[0].ChildrenOf()
	require.Len(t, children, 1)
	assert.Equal(t, TypeBulletedListItem, children[0].Type)
	assert.Equal(t, "nested", PlainText(children[0].RichTextOf()))
	assert.Equal(t, "second", PlainText(got[3].RichTextOf()))
}

func TestConvert_TaskList(t *testing.T) {
	got := convert(t, "- [ ] todo\n- [x] done\n")
	require.Len(t, got, 2)

	require.Equal(t, TypeToDo, got[0].Type)
	assert.False(t, got[0].ToDo.Checked)
	assert.Equal(t, "todo", PlainText(got[0].ToDo.RichText))

	require.Equal(t, TypeToDo, got[1].Type)
	assert.True(t, got[1].ToDo.Checked)
	assert.Equal(t, "done", PlainText(got[1].ToDo.RichText))
}

func TestConvert_Quote(t *testing.T) {
	got := convert(t, "> first para\n>\n> second para\n")
	require.Len(t, got, 1)
	require.Equal(t, TypeQuote, got[0].Type)
	assert.Equal(t, "first para", PlainText(got[0].Quote.RichText))
	require.Len(t, got[0].Quote.Children, 1)
	assert.Equal(t, "second para", PlainText(got[0].Quote.Children[0].RichTextOf()))
}

func TestConvert_Code(t *testing.T) {
	got := convert(t, "```golang\nfmt.Println(1)\n```\n\n```brainfuck\n+\n```\n\n    indented\n")
	require.Len(t, got, 3)

	assert.Equal(t, "go", got[0].Code.Language)
	assert.Equal(t, "fmt.Println(1)", PlainText(got[0].Code.RichText))
	assert.Equal(t, DefaultLanguage, got[1].Code.Language)
	assert.Equal(t, DefaultLanguage, got[2].Code.Language)
	assert.Equal(t, "indented", PlainText(got[2].Code.RichText))
}

func TestConvert_DividerAndTable(t *testing.T) {
	md := "---\n\n| a | b |\n|---|---|\n| 1 | 2 |\n| 3 |\n"
	got := convert(t, md)
	require.Equal(t, []Type{TypeDivider, TypeTable}, types(got))

	table := got[1].Table
	assert.Equal(t, 2, table.TableWidth)
	assert.True(t, table.HasColumnHeader)
	require.Len(t, table.Children, 3)

	header := table.Children[0].TableRow.Cells
	assert.Equal(t, "a", strings.TrimSpace(PlainText(header[0])))
	assert.Equal(t, "b", strings.TrimSpace(PlainText(header[1])))

	short := table.Children[2].TableRow.Cells
	require.Len(t, short, 2)
	assert.Equal(t, "3", strings.TrimSpace(PlainText(short[0])))
	assert.Empty(t, short[1])
}

func TestConvert_ImagesAreHoisted(t *testing.T) {
	got := convert(t, "before ![alt](pic.png) after")
	require.Equal(t, []Type{TypeParagraph, TypeImage, TypeParagraph}, types(got))
	assert.Equal(t, "pic.png", got[1].Image.External.URL)
	assert.Equal(t, "external", got[1].Image.Type)
}

func TestConvert_StrictImageURLs(t *testing.T) {
	md := "![a](relative.png)\n\n![b](https://example.com/x.png)\n\n![c](https://example.com/page)\n"

	strict, err := Convert(md, DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, []Type{TypeParagraph, TypeImage, TypeParagraph}, types(strict))
	assert.Equal(t, "relative.png", PlainText(strict[0].RichTextOf()))

	loose := convert(t, md)
	assert.Equal(t, []Type{TypeImage, TypeImage, TypeImage}, types(loose))
}

func TestConvert_RawHTMLIsUnsupported(t *testing.T) {
	for _, md := range []string{
		"<<<malformed>>>",
		"text <span>x</span>",
		"<div>\nblock\n</div>\n",
	} {
		t.Run(md, func(t *testing.T) {
			out, err := Convert(md, permissive())
			require.ErrorIs(t, err, ErrUnsupported)
			assert.Nil(t, out)
		})
	}
}

func TestConvert_LongTextIsSplit(t *testing.T) {
	long := strings.Repeat("word ", 1000) // 5000 chars
	got := convert(t, long)
	require.Len(t, got, 1)

	rt := got[0].Paragraph.RichText
	require.Len(t, rt, 3)
	for _, r := range rt {
		assert.LessOrEqual(t, len(r.Text.Content), 2000)
	}
	assert.Equal(t, strings.TrimSpace(long), PlainText(rt))
}

func TestConvert_Limits(t *testing.T) {
	var md strings.Builder
	for i := 0; i < 5; i++ {
		md.WriteString("para\n\n")
	}

	opts := permissive()
	opts.Limits.PayloadBlocks = 3

	got, err := Convert(md.String(), opts)
	require.NoError(t, err)
	assert.Len(t, got, 3)

	opts.Truncate = false
	_, err = Convert(md.String(), opts)
	require.ErrorIs(t, err, ErrLimit)
}

func TestConvert_LongLinkURL(t *testing.T) {
	md := "[x](https://example.com/" + strings.Repeat("a", 1200) + ")"

	got := convert(t, md)
	require.Len(t, got, 1)
	assert.Nil(t, got[0].Paragraph.RichText[0].Text.Link)

	opts := permissive()
	opts.Truncate = false
	_, err := Convert(md, opts)
	require.ErrorIs(t, err, ErrLimit)
}

func TestBlock_JSONShape(t *testing.T) {
	got := convert(t, "hello\n\n---\n")
	data, err := json.Marshal(got)
	require.NoError(t, err)

	const want = `[{"object":"block","type":"paragraph","paragraph":{"rich_text":[{"type":"text",` +
		`"annotations":{"bold":false,"italic":false,"strikethrough":false,"underline":false,"code":false,"color":"default"},` +
		`"text":{"content":"hello"}}]}},{"object":"block","type":"divider","divider":{}}]`
	assert.JSONEq(t, want, string(data))
}

func TestLanguage(t *testing.T) {
	assert.Equal(t, "go", Language("go"))
	assert.Equal(t, "go", Language("Golang"))
	assert.Equal(t, "shell", Language("sh"))
	assert.Equal(t, "javascript", Language("js {linenos}"))
	assert.Equal(t, DefaultLanguage, Language(""))
	assert.Equal(t, DefaultLanguage, Language("klingon"))
}

func TestIsSupportedImageURL(t *testing.T) {
	assert.True(t, IsSupportedImageURL("https://example.com/a.PNG"))
	assert.True(t, IsSupportedImageURL("http://example.com/a.webp?x=1"))
	assert.False(t, IsSupportedImageURL("https://example.com/a"))
	assert.False(t, IsSupportedImageURL("/a.png"))
	assert.False(t, IsSupportedImageURL("data:image/png;base64,AAA"))
}
