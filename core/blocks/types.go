// Package blocks converts Markdown into block objects for a block-based
// document editor. The JSON shape of Block matches the editor's block API:
// an "object": "block" envelope, a "type", and one payload keyed by type.
package blocks

// Type is a block type name.
type Type string

const (
	TypeParagraph        Type = "paragraph"
	TypeHeading1         Type = "heading_1"
	TypeHeading2         Type = "heading_2"
	TypeHeading3         Type = "heading_3"
	TypeBulletedListItem Type = "bulleted_list_item"
	TypeNumberedListItem Type = "numbered_list_item"
	TypeToDo             Type = "to_do"
	TypeQuote            Type = "quote"
	TypeCode             Type = "code"
	TypeImage            Type = "image"
	TypeDivider          Type = "divider"
	TypeTable            Type = "table"
	TypeTableRow         Type = "table_row"
)

// Block is a single editor block. Exactly one payload field is set, the one
// matching Type.
type Block struct {
	Object string `json:"object"`
	Type   Type   `json:"type"`

	Paragraph        *TextBlock     `json:"paragraph,omitempty"`
	Heading1         *TextBlock     `json:"heading_1,omitempty"`
	Heading2         *TextBlock     `json:"heading_2,omitempty"`
	Heading3         *TextBlock     `json:"heading_3,omitempty"`
	BulletedListItem *TextBlock     `json:"bulleted_list_item,omitempty"`
	NumberedListItem *TextBlock     `json:"numbered_list_item,omitempty"`
	ToDo             *ToDoBlock     `json:"to_do,omitempty"`
	Quote            *TextBlock     `json:"quote,omitempty"`
	Code             *CodeBlock     `json:"code,omitempty"`
	Image            *ImageBlock    `json:"image,omitempty"`
	Divider          *struct{}      `json:"divider,omitempty"`
	Table            *TableBlock    `json:"table,omitempty"`
	TableRow         *TableRowBlock `json:"table_row,omitempty"`
}

// TextBlock is the payload of paragraphs, headings, list items and quotes.
type TextBlock struct {
	RichText []RichText `json:"rich_text"`
	Children []Block    `json:"children,omitempty"`
}

// ToDoBlock is the payload of a task list item.
type ToDoBlock struct {
	RichText []RichText `json:"rich_text"`
	Checked  bool       `json:"checked"`
	Children []Block    `json:"children,omitempty"`
}

// CodeBlock is the payload of a code block.
type CodeBlock struct {
	RichText []RichText `json:"rich_text"`
	Language string     `json:"language"`
}

// ImageBlock is the payload of an image. Only external images are produced.
type ImageBlock struct {
	Type     string       `json:"type"`
	External ExternalFile `json:"external"`
	Caption  []RichText   `json:"caption,omitempty"`
}

// ExternalFile references a file by URL.
type ExternalFile struct {
	URL string `json:"url"`
}

// TableBlock is the payload of a table. Rows are its children.
type TableBlock struct {
	TableWidth      int     `json:"table_width"`
	HasColumnHeader bool    `json:"has_column_header"`
	HasRowHeader    bool    `json:"has_row_header"`
	Children        []Block `json:"children"`
}

// TableRowBlock is the payload of a table row; each cell is rich text.
type TableRowBlock struct {
	Cells [][]RichText `json:"cells"`
}

// RichText is a run of text with uniform annotations.
type RichText struct {
	Type        string      `json:"type"`
	Annotations Annotations `json:"annotations"`
	Text        Text        `json:"text"`
}

// Text is the content of a text rich-text item.
type Text struct {
	Content string `json:"content"`
	Link    *Link  `json:"link,omitempty"`
}

// Link is a rich-text hyperlink.
type Link struct {
	URL string `json:"url"`
}

// Annotations are the inline styles of a rich-text item.
type Annotations struct {
	Bold          bool   `json:"bold"`
	Italic        bool   `json:"italic"`
	Strikethrough bool   `json:"strikethrough"`
	Underline     bool   `json:"underline"`
	Code          bool   `json:"code"`
	Color         string `json:"color"`
}

// PlainText concatenates the content of rt.
func PlainText(rt []RichText) string {
	var n int
	for _, r := range rt {
		n += len(r.Text.Content)
	}
	buf := make([]byte, 0, n)
	for _, r := range rt {
		buf = append(buf, r.Text.Content...)
	}
	return string(buf)
}

// RichTextOf returns the rich text of a text-bearing block and nil otherwise.
func (b Block) RichTextOf() []RichText {
	switch {
	case b.Paragraph != nil:
		return b.Paragraph.RichText
	case b.Heading1 != nil:
		return b.Heading1.RichText
	case b.Heading2 != nil:
		return b.Heading2.RichText
	case b.Heading3 != nil:
		return b.Heading3.RichText
	case b.BulletedListItem != nil:
		return b.BulletedListItem.RichText
	case b.NumberedListItem != nil:
		return b.NumberedListItem.RichText
	case b.ToDo != nil:
		return b.ToDo.RichText
	case b.Quote != nil:
		return b.Quote.RichText
	case b.Code != nil:
		return b.Code.RichText
	}
	return nil
}

// ChildrenOf returns the nested blocks of b.
func (b Block) ChildrenOf() []Block {
	switch {
	case b.BulletedListItem != nil:
		return b.BulletedListItem.Children
	case b.NumberedListItem != nil:
		return b.NumberedListItem.Children
	case b.ToDo != nil:
		return b.ToDo.Children
	case b.Quote != nil:
		return b.Quote.Children
	case b.Table != nil:
		return b.Table.Children
	}
	return nil
}

// constructors

const blockObject = "block"

func newText(t Type, rt []RichText, children []Block) Block {
	payload := &TextBlock{RichText: nonNil(rt), Children: children}
	b := Block{Object: blockObject, Type: t}
	switch t {
	case TypeParagraph:
		b.Paragraph = payload
	case TypeHeading1:
		b.Heading1 = payload
	case TypeHeading2:
		b.Heading2 = payload
	case TypeHeading3:
		b.Heading3 = payload
	case TypeBulletedListItem:
		b.BulletedListItem = payload
	case TypeNumberedListItem:
		b.NumberedListItem = payload
	case TypeQuote:
		b.Quote = payload
	}
	return b
}

// Paragraph returns a paragraph block.
func Paragraph(rt []RichText) Block { return newText(TypeParagraph, rt, nil) }

// Heading returns a heading block; levels above 3 collapse to heading_3.
func Heading(level int, rt []RichText) Block {
	switch {
	case level <= 1:
		return newText(TypeHeading1, rt, nil)
	case level == 2:
		return newText(TypeHeading2, rt, nil)
	default:
		return newText(TypeHeading3, rt, nil)
	}
}

// BulletedListItem returns a bulleted list item.
func BulletedListItem(rt []RichText, children []Block) Block {
	return newText(TypeBulletedListItem, rt, children)
}

// NumberedListItem returns a numbered list item.
func NumberedListItem(rt []RichText, children []Block) Block {
	return newText(TypeNumberedListItem, rt, children)
}

// ToDo returns a to-do block.
func ToDo(checked bool, rt []RichText, children []Block) Block {
	return Block{
		Object: blockObject,
		Type:   TypeToDo,
		ToDo:   &ToDoBlock{RichText: nonNil(rt), Checked: checked, Children: children},
	}
}

// Quote returns a quote block.
func Quote(rt []RichText, children []Block) Block { return newText(TypeQuote, rt, children) }

// Code returns a code block with a single rich-text run per chunk of text.
func Code(language string, rt []RichText) Block {
	return Block{
		Object: blockObject,
		Type:   TypeCode,
		Code:   &CodeBlock{RichText: nonNil(rt), Language: language},
	}
}

// Image returns an external image block.
func Image(url string) Block {
	return Block{
		Object: blockObject,
		Type:   TypeImage,
		Image:  &ImageBlock{Type: "external", External: ExternalFile{URL: url}},
	}
}

// Divider returns a divider block.
func Divider() Block {
	return Block{Object: blockObject, Type: TypeDivider, Divider: &struct{}{}}
}

// Table returns a table block.
func Table(width int, hasColumnHeader bool, rows []Block) Block {
	return Block{
		Object: blockObject,
		Type:   TypeTable,
		Table: &TableBlock{
			TableWidth:      width,
			HasColumnHeader: hasColumnHeader,
			Children:        rows,
		},
	}
}

// TableRow returns a table row block.
func TableRow(cells [][]RichText) Block {
	return Block{Object: blockObject, Type: TypeTableRow, TableRow: &TableRowBlock{Cells: cells}}
}

// Plain returns unannotated rich text.
func Plain(content string) RichText {
	return RichText{Type: "text", Annotations: Annotations{Color: "default"}, Text: Text{Content: content}}
}

func nonNil(rt []RichText) []RichText {
	if rt == nil {
		return []RichText{}
	}
	return rt
}
