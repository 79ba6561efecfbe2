// Package render: PDF renderer.
// Draws the editor blocks of a document into a styled PDF using gofpdf.
// Handles headings (variable font sizes), paragraphs, lists, to-dos, quotes,
// code blocks, tables and dividers. Images are written as links to their
// source rather than embedded.
package render

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"github.com/gaurav-prasanna/pageconv/core"
	"github.com/gaurav-prasanna/pageconv/core/blocks"
)

const indentStep = 6.0 // mm per nesting level

// PDFRenderer renders a document's blocks as a PDF.
type PDFRenderer struct{}

// NewPDFRenderer creates a PDFRenderer.
func NewPDFRenderer() *PDFRenderer {
	return &PDFRenderer{}
}

// Render converts the document's blocks into PDF bytes.
func (r *PDFRenderer) Render(doc core.Document) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()

	d := &drawer{pdf: pdf, tr: pdf.UnicodeTranslatorFromDescriptor("")}

	// Title from metadata.
	if doc.Metadata.Title != "" {
		pdf.SetFont("Helvetica", "B", 18)
		pdf.MultiCell(0, 8, d.tr(doc.Metadata.Title), "", "L", false)
		pdf.Ln(4)
	}

	// Source URL.
	if doc.Metadata.URL != "" {
		pdf.SetFont("Helvetica", "I", 9)
		pdf.SetTextColor(100, 100, 100)
		pdf.MultiCell(0, 5, d.tr("Source: "+doc.Metadata.URL), "", "L", false)
		pdf.SetTextColor(0, 0, 0)
		pdf.Ln(6)
	}

	d.blocks(doc.Blocks, 0)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("writing PDF: %w", err)
	}
	return buf.Bytes(), nil
}

// Extension returns the file extension for PDF output.
func (r *PDFRenderer) Extension() string {
	return ".pdf"
}

// NeedsBlocks reports true.
func (r *PDFRenderer) NeedsBlocks() bool {
	return true
}

// drawer writes blocks onto a PDF page flow.
type drawer struct {
	pdf *gofpdf.Fpdf
	tr  func(string) string
}

func (d *drawer) blocks(list []blocks.Block, depth int) {
	number := 0
	for _, b := range list {
		if b.Type == blocks.TypeNumberedListItem {
			number++
		} else {
			number = 0
		}
		d.block(b, depth, number)
	}
}

func (d *drawer) block(b blocks.Block, depth, number int) {
	pdf := d.pdf
	text := d.tr(blocks.PlainText(b.RichTextOf()))

	switch b.Type {
	case blocks.TypeHeading1:
		d.heading(text, 1)
	case blocks.TypeHeading2:
		d.heading(text, 2)
	case blocks.TypeHeading3:
		d.heading(text, 3)

	case blocks.TypeParagraph:
		d.indent(depth)
		pdf.SetFont("Helvetica", "", 10)
		pdf.MultiCell(0, 5, text, "", "L", false)
		pdf.Ln(2)

	case blocks.TypeBulletedListItem:
		d.listLine(depth, d.tr("• ")+text)
	case blocks.TypeNumberedListItem:
		d.listLine(depth, fmt.Sprintf("%d. %s", number, text))
	case blocks.TypeToDo:
		box := "[ ] "
		if b.ToDo.Checked {
			box = "[x] "
		}
		d.listLine(depth, box+text)

	case blocks.TypeQuote:
		d.indent(depth + 1)
		pdf.SetFont("Helvetica", "I", 10)
		pdf.SetTextColor(90, 90, 90)
		pdf.MultiCell(0, 5, text, "", "L", false)
		pdf.SetTextColor(0, 0, 0)
		pdf.Ln(2)

	case blocks.TypeCode:
		pdf.Ln(2)
		pdf.SetFont("Courier", "", 9)
		pdf.SetFillColor(245, 245, 245)
		for _, line := range strings.Split(text, "\n") {
			d.indent(depth)
			pdf.MultiCell(0, 4.5, line, "", "L", true)
		}
		pdf.Ln(2)

	case blocks.TypeImage:
		url := b.Image.External.URL
		d.indent(depth)
		pdf.SetFont("Helvetica", "U", 9)
		pdf.SetTextColor(0, 0, 200)
		pdf.CellFormat(0, 5, d.tr("Image: "+url), "", 1, "L", false, 0, url)
		pdf.SetTextColor(0, 0, 0)
		pdf.Ln(2)

	case blocks.TypeDivider:
		left, _, right, _ := pdf.GetMargins()
		width, _ := pdf.GetPageSize()
		y := pdf.GetY() + 2
		pdf.SetDrawColor(180, 180, 180)
		pdf.Line(left, y, width-right, y)
		pdf.Ln(6)

	case blocks.TypeTable:
		d.table(b.Table)
	}

	d.blocks(b.ChildrenOf(), depth+1)
}

func (d *drawer) indent(depth int) {
	left, _, _, _ := d.pdf.GetMargins()
	d.pdf.SetX(left + float64(depth)*indentStep)
}

func (d *drawer) listLine(depth int, text string) {
	d.indent(depth)
	d.pdf.SetFont("Helvetica", "", 10)
	d.pdf.MultiCell(0, 5, text, "", "L", false)
}

// heading sets the font size based on heading level and writes text.
func (d *drawer) heading(text string, level int) {
	sizes := map[int]float64{1: 18, 2: 15, 3: 13}
	size, ok := sizes[level]
	if !ok {
		size = 10
	}
	d.pdf.Ln(4)
	d.pdf.SetFont("Helvetica", "B", size)
	d.pdf.MultiCell(0, size*0.6, text, "", "L", false)
	d.pdf.Ln(2)
}

func (d *drawer) table(t *blocks.TableBlock) {
	if t.TableWidth == 0 {
		return
	}
	pdf := d.pdf
	left, _, right, _ := pdf.GetMargins()
	width, _ := pdf.GetPageSize()
	cellW := (width - left - right) / float64(t.TableWidth)

	pdf.Ln(2)
	for i, row := range t.Children {
		header := i == 0 && t.HasColumnHeader
		style := ""
		if header {
			style = "B"
			pdf.SetFillColor(235, 235, 235)
		}
		pdf.SetFont("Helvetica", style, 9)
		for _, cell := range row.TableRow.Cells {
			pdf.CellFormat(cellW, 6, d.tr(blocks.PlainText(cell)), "1", 0, "L", header, 0, "")
		}
		pdf.Ln(-1)
	}
	pdf.Ln(2)
}
