// Package docx builds WordprocessingML documents and packs them into the
// OPC zip container that Word reads. It covers only what an exported
// translation needs: paragraphs, one fixed-layout table, page geometry and
// bidirectional text.
package docx

import (
	"strconv"
	"strings"
)

// Alignment is a paragraph justification value.
type Alignment string

const (
	AlignLeft   Alignment = "left"
	AlignRight  Alignment = "right"
	AlignCenter Alignment = "center"
)

// Run is a contiguous piece of text with uniform formatting.
type Run struct {
	Text      string
	Bold      bool
	Underline bool
	RTL       bool
}

// Paragraph is a block of runs with paragraph-level properties.
type Paragraph struct {
	Runs  []Run
	Align Alignment
	Bidi  bool // right-to-left paragraph direction
}

// Cell is one table cell holding one or more paragraphs.
type Cell struct {
	Paragraphs []Paragraph
	Width      int // twips
}

// Row is one table row.
type Row struct {
	Cells []Cell
}

// Table is a fixed-layout table spanning the given width.
type Table struct {
	Rows      []Row
	ColWidths []int // twips, one per column
}

// Block is a top-level body element: *Paragraph or *Table.
type Block interface {
	writeXML(b *strings.Builder)
}

// Document is an in-memory document description. Dimensions are in twips
// (1/20 point); US Letter is 12240x15840 portrait.
type Document struct {
	Blocks     []Block
	PageWidth  int
	PageHeight int
	Margin     int
	Landscape  bool
}

// AddParagraph appends a paragraph block.
func (d *Document) AddParagraph(p Paragraph) {
	d.Blocks = append(d.Blocks, &p)
}

// AddTable appends a table block.
func (d *Document) AddTable(t Table) {
	d.Blocks = append(d.Blocks, &t)
}

// escape replaces the five XML-significant characters. Everything else,
// including Arabic text, passes through as UTF-8.
func escape(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch r {
		case '&':
			b.WriteString("&amp;")
		case '<':
			b.WriteString("&lt;")
		case '>':
			b.WriteString("&gt;")
		case '"':
			b.WriteString("&quot;")
		case '\'':
			b.WriteString("&apos;")
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

func (p *Paragraph) writeXML(b *strings.Builder) {
	b.WriteString("<w:p>")

	if p.Align != "" || p.Bidi {
		b.WriteString("<w:pPr>")
		if p.Bidi {
			b.WriteString("<w:bidi/>")
		}
		if p.Align != "" {
			b.WriteString(`<w:jc w:val="` + string(p.Align) + `"/>`)
		}
		b.WriteString("</w:pPr>")
	}

	for _, r := range p.Runs {
		b.WriteString("<w:r>")
		if r.Bold || r.Underline || r.RTL {
			b.WriteString("<w:rPr>")
			if r.Bold {
				b.WriteString("<w:b/><w:bCs/>")
			}
			if r.Underline {
				b.WriteString(`<w:u w:val="single"/>`)
			}
			if r.RTL {
				b.WriteString("<w:rtl/>")
			}
			b.WriteString("</w:rPr>")
		}
		b.WriteString(`<w:t xml:space="preserve">`)
		b.WriteString(escape(r.Text))
		b.WriteString("</w:t></w:r>")
	}

	b.WriteString("</w:p>")
}

func (t *Table) writeXML(b *strings.Builder) {
	total := 0
	for _, w := range t.ColWidths {
		total += w
	}

	b.WriteString("<w:tbl><w:tblPr>")
	b.WriteString(`<w:tblW w:w="` + strconv.Itoa(total) + `" w:type="dxa"/>`)
	b.WriteString(`<w:tblLayout w:type="fixed"/>`)
	b.WriteString("<w:tblBorders>")
	for _, edge := range []string{"top", "left", "bottom", "right", "insideH", "insideV"} {
		b.WriteString(`<w:` + edge + ` w:val="single" w:sz="4" w:space="0" w:color="auto"/>`)
	}
	b.WriteString("</w:tblBorders></w:tblPr><w:tblGrid>")
	for _, w := range t.ColWidths {
		b.WriteString(`<w:gridCol w:w="` + strconv.Itoa(w) + `"/>`)
	}
	b.WriteString("</w:tblGrid>")

	for _, row := range t.Rows {
		b.WriteString("<w:tr>")
		for _, cell := range row.Cells {
			b.WriteString("<w:tc><w:tcPr>")
			b.WriteString(`<w:tcW w:w="` + strconv.Itoa(cell.Width) + `" w:type="dxa"/>`)
			b.WriteString("</w:tcPr>")
			// A cell must contain at least one paragraph to be valid
			if len(cell.Paragraphs) == 0 {
				b.WriteString("<w:p/>")
			}
			for i := range cell.Paragraphs {
				cell.Paragraphs[i].writeXML(b)
			}
			b.WriteString("</w:tc>")
		}
		b.WriteString("</w:tr>")
	}

	b.WriteString("</w:tbl>")
}

// documentXML renders the main document part.
func (d *Document) documentXML() string {
	var b strings.Builder
	b.WriteString(xmlHeader)
	b.WriteString(`<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>`)

	for _, blk := range d.Blocks {
		blk.writeXML(&b)
	}

	b.WriteString("<w:sectPr>")
	b.WriteString(`<w:pgSz w:w="` + strconv.Itoa(d.PageWidth) + `" w:h="` + strconv.Itoa(d.PageHeight) + `"`)
	if d.Landscape {
		b.WriteString(` w:orient="landscape"`)
	}
	b.WriteString("/>")
	m := strconv.Itoa(d.Margin)
	b.WriteString(`<w:pgMar w:top="` + m + `" w:right="` + m + `" w:bottom="` + m + `" w:left="` + m + `" w:header="` + m + `" w:footer="` + m + `" w:gutter="0"/>`)
	b.WriteString("</w:sectPr></w:body></w:document>")

	return b.String()
}
