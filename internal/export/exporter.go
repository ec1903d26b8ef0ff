// Package export turns an ordered segment-pair sequence into the
// downloadable two-column Word document.
package export

import (
	"fmt"
	"io"
	"log"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/minbar-translate/backend/internal/docx"
	"github.com/minbar-translate/backend/internal/translate"
)

// Page geometry in twips: landscape US Letter with 0.5" margins.
// The table consumes the full usable width, split evenly.
const (
	pageWidth   = 15840
	pageHeight  = 12240
	pageMargin  = 720
	usableWidth = pageWidth - 2*pageMargin
	columnWidth = usableWidth / 2
)

const (
	maxTitleLen    = 50
	fallbackTitle  = "Khutbah Translation"
	filenameSuffix = " (Arabic + English)"

	// Extension and MIME type of the packed document
	Extension   = ".docx"
	ContentType = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
)

// TitleCase capitalizes each word and lowercases the rest, regardless of
// input casing. Applying it twice yields the same result as once.
func TitleCase(s string) string {
	return cases.Title(language.English).String(s)
}

// SanitizeTitle reduces a document title to filename-safe text: only
// letters, digits, spaces and hyphens survive, internal whitespace is
// collapsed, and the result is trimmed and capped at maxTitleLen runes.
// An empty result falls back to a default title.
func SanitizeTitle(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch {
		case unicode.IsLetter(r), unicode.IsDigit(r), r == '-':
			b.WriteRune(r)
		case unicode.IsSpace(r):
			b.WriteRune(' ')
		}
	}

	out := strings.Join(strings.Fields(b.String()), " ")
	if runes := []rune(out); len(runes) > maxTitleLen {
		out = strings.TrimSpace(string(runes[:maxTitleLen]))
	}
	if out == "" {
		out = fallbackTitle
	}
	return out
}

// Filename derives the download filename from the title pair's English
// text: title-cased, sanitized, suffixed with the language-pair label.
func Filename(pairs []translate.SegmentPair) string {
	title := ""
	if len(pairs) > 0 {
		title = pairs[0].English
	}
	return SanitizeTitle(TitleCase(title)) + filenameSuffix + Extension
}

// splitLines turns embedded line breaks into one paragraph per visual line
// so internal breaks survive inside a single cell.
func splitLines(text string) []string {
	return strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
}

func titleParagraphs(text string, rtl bool) []docx.Paragraph {
	var out []docx.Paragraph
	for _, line := range splitLines(text) {
		out = append(out, docx.Paragraph{
			Align: docx.AlignCenter,
			Bidi:  rtl,
			Runs:  []docx.Run{{Text: line, Bold: true, Underline: true, RTL: rtl}},
		})
	}
	return out
}

func cellParagraphs(text string, rtl bool) []docx.Paragraph {
	align := docx.AlignLeft
	if rtl {
		align = docx.AlignRight
	}
	var out []docx.Paragraph
	for _, line := range splitLines(text) {
		out = append(out, docx.Paragraph{
			Align: align,
			Bidi:  rtl,
			Runs:  []docx.Run{{Text: line, RTL: rtl}},
		})
	}
	return out
}

// BuildDocument assembles the document description: the title pair as a
// centered bilingual heading, the remaining pairs as rows of a two-column
// table with the Arabic column right-to-left.
func BuildDocument(pairs []translate.SegmentPair) *docx.Document {
	doc := &docx.Document{
		PageWidth:  pageWidth,
		PageHeight: pageHeight,
		Margin:     pageMargin,
		Landscape:  true,
	}

	title := pairs[0]
	for _, p := range titleParagraphs(title.Arabic, true) {
		doc.AddParagraph(p)
	}
	for _, p := range titleParagraphs(TitleCase(title.English), false) {
		doc.AddParagraph(p)
	}

	if len(pairs) == 1 {
		return doc
	}

	// Spacer between heading and table
	doc.AddParagraph(docx.Paragraph{})

	table := docx.Table{ColWidths: []int{columnWidth, columnWidth}}
	for _, pair := range pairs[1:] {
		table.Rows = append(table.Rows, docx.Row{
			Cells: []docx.Cell{
				{Width: columnWidth, Paragraphs: cellParagraphs(pair.Arabic, true)},
				{Width: columnWidth, Paragraphs: cellParagraphs(pair.English, false)},
			},
		})
	}
	doc.AddTable(table)

	return doc
}

// Export packs the pair sequence into a .docx written to w and returns the
// filename the download should carry. An empty sequence is a logged no-op.
func Export(pairs []translate.SegmentPair, w io.Writer) (string, error) {
	if len(pairs) == 0 {
		log.Printf("[export] nothing to export, skipping")
		return "", nil
	}

	doc := BuildDocument(pairs)
	if err := doc.Pack(w); err != nil {
		return "", fmt.Errorf("pack document: %w", err)
	}

	filename := Filename(pairs)
	log.Printf("[export] packed %d segment pairs into %q", len(pairs), filename)
	return filename, nil
}
