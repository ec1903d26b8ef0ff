package translate

import (
	"strings"
)

const systemPrompt = `You are a professional translator of Arabic Islamic sermons and religious texts into clear, natural English. You preserve the structure of the source text exactly and never add commentary of your own.`

// BuildUserPrompt embeds the raw source text in the fixed instruction template.
// The instructions pin down segmentation, title handling, line-break
// preservation and citation style so the response maps 1:1 onto the source.
func BuildUserPrompt(sourceText string) string {
	var b strings.Builder

	b.WriteString("Translate the following Arabic text into English.\n\n")
	b.WriteString("Rules:\n")
	b.WriteString("1. Split the text into segments on blank lines (one segment per paragraph). Do not merge or reorder paragraphs.\n")
	b.WriteString("2. The first segment is the title of the text.\n")
	b.WriteString("3. If a single paragraph contains internal line breaks, keep them as \\n inside that one segment. Never turn an internal line break into a separate segment.\n")
	b.WriteString("4. Write out all honorifics and religious citations in full, unabbreviated form: for example \"peace and blessings of Allah be upon him\", never \"PBUH\", \"SAW\" or a bare symbol.\n")
	b.WriteString("5. When a segment quotes the Quran, render the quotation according to the Saheeh International translation and cite the surah by its full name and verse number, e.g. \"Surah Al-Baqarah 2:255\".\n")
	b.WriteString("6. Return ONLY a JSON array of objects, one per segment, in source order. Each object has exactly two string fields: \"arabic\" (the original segment) and \"english\" (its translation). No other text.\n\n")
	b.WriteString("Source text:\n")
	b.WriteString(sourceText)
	b.WriteString("\n\nReturn the JSON array now, with one object per blank-line-delimited paragraph.")

	return b.String()
}
