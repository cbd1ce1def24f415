package serializer

import (
	"strings"
	"unicode"

	"mercator-hq/ponyini/pkg/ponyini/ast"
)

// Document converts a document to canonical dialect text: one row per line,
// joined by "\n", with no terminator after the last row.
func Document(doc *ast.Document) string {
	return Rows(doc.Rows)
}

// File is Document with every line terminated by "\n", the form written to
// disk. An empty document gives an empty file.
func File(doc *ast.Document) string {
	text := Document(doc)
	if text == "" {
		return text
	}
	return text + "\n"
}

// Rows converts rows to canonical dialect text.
func Rows(rows []ast.Row) string {
	var b strings.Builder
	for i, row := range rows {
		if i > 0 {
			b.WriteByte('\n')
		}
		writeFields(&b, row.Fields, true)
	}
	return b.String()
}

// Row converts the fields of one row to a single line of dialect text.
func Row(fields []ast.Field) string {
	var b strings.Builder
	writeFields(&b, fields, true)
	return b.String()
}

// Field converts a single field to dialect text, as it would appear in the
// middle of a row.
func Field(f ast.Field) string {
	var b strings.Builder
	writeField(&b, f, false, false)
	return b.String()
}

// NeedsQuoting reports whether a scalar must be quoted wherever it appears:
// it contains white space, a comma, or a brace.
func NeedsQuoting(text string) bool {
	return strings.IndexFunc(text, func(r rune) bool {
		return unicode.IsSpace(r) || r == '\uFEFF' || r == ',' || r == '{' || r == '}'
	}) >= 0
}

// writeFields writes fields joined by commas. rowStart marks the top level of
// a row, where a leading apostrophe would turn the line into a comment.
func writeFields(b *strings.Builder, fields []ast.Field, rowStart bool) {
	for i, f := range fields {
		if i > 0 {
			b.WriteByte(',')
		}
		writeField(b, f, rowStart && i == 0, i == len(fields)-1)
	}
}

func writeField(b *strings.Builder, f ast.Field, first, last bool) {
	if f.IsList() {
		b.WriteByte('{')
		writeFields(b, f.Items, false)
		b.WriteByte('}')
		return
	}

	if quote(f.Text, first, last) {
		b.WriteByte('"')
		b.WriteString(f.Text)
		b.WriteByte('"')
		return
	}
	b.WriteString(f.Text)
}

// quote decides the quoting of one scalar. Besides NeedsQuoting, an empty
// last field would vanish and a leading apostrophe would comment out the row.
func quote(text string, first, last bool) bool {
	if NeedsQuoting(text) {
		return true
	}
	if text == "" {
		return last
	}
	return first && text[0] == '\''
}
