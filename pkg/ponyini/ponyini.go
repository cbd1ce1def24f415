package ponyini

import (
	"strings"

	"mercator-hq/ponyini/pkg/ponyini/ast"
	ponyerrors "mercator-hq/ponyini/pkg/ponyini/errors"
	"mercator-hq/ponyini/pkg/ponyini/parser"
	"mercator-hq/ponyini/pkg/ponyini/records"
	"mercator-hq/ponyini/pkg/ponyini/sanitize"
	"mercator-hq/ponyini/pkg/ponyini/serializer"
)

// Conversion is a parsed document together with its transformed records.
type Conversion struct {
	Document *ast.Document
	Result   *records.Result

	// Diagnostics holds the parse diagnostics followed by the transform's.
	Diagnostics *ponyerrors.ErrorList
}

// Config returns the transformed pony configuration.
func (c *Conversion) Config() *records.Config {
	return c.Result.Config
}

// Parse parses a pony.ini file without interpreting it.
func Parse(path string) (*parser.Result, error) {
	return parser.NewParser().Parse(path)
}

// Format returns the canonical text of a pony.ini source together with the
// diagnostics found while reading it and the rows whose canonical text would
// not read back the same.
func Format(data []byte, source string) (string, *ponyerrors.ErrorList, error) {
	res, err := parser.NewParser().ParseBytes(data, source)
	if err != nil {
		return "", nil, err
	}
	diags := ponyerrors.NewErrorList()
	diags.Append(res.Diagnostics)
	diags.Append(serializer.Check(res.Document))
	return serializer.Document(res.Document), diags, nil
}

// Convert parses a pony.ini source and transforms it into a Config.
// The error is non-nil only when the source is too large or, with
// records.WithStrictCoercion, a row fails coercion.
func Convert(data []byte, source string, opts ...records.Option) (*Conversion, error) {
	res, err := parser.NewParser().ParseBytes(data, source)
	if err != nil {
		return nil, err
	}
	return Transform(res, opts...)
}

// ConvertFile is Convert for a file on disk.
func ConvertFile(path string, opts ...records.Option) (*Conversion, error) {
	res, err := Parse(path)
	if err != nil {
		return nil, err
	}
	return Transform(res, opts...)
}

// Transform runs the record transform over an already parsed result.
func Transform(res *parser.Result, opts ...records.Option) (*Conversion, error) {
	out, err := records.NewTransformer(opts...).Transform(res.Document)

	diags := ponyerrors.NewErrorList()
	diags.Append(res.Diagnostics)
	diags.Append(out.Diagnostics)

	return &Conversion{Document: res.Document, Result: out, Diagnostics: diags}, err
}

// Repair returns a copy of doc with the file-name fields sanitized the same
// way directory entries are renamed: Name field 1, Behavior image fields 6
// and 7, and every list item of Speak field 3 on Soundboard speech lines.
// Fields that are absent are left absent.
func Repair(doc *ast.Document) *ast.Document {
	out := doc.Clone()
	for i := range out.Rows {
		row := &out.Rows[i]
		switch records.Tag(row.Tag()) {
		case records.TagName:
			sanitizeField(row, 1)
		case records.TagBehavior:
			sanitizeField(row, 6)
			sanitizeField(row, 7)
		case records.TagSpeak:
			if !strings.Contains(row.Text(1), "Soundboard") {
				continue
			}
			if f, ok := row.Field(3); ok && f.IsList() {
				for k := range row.Fields[3].Items {
					item := &row.Fields[3].Items[k]
					if item.IsScalar() {
						item.Text = sanitize.Name(item.Text)
					}
				}
			}
		}
	}
	return out
}

func sanitizeField(row *ast.Row, i int) {
	if f, ok := row.Field(i); ok && f.IsScalar() {
		row.Fields[i].Text = sanitize.Name(f.Text)
	}
}
