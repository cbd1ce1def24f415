package serializer

import (
	"errors"
	"fmt"
	"strings"

	"mercator-hq/ponyini/pkg/ponyini/ast"
	ponyerrors "mercator-hq/ponyini/pkg/ponyini/errors"
	"mercator-hq/ponyini/pkg/ponyini/parser"
)

// ErrNotRepresentable is returned by Verify for scalars the dialect cannot
// express. The only such scalars contain a double quote, since quoted values
// have no escape mechanism.
var ErrNotRepresentable = errors.New("value not representable in pony.ini")

// MismatchError reports canonical text that does not re-parse to its input.
type MismatchError struct {
	Text   string      // Canonical text that was re-parsed
	Want   []ast.Field // Fields that were serialized
	Got    []ast.Field // Fields read back
	Reason string      // First problem found
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("round trip of %q failed: %s", e.Text, e.Reason)
}

// Verify serializes the fields of a row, re-parses the text with the field
// parser and checks that the same field tree comes back.
func Verify(fields []ast.Field) error {
	if err := representable(fields); err != nil {
		return err
	}

	text := Row(fields)
	var problems []string
	got, rest := parser.ParseLine(text, nil, func(code ponyerrors.Code, column int, near string) {
		problems = append(problems, fmt.Sprintf("%s at column %d", code, column))
	})

	mismatch := &MismatchError{Text: text, Want: fields, Got: got}
	switch {
	case len(problems) > 0:
		mismatch.Reason = strings.Join(problems, "; ")
	case rest != "":
		mismatch.Reason = "trailing text: " + rest
	case !ast.FieldsEqual(got, fields):
		mismatch.Reason = "field values differ"
	default:
		return nil
	}
	return mismatch
}

// VerifyDocument runs Verify on every row and additionally checks that no row
// would be dropped as blank when the whole document is read back.
func VerifyDocument(doc *ast.Document) error {
	if diags := Check(doc); diags.HasErrors() {
		first := diags.Errors[0]
		return fmt.Errorf("%s: %w", first.Location, first.Cause)
	}

	back := parser.NewParser().WithContextLines(0).ParseString(Document(doc), doc.Source)
	if !back.Document.Equal(doc) {
		return fmt.Errorf("%s: document round trip changed %d row(s) into %d",
			doc.Source, doc.Len(), back.Document.Len())
	}
	return nil
}

// Check verifies every row of doc and returns one warning per row whose
// canonical text would not read back as the same fields.
func Check(doc *ast.Document) *ponyerrors.ErrorList {
	diags := ponyerrors.NewErrorList()
	for _, row := range doc.Rows {
		var err error
		if len(row.Fields) == 0 {
			err = fmt.Errorf("%w: empty row", ErrNotRepresentable)
		} else {
			err = Verify(row.Fields)
		}
		if err != nil {
			w := diags.Warn(ponyerrors.ErrorTypeSyntax, ponyerrors.CodeNotRepresentable, err.Error(), row.Location)
			w.Cause = err
		}
	}
	return diags
}

// representable rejects scalars containing a double quote, or line breaks that
// would split the row.
func representable(fields []ast.Field) error {
	for _, f := range fields {
		if f.IsList() {
			if err := representable(f.Items); err != nil {
				return err
			}
			continue
		}
		if strings.ContainsAny(f.Text, "\"\r\n") {
			return fmt.Errorf("%w: %q", ErrNotRepresentable, f.Text)
		}
	}
	return nil
}
