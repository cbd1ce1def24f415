package ast

import "strings"

// FieldKind distinguishes scalar fields from nested lists.
type FieldKind uint8

const (
	// KindScalar is a plain string value.
	KindScalar FieldKind = iota
	// KindList is a brace-delimited list of fields.
	KindList
)

// String returns the kind name.
func (k FieldKind) String() string {
	if k == KindList {
		return "list"
	}
	return "scalar"
}

// Field is a single value within a Row. The zero value is the empty scalar.
type Field struct {
	Kind  FieldKind
	Text  string  // Scalar text, empty for lists
	Items []Field // List children, nil for scalars
}

// Scalar returns a scalar field.
func Scalar(text string) Field {
	return Field{Kind: KindScalar, Text: text}
}

// List returns a list field holding the given children.
func List(items ...Field) Field {
	if items == nil {
		items = []Field{}
	}
	return Field{Kind: KindList, Items: items}
}

// Scalars returns a list field of scalar children.
func Scalars(texts ...string) Field {
	items := make([]Field, len(texts))
	for i, t := range texts {
		items[i] = Scalar(t)
	}
	return List(items...)
}

// IsList returns true if the field is a list.
func (f Field) IsList() bool {
	return f.Kind == KindList
}

// IsScalar returns true if the field is a scalar.
func (f Field) IsScalar() bool {
	return f.Kind == KindScalar
}

// Value returns the scalar text. For a list it returns the children joined
// by commas, nested lists flattened the same way.
func (f Field) Value() string {
	if f.Kind == KindScalar {
		return f.Text
	}
	parts := make([]string, len(f.Items))
	for i, item := range f.Items {
		parts[i] = item.Value()
	}
	return strings.Join(parts, ",")
}

// Strings returns the field as a list of strings: the children's values for a
// list, or a single element for a scalar.
func (f Field) Strings() []string {
	if f.Kind == KindScalar {
		return []string{f.Text}
	}
	out := make([]string, len(f.Items))
	for i, item := range f.Items {
		out[i] = item.Value()
	}
	return out
}

// Equal reports whether two fields are structurally equal.
func (f Field) Equal(other Field) bool {
	if f.Kind != other.Kind {
		return false
	}
	if f.Kind == KindScalar {
		return f.Text == other.Text
	}
	return FieldsEqual(f.Items, other.Items)
}

// Clone returns a deep copy of the field.
func (f Field) Clone() Field {
	if f.Kind == KindScalar {
		return f
	}
	return List(CloneFields(f.Items)...)
}

// FieldsEqual reports whether two field sequences are structurally equal.
func FieldsEqual(a, b []Field) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Equal(b[i]) {
			return false
		}
	}
	return true
}

// CloneFields deep-copies a field sequence.
func CloneFields(fields []Field) []Field {
	if fields == nil {
		return nil
	}
	out := make([]Field, len(fields))
	for i, f := range fields {
		out[i] = f.Clone()
	}
	return out
}
