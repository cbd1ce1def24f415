package ast

// Row is one logical record of the dialect, positionally significant.
type Row struct {
	Fields   []Field
	Location Location
}

// Tag returns the record-type tag: the text of field 0, or "" for an empty row
// or a row that starts with a list.
func (r Row) Tag() string {
	if len(r.Fields) == 0 || r.Fields[0].IsList() {
		return ""
	}
	return r.Fields[0].Text
}

// Len returns the number of fields.
func (r Row) Len() int {
	return len(r.Fields)
}

// Field returns the field at index i and whether it exists.
func (r Row) Field(i int) (Field, bool) {
	if i < 0 || i >= len(r.Fields) {
		return Field{}, false
	}
	return r.Fields[i], true
}

// Text returns the value of field i, or "" when absent.
func (r Row) Text(i int) string {
	f, ok := r.Field(i)
	if !ok {
		return ""
	}
	return f.Value()
}

// Clone returns a deep copy of the row.
func (r Row) Clone() Row {
	return Row{Fields: CloneFields(r.Fields), Location: r.Location}
}

// Document is the ordered rows of one source unit.
// Insertion order is source line order.
type Document struct {
	Source string
	Rows   []Row
}

// NewDocument returns an empty document for the named source.
func NewDocument(source string) *Document {
	return &Document{Source: source, Rows: make([]Row, 0)}
}

// Append adds a row to the end of the document.
func (d *Document) Append(row Row) {
	d.Rows = append(d.Rows, row)
}

// Len returns the number of rows.
func (d *Document) Len() int {
	return len(d.Rows)
}

// ByTag returns the rows whose tag equals tag, in document order.
func (d *Document) ByTag(tag string) []Row {
	var out []Row
	for _, r := range d.Rows {
		if r.Tag() == tag {
			out = append(out, r)
		}
	}
	return out
}

// Clone returns a deep copy of the document.
func (d *Document) Clone() *Document {
	out := &Document{Source: d.Source, Rows: make([]Row, len(d.Rows))}
	for i, r := range d.Rows {
		out.Rows[i] = r.Clone()
	}
	return out
}

// Equal reports whether two documents hold structurally equal rows,
// ignoring locations.
func (d *Document) Equal(other *Document) bool {
	if len(d.Rows) != len(other.Rows) {
		return false
	}
	for i := range d.Rows {
		if !FieldsEqual(d.Rows[i].Fields, other.Rows[i].Fields) {
			return false
		}
	}
	return true
}
