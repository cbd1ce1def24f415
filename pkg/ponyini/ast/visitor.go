package ast

// Visitor provides an interface for traversing a Document.
// Implement it to inspect or collect rows and fields (linting, statistics).
type Visitor interface {
	VisitRow(index int, row *Row) error
	VisitField(row *Row, path []int, field *Field) error
}

// Walk traverses the document in order and calls the visitor for every row and
// every field, depth first. path holds the field's index at each nesting
// level. It returns the first error encountered.
func Walk(doc *Document, visitor Visitor) error {
	for i := range doc.Rows {
		row := &doc.Rows[i]
		if err := visitor.VisitRow(i, row); err != nil {
			return err
		}
		for j := range row.Fields {
			if err := walkField(row, []int{j}, &row.Fields[j], visitor); err != nil {
				return err
			}
		}
	}
	return nil
}

// walkField recursively walks a field and its children.
func walkField(row *Row, path []int, field *Field, visitor Visitor) error {
	if err := visitor.VisitField(row, path, field); err != nil {
		return err
	}
	for k := range field.Items {
		child := append(append([]int(nil), path...), k)
		if err := walkField(row, child, &field.Items[k], visitor); err != nil {
			return err
		}
	}
	return nil
}
