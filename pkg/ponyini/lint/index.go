package lint

import (
	"mercator-hq/ponyini/pkg/ponyini/ast"
	"mercator-hq/ponyini/pkg/ponyini/records"
)

// index collects the names a document defines and the files each row
// references. It implements ast.Visitor.
type index struct {
	names     []string
	behaviors map[string]bool
	speeches  map[string]bool
	files     map[*ast.Row][]string
}

func newIndex() *index {
	return &index{
		behaviors: make(map[string]bool),
		speeches:  make(map[string]bool),
		files:     make(map[*ast.Row][]string),
	}
}

func (x *index) VisitRow(_ int, row *ast.Row) error {
	switch records.Tag(row.Tag()) {
	case records.TagName:
		x.names = append(x.names, row.Text(1))
	case records.TagBehavior:
		x.behaviors[row.Text(1)] = true
	case records.TagSpeak:
		x.speeches[row.Text(1)] = true
	}
	return nil
}

func (x *index) VisitField(row *ast.Row, path []int, field *ast.Field) error {
	if !field.IsScalar() || field.Text == "" || !isFileField(records.Tag(row.Tag()), path) {
		return nil
	}
	x.files[row] = append(x.files[row], field.Text)
	return nil
}

// isFileField reports whether the field at path holds a file name: behavior
// and effect images, and speech sound files given as a scalar or list items.
func isFileField(tag records.Tag, path []int) bool {
	switch tag {
	case records.TagBehavior:
		return len(path) == 1 && (path[0] == 6 || path[0] == 7)
	case records.TagEffect:
		return len(path) == 1 && (path[0] == 3 || path[0] == 4)
	case records.TagSpeak:
		return path[0] == 3 && len(path) <= 2
	}
	return false
}
