package ast

import "fmt"

// Location represents a position in a pony.ini source unit.
// It enables precise diagnostics with file, line, and column information.
type Location struct {
	File   string // Source name (path or a memory:// name)
	Line   int    // Line number (1-based)
	Column int    // Column number in bytes (1-based, 0 if unknown)
}

// String returns a human-readable representation of the location.
// Format: "file:line:column", or "file:line" when the column is unknown.
func (l Location) String() string {
	if l.File == "" && l.Line == 0 {
		return "<unknown>"
	}
	file := l.File
	if file == "" {
		file = "<input>"
	}
	if l.Column > 0 {
		return fmt.Sprintf("%s:%d:%d", file, l.Line, l.Column)
	}
	return fmt.Sprintf("%s:%d", file, l.Line)
}

// IsValid returns true if the location has line information.
func (l Location) IsValid() bool {
	return l.Line > 0
}

// WithColumn returns a copy of the location pointing at the given column.
func (l Location) WithColumn(column int) Location {
	l.Column = column
	return l
}
