// Package ast provides the syntax tree for the pony.ini dialect.
//
// The dialect is line oriented: every non-comment line is a Row, and a Row is
// an ordered list of Fields. A Field is either a scalar string or a brace
// delimited list of Fields, so lists may nest to any depth even though real
// pony.ini files only ever use one level.
//
// # Core Types
//
// Field: a Scalar or a List
//
// Row: one logical record; field 0 is the record tag ("Behavior", "Speak", ...)
//
// Document: the rows of one source unit in source line order
//
// Location: source position (file, line, column) used for diagnostics
//
// # Basic Usage
//
//	result := parser.NewParser().ParseString(text, "pony.ini")
//	for _, row := range result.Document.Rows {
//	    fmt.Println(row.Tag(), len(row.Fields))
//	}
//
// The tree carries no schema. Interpreting rows is the job of the records
// package.
package ast
