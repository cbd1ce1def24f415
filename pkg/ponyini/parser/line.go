package parser

import (
	"strings"
	"unicode"

	"mercator-hq/ponyini/pkg/ponyini/ast"
	ponyerrors "mercator-hq/ponyini/pkg/ponyini/errors"
)

// Reporter receives the recovered conditions found by ParseLine.
// column is the 1-based byte offset into the line that was passed to ParseLine
// and near is the unconsumed text at that point.
type Reporter func(code ponyerrors.Code, column int, near string)

// ParseLine parses one logical line of dialect text. It appends every field it
// can read to row and returns the grown row together with the unconsumed
// remainder of the line. A non-empty remainder always starts with '}'.
//
// ParseLine never fails: malformed input is passed to report (which may be
// nil) and parsing continues from the best recovery point.
func ParseLine(line string, row []ast.Field, report Reporter) ([]ast.Field, string) {
	lp := lineParser{line: line, report: report}
	return lp.fields(line, row)
}

// lineParser holds the line being read so diagnostics can be placed.
// All cursor state lives in the string slices passed between its methods.
type lineParser struct {
	line   string
	report Reporter
}

// emit reports a condition at the start of rest.
func (lp *lineParser) emit(code ponyerrors.Code, rest string) {
	if lp.report == nil {
		return
	}
	lp.report(code, len(lp.line)-len(rest)+1, rest)
}

// fields reads fields until the line is exhausted or a '}' closes the
// enclosing list.
func (lp *lineParser) fields(s string, row []ast.Field) ([]ast.Field, string) {
	var f ast.Field
	for {
		s = trimLeft(s)
		if s == "" {
			return row, s
		}

		switch s[0] {
		case '"':
			f, s = lp.quoted(s)
			row = append(row, f)

		case ',':
			row = append(row, ast.Scalar(""))
			s = s[1:]

		case '{':
			f, s = lp.list(s)
			row = append(row, f)

		case '}':
			return row, s

		default:
			f, s = lp.bare(s)
			row = append(row, f)
		}
	}
}

// quoted reads a "..." scalar. There is no escape mechanism.
func (lp *lineParser) quoted(s string) (ast.Field, string) {
	open := s
	s = s[1:]

	end := strings.IndexByte(s, '"')
	if end < 0 {
		lp.emit(ponyerrors.CodeUnterminatedQuote, open)
		return ast.Scalar(s), ""
	}

	value := s[:end]
	s = trimLeft(s[end+1:])
	if s != "" {
		if s[0] == ',' {
			s = s[1:]
		} else if s[0] != '}' {
			lp.emit(ponyerrors.CodeDataAfterQuote, s)
		}
	}
	return ast.Scalar(value), s
}

// list reads a {...} list, recursing into fields for its children.
func (lp *lineParser) list(s string) (ast.Field, string) {
	open := s
	items, s := lp.fields(s[1:], make([]ast.Field, 0, 4))
	s = trimLeft(s)

	if s == "" {
		lp.emit(ponyerrors.CodeUnterminatedList, open)
		return ast.List(items...), s
	}

	if s[0] != '}' {
		lp.emit(ponyerrors.CodeDataAfterList, s)
	} else {
		s = trimLeft(s[1:])
	}
	if s != "" && s[0] == ',' {
		s = s[1:]
	}
	return ast.List(items...), s
}

// bare reads an unquoted scalar up to the next ',' or '}'.
func (lp *lineParser) bare(s string) (ast.Field, string) {
	end := strings.IndexAny(s, ",}")
	if end < 0 {
		end = len(s)
	}

	value := TrimSpace(s[:end])
	s = s[end:]
	if s != "" {
		if s[0] == ',' {
			s = s[1:]
		} else if s[0] != '}' {
			lp.emit(ponyerrors.CodeSyntax, s)
		}
	}
	return ast.Scalar(value), s
}

// IsSpace reports whether r is whitespace in the dialect: Unicode white space
// plus the byte order mark, which editors leave at the start of files.
func IsSpace(r rune) bool {
	return unicode.IsSpace(r) || r == '\uFEFF'
}

// TrimSpace trims dialect whitespace from both ends of s.
func TrimSpace(s string) string {
	return strings.TrimFunc(s, IsSpace)
}

func trimLeft(s string) string {
	return strings.TrimLeftFunc(s, IsSpace)
}
