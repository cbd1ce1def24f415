package errors

import (
	"fmt"
	"strings"
)

// ExtractContext returns the lines of source around line (1-based), with an
// arrow on the offending line and a caret under column when it is known.
// It works on the in-memory text so diagnostics can be enriched without
// touching the filesystem.
func ExtractContext(source string, line, column, contextLines int) string {
	if line <= 0 || source == "" {
		return ""
	}

	lines := strings.Split(strings.ReplaceAll(source, "\r\n", "\n"), "\n")

	errorLine := line - 1
	if errorLine >= len(lines) {
		return ""
	}
	startLine := errorLine - contextLines
	endLine := errorLine + contextLines

	if startLine < 0 {
		startLine = 0
	}
	if endLine >= len(lines) {
		endLine = len(lines) - 1
	}

	var sb strings.Builder
	maxLineNumWidth := len(fmt.Sprintf("%d", endLine+1))

	for i := startLine; i <= endLine; i++ {
		lineNumStr := fmt.Sprintf("%*d", maxLineNumWidth, i+1)
		prefix := "  "
		if i == errorLine {
			prefix = "->"
		}

		sb.WriteString(fmt.Sprintf("%s %s | %s\n", prefix, lineNumStr, lines[i]))

		if i == errorLine && column > 0 {
			padding := strings.Repeat(" ", column-1)
			sb.WriteString(fmt.Sprintf("   %s | %s^\n", strings.Repeat(" ", maxLineNumWidth), padding))
		}
	}

	return sb.String()
}

// WithContext fills in the context of every diagnostic in the list from source.
func (el *ErrorList) WithContext(source string, contextLines int) *ErrorList {
	for _, err := range el.Errors {
		if err.Context == "" && err.Location.IsValid() {
			err.Context = ExtractContext(source, err.Location.Line, err.Location.Column, contextLines)
		}
	}
	return el
}
