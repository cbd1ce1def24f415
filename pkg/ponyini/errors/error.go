package errors

import (
	"fmt"
	"strings"

	"mercator-hq/ponyini/pkg/ponyini/ast"
)

// ErrorType categorizes the layer that produced a diagnostic.
type ErrorType string

const (
	ErrorTypeSyntax   ErrorType = "syntax"   // Dialect grammar (quotes, braces, trailing text)
	ErrorTypeRecord   ErrorType = "record"   // Row interpretation (unknown tag, bad group id)
	ErrorTypeCoercion ErrorType = "coercion" // Strict typed value (boolean, point)
	ErrorTypeIO       ErrorType = "io"       // File I/O error
	ErrorTypeLint     ErrorType = "lint"     // Advisory check, never affects conversion
)

// Severity tells whether a diagnostic was recovered from.
type Severity string

const (
	// SeverityWarning marks a condition the parser or transform recovered from.
	SeverityWarning Severity = "warning"
	// SeverityError marks a condition that dropped a record or aborted a read.
	SeverityError Severity = "error"
)

// Code identifies the exact condition a diagnostic reports.
type Code string

const (
	CodeUnterminatedQuote Code = "unterminated quoted string"
	CodeDataAfterQuote    Code = "data after quoted string"
	CodeUnterminatedList  Code = "unterminated list"
	CodeDataAfterList     Code = "data after list"
	CodeSyntax            Code = "syntax error"
	CodeTrailingText      Code = "trailing text"
	CodeNotRepresentable  Code = "not representable"

	CodeUnknownTag      Code = "unknown pony setting"
	CodeDuplicateMIME   Code = "duplicate file type"
	CodeBadGroupID      Code = "illegal behavior group id"
	CodeBadSpeechGroup  Code = "illegal speech group id"
	CodeListForScalar   Code = "list where scalar expected"
	CodeInvalidBoolean  Code = "illegal boolean value"
	CodeInvalidPoint    Code = "illegal point value"
	CodeFileTooLarge    Code = "file too large"
	CodeFileUnreadable  Code = "file unreadable"
)

// Error represents a diagnostic with location, context, and suggestions.
type Error struct {
	Type       ErrorType    // Category of error
	Code       Code         // Exact condition
	Severity   Severity     // Warning (recovered) or error (record dropped)
	Message    string       // Human-readable message
	Location   ast.Location // Source location (file, line, column)
	Context    string       // Surrounding lines of source
	Suggestion string       // Suggested fix (optional)
	Cause      error        // Underlying typed error, if any
}

// Error implements the error interface.
// It returns a formatted message with location and context.
func (e *Error) Error() string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("[%s] %s\n", e.Type, e.Message))

	if e.Location.IsValid() {
		sb.WriteString(fmt.Sprintf("  --> %s\n", e.Location.String()))
	}

	if e.Context != "" {
		sb.WriteString("  |\n")
		sb.WriteString(e.Context)
		sb.WriteString("  |\n")
	}

	if e.Suggestion != "" {
		sb.WriteString(fmt.Sprintf("  = suggestion: %s\n", e.Suggestion))
	}

	return sb.String()
}

// Short returns a single-line form: "location: message".
func (e *Error) Short() string {
	if e.Location.IsValid() {
		return e.Location.String() + ": " + e.Message
	}
	return e.Message
}

// Unwrap returns the underlying typed error.
func (e *Error) Unwrap() error {
	return e.Cause
}

// IsWarning returns true if the diagnostic was recovered from.
func (e *Error) IsWarning() bool {
	return e.Severity != SeverityError
}

// ErrorList is an ordered collection of diagnostics.
// It lets the parser and transform keep going instead of failing on the first problem.
type ErrorList struct {
	Errors []*Error
}

// NewErrorList creates a new empty error list.
func NewErrorList() *ErrorList {
	return &ErrorList{
		Errors: make([]*Error, 0),
	}
}

// Add appends a diagnostic to the list.
func (el *ErrorList) Add(err *Error) {
	el.Errors = append(el.Errors, err)
}

// Append appends every diagnostic of another list.
func (el *ErrorList) Append(other *ErrorList) {
	if other == nil {
		return
	}
	el.Errors = append(el.Errors, other.Errors...)
}

// Warn creates and adds a warning.
func (el *ErrorList) Warn(errType ErrorType, code Code, message string, location ast.Location) *Error {
	err := &Error{
		Type:     errType,
		Code:     code,
		Severity: SeverityWarning,
		Message:  message,
		Location: location,
	}
	el.Add(err)
	return err
}

// AddError creates and adds an error-severity diagnostic.
func (el *ErrorList) AddError(errType ErrorType, code Code, message string, location ast.Location) *Error {
	err := &Error{
		Type:     errType,
		Code:     code,
		Severity: SeverityError,
		Message:  message,
		Location: location,
	}
	el.Add(err)
	return err
}

// HasErrors returns true if the list contains any diagnostics.
func (el *ErrorList) HasErrors() bool {
	return len(el.Errors) > 0
}

// Count returns the number of diagnostics.
func (el *ErrorList) Count() int {
	return len(el.Errors)
}

// Warnings returns the warning-severity diagnostics.
func (el *ErrorList) Warnings() []*Error {
	var result []*Error
	for _, err := range el.Errors {
		if err.IsWarning() {
			result = append(result, err)
		}
	}
	return result
}

// Failures returns the error-severity diagnostics.
func (el *ErrorList) Failures() []*Error {
	var result []*Error
	for _, err := range el.Errors {
		if !err.IsWarning() {
			result = append(result, err)
		}
	}
	return result
}

// Error implements the error interface.
// It returns all diagnostics formatted as a single string.
func (el *ErrorList) Error() string {
	if !el.HasErrors() {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Found %d error(s):\n\n", el.Count()))

	for i, err := range el.Errors {
		sb.WriteString(fmt.Sprintf("Error %d:\n", i+1))
		sb.WriteString(err.Error())
		sb.WriteString("\n")
	}

	return sb.String()
}

// ToError returns nil if the list is empty, otherwise the list itself.
func (el *ErrorList) ToError() error {
	if !el.HasErrors() {
		return nil
	}
	return el
}

// ByType returns all diagnostics of the given type.
func (el *ErrorList) ByType(errType ErrorType) []*Error {
	var result []*Error
	for _, err := range el.Errors {
		if err.Type == errType {
			result = append(result, err)
		}
	}
	return result
}

// ByCode returns all diagnostics with the given code.
func (el *ErrorList) ByCode(code Code) []*Error {
	var result []*Error
	for _, err := range el.Errors {
		if err.Code == code {
			result = append(result, err)
		}
	}
	return result
}

// HasCode returns true if the list contains at least one diagnostic with the given code.
func (el *ErrorList) HasCode(code Code) bool {
	for _, err := range el.Errors {
		if err.Code == code {
			return true
		}
	}
	return false
}
