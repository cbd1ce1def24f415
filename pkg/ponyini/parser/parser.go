package parser

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"mercator-hq/ponyini/pkg/ponyini/ast"
	ponyerrors "mercator-hq/ponyini/pkg/ponyini/errors"
)

// Parser parses pony.ini source units into Documents.
// It is stateless between calls and safe for concurrent use.
type Parser struct {
	maxFileSize  int64        // Maximum input size in bytes (default: 10MB)
	strictMode   bool         // Diagnostics are returned as an error by Result.Err
	contextLines int          // Source lines of context attached to diagnostics
	logger       *slog.Logger // Optional sink for diagnostics
}

// NewParser creates a new parser with default configuration.
func NewParser() *Parser {
	return &Parser{
		maxFileSize:  10 * 1024 * 1024, // 10MB
		contextLines: 1,
	}
}

// WithMaxFileSize sets the maximum input size limit.
func (p *Parser) WithMaxFileSize(size int64) *Parser {
	p.maxFileSize = size
	return p
}

// WithStrictMode makes Result.Err report every diagnostic as an error.
func (p *Parser) WithStrictMode(strict bool) *Parser {
	p.strictMode = strict
	return p
}

// WithContextLines sets how many source lines surround each diagnostic.
// Zero disables context extraction.
func (p *Parser) WithContextLines(n int) *Parser {
	p.contextLines = n
	return p
}

// WithLogger logs every diagnostic at warn level as it is found.
func (p *Parser) WithLogger(logger *slog.Logger) *Parser {
	p.logger = logger
	return p
}

// Result is a best-effort Document together with the diagnostics found
// while building it.
type Result struct {
	Document    *ast.Document
	Diagnostics *ponyerrors.ErrorList
	strict      bool
}

// Err returns the diagnostics as an error in strict mode, nil otherwise.
func (r *Result) Err() error {
	if !r.strict {
		return nil
	}
	return r.Diagnostics.ToError()
}

// Parse reads and parses the file at path. The error is only non-nil when the
// file cannot be read or exceeds the size limit; syntax problems are reported
// in the Result.
func (p *Parser) Parse(path string) (*Result, error) {
	fileInfo, err := os.Stat(path)
	if err != nil {
		return nil, &ponyerrors.Error{
			Type:     ponyerrors.ErrorTypeIO,
			Code:     ponyerrors.CodeFileUnreadable,
			Severity: ponyerrors.SeverityError,
			Message:  fmt.Sprintf("Failed to access file: %v", err),
			Location: ast.Location{File: path},
			Cause:    err,
		}
	}

	if fileInfo.Size() > p.maxFileSize {
		return nil, p.tooLarge(fileInfo.Size(), path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &ponyerrors.Error{
			Type:     ponyerrors.ErrorTypeIO,
			Code:     ponyerrors.CodeFileUnreadable,
			Severity: ponyerrors.SeverityError,
			Message:  fmt.Sprintf("Failed to read file: %v", err),
			Location: ast.Location{File: path},
			Cause:    err,
		}
	}

	return p.ParseBytes(data, path)
}

// ParseBytes parses dialect text from a byte slice.
func (p *Parser) ParseBytes(data []byte, source string) (*Result, error) {
	if int64(len(data)) > p.maxFileSize {
		return nil, p.tooLarge(int64(len(data)), source)
	}
	return p.ParseString(string(data), source), nil
}

// ParseString parses dialect text. Every line is an independent grammar root:
// blank lines and lines starting with an apostrophe are skipped, every other
// line becomes exactly one Row.
func (p *Parser) ParseString(text, source string) *Result {
	doc := ast.NewDocument(source)
	diags := ponyerrors.NewErrorList()

	for i, raw := range splitLines(text) {
		line := TrimSpace(raw)
		if line == "" || line[0] == '\'' {
			continue
		}

		loc := ast.Location{File: source, Line: i + 1}
		indent := len(raw) - len(trimLeft(raw))
		report := func(code ponyerrors.Code, column int, near string) {
			p.record(diags, code, loc.WithColumn(indent+column), near)
		}

		fields, rest := ParseLine(line, make([]ast.Field, 0, 24), report)
		if rest != "" {
			report(ponyerrors.CodeTrailingText, len(line)-len(rest)+1, rest)
		}

		doc.Append(ast.Row{Fields: fields, Location: loc})
	}

	if p.contextLines > 0 && diags.HasErrors() {
		diags.WithContext(text, p.contextLines)
	}

	return &Result{Document: doc, Diagnostics: diags, strict: p.strictMode}
}

// record adds a syntax diagnostic and logs it when a logger is set.
func (p *Parser) record(diags *ponyerrors.ErrorList, code ponyerrors.Code, loc ast.Location, near string) {
	message := string(code)
	switch code {
	case ponyerrors.CodeUnterminatedQuote, ponyerrors.CodeUnterminatedList:
	default:
		message = fmt.Sprintf("%s: %s", code, near)
	}

	diags.Warn(ponyerrors.ErrorTypeSyntax, code, message, loc)

	if p.logger != nil {
		p.logger.Warn("pony.ini syntax problem",
			"code", string(code),
			"location", loc.String(),
			"near", near,
		)
	}
}

func (p *Parser) tooLarge(size int64, source string) *ponyerrors.Error {
	return &ponyerrors.Error{
		Type:     ponyerrors.ErrorTypeIO,
		Code:     ponyerrors.CodeFileTooLarge,
		Severity: ponyerrors.SeverityError,
		Message:  fmt.Sprintf("File size %d exceeds maximum %d bytes", size, p.maxFileSize),
		Location: ast.Location{File: source},
	}
}

// splitLines splits on "\n" and "\r\n". A lone "\r" is not a terminator.
func splitLines(text string) []string {
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return lines
}
