package lint

import (
	"fmt"
	"os"
	"path/filepath"

	"mercator-hq/ponyini/pkg/ponyini/ast"
	ponyerrors "mercator-hq/ponyini/pkg/ponyini/errors"
	"mercator-hq/ponyini/pkg/ponyini/records"
	"mercator-hq/ponyini/pkg/ponyini/sanitize"
)

// Lint codes.
const (
	CodeMissingName     ponyerrors.Code = "missing pony name"
	CodeDuplicate       ponyerrors.Code = "duplicate definition"
	CodeUnknownMove     ponyerrors.Code = "unknown movement"
	CodeUnknownLocation ponyerrors.Code = "unknown location"
	CodeUnknownBehavior ponyerrors.Code = "unknown behavior"
	CodeUnknownSpeech   ponyerrors.Code = "unknown speech"
	CodeMissingFile     ponyerrors.Code = "missing file"
	CodeUnsafeFileName  ponyerrors.Code = "unsafe file name"
)

// Linter reports likely mistakes in a pony.ini that the transform accepts
// silently. Every finding is a warning of type ErrorTypeLint.
type Linter struct {
	dir string
}

// Option configures a Linter.
type Option func(*Linter)

// WithDir checks that the image and sound files a document references exist
// in dir.
func WithDir(dir string) Option {
	return func(l *Linter) {
		l.dir = dir
	}
}

// New creates a linter.
func New(opts ...Option) *Linter {
	l := &Linter{}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Lint checks doc and returns its findings in document order.
func (l *Linter) Lint(doc *ast.Document) *ponyerrors.ErrorList {
	idx := newIndex()
	// The index never fails.
	_ = ast.Walk(doc, idx)

	c := &checker{index: idx, dir: l.dir, diags: ponyerrors.NewErrorList()}
	if len(idx.names) == 0 {
		c.warn(CodeMissingName, "no Name row", ast.Location{File: doc.Source}, "")
	}
	for i := range doc.Rows {
		c.row(&doc.Rows[i])
	}
	return c.diags
}

type checker struct {
	*index
	dir   string
	diags *ponyerrors.ErrorList
	seen  map[string]bool
}

func (c *checker) row(row *ast.Row) {
	switch records.Tag(row.Tag()) {
	case records.TagBehavior:
		name := row.Text(1)
		c.duplicate(records.TagBehavior, name, row)

		if move := row.Text(8); move != "" {
			if _, ok := records.ParseAllowedMove(move); !ok {
				c.warn(CodeUnknownMove,
					fmt.Sprintf("behavior %q: unknown movement %q", name, move),
					row.Location, ponyerrors.SuggestValue(move, records.AllowedMoveNames()))
			}
		}
		if linked := row.Text(9); linked != "" && !c.behaviors[linked] {
			c.warn(CodeUnknownBehavior,
				fmt.Sprintf("behavior %q: linked behavior %q is not defined", name, linked),
				row.Location, suggest(linked, c.behaviors))
		}
		for _, i := range []int{10, 11} {
			if speech := row.Text(i); speech != "" && !c.speeches[speech] {
				c.warn(CodeUnknownSpeech,
					fmt.Sprintf("behavior %q: speech %q is not defined", name, speech),
					row.Location, suggest(speech, c.speeches))
			}
		}

	case records.TagEffect:
		name := row.Text(1)
		c.duplicate(records.TagEffect, name, row)

		if behavior := row.Text(2); !c.behaviors[behavior] {
			c.warn(CodeUnknownBehavior,
				fmt.Sprintf("effect %q: behavior %q is not defined", name, behavior),
				row.Location, suggest(behavior, c.behaviors))
		}
		for i := 7; i <= 10; i++ {
			loc := row.Text(i)
			if loc == "" {
				continue
			}
			if _, ok := records.ParseLocation(loc); !ok {
				c.warn(CodeUnknownLocation,
					fmt.Sprintf("effect %q: unknown location %q", name, loc),
					row.Location, ponyerrors.SuggestValue(loc, records.LocationNames()))
			}
		}

	case records.TagSpeak:
		c.duplicate(records.TagSpeak, row.Text(1), row)
	}

	for _, ref := range c.files[row] {
		// repair --names renames such files on disk.
		if sanitize.HasUnsafe(ref) {
			c.warn(CodeUnsafeFileName,
				fmt.Sprintf("file name %q contains characters that repair replaces", ref),
				row.Location, fmt.Sprintf("Rename to '%s'", sanitize.Name(ref)))
		}
		if c.dir == "" {
			continue
		}
		if _, err := os.Stat(filepath.Join(c.dir, filepath.FromSlash(ref))); err != nil {
			c.warn(CodeMissingFile, fmt.Sprintf("file %q not found", ref), row.Location, "")
		}
	}
}

// duplicate reports a definition whose name an earlier row of the same tag
// already used. The later row replaces the earlier one in the config.
func (c *checker) duplicate(tag records.Tag, name string, row *ast.Row) {
	if c.seen == nil {
		c.seen = make(map[string]bool)
	}
	key := string(tag) + "\x00" + name
	if c.seen[key] {
		c.warn(CodeDuplicate,
			fmt.Sprintf("%s %q is defined more than once, the last definition wins", tag, name),
			row.Location, "")
	}
	c.seen[key] = true
}

func (c *checker) warn(code ponyerrors.Code, message string, loc ast.Location, suggestion string) {
	w := c.diags.Warn(ponyerrors.ErrorTypeLint, code, message, loc)
	w.Suggestion = suggestion
}

func suggest(name string, defined map[string]bool) string {
	names := make([]string, 0, len(defined))
	for n := range defined {
		names = append(names, n)
	}
	return ponyerrors.SuggestValue(name, names)
}
