// Package sanitize normalizes pony identifiers so the same name can be used as
// a directory on disk and as a value inside pony.ini.
//
// Name is applied independently to directory names and to the matching
// pony.ini fields, so both call sites must keep producing identical bytes,
// including the quirk that only the first run of underscores is collapsed.
package sanitize

import (
	"regexp"
	"strings"
)

var (
	// unsafeRun matches percent signs, quotes and ASCII white space.
	unsafeRun = regexp.MustCompile(`[%'"\t\n\v\f\r ]+`)

	// underscoreRun matches a run of underscores.
	underscoreRun = regexp.MustCompile(`_+`)
)

// Name replaces every run of %, ', " or ASCII white space with a single
// underscore, then collapses only the first run of underscores to one.
//
//	Name("a  b")    == "a_b"
//	Name("a__b__c") == "a_b__c"
//
// Name is not idempotent: Name(Name(s)) may differ from Name(s).
func Name(s string) string {
	s = unsafeRun.ReplaceAllString(s, "_")

	loc := underscoreRun.FindStringIndex(s)
	if loc == nil {
		return s
	}
	return s[:loc[0]] + "_" + s[loc[1]:]
}

// Changed reports whether Name would alter s.
func Changed(s string) bool {
	return Name(s) != s
}

// HasUnsafe reports whether s contains any character Name replaces.
func HasUnsafe(s string) bool {
	return strings.ContainsAny(s, "%'\"\t\n\v\f\r ")
}
