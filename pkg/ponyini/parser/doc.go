// Package parser reads the pony.ini dialect into ast Documents.
//
// The dialect is a comma separated, brace nested, optionally quoted format:
//
//	' comment lines start with an apostrophe
//	Name,Rarity
//	Behavior,Trot,0.5,3,1,2,right.png,left.png,HorizontalOnly,,,,false
//	Speak,Bark,"hi there",{one.mp3,"two words.ogg"},true,2
//
// Parsing happens in two layers. ParseLine is the field parser: it consumes one
// logical line and returns the fields plus any unconsumed text. Parser splits
// a whole source unit into lines, drops comments and blank lines, and runs
// ParseLine on the rest.
//
// # Leniency
//
// Malformed syntax never stops a parse. Unterminated quotes and lists,
// characters after a closing quote and trailing text are recorded as
// warnings in Result.Diagnostics and the best-effort row is kept, so one bad
// line does not make the rest of a file unusable.
//
//	result := parser.NewParser().ParseString(text, "pony.ini")
//	if result.Diagnostics.HasErrors() {
//	    for _, d := range result.Diagnostics.Errors {
//	        log.Println(d.Short())
//	    }
//	}
//
// Use WithStrictMode when a caller (for example a linter in CI) wants any
// diagnostic to fail the run through Result.Err.
package parser
