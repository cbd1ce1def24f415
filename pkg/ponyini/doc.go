// Package ponyini reads, writes and interprets pony.ini files, the
// comma-delimited configuration format of desktop pony characters.
//
// # Architecture
//
// The package is organized into subpackages:
//
// - ast: Field, Row and Document, the generic syntax tree of the dialect
// - parser: lenient line and document parser that reports instead of failing
// - serializer: canonical text output and round-trip verification
// - sanitize: the file-name normalization shared with directory repair
// - records: typed interpretation of rows into a pony Config
// - errors: located diagnostics, coercion errors and suggestions
//
// # Basic Usage
//
// Convert a pony.ini file into the JSON configuration read by browser
// runtimes:
//
//	conv, err := ponyini.ConvertFile("ponies/Rarity/pony.ini")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, d := range conv.Diagnostics.Errors {
//	    log.Println(d.Short())
//	}
//	data, _ := json.Marshal(conv.Config())
//
// # Dialect
//
// Each non-blank line that does not start with an apostrophe is one row.
// Fields are separated by commas, may be double quoted to keep commas and
// white space, and may be lists in braces which nest:
//
//	'comment
//	Name,Rarity
//	Speak,Bark,"hi there",{one.mp3,"two, three.ogg"},true,2
//
// Quoted values have no escape mechanism, so a value containing a double
// quote cannot be written back.
package ponyini
