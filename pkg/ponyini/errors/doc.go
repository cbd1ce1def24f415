// Package errors provides diagnostic types for pony.ini parsing and record
// transformation.
//
// The dialect is parsed leniently: malformed syntax never aborts a parse. Each
// recovered condition becomes a warning-severity Error in an ErrorList that is
// returned next to the best-effort result. Strict value coercion (booleans and
// points) fails with a typed error instead, which drops the one record it
// belongs to.
//
// # Error Types
//
// ErrorTypeSyntax: grammar conditions (unterminated quote or list, trailing text)
//
// ErrorTypeRecord: row interpretation (unknown tag, bad group id, duplicate MIME type)
//
// ErrorTypeCoercion: strict values (InvalidBooleanError, InvalidPointError)
//
// ErrorTypeIO: file access and size limits
//
// ErrorTypeLint: advisory checks from package lint (unknown movement, dangling
// references, missing files)
//
// # Basic Usage
//
//	result := parser.NewParser().ParseString(text, "pony.ini")
//	for _, d := range result.Diagnostics.Errors {
//	    fmt.Println(d.Short())
//	}
//
// Typed coercion errors can be matched with the standard library:
//
//	if errors.Is(err, ponyerrors.ErrInvalidBoolean) {
//	    // skip the record
//	}
//
// # Error Format
//
//	[syntax] unterminated quoted string
//	  --> pony.ini:4:12
//	  |
//	   3 | Name,Rarity
//	-> 4 | Speak,Hello,"hi there
//	     |            ^
//	  |
package errors
