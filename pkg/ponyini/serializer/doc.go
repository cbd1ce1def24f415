// Package serializer writes ast Documents back to canonical pony.ini text.
//
// Quoting is always derived from content, never from how the source happened
// to be quoted: a scalar is written bare unless it contains white space or a
// comma (or a brace), in which case it is wrapped in double quotes with no
// escaping. An empty scalar in last position is written as "" so that it
// survives a re-parse, and a leading apostrophe is quoted so the row does not
// turn into a comment.
//
// Scalars containing a double quote cannot be expressed in the dialect.
// Verify and VerifyDocument re-parse the canonical text and report such
// values and any other round-trip mismatch.
package serializer
