// Package lint runs advisory checks over a parsed pony.ini.
//
// The transform keeps any movement or location string and never resolves
// references between rows, so typos survive conversion unnoticed. Lint looks
// for them:
//
//   - a missing Name row
//   - behaviors, effects or speeches defined twice
//   - Behavior movement values outside records.AllowedMove
//   - Effect location values outside records.Location
//   - linked behaviors, effect behaviors and start/end speeches that no row
//     defines
//   - with WithDir, image and sound files that do not exist
//
// Findings are warnings of type errors.ErrorTypeLint, with a suggestion when
// a close match exists.
//
//	res, _ := parser.NewParser().Parse("ponies/Pip/pony.ini")
//	diags := lint.New(lint.WithDir("ponies/Pip")).Lint(res.Document)
package lint
