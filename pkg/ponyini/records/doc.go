// Package records interprets parsed pony.ini rows as typed configuration
// records and assembles them into a Config.
//
// Each row is dispatched on its tag (field 0) to one of six record kinds:
// Name, Behavior, Effect, Speak, behaviorgroup and Categories. Fields are
// positional; missing trailing text fields read as empty strings and missing
// numbers as NaN. A missing boolean or point fails coercion like any other
// bad value, except the optional Effect dont_repeat_animation flag.
//
// # Coercion
//
// Numbers follow browser number parsing: Behavior timings read the longest
// numeric prefix ("2.5s" is 2.5) while Effect timings require the whole field
// to be numeric (empty is 0). Unparseable numbers become NaN, which marshals
// to JSON null.
//
// Booleans are strict: only "true" and "false" in any case are accepted.
// Points are two integers, either "x,y" or a two-element list. A value that
// fails strict coercion is an InvalidBooleanError or InvalidPointError and
// the row is skipped:
//
//	res, _ := records.NewTransformer().Transform(doc)
//	for _, d := range res.Diagnostics.Failures() {
//	    if errors.Is(d, ponyerrors.ErrInvalidBoolean) {
//	        // ...
//	    }
//	}
//
// Everything else that is wrong with a row (unknown tag, bad group id,
// duplicate speech file type) is a warning and the row is kept or dropped
// without aborting the transform.
package records
