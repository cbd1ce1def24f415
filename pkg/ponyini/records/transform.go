package records

import (
	"fmt"
	"log/slog"

	"mercator-hq/ponyini/pkg/ponyini/ast"
	ponyerrors "mercator-hq/ponyini/pkg/ponyini/errors"
)

// Transformer turns parsed documents into pony configurations.
// A Transformer holds no per-call state and is safe for concurrent use.
type Transformer struct {
	legacyAutoSelectImages bool
	strictCoercion         bool
	logger                 *slog.Logger
}

// Option configures a Transformer.
type Option func(*Transformer)

// WithLegacyAutoSelectImages keeps the historical behavior where every
// behavior's auto_select_images is true regardless of its field. Enabled by
// default.
func WithLegacyAutoSelectImages(enabled bool) Option {
	return func(t *Transformer) {
		t.legacyAutoSelectImages = enabled
	}
}

// WithStrictCoercion makes the first coercion failure abort the transform
// instead of skipping the offending row.
func WithStrictCoercion(enabled bool) Option {
	return func(t *Transformer) {
		t.strictCoercion = enabled
	}
}

// WithLogger logs every diagnostic at warn level in addition to collecting it.
func WithLogger(logger *slog.Logger) Option {
	return func(t *Transformer) {
		t.logger = logger
	}
}

// NewTransformer creates a transformer with the given options.
func NewTransformer(opts ...Option) *Transformer {
	t := &Transformer{legacyAutoSelectImages: true}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Result is the outcome of transforming one document.
type Result struct {
	// Config is the assembled configuration. It is never nil.
	Config *Config

	// PonyName is the sanitized name from the last Name row, or "".
	PonyName string

	// Records are the accepted records in document order.
	Records []Record

	// Diagnostics holds warnings and the coercion failures of skipped rows.
	Diagnostics *ponyerrors.ErrorList

	// Skipped counts rows dropped by a coercion failure.
	Skipped int
}

// Counts returns the number of accepted records per tag.
func (r *Result) Counts() map[Tag]int {
	counts := make(map[Tag]int, len(Tags))
	for _, rec := range r.Records {
		counts[rec.Tag()]++
	}
	return counts
}

// Transform interprets every row of doc in order. Later rows with the same
// key replace earlier ones.
//
// The returned error is non-nil only with strict coercion, in which case the
// partial result up to the failing row is returned alongside it.
func (t *Transformer) Transform(doc *ast.Document) (*Result, error) {
	res := &Result{
		Config:      NewConfig(),
		Records:     make([]Record, 0, doc.Len()),
		Diagnostics: ponyerrors.NewErrorList(),
	}

	for _, row := range doc.Rows {
		rec, warnings, err := Decode(row, DecodeOptions{
			LegacyAutoSelectImages: t.legacyAutoSelectImages,
			Pony:                   res.PonyName,
		})
		for _, w := range warnings {
			t.report(res, w)
		}

		if err != nil {
			t.report(res, &ponyerrors.Error{
				Type:     ponyerrors.ErrorTypeCoercion,
				Code:     ponyerrors.CodeOf(err),
				Severity: ponyerrors.SeverityError,
				Message:  err.Error(),
				Location: row.Location,
				Cause:    err,
			})
			res.Skipped++
			if t.strictCoercion {
				return res, fmt.Errorf("%s: %w", row.Location, err)
			}
			continue
		}
		if rec == nil {
			continue
		}

		res.Records = append(res.Records, rec)
		apply(res, rec)
	}

	return res, nil
}

func apply(res *Result, rec Record) {
	cfg := res.Config
	switch r := rec.(type) {
	case *NameRecord:
		res.PonyName = r.Name
	case *BehaviorRecord:
		cfg.Behaviors[r.Name] = r
	case *EffectRecord:
		cfg.Effects[r.Name] = r
	case *SpeechRecord:
		cfg.Speeches[r.Name] = r
	case *BehaviorGroupRecord:
		cfg.BehaviorGroups[r.ID] = r.Name
	case *CategoriesRecord:
		cfg.Categories = append(cfg.Categories, r.Categories...)
	default:
		panic(fmt.Sprintf("records: unhandled record type %T", rec))
	}
}

func (t *Transformer) report(res *Result, diag *ponyerrors.Error) {
	res.Diagnostics.Add(diag)
	if t.logger == nil {
		return
	}
	t.logger.Warn("pony.ini record problem",
		"location", diag.Location.String(),
		"code", string(diag.Code),
		"severity", string(diag.Severity),
		"message", diag.Message,
	)
}
