package pack

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"mercator-hq/ponyini/pkg/catalog"
	"mercator-hq/ponyini/pkg/ponyini"
	ponyerrors "mercator-hq/ponyini/pkg/ponyini/errors"
	"mercator-hq/ponyini/pkg/ponyini/serializer"
	"mercator-hq/ponyini/pkg/telemetry/logging"
	"mercator-hq/ponyini/pkg/telemetry/metrics"
	"mercator-hq/ponyini/pkg/telemetry/tracing"
)

const stageConvert = "convert"

// Convert transforms every _pony.ini below the root and writes the resulting
// configuration to config.json in the same directory. Each conversion is
// saved to the catalog when one is configured.
func (p *Pack) Convert(ctx context.Context) (*Report, error) {
	ctx = ensureRunID(ctx)
	ctx, span := p.tracer.Start(ctx, tracing.SpanTransform,
		tracing.NewAttributeBuilder().WithRun(logging.GetRunID(ctx)).Build())
	defer span.End()

	files, err := glob(p.root, RepairedName)
	if err != nil {
		tracing.SetError(span, err)
		return nil, err
	}

	results, err := p.each(ctx, files, p.convertOne)
	if err != nil {
		tracing.SetError(span, err)
		return nil, err
	}

	report := &Report{RunID: logging.GetRunID(ctx), Ponies: results}
	p.logger.InfoContext(ctx, "ponies converted",
		"ponies", len(results),
		"written", report.Written(),
		"failed", len(report.Failed()))
	return report, nil
}

func (p *Pack) convertOne(ctx context.Context, file string) PonyResult {
	res := PonyResult{
		Dir:    ponyDir(p.root, file),
		Input:  file,
		Output: filepath.Join(filepath.Dir(file), ConfigName),
	}
	ctx = logging.WithFile(ctx, file)

	ctx, span := p.tracer.Start(ctx, tracing.SpanPony)
	defer span.End()
	tracing.SetFileAttributes(span, res.Dir, file)

	data, err := os.ReadFile(file)
	if err != nil {
		res.Err = fmt.Errorf("read %s: %w", file, err)
		tracing.SetError(span, res.Err)
		p.metrics.RecordConversion(metrics.StatusFailed, 0, 0, 0)
		return res
	}

	hash := hashBytes(data)
	key := cacheKey(stageConvert, file, hash)
	entry, hit := p.cache.get(key)
	tracing.SetCacheAttribute(span, hit)

	var conv *ponyini.Conversion
	if !hit {
		conv, entry, err = p.convertBytes(ctx, data, file)
		if err != nil {
			res.Err = err
			tracing.SetError(span, err)
			p.logger.WarnContext(ctx, "conversion failed", "error", err)
			return res
		}
	}

	res.Pony = entry.pony
	res.Warnings = entry.warnings
	res.Errors = entry.errors
	res.Skipped = entry.skipped
	res.Cached = hit
	ctx = logging.WithPony(ctx, res.Pony)

	_, wspan := p.tracer.Start(ctx, tracing.SpanWrite)
	res.Written, err = writeIfChanged(res.Output, entry.output)
	wspan.End()
	if err != nil {
		p.metrics.RecordFile(metrics.OpWriteJSON, metrics.StatusFailed)
		res.Err = fmt.Errorf("write %s: %w", res.Output, err)
		tracing.SetError(span, res.Err)
		return res
	}
	if res.Written {
		p.metrics.RecordFile(metrics.OpWriteJSON, metrics.StatusOK)
	}

	if conv != nil {
		if err := p.save(ctx, res, hash, conv, entry.output); err != nil {
			// The config.json is already written; a catalog failure only
			// loses history.
			p.logger.ErrorContext(ctx, "catalog save failed", "error", err)
			tracing.AddEvent(span, "catalog_save_failed")
		}
		p.cache.add(key, entry)
	}
	return res
}

// convertBytes parses and transforms one _pony.ini and encodes its config.
func (p *Pack) convertBytes(ctx context.Context, data []byte, file string) (*ponyini.Conversion, cacheEntry, error) {
	start := time.Now()

	_, pspan := p.tracer.Start(ctx, tracing.SpanParse)
	parsed, err := p.parser.ParseBytes(data, file)
	pspan.End()
	if err != nil {
		p.metrics.RecordConversion(metrics.StatusFailed, time.Since(start), 0, 0)
		return nil, cacheEntry{}, err
	}
	if err := parsed.Err(); err != nil {
		p.recordDiagnostics(parsed.Diagnostics.Errors)
		p.metrics.RecordConversion(metrics.StatusFailed, time.Since(start), parsed.Document.Len(), 0)
		return nil, cacheEntry{}, err
	}

	_, tspan := p.tracer.Start(ctx, tracing.SpanTransform)
	conv, err := ponyini.Transform(parsed, p.transform...)
	rows := parsed.Document.Len()
	p.recordDiagnostics(conv.Diagnostics.Errors)
	tracing.SetResultAttributes(tspan, rows, len(conv.Result.Records),
		conv.Diagnostics.Count(), len(conv.Diagnostics.Failures()), conv.Result.Skipped)
	tspan.End()
	if err != nil {
		p.metrics.RecordConversion(metrics.StatusFailed, time.Since(start), rows, conv.Result.Skipped)
		return nil, cacheEntry{}, err
	}

	out, err := marshalJSON(conv.Config(), p.jsonIndent)
	if err != nil {
		p.metrics.RecordConversion(metrics.StatusFailed, time.Since(start), rows, conv.Result.Skipped)
		return nil, cacheEntry{}, fmt.Errorf("encode %s: %w", file, err)
	}

	status := metrics.StatusOK
	if conv.Result.Skipped > 0 {
		status = metrics.StatusPartial
	}
	p.metrics.RecordConversion(status, time.Since(start), rows, conv.Result.Skipped)
	for tag, n := range conv.Result.Counts() {
		p.metrics.RecordRecords(string(tag), n)
	}

	return conv, cacheEntry{
		output:   out,
		pony:     conv.Result.PonyName,
		warnings: len(conv.Diagnostics.Warnings()),
		errors:   len(conv.Diagnostics.Failures()),
		skipped:  conv.Result.Skipped,
	}, nil
}

func (p *Pack) save(ctx context.Context, res PonyResult, hash string, conv *ponyini.Conversion, out []byte) error {
	if p.catalog == nil {
		return nil
	}
	pony := res.Pony
	if pony == "" {
		pony = res.Dir
	}
	return p.catalog.Save(ctx, &catalog.Entry{
		ID:           uuid.NewString(),
		RunID:        logging.GetRunID(ctx),
		Pony:         pony,
		Dir:          res.Dir,
		SourceHash:   hash,
		ConfigJSON:   out,
		CanonicalINI: serializer.Document(conv.Document),
		Warnings:     res.Warnings,
		Errors:       res.Errors,
		ConvertedAt:  p.now().UTC(),
	})
}

func (p *Pack) recordDiagnostics(diags []*ponyerrors.Error) {
	for _, d := range diags {
		p.metrics.RecordDiagnostic(string(d.Type), string(d.Code), string(d.Severity))
	}
}
