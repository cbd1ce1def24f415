package pack

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"mercator-hq/ponyini/pkg/ponyini"
	"mercator-hq/ponyini/pkg/ponyini/serializer"
	"mercator-hq/ponyini/pkg/telemetry/logging"
	"mercator-hq/ponyini/pkg/telemetry/metrics"
	"mercator-hq/ponyini/pkg/telemetry/tracing"
)

const stageRepair = "repair"

// IndexEntry is one element of the aggregate config.json at the pack root.
type IndexEntry struct {
	INI     string `json:"ini"`
	BaseURL string `json:"baseurl"`
}

// RepairINI rewrites every pony.ini below the root as canonical text with its
// file-name fields sanitized, writing the result to _pony.ini in the same
// directory. It then writes config.json at the root listing every repaired
// pony with its base URL.
func (p *Pack) RepairINI(ctx context.Context) (*Report, error) {
	ctx = ensureRunID(ctx)
	ctx, span := p.tracer.Start(ctx, tracing.SpanRepair,
		tracing.NewAttributeBuilder().WithRun(logging.GetRunID(ctx)).Build())
	defer span.End()

	files, err := glob(p.root, SourceName)
	if err != nil {
		tracing.SetError(span, err)
		return nil, err
	}

	results, err := p.each(ctx, files, p.repairOne)
	if err != nil {
		tracing.SetError(span, err)
		return nil, err
	}

	report := &Report{
		RunID:  logging.GetRunID(ctx),
		Ponies: results,
		Index:  filepath.Join(p.root, ConfigName),
	}

	index := make([]IndexEntry, 0, len(results))
	for _, res := range results {
		if res.Err != nil {
			continue
		}
		index = append(index, IndexEntry{
			INI:     res.ini,
			BaseURL: p.baseURLPrefix + res.Dir + "/",
		})
	}
	data, err := marshalJSON(index, p.jsonIndent)
	if err != nil {
		tracing.SetError(span, err)
		return report, fmt.Errorf("encode index: %w", err)
	}
	if _, err := writeIfChanged(report.Index, data); err != nil {
		p.metrics.RecordFile(metrics.OpWriteJSON, metrics.StatusFailed)
		tracing.SetError(span, err)
		return report, fmt.Errorf("write index: %w", err)
	}
	p.metrics.RecordFile(metrics.OpWriteJSON, metrics.StatusOK)

	p.logger.InfoContext(ctx, "pony.ini files repaired",
		"ponies", len(results),
		"written", report.Written(),
		"failed", len(report.Failed()))
	return report, nil
}

func (p *Pack) repairOne(ctx context.Context, file string) PonyResult {
	res := PonyResult{
		Dir:    ponyDir(p.root, file),
		Input:  file,
		Output: filepath.Join(filepath.Dir(file), RepairedName),
	}
	ctx = logging.WithFile(ctx, file)

	ctx, span := p.tracer.Start(ctx, tracing.SpanPony)
	defer span.End()
	tracing.SetFileAttributes(span, res.Dir, file)

	data, err := os.ReadFile(file)
	if err != nil {
		res.Err = fmt.Errorf("read %s: %w", file, err)
		tracing.SetError(span, res.Err)
		return res
	}

	hash := hashBytes(data)
	key := cacheKey(stageRepair, file, hash)
	entry, hit := p.cache.get(key)
	tracing.SetCacheAttribute(span, hit)

	if !hit {
		start := time.Now()
		entry, err = p.repairBytes(ctx, data, file)
		if err != nil {
			res.Err = err
			tracing.SetError(span, err)
			p.logger.WarnContext(ctx, "repair failed", "error", err)
			return res
		}
		p.logger.DebugContext(ctx, "pony.ini repaired", "duration", time.Since(start))
	}

	res.Pony = entry.pony
	res.Warnings = entry.warnings
	res.Errors = entry.errors
	res.Cached = hit
	res.ini = string(entry.output)

	_, wspan := p.tracer.Start(ctx, tracing.SpanWrite)
	res.Written, err = writeIfChanged(res.Output, entry.output)
	wspan.End()
	if err != nil {
		p.metrics.RecordFile(metrics.OpWriteINI, metrics.StatusFailed)
		res.Err = fmt.Errorf("write %s: %w", res.Output, err)
		tracing.SetError(span, res.Err)
		return res
	}
	if res.Written {
		p.metrics.RecordFile(metrics.OpWriteINI, metrics.StatusOK)
	}

	// Cache only after a successful write so a failed write is retried.
	if !hit {
		p.cache.add(key, entry)
	}
	return res
}

// repairBytes parses one pony.ini and returns its repaired canonical text.
// Every line is terminated by "\n".
func (p *Pack) repairBytes(ctx context.Context, data []byte, file string) (cacheEntry, error) {
	_, span := p.tracer.Start(ctx, tracing.SpanParse)
	parsed, err := p.parser.ParseBytes(data, file)
	span.End()
	if err != nil {
		return cacheEntry{}, err
	}
	p.recordDiagnostics(parsed.Diagnostics.Errors)
	if err := parsed.Err(); err != nil {
		return cacheEntry{}, err
	}

	doc := ponyini.Repair(parsed.Document)

	// Rows that would read back differently are written anyway unless
	// syntax is strict; the warning names the row.
	check := serializer.Check(doc)
	p.recordDiagnostics(check.Errors)
	for _, d := range check.Errors {
		p.logger.WarnContext(ctx, "repaired row does not round trip", "line", d.Location.Line, "error", d.Cause)
	}
	if p.strictSyntax && check.HasErrors() {
		return cacheEntry{}, fmt.Errorf("%s: %w", file, check)
	}

	entry := cacheEntry{
		output:   []byte(serializer.File(doc)),
		warnings: len(parsed.Diagnostics.Warnings()) + len(check.Errors),
		errors:   len(parsed.Diagnostics.Failures()),
	}
	if names := doc.ByTag("Name"); len(names) > 0 {
		entry.pony = names[len(names)-1].Text(1)
	}
	return entry, nil
}

// ponyDir returns the directory of file relative to root, with forward
// slashes.
func ponyDir(root, file string) string {
	dir := filepath.Dir(file)
	if rel, err := filepath.Rel(root, dir); err == nil {
		return filepath.ToSlash(rel)
	}
	return filepath.Base(dir)
}
