package tracing

import (
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Attribute keys use the "ponyini.*" namespace.
const (
	AttrRunID = "ponyini.run_id"
	AttrPony  = "ponyini.pony"
	AttrFile  = "ponyini.file"

	AttrRows        = "ponyini.rows"
	AttrRecords     = "ponyini.records"
	AttrDiagnostics = "ponyini.diagnostics"
	AttrFailures    = "ponyini.failures"
	AttrSkipped     = "ponyini.skipped"

	AttrCacheHit = "ponyini.cache.hit"

	AttrErrorMessage = "error.message"
)

// Span names.
const (
	SpanPack      = "ponyini.pack"
	SpanPony      = "ponyini.pony"
	SpanParse     = "ponyini.parse"
	SpanTransform = "ponyini.transform"
	SpanRepair    = "ponyini.repair"
	SpanWrite     = "ponyini.write"
)

// SetFileAttributes records which pony and file a span works on.
func SetFileAttributes(span trace.Span, pony, file string) {
	attrs := make([]attribute.KeyValue, 0, 2)
	if pony != "" {
		attrs = append(attrs, attribute.String(AttrPony, pony))
	}
	if file != "" {
		attrs = append(attrs, attribute.String(AttrFile, file))
	}
	span.SetAttributes(attrs...)
}

// SetResultAttributes records the size of a conversion result.
//
//	SetResultAttributes(span, 42, 40, 3, 1, 1)
func SetResultAttributes(span trace.Span, rows, records, diagnostics, failures, skipped int) {
	span.SetAttributes(
		attribute.Int(AttrRows, rows),
		attribute.Int(AttrRecords, records),
		attribute.Int(AttrDiagnostics, diagnostics),
		attribute.Int(AttrFailures, failures),
		attribute.Int(AttrSkipped, skipped),
	)
}

// SetCacheAttribute records whether a parsed file came from the cache.
func SetCacheAttribute(span trace.Span, hit bool) {
	span.SetAttributes(attribute.Bool(AttrCacheHit, hit))
}

// AddEvent adds a named event to the span with optional attributes.
//
//	AddEvent(span, "file_renamed",
//	    attribute.String("from", "Big Mac"),
//	    attribute.String("to", "Big_Mac"),
//	)
func AddEvent(span trace.Span, name string, attrs ...attribute.KeyValue) {
	span.AddEvent(name, trace.WithAttributes(attrs...))
}

// AttributeBuilder provides a fluent interface for building span attributes.
type AttributeBuilder struct {
	attrs []attribute.KeyValue
}

// NewAttributeBuilder creates a new attribute builder.
func NewAttributeBuilder() *AttributeBuilder {
	return &AttributeBuilder{attrs: make([]attribute.KeyValue, 0, 4)}
}

// WithRun adds the run id.
func (ab *AttributeBuilder) WithRun(runID string) *AttributeBuilder {
	if runID != "" {
		ab.attrs = append(ab.attrs, attribute.String(AttrRunID, runID))
	}
	return ab
}

// WithFile adds pony and file attributes.
func (ab *AttributeBuilder) WithFile(pony, file string) *AttributeBuilder {
	if pony != "" {
		ab.attrs = append(ab.attrs, attribute.String(AttrPony, pony))
	}
	if file != "" {
		ab.attrs = append(ab.attrs, attribute.String(AttrFile, file))
	}
	return ab
}

// Build returns the attributes as a span start option.
func (ab *AttributeBuilder) Build() trace.SpanStartOption {
	return trace.WithAttributes(ab.attrs...)
}

// Attributes returns the collected attributes.
func (ab *AttributeBuilder) Attributes() []attribute.KeyValue {
	return ab.attrs
}
