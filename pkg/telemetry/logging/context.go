package logging

import (
	"context"
)

// Context keys for common log fields.
type contextKey string

const (
	// RunIDKey is the context key for the id of one repair or convert run.
	RunIDKey contextKey = "run_id"

	// PonyKey is the context key for the pony directory being processed.
	PonyKey contextKey = "pony"

	// FileKey is the context key for the file being processed.
	FileKey contextKey = "file"

	// TraceIDKey is the context key for trace IDs.
	TraceIDKey contextKey = "trace_id"
)

// WithRunID adds a run ID to the context.
func WithRunID(ctx context.Context, runID string) context.Context {
	return context.WithValue(ctx, RunIDKey, runID)
}

// GetRunID retrieves the run ID from the context.
func GetRunID(ctx context.Context) string {
	if runID, ok := ctx.Value(RunIDKey).(string); ok {
		return runID
	}
	return ""
}

// WithPony adds a pony directory name to the context.
func WithPony(ctx context.Context, pony string) context.Context {
	return context.WithValue(ctx, PonyKey, pony)
}

// GetPony retrieves the pony directory name from the context.
func GetPony(ctx context.Context) string {
	if pony, ok := ctx.Value(PonyKey).(string); ok {
		return pony
	}
	return ""
}

// WithFile adds a file path to the context.
func WithFile(ctx context.Context, file string) context.Context {
	return context.WithValue(ctx, FileKey, file)
}

// GetFile retrieves the file path from the context.
func GetFile(ctx context.Context) string {
	if file, ok := ctx.Value(FileKey).(string); ok {
		return file
	}
	return ""
}

// WithTraceID adds a trace ID to the context.
func WithTraceID(ctx context.Context, traceID string) context.Context {
	return context.WithValue(ctx, TraceIDKey, traceID)
}

// GetTraceID retrieves the trace ID from the context.
func GetTraceID(ctx context.Context) string {
	if traceID, ok := ctx.Value(TraceIDKey).(string); ok {
		return traceID
	}
	return ""
}

// extractContextFields extracts common fields from context for logging.
// Returns a slice of key-value pairs suitable for logger.With().
func extractContextFields(ctx context.Context) []any {
	var fields []any

	if runID := GetRunID(ctx); runID != "" {
		fields = append(fields, "run_id", runID)
	}
	if pony := GetPony(ctx); pony != "" {
		fields = append(fields, "pony", pony)
	}
	if file := GetFile(ctx); file != "" {
		fields = append(fields, "file", file)
	}
	if traceID := GetTraceID(ctx); traceID != "" {
		fields = append(fields, "trace_id", traceID)
	}

	return fields
}
