package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"mercator-hq/ponyini/pkg/config"
)

// ErrNotFound is returned by Get when no entry exists for a pony.
var ErrNotFound = errors.New("catalog entry not found")

// Entry is one recorded conversion of a pony.
type Entry struct {
	ID           string
	RunID        string
	Pony         string
	Dir          string
	SourceHash   string
	ConfigJSON   json.RawMessage
	CanonicalINI string
	Warnings     int
	Errors       int
	ConvertedAt  time.Time
}

// Query filters List results. Zero fields do not filter.
type Query struct {
	Pony  string
	RunID string
	Since time.Time
	Limit int
}

// Store persists conversion entries.
type Store interface {
	// Save inserts or replaces the entry with the same ID.
	Save(ctx context.Context, entry *Entry) error

	// Get returns the most recent entry of the pony with the given name.
	Get(ctx context.Context, pony string) (*Entry, error)

	// List returns matching entries, newest first.
	List(ctx context.Context, query Query) ([]*Entry, error)

	// Prune deletes entries converted before olderThan and reports how many went.
	Prune(ctx context.Context, olderThan time.Time) (int64, error)

	// Ping reports whether the store is usable.
	Ping(ctx context.Context) error

	Close() error
}

// StorageError is returned when a backend operation fails.
type StorageError struct {
	Backend   string // "sqlite" or "memory"
	Operation string // "save", "get", "list", "prune", ...
	Cause     error
}

// Error implements the error interface.
func (e *StorageError) Error() string {
	return fmt.Sprintf("storage error [backend=%s, operation=%s]: %v", e.Backend, e.Operation, e.Cause)
}

// Unwrap returns the underlying cause error.
func (e *StorageError) Unwrap() error {
	return e.Cause
}

// NewStorageError creates a new StorageError.
func NewStorageError(backend, operation string, cause error) *StorageError {
	return &StorageError{Backend: backend, Operation: operation, Cause: cause}
}

// Open creates the store selected by cfg.Backend.
func Open(cfg *config.CatalogConfig) (Store, error) {
	switch cfg.Backend {
	case "memory":
		return NewMemoryStore(), nil
	case "sqlite":
		return NewSQLiteStore(&SQLiteConfig{
			Path:         cfg.SQLite.Path,
			Driver:       cfg.SQLite.Driver,
			MaxOpenConns: cfg.SQLite.MaxOpenConns,
			BusyTimeout:  cfg.SQLite.BusyTimeout,
		})
	default:
		return nil, fmt.Errorf("unsupported catalog backend: %s", cfg.Backend)
	}
}

func (q Query) matches(e *Entry) bool {
	if q.Pony != "" && e.Pony != q.Pony {
		return false
	}
	if q.RunID != "" && e.RunID != q.RunID {
		return false
	}
	if !q.Since.IsZero() && e.ConvertedAt.Before(q.Since) {
		return false
	}
	return true
}
