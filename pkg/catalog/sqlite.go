package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3" // registers "sqlite3"
	_ "modernc.org/sqlite"          // registers "sqlite"
)

// SQLiteConfig contains configuration for the SQLite backend.
type SQLiteConfig struct {
	// Path is the database file path.
	Path string

	// Driver is "sqlite3" (mattn/go-sqlite3, cgo) or "sqlite" (modernc.org/sqlite).
	// Default: "sqlite"
	Driver string

	// MaxOpenConns is the maximum number of open connections.
	// Default: 4
	MaxOpenConns int

	// BusyTimeout is how long to wait when the database is locked.
	// Default: 5 seconds
	BusyTimeout time.Duration
}

// SQLiteStore implements Store on SQLite.
type SQLiteStore struct {
	db     *sql.DB
	config *SQLiteConfig
	logger *slog.Logger
}

// NewSQLiteStore opens the database and creates the schema if needed.
func NewSQLiteStore(cfg *SQLiteConfig) (*SQLiteStore, error) {
	if cfg == nil || cfg.Path == "" {
		return nil, NewStorageError("sqlite", "open", errors.New("db path cannot be empty"))
	}
	if cfg.Driver == "" {
		cfg.Driver = "sqlite"
	}
	if cfg.MaxOpenConns == 0 {
		cfg.MaxOpenConns = 4
	}
	if cfg.BusyTimeout == 0 {
		cfg.BusyTimeout = 5 * time.Second
	}

	logger := slog.Default().With("component", "catalog.sqlite")

	if dir := filepath.Dir(cfg.Path); cfg.Path != ":memory:" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, NewStorageError("sqlite", "open", err)
		}
	}

	db, err := sql.Open(cfg.Driver, dsn(cfg))
	if err != nil {
		return nil, NewStorageError("sqlite", "open", err)
	}
	db.SetMaxOpenConns(cfg.MaxOpenConns)

	s := &SQLiteStore{db: db, config: cfg, logger: logger}
	if err := s.initialize(); err != nil {
		db.Close()
		return nil, err
	}

	logger.Info("SQLite catalog initialized",
		"path", cfg.Path,
		"driver", cfg.Driver,
	)
	return s, nil
}

// dsn builds a connection string that sets WAL mode and the busy timeout on
// every pooled connection. The two drivers spell pragmas differently.
func dsn(cfg *SQLiteConfig) string {
	ms := cfg.BusyTimeout.Milliseconds()
	if cfg.Driver == "sqlite3" {
		return fmt.Sprintf("%s?_journal_mode=WAL&_busy_timeout=%d", cfg.Path, ms)
	}
	return fmt.Sprintf("%s?_pragma=journal_mode(WAL)&_pragma=busy_timeout(%d)", cfg.Path, ms)
}

func (s *SQLiteStore) initialize() error {
	if _, err := s.db.Exec(Schema); err != nil {
		return NewStorageError("sqlite", "create_schema", err)
	}
	if _, err := s.db.Exec(insertSchemaVersion, SchemaVersion, time.Now().UnixNano()); err != nil {
		return NewStorageError("sqlite", "insert_schema_version", err)
	}

	var version int
	if err := s.db.QueryRow(getSchemaVersion).Scan(&version); err != nil {
		return NewStorageError("sqlite", "get_schema_version", err)
	}
	if version != SchemaVersion {
		return NewStorageError("sqlite", "schema_version_mismatch",
			fmt.Errorf("expected schema version %d, got %d", SchemaVersion, version))
	}
	return nil
}

// Save inserts or replaces an entry.
func (s *SQLiteStore) Save(ctx context.Context, e *Entry) error {
	_, err := s.db.ExecContext(ctx, upsertEntry,
		e.ID, e.RunID, e.Pony, e.Dir, e.SourceHash,
		string(e.ConfigJSON), e.CanonicalINI,
		e.Warnings, e.Errors, e.ConvertedAt.UnixNano(),
	)
	if err != nil {
		return NewStorageError("sqlite", "save", err)
	}
	return nil
}

// Get returns the newest entry for pony.
func (s *SQLiteStore) Get(ctx context.Context, pony string) (*Entry, error) {
	entries, err := s.List(ctx, Query{Pony: pony, Limit: 1})
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, ErrNotFound
	}
	return entries[0], nil
}

// List returns matching entries, newest first.
func (s *SQLiteStore) List(ctx context.Context, query Query) ([]*Entry, error) {
	where, args := buildWhereClause(query)
	stmt := selectEntries + where + " ORDER BY converted_at DESC, id DESC"
	if query.Limit > 0 {
		stmt += " LIMIT ?"
		args = append(args, query.Limit)
	}

	rows, err := s.db.QueryContext(ctx, stmt, args...)
	if err != nil {
		return nil, NewStorageError("sqlite", "list", err)
	}
	defer rows.Close()

	entries := make([]*Entry, 0)
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, NewStorageError("sqlite", "scan", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, NewStorageError("sqlite", "list", err)
	}
	return entries, nil
}

// Prune deletes entries converted before olderThan.
func (s *SQLiteStore) Prune(ctx context.Context, olderThan time.Time) (int64, error) {
	res, err := s.db.ExecContext(ctx, "DELETE FROM conversions WHERE converted_at < ?", olderThan.UnixNano())
	if err != nil {
		return 0, NewStorageError("sqlite", "prune", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, NewStorageError("sqlite", "prune", err)
	}
	return n, nil
}

// Ping checks the database connection.
func (s *SQLiteStore) Ping(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return NewStorageError("sqlite", "ping", err)
	}
	return nil
}

// Close closes the database.
func (s *SQLiteStore) Close() error {
	if err := s.db.Close(); err != nil {
		return NewStorageError("sqlite", "close", err)
	}
	return nil
}

func buildWhereClause(q Query) (string, []any) {
	var conds []string
	var args []any

	if q.Pony != "" {
		conds = append(conds, "pony = ?")
		args = append(args, q.Pony)
	}
	if q.RunID != "" {
		conds = append(conds, "run_id = ?")
		args = append(args, q.RunID)
	}
	if !q.Since.IsZero() {
		conds = append(conds, "converted_at >= ?")
		args = append(args, q.Since.UnixNano())
	}

	if len(conds) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func scanEntry(rows *sql.Rows) (*Entry, error) {
	var (
		e          Entry
		configJSON string
		nanos      int64
	)
	err := rows.Scan(&e.ID, &e.RunID, &e.Pony, &e.Dir, &e.SourceHash,
		&configJSON, &e.CanonicalINI, &e.Warnings, &e.Errors, &nanos)
	if err != nil {
		return nil, err
	}
	e.ConfigJSON = []byte(configJSON)
	e.ConvertedAt = time.Unix(0, nanos).UTC()
	return &e, nil
}
