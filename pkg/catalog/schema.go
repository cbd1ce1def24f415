package catalog

// SchemaVersion is the current database schema version.
const SchemaVersion = 1

// Schema creates the catalog tables. Times are stored as Unix nanoseconds so
// both SQLite drivers read them back identically.
const Schema = `
CREATE TABLE IF NOT EXISTS conversions (
    id TEXT PRIMARY KEY,
    run_id TEXT NOT NULL,
    pony TEXT NOT NULL,
    dir TEXT NOT NULL,
    source_hash TEXT NOT NULL,
    config_json TEXT NOT NULL,
    canonical_ini TEXT NOT NULL,
    warnings INTEGER NOT NULL DEFAULT 0,
    errors INTEGER NOT NULL DEFAULT 0,
    converted_at INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS schema_version (
    version INTEGER PRIMARY KEY,
    applied_at INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_conversions_pony ON conversions(pony, converted_at);
CREATE INDEX IF NOT EXISTS idx_conversions_run_id ON conversions(run_id);
CREATE INDEX IF NOT EXISTS idx_conversions_converted_at ON conversions(converted_at);
`

const insertSchemaVersion = `
INSERT INTO schema_version (version, applied_at)
VALUES (?, ?)
ON CONFLICT(version) DO NOTHING;
`

const getSchemaVersion = `SELECT version FROM schema_version ORDER BY version DESC LIMIT 1;`

const upsertEntry = `
INSERT INTO conversions (
    id, run_id, pony, dir, source_hash, config_json, canonical_ini, warnings, errors, converted_at
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
    run_id = excluded.run_id,
    pony = excluded.pony,
    dir = excluded.dir,
    source_hash = excluded.source_hash,
    config_json = excluded.config_json,
    canonical_ini = excluded.canonical_ini,
    warnings = excluded.warnings,
    errors = excluded.errors,
    converted_at = excluded.converted_at;
`

const selectEntries = `
SELECT id, run_id, pony, dir, source_hash, config_json, canonical_ini, warnings, errors, converted_at
FROM conversions`
