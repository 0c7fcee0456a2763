package storage

// SchemaVersion is the current database schema version.
const SchemaVersion = 1

// Times are stored as Unix nanoseconds and durations as microseconds so that
// both SQLite drivers compare them numerically.
const Schema = `
CREATE TABLE IF NOT EXISTS journal (
    id TEXT PRIMARY KEY,
    request_id TEXT NOT NULL DEFAULT '',
    operation TEXT NOT NULL,
    resource TEXT NOT NULL DEFAULT '',
    recorded_at INTEGER NOT NULL,
    duration_us INTEGER NOT NULL,
    input_hash TEXT NOT NULL DEFAULT '',
    input_bytes INTEGER NOT NULL DEFAULT 0,
    output_bytes INTEGER NOT NULL DEFAULT 0,
    trees INTEGER NOT NULL DEFAULT 0,
    cache_hit INTEGER NOT NULL DEFAULT 0,
    source_system TEXT NOT NULL DEFAULT '',
    target_system TEXT NOT NULL DEFAULT '',
    status TEXT NOT NULL,
    error_kind TEXT NOT NULL DEFAULT '',
    error TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS schema_version (
    version INTEGER PRIMARY KEY,
    applied_at INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_journal_recorded_at ON journal(recorded_at);
CREATE INDEX IF NOT EXISTS idx_journal_operation ON journal(operation);
CREATE INDEX IF NOT EXISTS idx_journal_resource ON journal(resource);
CREATE INDEX IF NOT EXISTS idx_journal_status ON journal(status);
`

// InsertSchemaVersion records the schema version once.
const InsertSchemaVersion = `
INSERT INTO schema_version (version, applied_at)
VALUES (?, ?)
ON CONFLICT(version) DO NOTHING;
`

// GetSchemaVersion returns the newest applied schema version.
const GetSchemaVersion = `
SELECT version FROM schema_version ORDER BY version DESC LIMIT 1;
`

const columns = `id, request_id, operation, resource, recorded_at, duration_us,
    input_hash, input_bytes, output_bytes, trees, cache_hit,
    source_system, target_system, status, error_kind, error`
