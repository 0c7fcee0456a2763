package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"mercator-hq/stc/pkg/journal"

	_ "github.com/mattn/go-sqlite3" // registers "sqlite3" (cgo)
	_ "modernc.org/sqlite"          // registers "sqlite" (pure Go)
)

// SQLite driver names.
const (
	DriverModernc = "sqlite"
	DriverMattn   = "sqlite3"
)

// SQLiteConfig contains configuration for the SQLite backend.
type SQLiteConfig struct {
	// Driver is DriverModernc or DriverMattn.
	// Default: DriverModernc
	Driver string

	// Path is the database file path.
	Path string

	// MaxOpenConns is the maximum number of open connections.
	// Default: 4
	MaxOpenConns int

	// WALMode enables Write-Ahead Logging mode.
	WALMode bool

	// BusyTimeout is the duration to wait when the database is locked.
	// Default: 5 seconds
	BusyTimeout time.Duration
}

// SQLiteStorage implements journal.Storage on SQLite.
type SQLiteStorage struct {
	db     *sql.DB
	config SQLiteConfig
	logger *slog.Logger
	insert *sql.Stmt
}

// NewSQLiteStorage opens the database, applies pragmas and creates the
// schema.
func NewSQLiteStorage(cfg SQLiteConfig, logger *slog.Logger) (*SQLiteStorage, error) {
	if cfg.Driver == "" {
		cfg.Driver = DriverModernc
	}
	if cfg.MaxOpenConns <= 0 {
		cfg.MaxOpenConns = 4
	}
	if cfg.BusyTimeout <= 0 {
		cfg.BusyTimeout = 5 * time.Second
	}
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Path == "" {
		return nil, journal.NewStorageError(cfg.Driver, "open", fmt.Errorf("database path cannot be empty"))
	}

	db, err := sql.Open(cfg.Driver, cfg.Path)
	if err != nil {
		return nil, journal.NewStorageError(cfg.Driver, "open", err)
	}
	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxOpenConns)

	s := &SQLiteStorage{
		db:     db,
		config: cfg,
		logger: logger.With("component", "journal.storage", "driver", cfg.Driver),
	}
	if err := s.initialize(); err != nil {
		db.Close()
		return nil, err
	}

	s.logger.Info("journal storage initialized",
		"path", cfg.Path,
		"wal_mode", cfg.WALMode,
		"max_open_conns", cfg.MaxOpenConns,
	)
	return s, nil
}

func (s *SQLiteStorage) initialize() error {
	backend := s.config.Driver

	if s.config.WALMode {
		if _, err := s.db.Exec("PRAGMA journal_mode=WAL;"); err != nil {
			return journal.NewStorageError(backend, "enable_wal", err)
		}
	}
	if _, err := s.db.Exec(fmt.Sprintf("PRAGMA busy_timeout=%d;", s.config.BusyTimeout.Milliseconds())); err != nil {
		return journal.NewStorageError(backend, "set_busy_timeout", err)
	}
	if _, err := s.db.Exec(Schema); err != nil {
		return journal.NewStorageError(backend, "create_schema", err)
	}
	if _, err := s.db.Exec(InsertSchemaVersion, SchemaVersion, time.Now().UnixNano()); err != nil {
		return journal.NewStorageError(backend, "insert_schema_version", err)
	}

	var version int
	if err := s.db.QueryRow(GetSchemaVersion).Scan(&version); err != nil {
		return journal.NewStorageError(backend, "get_schema_version", err)
	}
	if version != SchemaVersion {
		return journal.NewStorageError(backend, "schema_version_mismatch",
			fmt.Errorf("expected schema version %d, got %d", SchemaVersion, version))
	}

	stmt, err := s.db.Prepare(`INSERT INTO journal (` + columns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return journal.NewStorageError(backend, "prepare", err)
	}
	s.insert = stmt
	return nil
}

// Store persists a record.
func (s *SQLiteStorage) Store(ctx context.Context, r *journal.Record) error {
	cacheHit := 0
	if r.CacheHit {
		cacheHit = 1
	}
	_, err := s.insert.ExecContext(ctx,
		r.ID, r.RequestID, r.Operation, r.Resource,
		r.Time.UnixNano(), r.Duration.Microseconds(),
		r.InputHash, r.InputBytes, r.OutputBytes, r.Trees, cacheHit,
		r.SourceSystem, r.TargetSystem, r.Status, r.ErrorKind, r.Error,
	)
	if err != nil {
		return journal.NewStorageError(s.config.Driver, "store", err)
	}
	return nil
}

// Query returns matching records, newest first unless query.Ascending.
func (s *SQLiteStorage) Query(ctx context.Context, query *journal.Query) ([]*journal.Record, error) {
	if query == nil {
		query = &journal.Query{}
	}
	where, args := buildWhereClause(query)

	var b strings.Builder
	b.WriteString("SELECT " + columns + " FROM journal")
	if where != "" {
		b.WriteString(" WHERE " + where)
	}
	if query.Ascending {
		b.WriteString(" ORDER BY recorded_at ASC, id ASC")
	} else {
		b.WriteString(" ORDER BY recorded_at DESC, id DESC")
	}
	if query.Limit > 0 {
		fmt.Fprintf(&b, " LIMIT %d", query.Limit)
		if query.Offset > 0 {
			fmt.Fprintf(&b, " OFFSET %d", query.Offset)
		}
	} else if query.Offset > 0 {
		fmt.Fprintf(&b, " LIMIT -1 OFFSET %d", query.Offset)
	}

	rows, err := s.db.QueryContext(ctx, b.String(), args...)
	if err != nil {
		return nil, journal.NewStorageError(s.config.Driver, "query", err)
	}
	defer rows.Close()

	records := []*journal.Record{}
	for rows.Next() {
		record, err := scanRow(rows)
		if err != nil {
			return nil, journal.NewStorageError(s.config.Driver, "scan", err)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, journal.NewStorageError(s.config.Driver, "query", err)
	}
	return records, nil
}

// Count returns the number of matching records.
func (s *SQLiteStorage) Count(ctx context.Context, query *journal.Query) (int64, error) {
	if query == nil {
		query = &journal.Query{}
	}
	where, args := buildWhereClause(query)
	sqlQuery := "SELECT COUNT(*) FROM journal"
	if where != "" {
		sqlQuery += " WHERE " + where
	}

	var count int64
	if err := s.db.QueryRowContext(ctx, sqlQuery, args...).Scan(&count); err != nil {
		return 0, journal.NewStorageError(s.config.Driver, "count", err)
	}
	return count, nil
}

// Delete removes matching records.
func (s *SQLiteStorage) Delete(ctx context.Context, query *journal.Query) (int64, error) {
	if query == nil {
		query = &journal.Query{}
	}
	where, args := buildWhereClause(query)
	sqlQuery := "DELETE FROM journal"
	if where != "" {
		sqlQuery += " WHERE " + where
	}

	result, err := s.db.ExecContext(ctx, sqlQuery, args...)
	if err != nil {
		return 0, journal.NewStorageError(s.config.Driver, "delete", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return 0, journal.NewStorageError(s.config.Driver, "delete", err)
	}
	return n, nil
}

// Ping checks the database connection.
func (s *SQLiteStorage) Ping(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return journal.NewStorageError(s.config.Driver, "ping", err)
	}
	return nil
}

// Close releases the prepared statement and the connection pool.
func (s *SQLiteStorage) Close() error {
	if s.insert != nil {
		s.insert.Close()
	}
	if err := s.db.Close(); err != nil {
		return journal.NewStorageError(s.config.Driver, "close", err)
	}
	s.logger.Info("journal storage closed")
	return nil
}

// buildWhereClause returns the WHERE clause without the keyword and its
// arguments.
func buildWhereClause(query *journal.Query) (string, []interface{}) {
	var conditions []string
	var args []interface{}

	if query.StartTime != nil {
		conditions = append(conditions, "recorded_at >= ?")
		args = append(args, query.StartTime.UnixNano())
	}
	if query.EndTime != nil {
		conditions = append(conditions, "recorded_at <= ?")
		args = append(args, query.EndTime.UnixNano())
	}
	if query.Operation != "" {
		conditions = append(conditions, "operation = ?")
		args = append(args, query.Operation)
	}
	if query.Resource != "" {
		conditions = append(conditions, "resource = ?")
		args = append(args, query.Resource)
	}
	if query.Status != "" {
		conditions = append(conditions, "status = ?")
		args = append(args, query.Status)
	}
	if query.ErrorKind != "" {
		conditions = append(conditions, "error_kind = ?")
		args = append(args, query.ErrorKind)
	}

	return strings.Join(conditions, " AND "), args
}

func scanRow(rows *sql.Rows) (*journal.Record, error) {
	var (
		r          journal.Record
		recordedAt int64
		durationUS int64
		cacheHit   int64
	)
	err := rows.Scan(
		&r.ID, &r.RequestID, &r.Operation, &r.Resource, &recordedAt, &durationUS,
		&r.InputHash, &r.InputBytes, &r.OutputBytes, &r.Trees, &cacheHit,
		&r.SourceSystem, &r.TargetSystem, &r.Status, &r.ErrorKind, &r.Error,
	)
	if err != nil {
		return nil, err
	}
	r.Time = time.Unix(0, recordedAt)
	r.Duration = time.Duration(durationUS) * time.Microsecond
	r.CacheHit = cacheHit != 0
	return &r, nil
}
