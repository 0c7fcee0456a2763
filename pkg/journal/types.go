package journal

import (
	"context"
	"time"
)

// Record status values.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Record is one verb invocation.
type Record struct {
	ID        string `json:"id"`         // UUID v4
	RequestID string `json:"request_id"` // Empty outside the HTTP server

	Operation string `json:"operation"`          // resprof, parsex, conform
	Resource  string `json:"resource,omitempty"` // Descriptor id when the input came from the registry

	Time     time.Time     `json:"time"`
	Duration time.Duration `json:"duration"`

	InputHash   string `json:"input_hash"`   // SHA-256 of the input text
	InputBytes  int    `json:"input_bytes"`
	OutputBytes int    `json:"output_bytes"`
	Trees       int    `json:"trees"` // Number of trees parsed or produced
	CacheHit    bool   `json:"cache_hit"`

	SourceSystem string `json:"source_system,omitempty"` // Conform only
	TargetSystem string `json:"target_system,omitempty"` // Conform only

	Status    string `json:"status"`
	ErrorKind string `json:"error_kind,omitempty"`
	Error     string `json:"error,omitempty"`
}

// Query filters journal records. Zero fields match everything.
type Query struct {
	StartTime *time.Time `json:"start_time,omitempty"` // Inclusive
	EndTime   *time.Time `json:"end_time,omitempty"`   // Inclusive

	Operation string `json:"operation,omitempty"`
	Resource  string `json:"resource,omitempty"`
	Status    string `json:"status,omitempty"`
	ErrorKind string `json:"error_kind,omitempty"`

	Limit  int `json:"limit,omitempty"`
	Offset int `json:"offset,omitempty"`

	// Ascending orders oldest first; the default is newest first.
	Ascending bool `json:"ascending,omitempty"`
}

// Storage persists journal records. Implementations must be safe for
// concurrent use.
type Storage interface {
	// Store persists a record.
	Store(ctx context.Context, record *Record) error

	// Query returns the records matching query ordered by time.
	Query(ctx context.Context, query *Query) ([]*Record, error)

	// Count returns the number of records matching query; Limit and Offset
	// are ignored.
	Count(ctx context.Context, query *Query) (int64, error)

	// Delete removes the records matching query and returns how many were
	// removed; Limit and Offset are ignored.
	Delete(ctx context.Context, query *Query) (int64, error)

	// Ping reports whether the backend is usable.
	Ping(ctx context.Context) error

	// Close releases any resources held by the backend.
	Close() error
}
