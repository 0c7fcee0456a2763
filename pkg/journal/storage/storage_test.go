package storage

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"mercator-hq/stc/pkg/config"
	"mercator-hq/stc/pkg/journal"
)

var base = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func seed(t *testing.T, s journal.Storage) {
	t.Helper()
	records := []*journal.Record{
		{ID: "r1", Operation: "resprof", Time: base, Duration: 1500 * time.Microsecond, InputHash: "h1", InputBytes: 17, Trees: 1, Status: journal.StatusSuccess},
		{ID: "r2", Operation: "parsex", Time: base.Add(time.Minute), Resource: "m81", Trees: 2, CacheHit: true, Status: journal.StatusSuccess},
		{ID: "r3", Operation: "conform", Time: base.Add(2 * time.Minute), SourceSystem: "ICRS", TargetSystem: "GEO_C", Status: journal.StatusError, ErrorKind: "not_implemented", Error: "conform to GEO_C is not implemented"},
		{ID: "r4", Operation: "conform", Time: base.Add(3 * time.Minute), Resource: "m81", Status: journal.StatusSuccess},
	}
	for _, r := range records {
		if err := s.Store(context.Background(), r); err != nil {
			t.Fatalf("Store(%s) error = %v", r.ID, err)
		}
	}
}

func ids(records []*journal.Record) string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.ID
	}
	return strings.Join(out, ",")
}

// testStorage runs the behaviour every backend must share.
func testStorage(t *testing.T, s journal.Storage) {
	ctx := context.Background()
	seed(t, s)

	t.Run("ordering", func(t *testing.T) {
		all, err := s.Query(ctx, &journal.Query{})
		if err != nil {
			t.Fatal(err)
		}
		if got := ids(all); got != "r4,r3,r2,r1" {
			t.Errorf("Query() = %s, want newest first", got)
		}
		asc, err := s.Query(ctx, &journal.Query{Ascending: true, Limit: 2, Offset: 1})
		if err != nil {
			t.Fatal(err)
		}
		if got := ids(asc); got != "r2,r3" {
			t.Errorf("Query(asc, limit 2, offset 1) = %s, want r2,r3", got)
		}
	})

	t.Run("filters", func(t *testing.T) {
		tests := []struct {
			name  string
			query journal.Query
			want  string
		}{
			{"operation", journal.Query{Operation: "conform"}, "r4,r3"},
			{"resource", journal.Query{Resource: "m81"}, "r4,r2"},
			{"status", journal.Query{Status: journal.StatusError}, "r3"},
			{"error kind", journal.Query{ErrorKind: "not_implemented"}, "r3"},
			{"time range", journal.Query{StartTime: ptr(base.Add(time.Minute)), EndTime: ptr(base.Add(2 * time.Minute))}, "r3,r2"},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				q := tt.query
				got, err := s.Query(ctx, &q)
				if err != nil {
					t.Fatal(err)
				}
				if ids(got) != tt.want {
					t.Errorf("Query() = %s, want %s", ids(got), tt.want)
				}
				n, err := s.Count(ctx, &q)
				if err != nil {
					t.Fatal(err)
				}
				if want := int64(len(strings.Split(tt.want, ","))); n != want {
					t.Errorf("Count() = %d, want %d", n, want)
				}
			})
		}
	})

	t.Run("round trip", func(t *testing.T) {
		got, err := s.Query(ctx, &journal.Query{Operation: "resprof"})
		if err != nil || len(got) != 1 {
			t.Fatalf("Query() = %v, %v", got, err)
		}
		r := got[0]
		if !r.Time.Equal(base) {
			t.Errorf("Time = %v, want %v", r.Time, base)
		}
		if r.Duration != 1500*time.Microsecond {
			t.Errorf("Duration = %v", r.Duration)
		}
		if r.InputHash != "h1" || r.InputBytes != 17 || r.Trees != 1 {
			t.Errorf("record = %+v", r)
		}

		hit, _ := s.Query(ctx, &journal.Query{Operation: "parsex"})
		if len(hit) != 1 || !hit[0].CacheHit {
			t.Errorf("CacheHit not preserved: %+v", hit)
		}
	})

	t.Run("delete", func(t *testing.T) {
		n, err := s.Delete(ctx, &journal.Query{EndTime: ptr(base.Add(time.Minute))})
		if err != nil {
			t.Fatal(err)
		}
		if n != 2 {
			t.Errorf("Delete() = %d, want 2", n)
		}
		left, _ := s.Count(ctx, nil)
		if left != 2 {
			t.Errorf("Count() after delete = %d, want 2", left)
		}
	})

	if err := s.Ping(ctx); err != nil {
		t.Errorf("Ping() error = %v", err)
	}
}

func ptr(t time.Time) *time.Time { return &t }

func TestMemoryStorage(t *testing.T) {
	s := NewMemoryStorage()
	defer s.Close()
	testStorage(t, s)
}

func TestSQLiteStorage_Modernc(t *testing.T) {
	s, err := NewSQLiteStorage(SQLiteConfig{
		Driver:  DriverModernc,
		Path:    filepath.Join(t.TempDir(), "journal.db"),
		WALMode: true,
	}, nil)
	if err != nil {
		t.Fatalf("NewSQLiteStorage() error = %v", err)
	}
	defer s.Close()
	testStorage(t, s)
}

func TestSQLiteStorage_Mattn(t *testing.T) {
	s, err := NewSQLiteStorage(SQLiteConfig{
		Driver: DriverMattn,
		Path:   filepath.Join(t.TempDir(), "journal.db"),
	}, nil)
	if err != nil {
		if strings.Contains(err.Error(), "CGO_ENABLED=0") {
			t.Skip("go-sqlite3 requires cgo")
		}
		t.Fatalf("NewSQLiteStorage() error = %v", err)
	}
	defer s.Close()
	testStorage(t, s)
}

func TestSQLiteStorage_Reopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "journal.db")
	cfg := SQLiteConfig{Driver: DriverModernc, Path: path}

	s, err := NewSQLiteStorage(cfg, nil)
	if err != nil {
		t.Fatal(err)
	}
	seed(t, s)
	s.Close()

	s, err = NewSQLiteStorage(cfg, nil)
	if err != nil {
		t.Fatalf("reopen error = %v", err)
	}
	defer s.Close()
	n, err := s.Count(context.Background(), nil)
	if err != nil {
		t.Fatal(err)
	}
	if n != 4 {
		t.Errorf("Count() after reopen = %d, want 4", n)
	}
}

func TestSQLiteStorage_EmptyPath(t *testing.T) {
	_, err := NewSQLiteStorage(SQLiteConfig{}, nil)
	var se *journal.StorageError
	if !errors.As(err, &se) || se.Operation != "open" {
		t.Errorf("error = %v, want open StorageError", err)
	}
}

func TestOpen(t *testing.T) {
	s, err := Open(config.JournalConfig{Driver: DriverMemory}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := s.(*MemoryStorage); !ok {
		t.Errorf("Open(memory) = %T", s)
	}

	path := filepath.Join(t.TempDir(), "nested", "dir", "journal.db")
	s, err = Open(config.JournalConfig{Driver: DriverModernc, Path: path}, nil)
	if err != nil {
		t.Fatalf("Open(sqlite) error = %v", err)
	}
	s.Close()

	if _, err := Open(config.JournalConfig{Driver: "postgres"}, nil); err == nil {
		t.Error("Open(postgres) error = nil")
	}
}
