package storage

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"mercator-hq/stc/pkg/config"
	"mercator-hq/stc/pkg/journal"
)

// DriverMemory selects MemoryStorage.
const DriverMemory = "memory"

// Open creates the backend selected by cfg.Driver, creating the database
// directory when needed.
func Open(cfg config.JournalConfig, logger *slog.Logger) (journal.Storage, error) {
	switch cfg.Driver {
	case DriverMemory:
		return NewMemoryStorage(), nil
	case "", DriverModernc, DriverMattn:
		if dir := filepath.Dir(cfg.Path); dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, journal.NewStorageError(cfg.Driver, "open", err)
			}
		}
		return NewSQLiteStorage(SQLiteConfig{
			Driver:       cfg.Driver,
			Path:         cfg.Path,
			MaxOpenConns: cfg.MaxOpenConns,
			WALMode:      cfg.WALMode,
			BusyTimeout:  cfg.BusyTimeout,
		}, logger)
	default:
		return nil, journal.NewStorageError(cfg.Driver, "open", fmt.Errorf("unknown journal driver %q", cfg.Driver))
	}
}
