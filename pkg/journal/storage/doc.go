// Package storage provides journal.Storage backends.
//
// SQLiteStorage works with either SQLite driver: "sqlite" (modernc.org/sqlite,
// pure Go) or "sqlite3" (github.com/mattn/go-sqlite3, cgo). MemoryStorage
// keeps records in a map and is used by tests and by the "memory" driver.
// Open picks one from the journal configuration.
package storage
