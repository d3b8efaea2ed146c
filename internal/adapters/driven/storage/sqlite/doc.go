// Package sqlite provides a SQLite-backed implementation of
// driven.KeyValueStore.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that
// requires no CGO, enabling easy cross-compilation. Every key lives in one
// row of the kv table.
//
// # Schema
//
// The database schema is managed through versioned migrations stored in the
// migrations/ directory. Each migration is a pair of .up.sql and .down.sql
// files; applied versions are recorded in schema_migrations.
//
// # Data Location
//
// By default, the database is stored at ~/.cvboard/data/cvboard.db
//
// # Thread Safety
//
// All operations are thread-safe. The store uses database-level locking
// provided by SQLite in WAL mode.
package sqlite
