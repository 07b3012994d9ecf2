// Package sqlite is the single-file record store.
//
// It uses modernc.org/sqlite, a pure Go port, so the binary still builds
// without cgo. Pass ":memory:" for a throwaway database.
//
// Exercise dates are stored as Unix milliseconds. from/to filters then
// compare integers and can use the (user_id, date_ms) index.
package sqlite

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite" // registers the "sqlite" driver
)

const memoryPath = ":memory:"

// pragmas run once per New. WAL lets list queries proceed during an insert.
var pragmas = []string{
	"PRAGMA journal_mode=WAL",
	"PRAGMA busy_timeout=5000",
}

// schema is applied on every start; each statement must be idempotent.
//
// exercises.duration is nullable because NULL is how a NaN duration is
// stored. user_id carries no FOREIGN KEY: the service checks the user, and
// users are never deleted.
var schema = []struct {
	name string
	stmt string
}{
	{"users table", `CREATE TABLE IF NOT EXISTS users (
		id         TEXT PRIMARY KEY,
		username   TEXT NOT NULL,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`},
	{"exercises table", `CREATE TABLE IF NOT EXISTS exercises (
		id          TEXT PRIMARY KEY,
		user_id     TEXT NOT NULL,
		description TEXT NOT NULL,
		duration    REAL,
		date_ms     INTEGER NOT NULL
	)`},
	{"exercises index", `CREATE INDEX IF NOT EXISTS idx_exercises_user_date
		ON exercises(user_id, date_ms)`},
}

// DB is the SQLite implementation of repository.Store.
type DB struct {
	conn *sql.DB
}

// New opens (creating if needed) the database at path and applies the schema.
func New(path string) (*DB, error) {
	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("sqlite: opening database: %w", err)
	}

	// Every pooled connection to ":memory:" gets its own empty database.
	if path == memoryPath {
		conn.SetMaxOpenConns(1)
	}

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: pinging database: %w", err)
	}

	for _, p := range pragmas {
		if _, err := conn.Exec(p); err != nil {
			conn.Close()
			return nil, fmt.Errorf("sqlite: %s: %w", p, err)
		}
	}

	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: running migrations: %w", err)
	}

	return db, nil
}

// Close closes the connection pool. Later calls on db fail.
func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) migrate() error {
	for _, s := range schema {
		if _, err := db.conn.Exec(s.stmt); err != nil {
			return fmt.Errorf("creating %s: %w", s.name, err)
		}
	}
	return nil
}
