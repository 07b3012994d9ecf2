// Package storage opens the record store named by a connection string.
//
// The scheme picks the backend:
//
//	mongodb://host/db, mongodb+srv://...   → MongoDB
//	sqlite://data/exercises.db             → SQLite file (relative path)
//	sqlite:///var/lib/exercises.db         → SQLite file (absolute path)
//	sqlite::memory:, file:exercises.db     → SQLite
//	memory://                              → process memory, lost on exit
package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sakif/exercise-tracker/internal/repository"
	"github.com/sakif/exercise-tracker/internal/repository/memory"
	"github.com/sakif/exercise-tracker/internal/repository/mongo"
	"github.com/sakif/exercise-tracker/internal/repository/sqlite"
)

// Backend identifies a store implementation.
type Backend string

const (
	BackendMongo  Backend = "mongo"
	BackendSQLite Backend = "sqlite"
	BackendMemory Backend = "memory"
)

var (
	ErrEmptyURI          = errors.New("storage: connection string is empty")
	ErrUnsupportedScheme = errors.New("storage: unsupported connection string scheme")
)

// Options tune Open. The zero value is fine.
type Options struct {
	// MongoDatabase is used when a mongodb URI names no database.
	MongoDatabase string
}

// Parse splits uri into a backend and the backend-specific address
// (the full URI for mongo, a file path for sqlite, "" for memory).
func Parse(uri string) (Backend, string, error) {
	uri = strings.TrimSpace(uri)
	if uri == "" {
		return "", "", ErrEmptyURI
	}

	switch {
	case strings.HasPrefix(uri, "mongodb://"), strings.HasPrefix(uri, "mongodb+srv://"):
		return BackendMongo, uri, nil
	case strings.HasPrefix(uri, "sqlite://"):
		return sqlitePath(strings.TrimPrefix(uri, "sqlite://"))
	case strings.HasPrefix(uri, "sqlite:"):
		return sqlitePath(strings.TrimPrefix(uri, "sqlite:"))
	case strings.HasPrefix(uri, "file:"):
		return sqlitePath(strings.TrimPrefix(uri, "file:"))
	case uri == "memory" || strings.HasPrefix(uri, "memory:"):
		return BackendMemory, "", nil
	}

	scheme := uri
	if i := strings.Index(uri, ":"); i >= 0 {
		scheme = uri[:i]
	}
	return "", "", fmt.Errorf("%w: %q", ErrUnsupportedScheme, scheme)
}

func sqlitePath(path string) (Backend, string, error) {
	if path == "" {
		return "", "", fmt.Errorf("%w: sqlite needs a path", ErrEmptyURI)
	}
	return BackendSQLite, path, nil
}

// Open parses uri and returns a ready store. Callers own the store and
// must Close it.
func Open(ctx context.Context, uri string, opts Options) (repository.Store, Backend, error) {
	backend, addr, err := Parse(uri)
	if err != nil {
		return nil, "", err
	}

	switch backend {
	case BackendMongo:
		db, err := mongo.New(ctx, addr, opts.MongoDatabase)
		if err != nil {
			return nil, backend, err
		}
		return db, backend, nil

	case BackendSQLite:
		// os.MkdirAll is like `mkdir -p`: parent dirs are created as needed.
		if addr != ":memory:" {
			if err := os.MkdirAll(filepath.Dir(addr), 0o755); err != nil {
				return nil, backend, fmt.Errorf("storage: creating database directory: %w", err)
			}
		}
		db, err := sqlite.New(addr)
		if err != nil {
			return nil, backend, err
		}
		return db, backend, nil

	default:
		return memory.New(), backend, nil
	}
}

// Redact hides the password in a connection string so it can be logged.
func Redact(uri string) string {
	scheme, rest, ok := strings.Cut(uri, "://")
	if !ok {
		return uri
	}
	at := strings.LastIndex(rest, "@")
	if at < 0 {
		return uri
	}
	creds := rest[:at]
	if user, _, hasPass := strings.Cut(creds, ":"); hasPass {
		creds = user + ":xxxxx"
	}
	return scheme + "://" + creds + rest[at:]
}
