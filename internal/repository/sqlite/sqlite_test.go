package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/sakif/exercise-tracker/internal/model"
	"github.com/sakif/exercise-tracker/internal/repository"
	"github.com/sakif/exercise-tracker/internal/repository/repositorytest"
)

// TESTING WITH IN-MEMORY SQLITE:
// ":memory:" creates a fresh database that exists only during the test.
// t.Cleanup closes it when the test (or subtest) that created it finishes.
func newTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := New(":memory:")
	if err != nil {
		t.Fatalf("failed to create test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestConformance(t *testing.T) {
	repositorytest.Run(t, func(t *testing.T) repository.Store {
		return newTestDB(t)
	})
}

func TestNew_MigrationsAreIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "exercises.db")

	db, err := New(path)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	u := &model.User{Username: "persisted"}
	if err := db.CreateUser(context.Background(), u); err != nil {
		t.Fatalf("CreateUser() error = %v", err)
	}
	db.Close()

	// Reopening runs migrate() again against existing tables.
	db, err = New(path)
	if err != nil {
		t.Fatalf("reopen New() error = %v", err)
	}
	defer db.Close()

	found, err := db.GetUserByID(context.Background(), u.ID)
	if err != nil {
		t.Fatalf("GetUserByID() after reopen error = %v", err)
	}
	if found.Username != "persisted" {
		t.Errorf("Username = %q, want %q", found.Username, "persisted")
	}
}

func TestClosedDBReturnsWrappedError(t *testing.T) {
	db, err := New(":memory:")
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	db.Close()

	if err := db.CreateUser(context.Background(), &model.User{Username: "late"}); err == nil {
		t.Fatal("CreateUser() on a closed db should fail")
	}
	if _, err := db.ListUsers(context.Background()); err == nil {
		t.Fatal("ListUsers() on a closed db should fail")
	}
}
