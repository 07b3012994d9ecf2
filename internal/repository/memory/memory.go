// Package memory implements an in-memory repository for development and testing.
package memory

import (
	"context"
	"errors"
	"sync"

	"github.com/rs/xid"

	"github.com/sakif/exercise-tracker/internal/apperror"
	"github.com/sakif/exercise-tracker/internal/model"
	"github.com/sakif/exercise-tracker/internal/repository"
)

// ErrClosed is returned by every method after Close.
var ErrClosed = errors.New("memory: store is closed")

// DB implements an in-memory database storage.
// Slices keep insertion order, which is the order every List returns.
type DB struct {
	mu        sync.RWMutex
	users     []model.User
	exercises []model.Exercise
	closed    bool
}

// New creates a new in-memory database.
func New() *DB {
	return &DB{}
}

// Ensure interfaces are met.
var _ repository.Store = (*DB)(nil)

// Close drops all data. Later calls fail with ErrClosed.
func (db *DB) Close() error {
	db.mu.Lock()
	defer db.mu.Unlock()

	db.closed = true
	db.users = nil
	db.exercises = nil
	return nil
}

// --- UserRepository ---

// CreateUser stores a copy of user with a fresh xid.
func (db *DB) CreateUser(ctx context.Context, user *model.User) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	db.mu.Lock()
	defer db.mu.Unlock()

	if db.closed {
		return ErrClosed
	}
	user.ID = xid.New().String()
	db.users = append(db.users, *user)
	return nil
}

// GetUserByID returns a copy of the user with id.
func (db *DB) GetUserByID(ctx context.Context, id string) (*model.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	db.mu.RLock()
	defer db.mu.RUnlock()

	if db.closed {
		return nil, ErrClosed
	}
	for i := range db.users {
		if db.users[i].ID == id {
			u := db.users[i]
			return &u, nil
		}
	}
	return nil, apperror.NotFound("User")
}

// ListUsers returns all users in insertion order.
func (db *DB) ListUsers(ctx context.Context) ([]model.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	db.mu.RLock()
	defer db.mu.RUnlock()

	if db.closed {
		return nil, ErrClosed
	}
	out := make([]model.User, len(db.users))
	copy(out, db.users)
	return out, nil
}

// --- ExerciseRepository ---

// CreateExercise stores a copy of exercise with a fresh xid.
func (db *DB) CreateExercise(ctx context.Context, exercise *model.Exercise) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	db.mu.Lock()
	defer db.mu.Unlock()

	if db.closed {
		return ErrClosed
	}
	exercise.ID = xid.New().String()
	db.exercises = append(db.exercises, *exercise)
	return nil
}

// ListExercises scans every exercise; fine for the data sizes this backend is for.
func (db *DB) ListExercises(ctx context.Context, filter repository.ExerciseFilter) ([]model.Exercise, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	db.mu.RLock()
	defer db.mu.RUnlock()

	if db.closed {
		return nil, ErrClosed
	}
	out := make([]model.Exercise, 0)
	for i := range db.exercises {
		if filter.Limit > 0 && len(out) >= filter.Limit {
			break
		}
		if filter.Matches(&db.exercises[i]) {
			out = append(out, db.exercises[i])
		}
	}
	return out, nil
}
