// Package repository declares the record store contract.
//
// Services depend on these interfaces, never on a concrete backend. Three
// backends implement them: mongo, sqlite and memory. package storage picks
// one from the connection string at startup.
package repository

import (
	"context"
	"time"

	"github.com/sakif/exercise-tracker/internal/model"
)

// ExerciseFilter narrows ListExercises.
//
// From and To are inclusive bounds on Exercise.Date; nil means unbounded.
// An invalid (zero) date lies in no range, so any bound excludes it.
// Limit <= 0 means no limit.
type ExerciseFilter struct {
	UserID string
	From   *time.Time
	To     *time.Time
	Limit  int
}

// Matches reports whether e satisfies the filter, ignoring Limit.
// Backends that can't push the filter down to the database use this.
func (f ExerciseFilter) Matches(e *model.Exercise) bool {
	if e.UserID != f.UserID {
		return false
	}
	if (f.From != nil || f.To != nil) && e.Date.IsZero() {
		return false
	}
	if f.From != nil && e.Date.Before(*f.From) {
		return false
	}
	if f.To != nil && e.Date.After(*f.To) {
		return false
	}
	return true
}

// UserRepository stores users.
//
// GetUserByID returns apperror.ErrNotFound both for unknown ids and for ids
// the backend can't even parse. ListUsers returns users in insertion order.
type UserRepository interface {
	CreateUser(ctx context.Context, user *model.User) error
	GetUserByID(ctx context.Context, id string) (*model.User, error)
	ListUsers(ctx context.Context) ([]model.User, error)
}

// ExerciseRepository stores exercises.
//
// ListExercises returns matches in insertion order, so results are stable
// as long as nothing is written in between.
type ExerciseRepository interface {
	CreateExercise(ctx context.Context, exercise *model.Exercise) error
	ListExercises(ctx context.Context, filter ExerciseFilter) ([]model.Exercise, error)
}

// Store is a complete backend with a lifecycle.
type Store interface {
	UserRepository
	ExerciseRepository
	Close() error
}
