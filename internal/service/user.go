// Package service contains the business logic layer of the application.
//
// THE THREE-LAYER ARCHITECTURE:
//
//	Handler (HTTP layer)     → decodes requests, writes JSON
//	Service (Business layer) → coerces, validates, orchestrates
//	Repository (Data layer)  → reads/writes the record store
//
// Services accept the typed input schema from package input and return
// apperror values. They never see an *http.Request or pick a status code.
//
// DEPENDENCY INJECTION:
// Services take repository interfaces, not a concrete backend. main wires
// in mongo, sqlite or memory; tests wire in fakes.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/sakif/exercise-tracker/internal/apperror"
	"github.com/sakif/exercise-tracker/internal/input"
	"github.com/sakif/exercise-tracker/internal/model"
	"github.com/sakif/exercise-tracker/internal/repository"
)

// Messages callers see. They're part of the API contract.
const (
	MsgUsernameRequired    = "Username is required"
	MsgDescriptionRequired = "Description is required"
	MsgUnableCreateUser    = "Unable to create user"
	MsgUnableListUsers     = "Unable to list users"
	MsgUnableAddExercise   = "Unable to add exercise"
	MsgUnableFetchLog      = "Unable to fetch exercise log"
)

// UserService handles creating and listing users.
type UserService struct {
	repo   repository.UserRepository
	logger *slog.Logger
}

// NewUserService creates a new UserService.
func NewUserService(repo repository.UserRepository, logger *slog.Logger) *UserService {
	return &UserService{
		repo:   repo,
		logger: logger,
	}
}

// Create validates and saves a new user.
//
// The username must be present and not just whitespace. It is stored as
// given (not trimmed) and is NOT checked for uniqueness.
func (s *UserService) Create(ctx context.Context, in input.NewUser) (*model.User, error) {
	if !in.Username.Present || strings.TrimSpace(in.Username.Value) == "" {
		return nil, apperror.ValidationFailed("username", MsgUsernameRequired)
	}

	user := &model.User{Username: in.Username.Value}
	if err := s.repo.CreateUser(ctx, user); err != nil {
		s.logger.Error("failed to create user",
			slog.String("username", user.Username),
			slog.String("error", err.Error()),
		)
		return nil, apperror.Persistence(MsgUnableCreateUser, err)
	}

	s.logger.Info("user created",
		slog.String("id", user.ID),
		slog.String("username", user.Username),
	)
	return user, nil
}

// List returns every user, oldest first.
func (s *UserService) List(ctx context.Context) ([]model.User, error) {
	users, err := s.repo.ListUsers(ctx)
	if err != nil {
		s.logger.Error("failed to list users", slog.String("error", err.Error()))
		return nil, apperror.Persistence(MsgUnableListUsers, err)
	}
	if users == nil {
		users = []model.User{}
	}
	return users, nil
}

// lookupUser wraps GetUserByID: not-found passes through unchanged, any
// other failure becomes a persistence error carrying message.
func lookupUser(ctx context.Context, repo repository.UserRepository, logger *slog.Logger, id, message string) (*model.User, error) {
	user, err := repo.GetUserByID(ctx, strings.TrimSpace(id))
	if err == nil {
		return user, nil
	}
	if errors.Is(err, apperror.ErrNotFound) {
		return nil, err
	}
	logger.Error("failed to look up user",
		slog.String("id", id),
		slog.String("error", err.Error()),
	)
	return nil, apperror.Persistence(message, fmt.Errorf("looking up user: %w", err))
}
