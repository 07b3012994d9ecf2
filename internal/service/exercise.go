package service

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/sakif/exercise-tracker/internal/apperror"
	"github.com/sakif/exercise-tracker/internal/input"
	"github.com/sakif/exercise-tracker/internal/model"
	"github.com/sakif/exercise-tracker/internal/repository"
)

// ExerciseService handles adding exercises and querying a user's log.
type ExerciseService struct {
	users     repository.UserRepository
	exercises repository.ExerciseRepository
	logger    *slog.Logger
	now       func() time.Time
}

// NewExerciseService creates a new ExerciseService using the wall clock.
func NewExerciseService(users repository.UserRepository, exercises repository.ExerciseRepository, logger *slog.Logger) *ExerciseService {
	return &ExerciseService{
		users:     users,
		exercises: exercises,
		logger:    logger,
		now:       time.Now,
	}
}

// WithClock replaces the clock used for defaulted dates.
func (s *ExerciseService) WithClock(now func() time.Time) *ExerciseService {
	s.now = now
	return s
}

// Add logs an exercise for userID and returns the owner with the stored record.
//
// ORDER OF CHECKS:
//  1. The user must exist → apperror.ErrNotFound ("User not found")
//  2. The description must be non-blank → apperror.ErrValidation
//  3. Duration and date are coerced leniently and never rejected
//
// The lookup and the insert are two separate store calls with nothing
// holding them together; users are never deleted, so that's enough.
func (s *ExerciseService) Add(ctx context.Context, userID string, in input.NewExercise) (*model.User, *model.Exercise, error) {
	user, err := lookupUser(ctx, s.users, s.logger, userID, MsgUnableAddExercise)
	if err != nil {
		return nil, nil, err
	}

	values := in.Coerce(s.now())
	if strings.TrimSpace(values.Description) == "" {
		return nil, nil, apperror.ValidationFailed("description", MsgDescriptionRequired)
	}

	exercise := &model.Exercise{
		UserID:      user.ID,
		Description: values.Description,
		Duration:    values.Duration,
		Date:        values.Date,
	}
	if err := s.exercises.CreateExercise(ctx, exercise); err != nil {
		s.logger.Error("failed to add exercise",
			slog.String("user_id", user.ID),
			slog.String("error", err.Error()),
		)
		return nil, nil, apperror.Persistence(MsgUnableAddExercise, err)
	}

	if !exercise.HasValidDuration() || !exercise.HasValidDate() {
		s.logger.Warn("exercise stored with invalid values",
			slog.String("id", exercise.ID),
			slog.String("duration", in.Duration.Value),
			slog.String("date", in.Date.Value),
		)
	}
	s.logger.Info("exercise added",
		slog.String("id", exercise.ID),
		slog.String("user_id", user.ID),
	)
	return user, exercise, nil
}

// ExerciseLog is a user together with their filtered exercises.
type ExerciseLog struct {
	User      model.User
	Exercises []model.Exercise
}

// Count is the number of exercises in the log.
func (l *ExerciseLog) Count() int {
	return len(l.Exercises)
}

// Log returns userID's exercises filtered by q's date bounds and limit.
func (s *ExerciseService) Log(ctx context.Context, userID string, q input.LogQuery) (*ExerciseLog, error) {
	user, err := lookupUser(ctx, s.users, s.logger, userID, MsgUnableFetchLog)
	if err != nil {
		return nil, err
	}

	bounds := q.Coerce()
	exercises, err := s.exercises.ListExercises(ctx, repository.ExerciseFilter{
		UserID: user.ID,
		From:   bounds.From,
		To:     bounds.To,
		Limit:  bounds.Limit,
	})
	if err != nil {
		s.logger.Error("failed to fetch exercise log",
			slog.String("user_id", user.ID),
			slog.String("error", err.Error()),
		)
		return nil, apperror.Persistence(MsgUnableFetchLog, err)
	}
	if exercises == nil {
		exercises = []model.Exercise{}
	}

	return &ExerciseLog{User: *user, Exercises: exercises}, nil
}
