package service

import (
	"context"
	"errors"
	"log/slog"
	"math"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sakif/exercise-tracker/internal/apperror"
	"github.com/sakif/exercise-tracker/internal/input"
	"github.com/sakif/exercise-tracker/internal/model"
	"github.com/sakif/exercise-tracker/internal/repository"
	"github.com/sakif/exercise-tracker/internal/repository/memory"
)

// =========================================================================
// FAILING STORE
// =========================================================================
//
// failingStore wraps the memory store and fails whichever calls the test
// switches on. Store outages are hard to trigger with a real backend.

var errStoreDown = errors.New("store down")

type failingStore struct {
	*memory.DB
	failCreateUser     bool
	failGetUser        bool
	failListUsers      bool
	failCreateExercise bool
	failListExercises  bool
}

func (f *failingStore) CreateUser(ctx context.Context, u *model.User) error {
	if f.failCreateUser {
		return errStoreDown
	}
	return f.DB.CreateUser(ctx, u)
}

func (f *failingStore) GetUserByID(ctx context.Context, id string) (*model.User, error) {
	if f.failGetUser {
		return nil, errStoreDown
	}
	return f.DB.GetUserByID(ctx, id)
}

func (f *failingStore) ListUsers(ctx context.Context) ([]model.User, error) {
	if f.failListUsers {
		return nil, errStoreDown
	}
	return f.DB.ListUsers(ctx)
}

func (f *failingStore) CreateExercise(ctx context.Context, e *model.Exercise) error {
	if f.failCreateExercise {
		return errStoreDown
	}
	return f.DB.CreateExercise(ctx, e)
}

func (f *failingStore) ListExercises(ctx context.Context, filter repository.ExerciseFilter) ([]model.Exercise, error) {
	if f.failListExercises {
		return nil, errStoreDown
	}
	return f.DB.ListExercises(ctx, filter)
}

// =========================================================================
// TEST HELPERS
// =========================================================================

var fixedNow = time.Date(2024, 6, 1, 9, 15, 0, 0, time.UTC)

func newTestServices(t *testing.T) (*UserService, *ExerciseService, *failingStore) {
	t.Helper()
	store := &failingStore{DB: memory.New()}
	t.Cleanup(func() { store.Close() })

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	users := NewUserService(store, logger)
	exercises := NewExerciseService(store, store, logger).WithClock(func() time.Time { return fixedNow })
	return users, exercises, store
}

func mustCreateUser(t *testing.T, svc *UserService, name string) *model.User {
	t.Helper()
	u, err := svc.Create(context.Background(), input.NewUser{Username: input.Set(name)})
	require.NoError(t, err)
	return u
}

func assertAppError(t *testing.T, err error, sentinel error, message string) {
	t.Helper()
	require.Error(t, err)
	assert.True(t, errors.Is(err, sentinel), "error = %v, want %v", err, sentinel)
	var appErr *apperror.AppError
	require.True(t, errors.As(err, &appErr), "error = %T, want *apperror.AppError", err)
	assert.Equal(t, message, appErr.Message)
}

// =========================================================================
// USER TESTS
// =========================================================================

func TestCreateUser_Success(t *testing.T) {
	users, _, _ := newTestServices(t)

	u := mustCreateUser(t, users, "alice")
	assert.NotEmpty(t, u.ID)
	assert.Equal(t, "alice", u.Username)

	all, err := users.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []model.User{*u}, all)
}

func TestCreateUser_DuplicateUsernamesAllowed(t *testing.T) {
	users, _, _ := newTestServices(t)

	a := mustCreateUser(t, users, "alice")
	b := mustCreateUser(t, users, "alice")
	assert.NotEqual(t, a.ID, b.ID)
}

func TestCreateUser_UsernameRequired(t *testing.T) {
	users, _, _ := newTestServices(t)

	for _, in := range []input.NewUser{
		{},
		{Username: input.Set("")},
		{Username: input.Set("   ")},
	} {
		_, err := users.Create(context.Background(), in)
		assertAppError(t, err, apperror.ErrValidation, MsgUsernameRequired)
	}

	all, err := users.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, all, "no record may be created on validation failure")
}

func TestCreateUser_StoreFailure(t *testing.T) {
	users, _, store := newTestServices(t)
	store.failCreateUser = true

	_, err := users.Create(context.Background(), input.NewUser{Username: input.Set("alice")})
	assertAppError(t, err, apperror.ErrPersistence, MsgUnableCreateUser)
	assert.True(t, errors.Is(err, errStoreDown), "cause must be kept")
}

func TestListUsers_StoreFailure(t *testing.T) {
	users, _, store := newTestServices(t)
	store.failListUsers = true

	_, err := users.List(context.Background())
	assertAppError(t, err, apperror.ErrPersistence, MsgUnableListUsers)
}

// =========================================================================
// EXERCISE TESTS
// =========================================================================

func TestAddExercise_Success(t *testing.T) {
	users, exercises, _ := newTestServices(t)
	u := mustCreateUser(t, users, "runner")

	owner, e, err := exercises.Add(context.Background(), u.ID, input.NewExercise{
		Description: input.Set("run"),
		Duration:    input.Set("30"),
		Date:        input.Set("2023-01-15"),
	})
	require.NoError(t, err)

	assert.Equal(t, *u, *owner)
	assert.NotEmpty(t, e.ID)
	assert.Equal(t, u.ID, e.UserID)
	assert.Equal(t, "run", e.Description)
	assert.Equal(t, 30.0, e.Duration)
	assert.Equal(t, "Sun Jan 15 2023", model.FormatDate(e.Date))
}

func TestAddExercise_DefaultsDateToNow(t *testing.T) {
	users, exercises, _ := newTestServices(t)
	u := mustCreateUser(t, users, "runner")

	_, e, err := exercises.Add(context.Background(), u.ID, input.NewExercise{
		Description: input.Set("walk"),
		Duration:    input.Set("10"),
	})
	require.NoError(t, err)
	assert.Equal(t, model.FormatDate(fixedNow), model.FormatDate(e.Date))
}

func TestAddExercise_LenientCoercion(t *testing.T) {
	users, exercises, _ := newTestServices(t)
	u := mustCreateUser(t, users, "sloppy")

	_, e, err := exercises.Add(context.Background(), u.ID, input.NewExercise{
		Description: input.Set("???"),
		Duration:    input.Set("half an hour"),
		Date:        input.Set("someday"),
	})
	require.NoError(t, err, "invalid duration and date are stored, not rejected")
	assert.True(t, math.IsNaN(e.Duration))
	assert.Equal(t, model.InvalidDate, model.FormatDate(e.Date))
}

func TestAddExercise_UserNotFound(t *testing.T) {
	users, exercises, store := newTestServices(t)
	mustCreateUser(t, users, "someone")

	for _, id := range []string{"", "nope", "65a1b2c3d4e5f6a7b8c9d0e1"} {
		_, _, err := exercises.Add(context.Background(), id, input.NewExercise{
			Description: input.Set("run"),
			Duration:    input.Set("30"),
		})
		assertAppError(t, err, apperror.ErrNotFound, "User not found")
	}

	all, err := store.DB.ListExercises(context.Background(), repository.ExerciseFilter{UserID: "nope"})
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestAddExercise_DescriptionRequired(t *testing.T) {
	users, exercises, _ := newTestServices(t)
	u := mustCreateUser(t, users, "quiet")

	_, _, err := exercises.Add(context.Background(), u.ID, input.NewExercise{Duration: input.Set("5")})
	assertAppError(t, err, apperror.ErrValidation, MsgDescriptionRequired)

	log, err := exercises.Log(context.Background(), u.ID, input.LogQuery{})
	require.NoError(t, err)
	assert.Zero(t, log.Count())
}

func TestAddExercise_StoreFailures(t *testing.T) {
	users, exercises, store := newTestServices(t)
	u := mustCreateUser(t, users, "unlucky")
	in := input.NewExercise{Description: input.Set("run"), Duration: input.Set("1")}

	store.failGetUser = true
	_, _, err := exercises.Add(context.Background(), u.ID, in)
	assertAppError(t, err, apperror.ErrPersistence, MsgUnableAddExercise)

	store.failGetUser = false
	store.failCreateExercise = true
	_, _, err = exercises.Add(context.Background(), u.ID, in)
	assertAppError(t, err, apperror.ErrPersistence, MsgUnableAddExercise)
}

// =========================================================================
// LOG TESTS
// =========================================================================

func seedLog(t *testing.T, exercises *ExerciseService, userID string, dates ...string) {
	t.Helper()
	for _, d := range dates {
		_, _, err := exercises.Add(context.Background(), userID, input.NewExercise{
			Description: input.Set("on " + d),
			Duration:    input.Set("20"),
			Date:        input.Set(d),
		})
		require.NoError(t, err)
	}
}

func TestLog_FiltersAndLimits(t *testing.T) {
	users, exercises, _ := newTestServices(t)
	u := mustCreateUser(t, users, "logger")
	other := mustCreateUser(t, users, "other")
	seedLog(t, exercises, u.ID, "2023-01-01", "2023-01-10", "2023-01-15", "2023-01-20", "2023-01-31")
	seedLog(t, exercises, other.ID, "2023-01-15")

	tests := []struct {
		name  string
		query input.LogQuery
		want  []string
	}{
		{"everything", input.LogQuery{}, []string{"on 2023-01-01", "on 2023-01-10", "on 2023-01-15", "on 2023-01-20", "on 2023-01-31"}},
		{"inclusive range", input.LogQuery{From: input.Set("2023-01-10"), To: input.Set("2023-01-20")}, []string{"on 2023-01-10", "on 2023-01-15", "on 2023-01-20"}},
		{"from only", input.LogQuery{From: input.Set("2023-01-20")}, []string{"on 2023-01-20", "on 2023-01-31"}},
		{"to only", input.LogQuery{To: input.Set("2023-01-01")}, []string{"on 2023-01-01"}},
		{"limit", input.LogQuery{Limit: input.Set("2")}, []string{"on 2023-01-01", "on 2023-01-10"}},
		{"range and limit", input.LogQuery{From: input.Set("2023-01-10"), Limit: input.Set("1")}, []string{"on 2023-01-10"}},
		{"invalid bound ignored", input.LogQuery{From: input.Set("garbage"), Limit: input.Set("1")}, []string{"on 2023-01-01"}},
		{"empty range", input.LogQuery{From: input.Set("2024-01-01")}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log, err := exercises.Log(context.Background(), u.ID, tt.query)
			require.NoError(t, err)

			assert.Equal(t, *u, log.User)
			got := make([]string, 0, len(log.Exercises))
			for _, e := range log.Exercises {
				got = append(got, e.Description)
			}
			assert.Equal(t, tt.want, got)
			assert.Equal(t, len(log.Exercises), log.Count())
		})
	}
}

func TestLog_ToCoversWholeDay(t *testing.T) {
	users, exercises, _ := newTestServices(t)
	u := mustCreateUser(t, users, "evening")
	seedLog(t, exercises, u.ID, "2023-01-15T18:30:00Z")

	log, err := exercises.Log(context.Background(), u.ID, input.LogQuery{To: input.Set("2023-01-15")})
	require.NoError(t, err)
	assert.Equal(t, 1, log.Count())
}

func TestLog_UserNotFound(t *testing.T) {
	_, exercises, _ := newTestServices(t)

	_, err := exercises.Log(context.Background(), "missing", input.LogQuery{})
	assertAppError(t, err, apperror.ErrNotFound, "User not found")
}

func TestLog_StoreFailure(t *testing.T) {
	users, exercises, store := newTestServices(t)
	u := mustCreateUser(t, users, "unlucky")
	store.failListExercises = true

	_, err := exercises.Log(context.Background(), u.ID, input.LogQuery{})
	assertAppError(t, err, apperror.ErrPersistence, MsgUnableFetchLog)
}

func TestLog_Idempotent(t *testing.T) {
	users, exercises, _ := newTestServices(t)
	u := mustCreateUser(t, users, "repeat")
	seedLog(t, exercises, u.ID, "2023-01-01", "2023-01-02")

	first, err := exercises.Log(context.Background(), u.ID, input.LogQuery{})
	require.NoError(t, err)
	second, err := exercises.Log(context.Background(), u.ID, input.LogQuery{})
	require.NoError(t, err)
	assert.Equal(t, first, second)
}
