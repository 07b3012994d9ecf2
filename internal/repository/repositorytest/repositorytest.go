// Package repositorytest is a conformance suite for repository.Store
// implementations. Every backend's tests call Run with a constructor for a
// fresh, empty store.
package repositorytest

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sakif/exercise-tracker/internal/apperror"
	"github.com/sakif/exercise-tracker/internal/model"
	"github.com/sakif/exercise-tracker/internal/repository"
)

// NewStore returns an empty store. It should register its own cleanup.
type NewStore func(t *testing.T) repository.Store

// Run executes every conformance test against stores built by newStore.
func Run(t *testing.T, newStore NewStore) {
	t.Run("CreateUser assigns an id", func(t *testing.T) { testCreateUser(t, newStore(t)) })
	t.Run("GetUserByID round trip", func(t *testing.T) { testGetUser(t, newStore(t)) })
	t.Run("GetUserByID unknown and malformed ids", func(t *testing.T) { testGetUserNotFound(t, newStore(t)) })
	t.Run("ListUsers insertion order", func(t *testing.T) { testListUsers(t, newStore(t)) })
	t.Run("ListUsers empty", func(t *testing.T) { testListUsersEmpty(t, newStore(t)) })
	t.Run("CreateExercise round trip", func(t *testing.T) { testCreateExercise(t, newStore(t)) })
	t.Run("ListExercises filters by user", func(t *testing.T) { testListByUser(t, newStore(t)) })
	t.Run("ListExercises inclusive date range", func(t *testing.T) { testListDateRange(t, newStore(t)) })
	t.Run("ListExercises limit", func(t *testing.T) { testListLimit(t, newStore(t)) })
	t.Run("ListExercises keeps sentinels", func(t *testing.T) { testSentinels(t, newStore(t)) })
	t.Run("ListExercises bounds exclude invalid dates", func(t *testing.T) { testBoundsExcludeInvalidDate(t, newStore(t)) })
	t.Run("ListExercises is repeatable", func(t *testing.T) { testRepeatable(t, newStore(t)) })
}

// Day returns midnight UTC on the given day of January 2023.
func Day(d int) time.Time {
	return time.Date(2023, 1, d, 0, 0, 0, 0, time.UTC)
}

func createUser(t *testing.T, s repository.Store, name string) *model.User {
	t.Helper()
	u := &model.User{Username: name}
	require.NoError(t, s.CreateUser(context.Background(), u))
	return u
}

func createExercise(t *testing.T, s repository.Store, userID, desc string, date time.Time) *model.Exercise {
	t.Helper()
	e := &model.Exercise{UserID: userID, Description: desc, Duration: 30, Date: date}
	require.NoError(t, s.CreateExercise(context.Background(), e))
	return e
}

func descriptions(exercises []model.Exercise) []string {
	out := make([]string, 0, len(exercises))
	for _, e := range exercises {
		out = append(out, e.Description)
	}
	return out
}

func testCreateUser(t *testing.T, s repository.Store) {
	a := createUser(t, s, "alice")
	b := createUser(t, s, "alice")

	assert.NotEmpty(t, a.ID)
	assert.NotEmpty(t, b.ID)
	assert.NotEqual(t, a.ID, b.ID, "usernames are not unique, ids are")
}

func testGetUser(t *testing.T, s repository.Store) {
	created := createUser(t, s, "bob")

	found, err := s.GetUserByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, *created, *found)
}

func testGetUserNotFound(t *testing.T, s repository.Store) {
	createUser(t, s, "carol")

	// A well-formed id for SOME backend, plus plain garbage.
	for _, id := range []string{"", "nonexistent-id", "65a1b2c3d4e5f6a7b8c9d0e1", "cv37rs3pp9olc6atsptg", "'; DROP TABLE users; --"} {
		_, err := s.GetUserByID(context.Background(), id)
		require.Error(t, err, "id %q", id)
		assert.True(t, errors.Is(err, apperror.ErrNotFound), "id %q: got %v", id, err)
	}
}

func testListUsers(t *testing.T, s repository.Store) {
	a := createUser(t, s, "first")
	b := createUser(t, s, "second")
	c := createUser(t, s, "third")

	users, err := s.ListUsers(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []model.User{*a, *b, *c}, users)
}

func testListUsersEmpty(t *testing.T, s repository.Store) {
	users, err := s.ListUsers(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, users)
	assert.Empty(t, users)
}

func testCreateExercise(t *testing.T, s repository.Store) {
	u := createUser(t, s, "dave")
	e := &model.Exercise{
		UserID:      u.ID,
		Description: "run",
		Duration:    30,
		Date:        Day(15),
	}
	require.NoError(t, s.CreateExercise(context.Background(), e))
	assert.NotEmpty(t, e.ID)

	got, err := s.ListExercises(context.Background(), repository.ExerciseFilter{UserID: u.ID})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, e.ID, got[0].ID)
	assert.Equal(t, u.ID, got[0].UserID)
	assert.Equal(t, "run", got[0].Description)
	assert.Equal(t, 30.0, got[0].Duration)
	assert.True(t, Day(15).Equal(got[0].Date), "date = %v", got[0].Date)
}

func testListByUser(t *testing.T, s repository.Store) {
	a := createUser(t, s, "a")
	b := createUser(t, s, "b")
	createExercise(t, s, a.ID, "a1", Day(1))
	createExercise(t, s, b.ID, "b1", Day(1))
	createExercise(t, s, a.ID, "a2", Day(2))

	got, err := s.ListExercises(context.Background(), repository.ExerciseFilter{UserID: a.ID})
	require.NoError(t, err)
	assert.Equal(t, []string{"a1", "a2"}, descriptions(got))

	got, err = s.ListExercises(context.Background(), repository.ExerciseFilter{UserID: "nobody"})
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func testListDateRange(t *testing.T, s repository.Store) {
	u := createUser(t, s, "ranger")
	for d := 1; d <= 5; d++ {
		createExercise(t, s, u.ID, Day(d).Format("Jan 2"), Day(d))
	}
	from, to := Day(2), Day(4)

	got, err := s.ListExercises(context.Background(), repository.ExerciseFilter{UserID: u.ID, From: &from, To: &to})
	require.NoError(t, err)
	assert.Equal(t, []string{"Jan 2", "Jan 3", "Jan 4"}, descriptions(got))

	got, err = s.ListExercises(context.Background(), repository.ExerciseFilter{UserID: u.ID, From: &to})
	require.NoError(t, err)
	assert.Equal(t, []string{"Jan 4", "Jan 5"}, descriptions(got))

	got, err = s.ListExercises(context.Background(), repository.ExerciseFilter{UserID: u.ID, To: &from})
	require.NoError(t, err)
	assert.Equal(t, []string{"Jan 1", "Jan 2"}, descriptions(got))
}

func testListLimit(t *testing.T, s repository.Store) {
	u := createUser(t, s, "limited")
	for d := 1; d <= 4; d++ {
		createExercise(t, s, u.ID, Day(d).Format("Jan 2"), Day(d))
	}

	got, err := s.ListExercises(context.Background(), repository.ExerciseFilter{UserID: u.ID, Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, []string{"Jan 1", "Jan 2"}, descriptions(got))

	got, err = s.ListExercises(context.Background(), repository.ExerciseFilter{UserID: u.ID, Limit: 10})
	require.NoError(t, err)
	assert.Len(t, got, 4)

	got, err = s.ListExercises(context.Background(), repository.ExerciseFilter{UserID: u.ID})
	require.NoError(t, err)
	assert.Len(t, got, 4)
}

func testSentinels(t *testing.T, s repository.Store) {
	u := createUser(t, s, "loose")
	e := &model.Exercise{UserID: u.ID, Description: "???", Duration: math.NaN()}
	require.NoError(t, s.CreateExercise(context.Background(), e))

	got, err := s.ListExercises(context.Background(), repository.ExerciseFilter{UserID: u.ID})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.True(t, math.IsNaN(got[0].Duration), "duration = %v", got[0].Duration)
	assert.True(t, got[0].Date.IsZero(), "date = %v", got[0].Date)
}

func testBoundsExcludeInvalidDate(t *testing.T, s repository.Store) {
	u := createUser(t, s, "bounded")
	createExercise(t, s, u.ID, "garbage", time.Time{})
	createExercise(t, s, u.ID, "Jan 15", Day(15))
	early, late := Day(1), Day(31)

	tests := []struct {
		name   string
		filter repository.ExerciseFilter
		want   []string
	}{
		{"to only", repository.ExerciseFilter{UserID: u.ID, To: &early}, []string{}},
		{"from only", repository.ExerciseFilter{UserID: u.ID, From: &early}, []string{"Jan 15"}},
		{"both", repository.ExerciseFilter{UserID: u.ID, From: &early, To: &late}, []string{"Jan 15"}},
		{"unbounded", repository.ExerciseFilter{UserID: u.ID}, []string{"garbage", "Jan 15"}},
	}
	for _, tt := range tests {
		got, err := s.ListExercises(context.Background(), tt.filter)
		require.NoError(t, err, tt.name)
		assert.Equal(t, tt.want, descriptions(got), tt.name)
	}
}

func testRepeatable(t *testing.T, s repository.Store) {
	u := createUser(t, s, "same")
	createExercise(t, s, u.ID, "x", Day(1))
	createExercise(t, s, u.ID, "y", Day(2))
	filter := repository.ExerciseFilter{UserID: u.ID}

	first, err := s.ListExercises(context.Background(), filter)
	require.NoError(t, err)
	second, err := s.ListExercises(context.Background(), filter)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	users1, err := s.ListUsers(context.Background())
	require.NoError(t, err)
	users2, err := s.ListUsers(context.Background())
	require.NoError(t, err)
	assert.Equal(t, users1, users2)
}
