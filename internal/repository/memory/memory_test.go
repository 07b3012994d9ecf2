package memory

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sakif/exercise-tracker/internal/model"
	"github.com/sakif/exercise-tracker/internal/repository"
	"github.com/sakif/exercise-tracker/internal/repository/repositorytest"
)

func TestConformance(t *testing.T) {
	repositorytest.Run(t, func(t *testing.T) repository.Store {
		db := New()
		t.Cleanup(func() { db.Close() })
		return db
	})
}

func TestReturnedValuesAreCopies(t *testing.T) {
	db := New()
	ctx := context.Background()

	u := &model.User{Username: "original"}
	require.NoError(t, db.CreateUser(ctx, u))

	u.Username = "mutated by caller"
	found, err := db.GetUserByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "original", found.Username)

	found.Username = "mutated again"
	users, err := db.ListUsers(ctx)
	require.NoError(t, err)
	assert.Equal(t, "original", users[0].Username)
}

func TestConcurrentWrites(t *testing.T) {
	db := New()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = db.CreateUser(ctx, &model.User{Username: "racer"})
		}()
	}
	wg.Wait()

	users, err := db.ListUsers(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 50)
}

func TestClosed(t *testing.T) {
	db := New()
	require.NoError(t, db.Close())

	err := db.CreateUser(context.Background(), &model.User{Username: "late"})
	assert.True(t, errors.Is(err, ErrClosed))

	_, err = db.ListExercises(context.Background(), repository.ExerciseFilter{UserID: "x"})
	assert.True(t, errors.Is(err, ErrClosed))
}

func TestCanceledContext(t *testing.T) {
	db := New()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := db.CreateUser(ctx, &model.User{Username: "never"})
	assert.True(t, errors.Is(err, context.Canceled))
}
