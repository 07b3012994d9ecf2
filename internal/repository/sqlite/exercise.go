package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/rs/xid"
	"github.com/sakif/exercise-tracker/internal/model"
	"github.com/sakif/exercise-tracker/internal/repository"
)

// CreateExercise inserts a new exercise and fills in its generated ID.
//
// Two values need translating on the way in:
//   - Duration NaN  → NULL (SQLite has no NaN)
//   - Date          → Unix milliseconds; the zero time maps to its own
//     (very negative) millisecond value and round-trips back to zero
func (db *DB) CreateExercise(ctx context.Context, exercise *model.Exercise) error {
	exercise.ID = xid.New().String()

	_, err := db.conn.ExecContext(ctx,
		`INSERT INTO exercises (id, user_id, description, duration, date_ms)
		 VALUES (?, ?, ?, ?, ?)`,
		exercise.ID,
		exercise.UserID,
		exercise.Description,
		nullableDuration(exercise.Duration),
		exercise.Date.UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("sqlite: creating exercise: %w", err)
	}

	return nil
}

// ListExercises returns a user's exercises matching filter, in insertion order.
//
// BUILDING THE WHERE CLAUSE:
// The bounds are optional, so the query is assembled from fixed fragments.
// Only the fragments are concatenated; every VALUE still goes through a ?
// placeholder, so this is not an injection risk.
func (db *DB) ListExercises(ctx context.Context, filter repository.ExerciseFilter) ([]model.Exercise, error) {
	where := []string{"user_id = ?"}
	args := []any{filter.UserID}

	if filter.From != nil || filter.To != nil {
		where = append(where, "date_ms <> ?")
		args = append(args, time.Time{}.UnixMilli())
	}
	if filter.From != nil {
		where = append(where, "date_ms >= ?")
		args = append(args, filter.From.UnixMilli())
	}
	if filter.To != nil {
		where = append(where, "date_ms <= ?")
		args = append(args, filter.To.UnixMilli())
	}

	query := `SELECT id, user_id, description, duration, date_ms
		FROM exercises
		WHERE ` + strings.Join(where, " AND ") + `
		ORDER BY rowid`

	// LIMIT -1 means "no limit" in SQLite.
	limit := -1
	if filter.Limit > 0 {
		limit = filter.Limit
	}
	query += ` LIMIT ?`
	args = append(args, limit)

	rows, err := db.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing exercises for user %s: %w", filter.UserID, err)
	}
	defer rows.Close()

	exercises := make([]model.Exercise, 0)
	for rows.Next() {
		var (
			e        model.Exercise
			duration sql.NullFloat64
			dateMS   int64
		)
		if err := rows.Scan(&e.ID, &e.UserID, &e.Description, &duration, &dateMS); err != nil {
			return nil, fmt.Errorf("sqlite: scanning exercise row: %w", err)
		}
		e.Duration = math.NaN()
		if duration.Valid {
			e.Duration = duration.Float64
		}
		e.Date = time.UnixMilli(dateMS).UTC()
		exercises = append(exercises, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating exercises: %w", err)
	}

	return exercises, nil
}

func nullableDuration(d float64) sql.NullFloat64 {
	if math.IsNaN(d) {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: d, Valid: true}
}
