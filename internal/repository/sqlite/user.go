package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/rs/xid"
	"github.com/sakif/exercise-tracker/internal/apperror"
	"github.com/sakif/exercise-tracker/internal/model"
	"github.com/sakif/exercise-tracker/internal/repository"
)

// COMPILE-TIME INTERFACE CHECK:
// `var _ X = (*Y)(nil)` fails to compile if *Y doesn't implement X.
// Checking the full Store covers users, exercises and Close in one line.
var _ repository.Store = (*DB)(nil)

// CreateUser inserts a new user and fills in its generated ID.
//
// xid gives 20-char, URL-safe, roughly time-ordered IDs, e.g.
// "cv37rs3pp9olc6atsptg". GetUserByID relies on that format to reject
// malformed IDs without a query.
func (db *DB) CreateUser(ctx context.Context, user *model.User) error {
	user.ID = xid.New().String()

	_, err := db.conn.ExecContext(ctx,
		`INSERT INTO users (id, username) VALUES (?, ?)`,
		user.ID,
		user.Username,
	)
	if err != nil {
		return fmt.Errorf("sqlite: creating user: %w", err)
	}

	return nil
}

// GetUserByID retrieves a user by ID.
// Returns apperror.ErrNotFound if no user exists or the ID isn't an xid.
func (db *DB) GetUserByID(ctx context.Context, id string) (*model.User, error) {
	if _, err := xid.FromString(id); err != nil {
		return nil, apperror.NotFound("User")
	}

	var u model.User
	err := db.conn.QueryRowContext(ctx,
		`SELECT id, username FROM users WHERE id = ?`,
		id,
	).Scan(&u.ID, &u.Username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.NotFound("User")
		}
		return nil, fmt.Errorf("sqlite: getting user %s: %w", id, err)
	}

	return &u, nil
}

// ListUsers returns every user projected to {id, username}.
//
// ORDER BY rowid = insertion order. The TEXT primary key doesn't replace
// SQLite's implicit rowid, so this is free.
func (db *DB) ListUsers(ctx context.Context) ([]model.User, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT id, username FROM users ORDER BY rowid`,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing users: %w", err)
	}
	// CRITICAL: always close rows when done!
	defer rows.Close()

	users := make([]model.User, 0)
	for rows.Next() {
		var u model.User
		if err := rows.Scan(&u.ID, &u.Username); err != nil {
			return nil, fmt.Errorf("sqlite: scanning user row: %w", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating users: %w", err)
	}

	return users, nil
}
