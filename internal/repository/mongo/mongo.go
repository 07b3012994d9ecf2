// Package mongo implements the repository interfaces on MongoDB.
//
// DOCUMENT LAYOUT:
// Two collections, matching how the records were stored before the Go
// rewrite so existing databases keep working:
//
//	users:     { _id: ObjectId, username: string }
//	exercises: { _id: ObjectId, userId: ObjectId, description: string,
//	             duration: double, date: Date }
//
// IDs are ObjectIDs rendered as 24-char hex strings in the model.
package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	driver "go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.mongodb.org/mongo-driver/x/mongo/driver/connstring"
)

const (
	usersCollection     = "users"
	exercisesCollection = "exercises"

	// DefaultDatabase is used when neither the URI nor the caller names one.
	DefaultDatabase = "exercise_tracker"

	disconnectTimeout = 10 * time.Second
)

// DB wraps a mongo client and the two collections it serves.
type DB struct {
	client    *driver.Client
	database  *driver.Database
	users     *driver.Collection
	exercises *driver.Collection
}

// New connects to uri, pings the primary and ensures indexes.
//
// The database is the one in the URI path (mongodb://host/mydb), else
// database, else DefaultDatabase.
//
// mongo.Connect doesn't actually dial; it starts background monitoring.
// The Ping is what turns a bad URI or unreachable server into a startup
// error instead of a failure on the first request.
func New(ctx context.Context, uri, database string) (*DB, error) {
	cs, err := connstring.ParseAndValidate(uri)
	if err != nil {
		return nil, fmt.Errorf("mongo: parsing uri: %w", err)
	}
	if cs.Database != "" {
		database = cs.Database
	}
	if database == "" {
		database = DefaultDatabase
	}

	client, err := driver.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("mongo: connecting: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo: pinging: %w", err)
	}

	db := newDB(client, client.Database(database))

	if err := db.ensureIndexes(ctx); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo: creating indexes: %w", err)
	}

	return db, nil
}

func newDB(client *driver.Client, database *driver.Database) *DB {
	return &DB{
		client:    client,
		database:  database,
		users:     database.Collection(usersCollection),
		exercises: database.Collection(exercisesCollection),
	}
}

// ensureIndexes backs the log query: equality on userId, range on date.
// CreateOne is a no-op when an identical index already exists.
func (db *DB) ensureIndexes(ctx context.Context) error {
	_, err := db.exercises.Indexes().CreateOne(ctx, driver.IndexModel{
		Keys: bson.D{{Key: "userId", Value: 1}, {Key: "date", Value: 1}},
	})
	return err
}

// Close disconnects the client, waiting up to 10s for in-flight operations.
func (db *DB) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), disconnectTimeout)
	defer cancel()

	if err := db.client.Disconnect(ctx); err != nil {
		return fmt.Errorf("mongo: disconnecting: %w", err)
	}
	return nil
}
