package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	driver "go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/sakif/exercise-tracker/internal/apperror"
	"github.com/sakif/exercise-tracker/internal/model"
	"github.com/sakif/exercise-tracker/internal/repository"
)

var _ repository.Store = (*DB)(nil)

type userDoc struct {
	ID       primitive.ObjectID `bson:"_id"`
	Username string             `bson:"username"`
}

func (d userDoc) toModel() model.User {
	return model.User{ID: d.ID.Hex(), Username: d.Username}
}

// CreateUser inserts a user with a client-generated ObjectID.
//
// Generating the ID here (instead of reading InsertedID back) keeps the
// ID on the model even if the result type ever changes.
func (db *DB) CreateUser(ctx context.Context, user *model.User) error {
	doc := userDoc{ID: primitive.NewObjectID(), Username: user.Username}

	if _, err := db.users.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("mongo: creating user: %w", err)
	}

	user.ID = doc.ID.Hex()
	return nil
}

// GetUserByID finds a user by hex ObjectID.
// Anything that isn't valid hex can't match a document, so it's reported
// as not found without a round trip.
func (db *DB) GetUserByID(ctx context.Context, id string) (*model.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperror.NotFound("User")
	}

	var doc userDoc
	err = db.users.FindOne(ctx, bson.D{{Key: "_id", Value: oid}}).Decode(&doc)
	if err != nil {
		if errors.Is(err, driver.ErrNoDocuments) {
			return nil, apperror.NotFound("User")
		}
		return nil, fmt.Errorf("mongo: getting user %s: %w", id, err)
	}

	u := doc.toModel()
	return &u, nil
}

// ListUsers returns {_id, username} for every user, oldest first.
// ObjectIDs begin with a timestamp, so sorting on _id is insertion order.
func (db *DB) ListUsers(ctx context.Context) ([]model.User, error) {
	opts := options.Find().
		SetProjection(bson.D{{Key: "username", Value: 1}}).
		SetSort(bson.D{{Key: "_id", Value: 1}})

	cur, err := db.users.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, fmt.Errorf("mongo: listing users: %w", err)
	}

	var docs []userDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("mongo: decoding users: %w", err)
	}

	users := make([]model.User, 0, len(docs))
	for _, d := range docs {
		users = append(users, d.toModel())
	}
	return users, nil
}
