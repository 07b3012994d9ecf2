package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/sakif/exercise-tracker/internal/model"
	"github.com/sakif/exercise-tracker/internal/repository"
)

// exerciseDoc stores userId as an ObjectID reference, not a string, so it
// can be joined against users._id.
type exerciseDoc struct {
	ID          primitive.ObjectID `bson:"_id"`
	UserID      primitive.ObjectID `bson:"userId"`
	Description string             `bson:"description"`
	Duration    float64            `bson:"duration"`
	Date        time.Time          `bson:"date"`
}

func (d exerciseDoc) toModel() model.Exercise {
	return model.Exercise{
		ID:          d.ID.Hex(),
		UserID:      d.UserID.Hex(),
		Description: d.Description,
		Duration:    d.Duration,
		Date:        d.Date.UTC(),
	}
}

// CreateExercise inserts an exercise. BSON doubles hold NaN natively and
// the zero time.Time encodes as a (year 1) Date, so the coercion sentinels
// round-trip unchanged.
func (db *DB) CreateExercise(ctx context.Context, exercise *model.Exercise) error {
	userID, err := primitive.ObjectIDFromHex(exercise.UserID)
	if err != nil {
		return fmt.Errorf("mongo: creating exercise: invalid user id %q: %w", exercise.UserID, err)
	}

	doc := exerciseDoc{
		ID:          primitive.NewObjectID(),
		UserID:      userID,
		Description: exercise.Description,
		Duration:    exercise.Duration,
		Date:        exercise.Date,
	}
	if _, err := db.exercises.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("mongo: creating exercise: %w", err)
	}

	exercise.ID = doc.ID.Hex()
	return nil
}

// ListExercises runs { userId, date: { $ne: zero, $gte, $lte } } with an
// optional limit. The $ne keeps invalid dates out of bounded queries.
func (db *DB) ListExercises(ctx context.Context, filter repository.ExerciseFilter) ([]model.Exercise, error) {
	userID, err := primitive.ObjectIDFromHex(filter.UserID)
	if err != nil {
		// No document can reference a malformed id.
		return []model.Exercise{}, nil
	}

	query := bson.D{{Key: "userId", Value: userID}}
	if filter.From != nil || filter.To != nil {
		dateRange := bson.D{{Key: "$ne", Value: time.Time{}}}
		if filter.From != nil {
			dateRange = append(dateRange, bson.E{Key: "$gte", Value: *filter.From})
		}
		if filter.To != nil {
			dateRange = append(dateRange, bson.E{Key: "$lte", Value: *filter.To})
		}
		query = append(query, bson.E{Key: "date", Value: dateRange})
	}

	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})
	if filter.Limit > 0 {
		opts.SetLimit(int64(filter.Limit))
	}

	cur, err := db.exercises.Find(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("mongo: listing exercises for user %s: %w", filter.UserID, err)
	}

	var docs []exerciseDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("mongo: decoding exercises: %w", err)
	}

	exercises := make([]model.Exercise, 0, len(docs))
	for _, d := range docs {
		exercises = append(exercises, d.toModel())
	}
	return exercises, nil
}
