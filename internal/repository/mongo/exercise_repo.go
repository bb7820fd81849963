package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"athletrack/backend/internal/domain"
	"athletrack/backend/internal/repository"
)

const exerciseCollectionName = "exercises"

// sharedFilter matches exercises of the system library, which carry no userId.
var sharedFilter = bson.M{"userId": bson.M{"$exists": false}}

// mongoExerciseRepository implements repository.ExerciseRepository
type mongoExerciseRepository struct {
	collection *mongo.Collection
	workouts   *mongo.Collection
	ids        sequence
}

// NewMongoExerciseRepository creates a new Exercise repository backed by MongoDB.
func NewMongoExerciseRepository(db *mongo.Database) repository.ExerciseRepository {
	return &mongoExerciseRepository{
		collection: db.Collection(exerciseCollectionName),
		workouts:   db.Collection(workoutCollectionName),
		ids:        newSequence(db, exerciseCollectionName),
	}
}

// Create inserts a new exercise into the database.
func (r *mongoExerciseRepository) Create(ctx context.Context, exercise *domain.Exercise) (int64, error) {
	id, err := r.ids.next(ctx)
	if err != nil {
		return 0, err
	}
	exercise.ID = id

	if _, err := r.collection.InsertOne(ctx, exercise); err != nil {
		return 0, err
	}
	return exercise.ID, nil
}

// GetByID retrieves an exercise by its ID.
func (r *mongoExerciseRepository) GetByID(ctx context.Context, id int64) (*domain.Exercise, error) {
	var exercise domain.Exercise
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&exercise)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &exercise, nil
}

// ListVisible returns the shared library plus the user's own exercises.
// Without a collation MongoDB compares strings by their UTF-8 bytes.
func (r *mongoExerciseRepository) ListVisible(ctx context.Context, userID int64) ([]domain.Exercise, error) {
	filter := bson.M{"$or": bson.A{sharedFilter, bson.M{"userId": userID}}}
	findOptions := options.Find().SetSort(bson.D{{Key: "name", Value: 1}, {Key: "_id", Value: 1}})

	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	exercises := make([]domain.Exercise, 0)
	if err = cursor.All(ctx, &exercises); err != nil {
		return nil, err
	}
	return exercises, nil
}

func (r *mongoExerciseRepository) ExistsForOwner(ctx context.Context, userID int64, name string) (bool, error) {
	opts := options.Count().SetCollation(caseInsensitive).SetLimit(1)
	n, err := r.collection.CountDocuments(ctx, bson.M{"userId": userID, "name": name}, opts)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// Delete removes the exercise and pulls every embedded set that references it.
func (r *mongoExerciseRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}

	_, err = r.workouts.UpdateMany(ctx,
		bson.M{"sets.exerciseId": id},
		bson.M{"$pull": bson.M{"sets": bson.M{"exerciseId": id}}},
	)
	return err
}

func (r *mongoExerciseRepository) SeedShared(ctx context.Context, exercises []domain.Exercise) (int, error) {
	inserted := 0
	for _, ex := range exercises {
		filter := bson.M{"userId": bson.M{"$exists": false}, "name": ex.Name}
		n, err := r.collection.CountDocuments(ctx, filter)
		if err != nil {
			return inserted, err
		}
		if n > 0 {
			continue
		}

		ex.UserID = nil
		if _, err := r.Create(ctx, &ex); err != nil {
			return inserted, err
		}
		inserted++
	}
	return inserted, nil
}

// EnsureExerciseIndexes creates necessary indexes for the exercises collection.
func EnsureExerciseIndexes(ctx context.Context, collection *mongo.Collection) error {
	indexes := []mongo.IndexModel{
		{
			// Owner scope lookups for listing and duplicate checks
			Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "name", Value: 1}},
			Options: options.Index().SetCollation(caseInsensitive),
		},
		{
			Keys: bson.D{{Key: "name", Value: 1}},
		},
	}

	if _, err := collection.Indexes().CreateMany(ctx, indexes); err != nil {
		return fmt.Errorf("create indexes for %s: %w", collection.Name(), err)
	}
	return nil
}
