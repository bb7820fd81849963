package mongo

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"athletrack/backend/internal/domain"
	"athletrack/backend/internal/repository"
)

const (
	workoutCollectionName = "workouts"
	workoutSetSequence    = "workout_sets"
)

// mongoWorkoutRepository stores each workout as one document with its sets
// embedded, so a replace or delete touches a single document.
type mongoWorkoutRepository struct {
	collection *mongo.Collection
	exercises  *mongo.Collection
	ids        sequence
	setIDs     sequence
}

// NewMongoWorkoutRepository creates a new Workout repository backed by MongoDB.
func NewMongoWorkoutRepository(db *mongo.Database) repository.WorkoutRepository {
	return &mongoWorkoutRepository{
		collection: db.Collection(workoutCollectionName),
		exercises:  db.Collection(exerciseCollectionName),
		ids:        newSequence(db, workoutCollectionName),
		setIDs:     newSequence(db, workoutSetSequence),
	}
}

func (r *mongoWorkoutRepository) assignSetIDs(ctx context.Context, workout *domain.Workout) error {
	for i := range workout.Sets {
		id, err := r.setIDs.next(ctx)
		if err != nil {
			return err
		}
		workout.Sets[i].ID = id
		workout.Sets[i].WorkoutID = &workout.ID
	}
	return nil
}

// Create inserts a new workout document.
func (r *mongoWorkoutRepository) Create(ctx context.Context, workout *domain.Workout) (int64, error) {
	id, err := r.ids.next(ctx)
	if err != nil {
		return 0, err
	}
	workout.ID = id
	if workout.Sets == nil {
		workout.Sets = []domain.WorkoutSet{}
	}
	if err := r.assignSetIDs(ctx, workout); err != nil {
		return 0, err
	}

	if _, err := r.collection.InsertOne(ctx, workout); err != nil {
		return 0, err
	}
	return workout.ID, nil
}

// GetByID retrieves a workout by its ID.
func (r *mongoWorkoutRepository) GetByID(ctx context.Context, id int64) (*domain.Workout, error) {
	var workout domain.Workout
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&workout)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}

	workouts := []domain.Workout{workout}
	if err := r.hydrate(ctx, workouts); err != nil {
		return nil, err
	}
	return &workouts[0], nil
}

// ListByUser retrieves all of a user's workouts, newest first.
func (r *mongoWorkoutRepository) ListByUser(ctx context.Context, userID int64) ([]domain.Workout, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "date", Value: -1}, {Key: "_id", Value: -1}})

	cursor, err := r.collection.Find(ctx, bson.M{"userId": userID}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	workouts := make([]domain.Workout, 0)
	if err = cursor.All(ctx, &workouts); err != nil {
		return nil, err
	}
	if err := r.hydrate(ctx, workouts); err != nil {
		return nil, err
	}
	return workouts, nil
}

// hydrate sorts embedded sets and attaches their exercises with one $in query.
func (r *mongoWorkoutRepository) hydrate(ctx context.Context, workouts []domain.Workout) error {
	seen := make(map[int64]bool)
	ids := bson.A{}
	for i := range workouts {
		w := &workouts[i]
		if w.Sets == nil {
			w.Sets = []domain.WorkoutSet{}
		}
		sort.SliceStable(w.Sets, func(a, b int) bool { return w.Sets[a].SetNumber < w.Sets[b].SetNumber })
		for j := range w.Sets {
			w.Sets[j].WorkoutID = &w.ID
			if id := w.Sets[j].ExerciseID; !seen[id] {
				seen[id] = true
				ids = append(ids, id)
			}
		}
	}
	if len(ids) == 0 {
		return nil
	}

	cursor, err := r.exercises.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return err
	}
	defer cursor.Close(ctx)

	var exercises []domain.Exercise
	if err := cursor.All(ctx, &exercises); err != nil {
		return err
	}
	byID := make(map[int64]*domain.Exercise, len(exercises))
	for i := range exercises {
		byID[exercises[i].ID] = &exercises[i]
	}

	for i := range workouts {
		for j := range workouts[i].Sets {
			workouts[i].Sets[j].Exercise = byID[workouts[i].Sets[j].ExerciseID]
		}
	}
	return nil
}

// Replace overwrites the header fields and the embedded set list in one
// update, which MongoDB applies atomically per document.
func (r *mongoWorkoutRepository) Replace(ctx context.Context, workout *domain.Workout) error {
	if workout.Sets == nil {
		workout.Sets = []domain.WorkoutSet{}
	}
	if err := r.assignSetIDs(ctx, workout); err != nil {
		return err
	}

	update := bson.M{
		"$set": bson.M{
			"name":            workout.Name,
			"date":            workout.Date,
			"durationMinutes": workout.DurationMinutes,
			"notes":           workout.Notes,
			"sets":            workout.Sets,
		},
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": workout.ID}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrConflict
	}
	return nil
}

// Delete removes the workout document together with its embedded sets.
func (r *mongoWorkoutRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// EnsureWorkoutIndexes creates necessary indexes for the workouts collection.
func EnsureWorkoutIndexes(ctx context.Context, collection *mongo.Collection) error {
	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "userId", Value: 1}, {Key: "date", Value: -1}},
		},
		{
			// Used by the exercise delete cascade
			Keys: bson.D{{Key: "sets.exerciseId", Value: 1}},
		},
	}

	if _, err := collection.Indexes().CreateMany(ctx, indexes); err != nil {
		return fmt.Errorf("create indexes for %s: %w", collection.Name(), err)
	}
	return nil
}
