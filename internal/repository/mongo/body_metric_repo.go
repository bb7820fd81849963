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

const bodyMetricCollectionName = "body_metrics"

type mongoBodyMetricRepository struct {
	collection *mongo.Collection
	ids        sequence
}

// NewMongoBodyMetricRepository creates a new BodyMetric repository backed by MongoDB.
func NewMongoBodyMetricRepository(db *mongo.Database) repository.BodyMetricRepository {
	return &mongoBodyMetricRepository{
		collection: db.Collection(bodyMetricCollectionName),
		ids:        newSequence(db, bodyMetricCollectionName),
	}
}

func (r *mongoBodyMetricRepository) Create(ctx context.Context, metric *domain.BodyMetric) (int64, error) {
	id, err := r.ids.next(ctx)
	if err != nil {
		return 0, err
	}
	metric.ID = id

	if _, err := r.collection.InsertOne(ctx, metric); err != nil {
		return 0, err
	}
	return metric.ID, nil
}

func (r *mongoBodyMetricRepository) ListByUser(ctx context.Context, userID int64) ([]domain.BodyMetric, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "measurementDate", Value: 1}, {Key: "_id", Value: 1}})

	cursor, err := r.collection.Find(ctx, bson.M{"userId": userID}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	metrics := make([]domain.BodyMetric, 0)
	if err = cursor.All(ctx, &metrics); err != nil {
		return nil, err
	}
	return metrics, nil
}

func (r *mongoBodyMetricRepository) LastByUser(ctx context.Context, userID int64) (*domain.BodyMetric, error) {
	var metric domain.BodyMetric
	opts := options.FindOne().SetSort(bson.D{{Key: "measurementDate", Value: -1}, {Key: "_id", Value: -1}})

	err := r.collection.FindOne(ctx, bson.M{"userId": userID}, opts).Decode(&metric)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &metric, nil
}

// EnsureBodyMetricIndexes creates necessary indexes for the body_metrics collection.
func EnsureBodyMetricIndexes(ctx context.Context, collection *mongo.Collection) error {
	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "userId", Value: 1}, {Key: "measurementDate", Value: 1}}},
	}

	if _, err := collection.Indexes().CreateMany(ctx, indexes); err != nil {
		return fmt.Errorf("create indexes for %s: %w", collection.Name(), err)
	}
	return nil
}
