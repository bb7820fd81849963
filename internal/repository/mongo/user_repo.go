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

const userCollectionName = "users"

// mongoUserRepository implements the repository.UserRepository interface using MongoDB.
type mongoUserRepository struct {
	collection *mongo.Collection
	ids        sequence
}

// NewMongoUserRepository creates a new instance of mongoUserRepository.
func NewMongoUserRepository(db *mongo.Database) repository.UserRepository {
	return &mongoUserRepository{
		collection: db.Collection(userCollectionName),
		ids:        newSequence(db, userCollectionName),
	}
}

// Create inserts a new user. The unique email index uses a case-insensitive
// collation, so the duplicate key error covers differently-cased emails too.
func (r *mongoUserRepository) Create(ctx context.Context, user *domain.User) (int64, error) {
	id, err := r.ids.next(ctx)
	if err != nil {
		return 0, err
	}
	user.ID = id

	if _, err := r.collection.InsertOne(ctx, user); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return 0, repository.ErrDuplicate
		}
		return 0, err
	}
	return user.ID, nil
}

// GetByEmail retrieves a user by their email address, ignoring case.
func (r *mongoUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	var user domain.User
	opts := options.FindOne().SetCollation(caseInsensitive)

	err := r.collection.FindOne(ctx, bson.M{"email": email}, opts).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// GetByID retrieves a user by their ID.
func (r *mongoUserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	var user domain.User
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *mongoUserRepository) UpdateProfile(ctx context.Context, id int64, firstName, lastName string) error {
	update := bson.M{"$set": bson.M{"firstName": firstName, "lastName": lastName}}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// EnsureUserIndexes creates the case-insensitive unique email index.
func EnsureUserIndexes(ctx context.Context, collection *mongo.Collection) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true).SetCollation(caseInsensitive),
		},
	}

	if _, err := collection.Indexes().CreateMany(ctx, indexes); err != nil {
		return fmt.Errorf("create indexes for %s: %w", collection.Name(), err)
	}
	return nil
}
