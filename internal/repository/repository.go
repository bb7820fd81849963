package repository

import (
	"context"

	"athletrack/backend/internal/domain"
)

// Error constants for the repository layer. Every driver maps its native
// errors onto these so services never see driver types.
var (
	ErrNotFound  = RepositoryError("not found")
	ErrConflict  = RepositoryError("concurrent modification")
	ErrDuplicate = RepositoryError("duplicate key")
)

// RepositoryError helps distinguish repository errors
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// UserRepository defines the interface for interacting with user data.
type UserRepository interface {
	// Create stores the user and returns its new id. ErrDuplicate when the
	// email (compared case-insensitively) is already registered.
	Create(ctx context.Context, user *domain.User) (int64, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	UpdateProfile(ctx context.Context, id int64, firstName, lastName string) error
}

// ExerciseRepository defines the interface for interacting with exercise data.
type ExerciseRepository interface {
	Create(ctx context.Context, exercise *domain.Exercise) (int64, error)
	GetByID(ctx context.Context, id int64) (*domain.Exercise, error)
	// ListVisible returns shared exercises plus those owned by userID,
	// ordered by name using byte-wise comparison.
	ListVisible(ctx context.Context, userID int64) ([]domain.Exercise, error)
	// ExistsForOwner reports whether userID already owns an exercise with the
	// given name, ignoring case. Shared exercises are not considered.
	ExistsForOwner(ctx context.Context, userID int64, name string) (bool, error)
	// Delete removes the exercise and every workout set recorded against it.
	Delete(ctx context.Context, id int64) error
	// SeedShared inserts the given shared exercises whose names are not yet
	// present in the shared library. Returns the number inserted.
	SeedShared(ctx context.Context, exercises []domain.Exercise) (int, error)
}

// WorkoutRepository defines the interface for interacting with workout data.
// Reads return sets ordered by set number with their Exercise populated.
type WorkoutRepository interface {
	Create(ctx context.Context, workout *domain.Workout) (int64, error)
	GetByID(ctx context.Context, id int64) (*domain.Workout, error)
	// ListByUser returns the user's workouts ordered by date, newest first.
	ListByUser(ctx context.Context, userID int64) ([]domain.Workout, error)
	// Replace overwrites the workout header and swaps its whole set list
	// atomically. ErrConflict when the workout vanished mid-write.
	Replace(ctx context.Context, workout *domain.Workout) error
	Delete(ctx context.Context, id int64) error
}

// BodyMetricRepository defines the interface for the append-only body metrics log.
type BodyMetricRepository interface {
	Create(ctx context.Context, metric *domain.BodyMetric) (int64, error)
	// ListByUser returns the user's metrics ordered by measurement date, oldest first.
	ListByUser(ctx context.Context, userID int64) ([]domain.BodyMetric, error)
	// LastByUser returns the most recent metric; ErrNotFound when there is none.
	LastByUser(ctx context.Context, userID int64) (*domain.BodyMetric, error)
}
