package service

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"athletrack/backend/internal/domain"
	"athletrack/backend/internal/repository"
)

// --- Error Definitions ---
var (
	ErrExerciseNotFound     = errors.New("exercise not found")
	ErrExerciseAccessDenied = errors.New("access denied to modify or delete this exercise")
)

const (
	maxExerciseNameLength = 150
	maxMuscleGroupLength  = 100
)

// ExerciseInput carries the caller-controlled fields of a new exercise.
type ExerciseInput struct {
	Name        string
	MuscleGroup string
	IsCardio    bool
}

type ExerciseService interface {
	// ListExercises returns the shared library merged with the caller's own
	// exercises, ordered by name.
	ListExercises(ctx context.Context, userID int64) ([]domain.Exercise, error)
	CreateExercise(ctx context.Context, userID int64, in ExerciseInput) (*domain.Exercise, error)
	DeleteExercise(ctx context.Context, userID, exerciseID int64) error
}

// exerciseService implements the ExerciseService interface.
type exerciseService struct {
	exerciseRepo repository.ExerciseRepository
}

// NewExerciseService creates a new instance of exerciseService.
func NewExerciseService(exerciseRepo repository.ExerciseRepository) ExerciseService {
	return &exerciseService{
		exerciseRepo: exerciseRepo,
	}
}

func (s *exerciseService) ListExercises(ctx context.Context, userID int64) ([]domain.Exercise, error) {
	return s.exerciseRepo.ListVisible(ctx, userID)
}

// CreateExercise adds a private exercise to the caller's library. Names are
// trimmed and must be unique (ignoring case) among the caller's own
// exercises; a shared exercise of the same name does not count.
func (s *exerciseService) CreateExercise(ctx context.Context, userID int64, in ExerciseInput) (*domain.Exercise, error) {
	name := strings.TrimSpace(in.Name)
	muscleGroup := strings.TrimSpace(in.MuscleGroup)

	if name == "" {
		return nil, validationError("exercise name cannot be empty")
	}
	if utf8.RuneCountInString(name) > maxExerciseNameLength {
		return nil, validationError("exercise name must be at most %d characters", maxExerciseNameLength)
	}
	if muscleGroup == "" {
		return nil, validationError("muscle group is required")
	}
	if utf8.RuneCountInString(muscleGroup) > maxMuscleGroupLength {
		return nil, validationError("muscle group must be at most %d characters", maxMuscleGroupLength)
	}

	exists, err := s.exerciseRepo.ExistsForOwner(ctx, userID, name)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, validationError("an exercise with this name already exists in your library")
	}

	owner := userID
	exercise := &domain.Exercise{
		UserID:      &owner,
		Name:        name,
		MuscleGroup: muscleGroup,
		IsCardio:    in.IsCardio,
	}
	if _, err := s.exerciseRepo.Create(ctx, exercise); err != nil {
		return nil, err
	}
	return exercise, nil
}

// DeleteExercise removes one of the caller's private exercises. Shared
// exercises cannot be deleted by anyone through the API.
func (s *exerciseService) DeleteExercise(ctx context.Context, userID, exerciseID int64) error {
	exercise, err := s.exerciseRepo.GetByID(ctx, exerciseID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrExerciseNotFound
		}
		return err
	}
	if !exercise.OwnedBy(userID) {
		return ErrExerciseAccessDenied
	}

	err = s.exerciseRepo.Delete(ctx, exerciseID)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrExerciseNotFound
	}
	return err
}
