package service

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"athletrack/backend/internal/domain"
	"athletrack/backend/internal/repository"
)

// --- Error Definitions ---
var (
	ErrWorkoutNotFound     = errors.New("workout not found")
	ErrWorkoutAccessDenied = errors.New("access denied to this workout")
)

const maxWorkoutNameLength = 150

// WorkoutInput is the caller-controlled content of a workout. Owner and ids
// are never taken from the caller.
type WorkoutInput struct {
	Name            string
	Date            time.Time
	DurationMinutes *int
	Notes           string
	Sets            []SetInput
}

// SetInput is one submitted set.
type SetInput struct {
	ExerciseID  int64
	SetNumber   int
	WeightKg    *float64
	Reps        *int
	DistanceKm  *float64
	TimeSeconds *int
}

type WorkoutService interface {
	ListWorkouts(ctx context.Context, userID int64) ([]domain.Workout, error)
	GetWorkout(ctx context.Context, userID, workoutID int64) (*domain.Workout, error)
	CreateWorkout(ctx context.Context, userID int64, in WorkoutInput) (*domain.Workout, error)
	// ReplaceWorkout overwrites the header and swaps the whole set list,
	// renumbering sets 1..n in submission order.
	ReplaceWorkout(ctx context.Context, userID, workoutID int64, in WorkoutInput) error
	DeleteWorkout(ctx context.Context, userID, workoutID int64) error
	PersonalRecords(ctx context.Context, userID int64) ([]domain.PersonalRecord, error)
}

type workoutService struct {
	workoutRepo  repository.WorkoutRepository
	exerciseRepo repository.ExerciseRepository
}

func NewWorkoutService(workoutRepo repository.WorkoutRepository, exerciseRepo repository.ExerciseRepository) WorkoutService {
	return &workoutService{
		workoutRepo:  workoutRepo,
		exerciseRepo: exerciseRepo,
	}
}

func (s *workoutService) ListWorkouts(ctx context.Context, userID int64) ([]domain.Workout, error) {
	return s.workoutRepo.ListByUser(ctx, userID)
}

// loadOwned is the guard shared by every per-workout operation.
func (s *workoutService) loadOwned(ctx context.Context, userID, workoutID int64) (*domain.Workout, error) {
	workout, err := s.workoutRepo.GetByID(ctx, workoutID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrWorkoutNotFound
		}
		return nil, err
	}
	if !workout.OwnedBy(userID) {
		return nil, ErrWorkoutAccessDenied
	}
	return workout, nil
}

func (s *workoutService) GetWorkout(ctx context.Context, userID, workoutID int64) (*domain.Workout, error) {
	return s.loadOwned(ctx, userID, workoutID)
}

// build validates the input and turns it into a workout owned by userID.
// Every referenced exercise must exist and be visible to the caller.
func (s *workoutService) build(ctx context.Context, userID int64, in WorkoutInput) (*domain.Workout, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, validationError("workout name is required")
	}
	if utf8.RuneCountInString(name) > maxWorkoutNameLength {
		return nil, validationError("workout name must be at most %d characters", maxWorkoutNameLength)
	}
	if in.Date.IsZero() {
		return nil, validationError("workout date is required")
	}

	checked := make(map[int64]*domain.Exercise)
	sets := make([]domain.WorkoutSet, 0, len(in.Sets))
	for _, set := range in.Sets {
		exercise, ok := checked[set.ExerciseID]
		if !ok {
			ex, err := s.exerciseRepo.GetByID(ctx, set.ExerciseID)
			if err != nil && !errors.Is(err, repository.ErrNotFound) {
				return nil, err
			}
			if ex == nil || !ex.VisibleTo(userID) {
				return nil, validationError("exercise %d does not exist", set.ExerciseID)
			}
			checked[set.ExerciseID] = ex
			exercise = ex
		}

		sets = append(sets, domain.WorkoutSet{
			ExerciseID:  set.ExerciseID,
			SetNumber:   set.SetNumber,
			WeightKg:    set.WeightKg,
			Reps:        set.Reps,
			DistanceKm:  set.DistanceKm,
			TimeSeconds: set.TimeSeconds,
			Exercise:    exercise,
		})
	}

	return &domain.Workout{
		UserID:          userID,
		Name:            name,
		Date:            in.Date,
		DurationMinutes: in.DurationMinutes,
		Notes:           in.Notes,
		Sets:            sets,
	}, nil
}

// CreateWorkout stores a new workout for the caller. Submitted set numbers
// are kept as given.
func (s *workoutService) CreateWorkout(ctx context.Context, userID int64, in WorkoutInput) (*domain.Workout, error) {
	workout, err := s.build(ctx, userID, in)
	if err != nil {
		return nil, err
	}

	if _, err := s.workoutRepo.Create(ctx, workout); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			// An exercise was deleted between validation and insert.
			return nil, validationError("a referenced exercise no longer exists")
		}
		return nil, err
	}
	return workout, nil
}

func (s *workoutService) ReplaceWorkout(ctx context.Context, userID, workoutID int64, in WorkoutInput) error {
	if _, err := s.loadOwned(ctx, userID, workoutID); err != nil {
		return err
	}

	workout, err := s.build(ctx, userID, in)
	if err != nil {
		return err
	}
	workout.ID = workoutID
	workout.Renumber()

	err = s.workoutRepo.Replace(ctx, workout)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repository.ErrConflict):
		// Re-verify: if the workout is gone it was deleted concurrently.
		if _, getErr := s.workoutRepo.GetByID(ctx, workoutID); errors.Is(getErr, repository.ErrNotFound) {
			return ErrWorkoutNotFound
		}
		return err
	case errors.Is(err, repository.ErrNotFound):
		return validationError("a referenced exercise no longer exists")
	default:
		return err
	}
}

func (s *workoutService) DeleteWorkout(ctx context.Context, userID, workoutID int64) error {
	if _, err := s.loadOwned(ctx, userID, workoutID); err != nil {
		return err
	}

	err := s.workoutRepo.Delete(ctx, workoutID)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrWorkoutNotFound
	}
	return err
}

func (s *workoutService) PersonalRecords(ctx context.Context, userID int64) ([]domain.PersonalRecord, error) {
	workouts, err := s.workoutRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return domain.ComputePersonalRecords(workouts), nil
}
