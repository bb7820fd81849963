package memory

import (
	"context"
	"sort"

	"athletrack/backend/internal/domain"
	"athletrack/backend/internal/repository"
)

type workoutRepository struct {
	s *Store
}

// storeSets copies the sets, assigning fresh ids and dropping read-only fields.
// Caller holds mu for writing.
func (r *workoutRepository) storeSets(sets []domain.WorkoutSet) []domain.WorkoutSet {
	out := make([]domain.WorkoutSet, len(sets))
	for i, set := range sets {
		set.ID = r.s.newID()
		set.WorkoutID = nil
		set.Exercise = nil
		out[i] = set
	}
	return out
}

func (r *workoutRepository) Create(_ context.Context, workout *domain.Workout) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, set := range workout.Sets {
		if _, ok := r.s.exercises[set.ExerciseID]; !ok {
			return 0, repository.ErrNotFound
		}
	}

	workout.ID = r.s.newID()
	stored := *workout
	stored.Sets = r.storeSets(workout.Sets)
	r.s.workouts[workout.ID] = stored

	for i := range workout.Sets {
		workout.Sets[i].ID = stored.Sets[i].ID
		workout.Sets[i].WorkoutID = &workout.ID
	}
	return workout.ID, nil
}

func (r *workoutRepository) GetByID(_ context.Context, id int64) (*domain.Workout, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	w, ok := r.s.workouts[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	hydrated := r.s.hydrate(w)
	return &hydrated, nil
}

func (r *workoutRepository) ListByUser(_ context.Context, userID int64) ([]domain.Workout, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]domain.Workout, 0)
	for _, w := range r.s.workouts {
		if w.OwnedBy(userID) {
			out = append(out, r.s.hydrate(w))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.After(out[j].Date)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

func (r *workoutRepository) Replace(_ context.Context, workout *domain.Workout) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	current, ok := r.s.workouts[workout.ID]
	if !ok {
		return repository.ErrConflict
	}
	for _, set := range workout.Sets {
		if _, ok := r.s.exercises[set.ExerciseID]; !ok {
			return repository.ErrNotFound
		}
	}

	current.Name = workout.Name
	current.Date = workout.Date
	current.DurationMinutes = workout.DurationMinutes
	current.Notes = workout.Notes
	current.Sets = r.storeSets(workout.Sets)
	r.s.workouts[workout.ID] = current
	return nil
}

func (r *workoutRepository) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.workouts[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.s.workouts, id)
	return nil
}
