// Package memory is an in-process store used for local development and as
// the repository fake in tests. All repositories returned by one Store share
// the same data and lock, so cascades behave like the relational driver.
package memory

import (
	"sort"
	"sync"

	"athletrack/backend/internal/domain"
	"athletrack/backend/internal/repository"
)

// Store holds every entity in maps keyed by id.
type Store struct {
	mu sync.RWMutex

	nextID      int64
	users       map[int64]domain.User
	exercises   map[int64]domain.Exercise
	workouts    map[int64]domain.Workout
	bodyMetrics map[int64]domain.BodyMetric
}

// NewStore returns an empty store. Call SeedShared on its exercise
// repository to install the system library.
func NewStore() *Store {
	return &Store{
		users:       make(map[int64]domain.User),
		exercises:   make(map[int64]domain.Exercise),
		workouts:    make(map[int64]domain.Workout),
		bodyMetrics: make(map[int64]domain.BodyMetric),
	}
}

// Users returns the user repository view of the store.
func (s *Store) Users() repository.UserRepository { return &userRepository{s} }

// Exercises returns the exercise repository view of the store.
func (s *Store) Exercises() repository.ExerciseRepository { return &exerciseRepository{s} }

// Workouts returns the workout repository view of the store.
func (s *Store) Workouts() repository.WorkoutRepository { return &workoutRepository{s} }

// BodyMetrics returns the body metric repository view of the store.
func (s *Store) BodyMetrics() repository.BodyMetricRepository { return &bodyMetricRepository{s} }

// newID must be called with mu held for writing.
func (s *Store) newID() int64 {
	s.nextID++
	return s.nextID
}

// hydrate returns a deep copy of w with sets sorted by number and each set's
// exercise attached. Caller holds mu.
func (s *Store) hydrate(w domain.Workout) domain.Workout {
	sets := make([]domain.WorkoutSet, len(w.Sets))
	copy(sets, w.Sets)
	sort.SliceStable(sets, func(i, j int) bool { return sets[i].SetNumber < sets[j].SetNumber })

	for i := range sets {
		workoutID := w.ID
		sets[i].WorkoutID = &workoutID
		if ex, ok := s.exercises[sets[i].ExerciseID]; ok {
			ex := ex
			sets[i].Exercise = &ex
		}
	}
	w.Sets = sets
	return w
}
