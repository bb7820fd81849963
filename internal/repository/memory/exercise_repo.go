package memory

import (
	"context"
	"sort"
	"strings"

	"athletrack/backend/internal/domain"
	"athletrack/backend/internal/repository"
)

type exerciseRepository struct {
	s *Store
}

func (r *exerciseRepository) Create(_ context.Context, exercise *domain.Exercise) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	exercise.ID = r.s.newID()
	r.s.exercises[exercise.ID] = *exercise
	return exercise.ID, nil
}

func (r *exerciseRepository) GetByID(_ context.Context, id int64) (*domain.Exercise, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	ex, ok := r.s.exercises[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &ex, nil
}

func (r *exerciseRepository) ListVisible(_ context.Context, userID int64) ([]domain.Exercise, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]domain.Exercise, 0, len(r.s.exercises))
	for _, ex := range r.s.exercises {
		if ex.VisibleTo(userID) {
			out = append(out, ex)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *exerciseRepository) ExistsForOwner(_ context.Context, userID int64, name string) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, ex := range r.s.exercises {
		if ex.OwnedBy(userID) && strings.EqualFold(ex.Name, name) {
			return true, nil
		}
	}
	return false, nil
}

func (r *exerciseRepository) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.exercises[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.s.exercises, id)

	// Cascade to sets recorded against the exercise.
	for wid, w := range r.s.workouts {
		kept := w.Sets[:0:0]
		for _, set := range w.Sets {
			if set.ExerciseID != id {
				kept = append(kept, set)
			}
		}
		if len(kept) != len(w.Sets) {
			w.Sets = kept
			r.s.workouts[wid] = w
		}
	}
	return nil
}

func (r *exerciseRepository) SeedShared(_ context.Context, exercises []domain.Exercise) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	inserted := 0
	for _, seed := range exercises {
		exists := false
		for _, ex := range r.s.exercises {
			if ex.IsShared() && ex.Name == seed.Name {
				exists = true
				break
			}
		}
		if exists {
			continue
		}
		seed.ID = r.s.newID()
		seed.UserID = nil
		r.s.exercises[seed.ID] = seed
		inserted++
	}
	return inserted, nil
}
