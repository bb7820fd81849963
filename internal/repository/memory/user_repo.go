package memory

import (
	"context"
	"strings"

	"athletrack/backend/internal/domain"
	"athletrack/backend/internal/repository"
)

type userRepository struct {
	s *Store
}

func (r *userRepository) Create(_ context.Context, user *domain.User) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, u := range r.s.users {
		if strings.EqualFold(u.Email, user.Email) {
			return 0, repository.ErrDuplicate
		}
	}

	user.ID = r.s.newID()
	r.s.users[user.ID] = *user
	return user.ID, nil
}

func (r *userRepository) GetByID(_ context.Context, id int64) (*domain.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	u, ok := r.s.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &u, nil
}

func (r *userRepository) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, u := range r.s.users {
		if strings.EqualFold(u.Email, email) {
			u := u
			return &u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *userRepository) UpdateProfile(_ context.Context, id int64, firstName, lastName string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	u, ok := r.s.users[id]
	if !ok {
		return repository.ErrNotFound
	}
	u.FirstName = firstName
	u.LastName = lastName
	r.s.users[id] = u
	return nil
}
