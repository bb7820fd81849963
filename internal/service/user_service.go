package service

import (
	"context"
	"errors"
	"strings"

	"athletrack/backend/internal/domain"
	"athletrack/backend/internal/repository"
)

var (
	ErrUserNotFound     = errors.New("user not found")
	ErrUserAccessDenied = errors.New("access denied to this user profile")
)

// UserService exposes account profiles. Callers may only see or change
// their own profile.
type UserService interface {
	GetProfile(ctx context.Context, callerID, userID int64) (*domain.User, error)
	UpdateProfile(ctx context.Context, callerID, userID int64, firstName, lastName string) error
}

type userService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

func (s *userService) GetProfile(ctx context.Context, callerID, userID int64) (*domain.User, error) {
	if callerID != userID {
		return nil, ErrUserAccessDenied
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	user.PasswordHash = ""
	return user, nil
}

func (s *userService) UpdateProfile(ctx context.Context, callerID, userID int64, firstName, lastName string) error {
	if callerID != userID {
		return ErrUserAccessDenied
	}

	err := s.userRepo.UpdateProfile(ctx, userID, strings.TrimSpace(firstName), strings.TrimSpace(lastName))
	if errors.Is(err, repository.ErrNotFound) {
		return ErrUserNotFound
	}
	return err
}
