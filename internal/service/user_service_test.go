package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"athletrack/backend/internal/domain"
	"athletrack/backend/internal/repository/memory"
)

func TestUserService_OwnProfileOnly(t *testing.T) {
	ctx := context.Background()
	users := memory.NewStore().Users()
	svc := NewUserService(users)

	id, err := users.Create(ctx, &domain.User{Email: "a@b.c", PasswordHash: "hash", DateJoined: time.Now()})
	require.NoError(t, err)

	profile, err := svc.GetProfile(ctx, id, id)
	require.NoError(t, err)
	assert.Equal(t, "a@b.c", profile.Email)
	assert.Empty(t, profile.PasswordHash)

	_, err = svc.GetProfile(ctx, id+1, id)
	assert.ErrorIs(t, err, ErrUserAccessDenied)

	_, err = svc.GetProfile(ctx, id+1, id+1)
	assert.ErrorIs(t, err, ErrUserNotFound)

	require.NoError(t, svc.UpdateProfile(ctx, id, id, " Ann ", "Lee"))
	profile, err = svc.GetProfile(ctx, id, id)
	require.NoError(t, err)
	assert.Equal(t, "Ann", profile.FirstName)
	assert.Equal(t, "Lee", profile.LastName)

	assert.ErrorIs(t, svc.UpdateProfile(ctx, id, id+1, "x", "y"), ErrUserAccessDenied)
	assert.ErrorIs(t, svc.UpdateProfile(ctx, id+5, id+5, "x", "y"), ErrUserNotFound)
}
