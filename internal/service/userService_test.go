package service

import (
	"context"
	"testing"

	"event-ticketing/internal/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterUser(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	t.Run("role defaults to attendee", func(t *testing.T) {
		user, err := env.users.RegisterUser(ctx, &RegisterUserRequest{
			Email: "plain@example.com",
			Name:  "Plain User",
		})
		require.NoError(t, err)
		assert.Equal(t, entity.UserRoleAttendee, user.Role)
		assert.NotZero(t, user.ID)
	})

	t.Run("explicit role is kept", func(t *testing.T) {
		user, err := env.users.RegisterUser(ctx, &RegisterUserRequest{
			Email: "org@example.com",
			Name:  "Organizer",
			Role:  entity.UserRoleOrganizer,
		})
		require.NoError(t, err)
		assert.Equal(t, entity.UserRoleOrganizer, user.Role)
	})

	t.Run("unknown role is rejected", func(t *testing.T) {
		_, err := env.users.RegisterUser(ctx, &RegisterUserRequest{
			Email: "bad@example.com",
			Name:  "Bad Role",
			Role:  "superuser",
		})
		require.Error(t, err)
		assert.ErrorIs(t, err, entity.ErrInvalidInput)
	})
}

func TestGetUserByID(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	created := env.seedUser(t, "lookup@example.com", entity.UserRoleAttendee)

	user, err := env.users.GetUserByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "lookup@example.com", user.Email)

	_, err = env.users.GetUserByID(ctx, 999)
	assert.ErrorIs(t, err, entity.ErrUserNotFound)
}
