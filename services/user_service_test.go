package services

import (
	"context"
	"testing"

	"gymlog/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestUserService_Add(t *testing.T) {
	ctx := context.Background()

	t.Run("New user is queued", func(t *testing.T) {
		repo := new(MockUserRepository)
		repo.On("GetUserByUsername", "coach").Return(posted[*models.User](nil))
		repo.On("InsertUsers", []models.User{{Username: "coach", Password: "pw", IsAdmin: true}}).Return()

		svc := NewUserService(repo, nil, testLogger())
		err := svc.Add(ctx, UserRequest{Username: "coach", Password: "pw", IsAdmin: true})

		require.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("Duplicate username", func(t *testing.T) {
		repo := new(MockUserRepository)
		repo.On("GetUserByUsername", "admin1").Return(posted(&models.User{ID: 1, Username: "admin1"}))

		svc := NewUserService(repo, nil, testLogger())
		err := svc.Add(ctx, UserRequest{Username: "admin1", Password: "pw"})

		assert.ErrorIs(t, err, ErrUserExists)
		repo.AssertNotCalled(t, "InsertUsers", mock.Anything)
	})

	t.Run("Invalid username", func(t *testing.T) {
		repo := new(MockUserRepository)

		svc := NewUserService(repo, nil, testLogger())
		err := svc.Add(ctx, UserRequest{Username: "two words", Password: "pw"})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "must not contain spaces")
		repo.AssertNotCalled(t, "GetUserByUsername", mock.Anything)
	})
}

func TestUserService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("Existing user", func(t *testing.T) {
		user := &models.User{ID: 3, Username: "old"}
		repo := new(MockUserRepository)
		repo.On("GetUserByUsername", "old").Return(posted(user))
		repo.On("DeleteUser", *user).Return()

		svc := NewUserService(repo, nil, testLogger())

		require.NoError(t, svc.Delete(ctx, "old"))
		repo.AssertExpectations(t)
	})

	t.Run("Unknown user", func(t *testing.T) {
		repo := new(MockUserRepository)
		repo.On("GetUserByUsername", "nobody").Return(posted[*models.User](nil))

		svc := NewUserService(repo, nil, testLogger())

		assert.ErrorIs(t, svc.Delete(ctx, "nobody"), ErrUserNotFound)
		repo.AssertNotCalled(t, "DeleteUser", mock.Anything)
	})
}

func TestUserService_ListAndReset(t *testing.T) {
	ctx := context.Background()
	repo := new(MockUserRepository)
	repo.On("GetAllUsersBlocking", ctx).Return([]models.User{{ID: 1, Username: "admin1"}}).Once()
	repo.On("GetAllUsersBlocking", ctx).Return(nil).Once()
	repo.On("DeleteAllUsers").Return()

	svc := NewUserService(repo, nil, testLogger())

	users, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 1)

	_, err = svc.List(ctx)
	assert.ErrorIs(t, err, ErrReadFailed)

	svc.Reset()
	repo.AssertCalled(t, "DeleteAllUsers")
}
