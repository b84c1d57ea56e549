package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"gymlog/live"
	"gymlog/models"
	"gymlog/session"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()
	admin := &models.User{ID: 1, Username: "admin1", Password: "admin1", IsAdmin: true}

	t.Run("Success stores the user id", func(t *testing.T) {
		users := new(MockUserRepository)
		sess := new(MockSessionStore)
		users.On("GetUserByUsername", "admin1").Return(posted(admin))
		sess.On("SetUserID", 1).Return(nil)

		svc := NewAuthService(users, sess, testLogger())
		user, err := svc.Login(ctx, "admin1", "admin1")

		require.NoError(t, err)
		assert.Equal(t, admin, user)
		users.AssertExpectations(t)
		sess.AssertExpectations(t)
	})

	t.Run("Blank username", func(t *testing.T) {
		users := new(MockUserRepository)
		sess := new(MockSessionStore)

		svc := NewAuthService(users, sess, testLogger())
		_, err := svc.Login(ctx, "  ", "pw")

		assert.ErrorIs(t, err, ErrBlankUsername)
		users.AssertNotCalled(t, "GetUserByUsername")
	})

	t.Run("Unknown user", func(t *testing.T) {
		users := new(MockUserRepository)
		sess := new(MockSessionStore)
		users.On("GetUserByUsername", "ghost").Return(posted[*models.User](nil))

		svc := NewAuthService(users, sess, testLogger())
		_, err := svc.Login(ctx, "ghost", "pw")

		assert.ErrorIs(t, err, ErrUserNotFound)
		assert.Contains(t, err.Error(), "ghost")
		sess.AssertNotCalled(t, "SetUserID")
	})

	t.Run("Wrong password", func(t *testing.T) {
		users := new(MockUserRepository)
		sess := new(MockSessionStore)
		users.On("GetUserByUsername", "admin1").Return(posted(admin))

		svc := NewAuthService(users, sess, testLogger())
		_, err := svc.Login(ctx, "admin1", "ADMIN1")

		assert.ErrorIs(t, err, ErrInvalidPassword)
		sess.AssertNotCalled(t, "SetUserID")
	})

	t.Run("Lookup never answers", func(t *testing.T) {
		users := new(MockUserRepository)
		sess := new(MockSessionStore)
		users.On("GetUserByUsername", "admin1").Return(live.New[*models.User](live.Immediate, live.Hooks{}))

		ctx, cancel := context.WithTimeout(ctx, 20*time.Millisecond)
		defer cancel()

		svc := NewAuthService(users, sess, testLogger())
		_, err := svc.Login(ctx, "admin1", "admin1")

		assert.ErrorIs(t, err, context.DeadlineExceeded)
	})

	t.Run("Session write fails", func(t *testing.T) {
		users := new(MockUserRepository)
		sess := new(MockSessionStore)
		users.On("GetUserByUsername", "admin1").Return(posted(admin))
		sess.On("SetUserID", 1).Return(errors.New("disk full"))

		svc := NewAuthService(users, sess, testLogger())
		_, err := svc.Login(ctx, "admin1", "admin1")

		assert.EqualError(t, err, "disk full")
	})
}

func TestAuthService_CurrentUser(t *testing.T) {
	ctx := context.Background()
	user := &models.User{ID: 2, Username: "testUser1", Password: "testUser1"}

	t.Run("Logged out", func(t *testing.T) {
		sess := new(MockSessionStore)
		sess.On("UserID").Return(session.LoggedOut)

		svc := NewAuthService(new(MockUserRepository), sess, testLogger())
		_, err := svc.CurrentUser(ctx)

		assert.ErrorIs(t, err, ErrNotLoggedIn)
	})

	t.Run("Logged in", func(t *testing.T) {
		users := new(MockUserRepository)
		sess := new(MockSessionStore)
		sess.On("UserID").Return(2)
		users.On("GetUserByUserID", 2).Return(posted(user))

		svc := NewAuthService(users, sess, testLogger())
		got, err := svc.CurrentUser(ctx)

		require.NoError(t, err)
		assert.Equal(t, user, got)
	})

	t.Run("Deleted user clears the session", func(t *testing.T) {
		users := new(MockUserRepository)
		sess := new(MockSessionStore)
		sess.On("UserID").Return(9)
		sess.On("Clear").Return(nil)
		users.On("GetUserByUserID", 9).Return(posted[*models.User](nil))

		svc := NewAuthService(users, sess, testLogger())
		_, err := svc.CurrentUser(ctx)

		assert.ErrorIs(t, err, ErrNotLoggedIn)
		sess.AssertExpectations(t)
	})

	t.Run("RequireAdmin rejects regular users", func(t *testing.T) {
		users := new(MockUserRepository)
		sess := new(MockSessionStore)
		sess.On("UserID").Return(2)
		users.On("GetUserByUserID", 2).Return(posted(user))

		svc := NewAuthService(users, sess, testLogger())
		_, err := svc.RequireAdmin(ctx)

		assert.ErrorIs(t, err, ErrUnauthorized)
	})
}

func TestAuthService_Logout(t *testing.T) {
	sess := new(MockSessionStore)
	sess.On("Clear").Return(nil)

	svc := NewAuthService(new(MockUserRepository), sess, testLogger())

	require.NoError(t, svc.Logout())
	sess.AssertExpectations(t)
}
