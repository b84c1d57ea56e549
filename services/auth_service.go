package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"gymlog/live"
	"gymlog/models"
	"gymlog/session"
)

// AuthService handles login state
type AuthService struct {
	users   UserRepository
	session SessionStore
	log     *slog.Logger
}

// NewAuthService creates a new auth service
func NewAuthService(users UserRepository, session SessionStore, logger *slog.Logger) *AuthService {
	if logger == nil {
		logger = slog.Default()
	}
	return &AuthService{
		users:   users,
		session: session,
		log:     logger.With("component", "auth"),
	}
}

// Login checks the password against the stored one and remembers the user.
func (as *AuthService) Login(ctx context.Context, username, password string) (*models.User, error) {
	if strings.TrimSpace(username) == "" {
		return nil, ErrBlankUsername
	}

	user, err := live.First(ctx, as.users.GetUserByUsername(username))
	if err != nil {
		return nil, fmt.Errorf("look up %s: %w", username, err)
	}
	if user == nil {
		return nil, fmt.Errorf("%s: %w", username, ErrUserNotFound)
	}
	if user.Password != password {
		return nil, ErrInvalidPassword
	}

	if err := as.session.SetUserID(user.ID); err != nil {
		return nil, err
	}

	as.log.Info("user logged in", "user_id", user.ID, "username", user.Username)
	return user, nil
}

// Logout forgets the logged-in user
func (as *AuthService) Logout() error {
	if err := as.session.Clear(); err != nil {
		return err
	}
	as.log.Info("user logged out")
	return nil
}

// CurrentUser returns the logged-in user. A session pointing at a user that
// no longer exists is cleared.
func (as *AuthService) CurrentUser(ctx context.Context) (*models.User, error) {
	id := as.session.UserID()
	if id == session.LoggedOut {
		return nil, ErrNotLoggedIn
	}

	user, err := live.First(ctx, as.users.GetUserByUserID(id))
	if err != nil {
		return nil, fmt.Errorf("look up user %d: %w", id, err)
	}
	if user == nil {
		as.log.Warn("session user no longer exists", "user_id", id)
		if err := as.session.Clear(); err != nil {
			return nil, err
		}
		return nil, ErrNotLoggedIn
	}
	return user, nil
}

// RequireAdmin returns the logged-in user if they are an admin
func (as *AuthService) RequireAdmin(ctx context.Context) (*models.User, error) {
	user, err := as.CurrentUser(ctx)
	if err != nil {
		return nil, err
	}
	if !user.IsAdmin {
		return nil, ErrUnauthorized
	}
	return user, nil
}
