package services

import (
	"context"
	"fmt"
	"log/slog"

	"gymlog/live"
	"gymlog/models"
	"gymlog/validator"
)

// UserRequest is the input for creating an account
type UserRequest struct {
	Username string `json:"username" validate:"required,max=64,username"`
	Password string `json:"password" validate:"required"`
	IsAdmin  bool   `json:"isAdmin"`
}

// UserService handles account administration
type UserService struct {
	repo      UserRepository
	validator *validator.Validator
	log       *slog.Logger
}

// NewUserService creates a new user service
func NewUserService(repo UserRepository, v *validator.Validator, logger *slog.Logger) *UserService {
	if v == nil {
		v = validator.New()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &UserService{
		repo:      repo,
		validator: v,
		log:       logger.With("component", "users"),
	}
}

// Add queues a new account. Usernames are checked for duplicates first,
// but the check is not atomic with the write.
func (us *UserService) Add(ctx context.Context, req UserRequest) error {
	if err := us.validator.Validate(&req); err != nil {
		return err
	}

	existing, err := live.First(ctx, us.repo.GetUserByUsername(req.Username))
	if err != nil {
		return fmt.Errorf("look up %s: %w", req.Username, err)
	}
	if existing != nil {
		return fmt.Errorf("%s: %w", req.Username, ErrUserExists)
	}

	user := models.NewUser(req.Username, req.Password)
	user.IsAdmin = req.IsAdmin
	us.repo.InsertUsers(user)

	us.log.Info("user queued", "username", user.Username, "admin", user.IsAdmin)
	return nil
}

// List returns every account ordered by username
func (us *UserService) List(ctx context.Context) ([]models.User, error) {
	users := us.repo.GetAllUsersBlocking(ctx)
	if users == nil {
		return nil, ErrReadFailed
	}
	return users, nil
}

// Delete queues removal of the named account
func (us *UserService) Delete(ctx context.Context, username string) error {
	user, err := live.First(ctx, us.repo.GetUserByUsername(username))
	if err != nil {
		return fmt.Errorf("look up %s: %w", username, err)
	}
	if user == nil {
		return fmt.Errorf("%s: %w", username, ErrUserNotFound)
	}

	us.repo.DeleteUser(*user)
	us.log.Info("user delete queued", "user_id", user.ID, "username", user.Username)
	return nil
}

// Reset removes every account
func (us *UserService) Reset() {
	us.repo.DeleteAllUsers()
	us.log.Warn("all users delete queued")
}
