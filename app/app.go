package app

import (
	"log/slog"

	"gymlog/live"
	"gymlog/repository"
	"gymlog/services"
	"gymlog/session"
	"gymlog/validator"
	"gymlog/workpool"
)

// App holds all application dependencies
// This struct is the central point for dependency injection
type App struct {
	Repo      *repository.Repository
	Session   *session.Store
	Pool      *workpool.Pool
	Events    *live.Loop
	Validator *validator.Validator
	Logger    *slog.Logger

	Auth  *services.AuthService
	Logs  *services.LogService
	Users *services.UserService
}

// New creates a new App instance with all dependencies
func New(repo *repository.Repository, sess *session.Store, pool *workpool.Pool, events *live.Loop, logger *slog.Logger) *App {
	v := validator.New()
	return &App{
		Repo:      repo,
		Session:   sess,
		Pool:      pool,
		Events:    events,
		Validator: v,
		Logger:    logger,
		Auth:      services.NewAuthService(repo, sess, logger),
		Logs:      services.NewLogService(repo, v, logger),
		Users:     services.NewUserService(repo, v, logger),
	}
}
