package setup

import (
	"errors"
	"log/slog"

	"gymlog/app"
	"gymlog/config"
	"gymlog/database"
	"gymlog/live"
	"gymlog/repository"
	"gymlog/session"
)

// ErrRepositoryUnavailable is returned when the data layer could not start.
var ErrRepositoryUnavailable = errors.New("repository unavailable")

// InitApp opens the session file and the shared repository and wires the
// services on top of them.
func InitApp(cfg *config.Config, logger *slog.Logger) (*app.App, error) {
	sess, err := session.Open(cfg.SessionPath)
	if err != nil {
		return nil, err
	}
	logger.Debug("session store opened", "path", cfg.SessionPath)

	pool := database.WriteExecutor()
	events := live.NewLoop()

	repo := repository.Get(repository.Options{
		Store: database.Options{
			Path:       cfg.DBPath,
			Dispatcher: events,
			Logger:     logger.With("component", "database"),
		},
		Pool:            pool,
		Logger:          logger.With("component", "repository"),
		BlockingTimeout: cfg.BlockingTimeout,
	})
	if repo == nil {
		events.Close()
		return nil, ErrRepositoryUnavailable
	}
	logger.Debug("repository ready", "path", cfg.DBPath)

	// A fresh database is seeded on the pool; commands need those accounts.
	<-repo.Store().SeedDone()

	return app.New(repo, sess, pool, events, logger), nil
}

// Shutdown lets queued writes land before the process exits.
func Shutdown(a *app.App) {
	if a == nil {
		return
	}

	a.Logger.Debug("shutting down services...")

	a.Pool.Shutdown()
	a.Logger.Debug("worker pool drained")

	a.Events.Close()
	a.Logger.Debug("event loop stopped")
}
