// Package repository is the process-wide entry point to gym log data.
//
// Writes are queued on the shared worker pool and never confirmed to the
// caller. Reactive reads go straight to the store's live queries. The
// blocking reads exist for older call sites and wait on the pool.
package repository

import (
	"context"
	"log/slog"
	"time"

	"gymlog/database"
	"gymlog/lazy"
	"gymlog/live"
	"gymlog/models"
	"gymlog/workpool"
)

type Options struct {
	Store  database.Options
	Pool   *workpool.Pool
	Logger *slog.Logger
	// BlockingTimeout bounds Get and the blocking reads. Zero waits forever.
	BlockingTimeout time.Duration
}

type Repository struct {
	store   *database.Store
	pool    *workpool.Pool
	log     *slog.Logger
	timeout time.Duration
}

// New builds a repository over an already opened store.
func New(store *database.Store, pool *workpool.Pool, logger *slog.Logger, timeout time.Duration) *Repository {
	if logger == nil {
		logger = slog.Default()
	}
	return &Repository{
		store:   store,
		pool:    pool,
		log:     logger,
		timeout: timeout,
	}
}

var instance lazy.Cell[*Repository]

// Get returns the process-wide repository. The first call opens the store
// on the worker pool and waits for it. On failure Get logs and returns nil;
// a later call tries again.
func Get(opts Options) *Repository {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Pool == nil {
		opts.Pool = database.WriteExecutor()
	}
	if opts.Store.Executor == nil {
		opts.Store.Executor = opts.Pool
	}
	if opts.Store.Logger == nil {
		opts.Store.Logger = opts.Logger
	}

	repo, err := instance.Get(func() (*Repository, error) {
		ctx, cancel := withTimeout(context.Background(), opts.BlockingTimeout)
		defer cancel()

		return workpool.Submit(opts.Pool, func() (*Repository, error) {
			store, err := database.GetStore(opts.Store)
			if err != nil {
				return nil, err
			}
			return New(store, opts.Pool, opts.Logger, opts.BlockingTimeout), nil
		}).Await(ctx)
	})
	if err != nil {
		opts.Logger.Error("problem when getting repository", "error", err)
		return nil
	}
	return repo
}

func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d)
}

// Store returns the underlying store.
func (r *Repository) Store() *database.Store {
	return r.store
}

// ==================== WRITES ====================

func (r *Repository) InsertLog(entry models.LogEntry) {
	r.write("insert log", func(ctx context.Context) error {
		_, err := r.store.Logs().Insert(ctx, entry)
		return err
	})
}

func (r *Repository) InsertUsers(users ...models.User) {
	r.write("insert users", func(ctx context.Context) error {
		_, err := r.store.Users().Insert(ctx, users...)
		return err
	})
}

func (r *Repository) DeleteUser(user models.User) {
	r.write("delete user", func(ctx context.Context) error {
		return r.store.Users().Delete(ctx, user)
	})
}

func (r *Repository) DeleteAllUsers() {
	r.write("delete all users", func(ctx context.Context) error {
		return r.store.Users().DeleteAll(ctx)
	})
}

func (r *Repository) write(op string, fn func(ctx context.Context) error) {
	err := r.pool.Execute(func() {
		if err := fn(context.Background()); err != nil {
			r.log.Error("write failed", "op", op, "error", err)
		}
	})
	if err != nil {
		r.log.Error("write dropped", "op", op, "error", err)
	}
}

// ==================== REACTIVE READS ====================

func (r *Repository) GetUserByUsername(username string) *live.Value[*models.User] {
	return r.store.Users().GetByUsername(username)
}

func (r *Repository) GetUserByUserID(id int) *live.Value[*models.User] {
	return r.store.Users().GetByUserID(id)
}

func (r *Repository) GetAllLogsByUserIDLive(userID int) *live.Value[[]models.LogEntry] {
	return r.store.Logs().GetByUserIDLive(userID)
}

func (r *Repository) GetAllUsersLive() *live.Value[[]models.User] {
	return r.store.Users().GetAllLive()
}

// ==================== BLOCKING READS ====================

// GetAllLogsBlocking returns every log, or nil if the read failed or ctx ended.
//
// Deprecated: observe a live query instead.
func (r *Repository) GetAllLogsBlocking(ctx context.Context) []models.LogEntry {
	return blocking(ctx, r, "get all logs", r.store.Logs().GetAll)
}

// GetAllLogsByUserIDBlocking returns one user's logs, or nil on failure.
//
// Deprecated: use GetAllLogsByUserIDLive.
func (r *Repository) GetAllLogsByUserIDBlocking(ctx context.Context, userID int) []models.LogEntry {
	return blocking(ctx, r, "get logs by user", func(ctx context.Context) ([]models.LogEntry, error) {
		return r.store.Logs().GetByUserID(ctx, userID)
	})
}

// GetAllUsersBlocking returns every user, or nil on failure.
//
// Deprecated: use GetAllUsersLive.
func (r *Repository) GetAllUsersBlocking(ctx context.Context) []models.User {
	return blocking(ctx, r, "get all users", r.store.Users().GetAll)
}

func blocking[T any](ctx context.Context, r *Repository, op string, fn func(ctx context.Context) ([]T, error)) []T {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	out, err := workpool.Submit(r.pool, func() ([]T, error) {
		return fn(ctx)
	}).Await(ctx)
	if err != nil {
		r.log.Error("blocking read failed", "op", op, "error", err)
		return nil
	}
	return out
}
