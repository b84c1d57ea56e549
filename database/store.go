package database

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"gymlog/lazy"
	"gymlog/live"
	"gymlog/workpool"
)

// NumberOfThreads is the size of the shared write executor.
const NumberOfThreads = 4

// Executor runs tasks off the caller's goroutine.
type Executor interface {
	Execute(task func()) error
}

var writeExecutor = sync.OnceValue(func() *workpool.Pool {
	return workpool.New(NumberOfThreads, slog.Default())
})

// WriteExecutor returns the process-wide pool used for writes, seeding
// and blocking reads.
func WriteExecutor() *workpool.Pool {
	return writeExecutor()
}

type Options struct {
	Path       string
	Executor   Executor
	Dispatcher live.Dispatcher
	Logger     *slog.Logger
	Migrations MigrationEngine
}

// Store owns the SQLite database and the users and logs collections.
type Store struct {
	db         *DB
	tracker    *InvalidationTracker
	executor   Executor
	dispatcher live.Dispatcher
	log        *slog.Logger

	users *UserDAO
	logs  *LogDAO

	created  bool
	seedDone chan struct{}
}

// Open opens (and if needed recreates) the database at opts.Path.
func Open(opts Options) (*Store, error) {
	if opts.Path == "" {
		return nil, errors.New("database path is required")
	}
	if opts.Executor == nil {
		opts.Executor = WriteExecutor()
	}
	if opts.Dispatcher == nil {
		opts.Dispatcher = live.Immediate
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	path, err := filepath.Abs(opts.Path)
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	created, err := NewMigration(path, opts.Migrations, opts.Logger).Run()
	if err != nil {
		return nil, fmt.Errorf("migrate database: %w", err)
	}

	db, err := New(path)
	if err != nil {
		return nil, err
	}

	s := &Store{
		db:         db,
		tracker:    newInvalidationTracker(),
		executor:   opts.Executor,
		dispatcher: opts.Dispatcher,
		log:        opts.Logger,
		created:    created,
		seedDone:   make(chan struct{}),
	}
	s.users = &UserDAO{s: s}
	s.logs = &LogDAO{s: s}

	if !created {
		close(s.seedDone)
		return s, nil
	}

	s.log.Info("database created", "path", path, "schema_version", SchemaVersion)
	if err := s.executor.Execute(s.seed); err != nil {
		s.log.Error("failed to schedule seeding", "error", err)
		close(s.seedDone)
	}
	return s, nil
}

var storeCell lazy.Cell[*Store]

// GetStore returns the process-wide store, opening it on first use.
// Options are only read by the call that performs the construction.
func GetStore(opts Options) (*Store, error) {
	return storeCell.Get(func() (*Store, error) {
		return Open(opts)
	})
}

func (s *Store) Users() *UserDAO { return s.users }

func (s *Store) Logs() *LogDAO { return s.logs }

// Created reports whether the schema was built when this store opened.
func (s *Store) Created() bool { return s.created }

// SeedDone is closed once the seeding task has finished, or right away
// when no seeding was needed.
func (s *Store) SeedDone() <-chan struct{} { return s.seedDone }

// Tracker exposes the store's invalidation tracker.
func (s *Store) Tracker() *InvalidationTracker { return s.tracker }

func (s *Store) Close() error {
	return s.db.Close()
}
