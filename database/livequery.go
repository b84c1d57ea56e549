package database

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"gymlog/live"
)

const liveQueryTimeout = 30 * time.Second

// liveQuery recomputes a query whenever one of its tables changes, for as
// long as its Value has observers. Recomputes never overlap; changes that
// arrive during a recompute collapse into one more pass.
type liveQuery[T any] struct {
	name    string
	tables  []string
	compute func(ctx context.Context) (T, error)
	tracker *InvalidationTracker
	log     *slog.Logger
	value   *live.Value[T]

	mu      sync.Mutex
	running bool
	pending bool
	remove  func()
}

func newLiveQuery[T any](s *Store, name string, compute func(ctx context.Context) (T, error), tables ...string) *live.Value[T] {
	q := &liveQuery[T]{
		name:    name,
		tables:  tables,
		compute: compute,
		tracker: s.tracker,
		log:     s.log,
	}
	q.value = live.New[T](s.dispatcher, live.Hooks{
		OnActive:   q.activate,
		OnInactive: q.deactivate,
	})
	return q.value
}

func (q *liveQuery[T]) activate() {
	q.mu.Lock()
	q.remove = q.tracker.Add(q.invalidate, q.tables...)
	q.mu.Unlock()
	q.invalidate()
}

func (q *liveQuery[T]) deactivate() {
	q.mu.Lock()
	remove := q.remove
	q.remove = nil
	q.mu.Unlock()
	if remove != nil {
		remove()
	}
}

func (q *liveQuery[T]) invalidate() {
	q.mu.Lock()
	if q.running {
		q.pending = true
		q.mu.Unlock()
		return
	}
	q.running = true
	q.mu.Unlock()

	go q.refresh()
}

func (q *liveQuery[T]) refresh() {
	for {
		ctx, cancel := context.WithTimeout(context.Background(), liveQueryTimeout)
		val, err := q.compute(ctx)
		cancel()
		if err != nil {
			q.log.Error("live query failed", "query", q.name, "error", err)
		} else {
			q.value.Post(val)
		}

		q.mu.Lock()
		if !q.pending {
			q.running = false
			q.mu.Unlock()
			return
		}
		q.pending = false
		q.mu.Unlock()
	}
}
