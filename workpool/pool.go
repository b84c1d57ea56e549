// Package workpool runs store work on a fixed set of background workers.
package workpool

import (
	"errors"
	"fmt"
	"log/slog"
	"runtime/debug"
	"sync"

	"github.com/alitto/pond/v2"
	"github.com/google/uuid"
)

var (
	// ErrPoolClosed is returned when work is submitted after Shutdown.
	ErrPoolClosed = errors.New("worker pool is shut down")
	// ErrTaskPanicked marks a task that panicked instead of returning.
	ErrTaskPanicked = errors.New("task panicked")
)

// Pool is a fixed-size worker pool fed by an unbounded FIFO queue.
// Execute never blocks the caller. Tasks start in submission order; with
// more than one worker they may finish in any order.
type Pool struct {
	pool pond.Pool
	log  *slog.Logger
	stop sync.Once
}

// New starts a pool with size workers.
func New(size int, logger *slog.Logger) *Pool {
	if size < 1 {
		size = 1
	}
	if logger == nil {
		logger = slog.Default()
	}
	p := &Pool{
		pool: pond.NewPool(size),
		log:  logger.With("component", "workpool"),
	}
	p.log.Debug("worker pool started", "workers", size)
	return p
}

// Size returns the number of workers.
func (p *Pool) Size() int {
	return p.pool.MaxConcurrency()
}

// Execute queues fn. It returns ErrPoolClosed once the pool is shut down.
// A panic in fn is logged and does not take down the worker.
func (p *Pool) Execute(fn func()) error {
	id := uuid.NewString()
	if p.pool.Stopped() {
		return ErrPoolClosed
	}
	if err := p.pool.Go(func() { p.run(id, fn) }); err != nil {
		return closedErr(err)
	}
	p.log.Debug("task queued", "task_id", id)
	return nil
}

// submit queues fn and returns pond's handle to it.
func (p *Pool) submit(fn func() error) (pond.Task, error) {
	if p.pool.Stopped() {
		return nil, ErrPoolClosed
	}
	id := uuid.NewString()
	task := p.pool.SubmitErr(func() error {
		var err error
		p.run(id, func() {
			defer func() {
				if r := recover(); r != nil {
					err = fmt.Errorf("%w: %v", ErrTaskPanicked, r)
					panic(r)
				}
			}()
			err = fn()
		})
		return err
	})
	p.log.Debug("task queued", "task_id", id)
	return task, nil
}

// Shutdown stops accepting work and waits until every queued task has run.
func (p *Pool) Shutdown() {
	p.stop.Do(func() {
		p.pool.StopAndWait()
		p.log.Debug("worker pool stopped")
	})
}

func (p *Pool) run(id string, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			p.log.Error("task panicked",
				"task_id", id,
				"panic", fmt.Sprint(r),
				"stack", string(debug.Stack()),
			)
		}
	}()
	fn()
}

// closedErr maps pond's refusal errors onto ErrPoolClosed.
func closedErr(err error) error {
	if errors.Is(err, pond.ErrPoolStopped) {
		return ErrPoolClosed
	}
	if errors.Is(err, pond.ErrPanic) {
		return fmt.Errorf("%w: %w", ErrTaskPanicked, err)
	}
	return err
}
