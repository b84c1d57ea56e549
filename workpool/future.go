package workpool

import (
	"context"

	"github.com/alitto/pond/v2"
)

// Future is the pending result of a task submitted with Submit.
type Future[T any] struct {
	task pond.Task
	done <-chan struct{}
	val  T
	err  error
}

// Submit queues fn on the pool and returns a handle to its result.
// If the pool refuses the task the future is already completed with the error.
func Submit[T any](p *Pool, fn func() (T, error)) *Future[T] {
	f := &Future[T]{}

	task, err := p.submit(func() error {
		var err error
		f.val, err = fn()
		return err
	})
	if err != nil {
		done := make(chan struct{})
		close(done)
		f.done = done
		f.err = err
		return f
	}
	f.task = task
	f.done = task.Done()
	return f
}

// Done is closed when the task has finished.
func (f *Future[T]) Done() <-chan struct{} {
	return f.done
}

// Await blocks until the task finishes or ctx ends. A cancelled wait does
// not cancel the task itself.
func (f *Future[T]) Await(ctx context.Context) (T, error) {
	select {
	case <-f.done:
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
	if f.task == nil {
		var zero T
		return zero, f.err
	}
	if err := f.task.Wait(); err != nil {
		var zero T
		return zero, closedErr(err)
	}
	return f.val, nil
}
