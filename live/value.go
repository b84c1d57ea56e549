// Package live holds push-updated values that notify observers on change.
package live

import (
	"context"
	"sync"
)

// Hooks are called when a Value gains its first observer and loses its last.
// Either may be nil.
type Hooks struct {
	OnActive   func()
	OnInactive func()
}

type observer[T any] struct {
	fn      func(T)
	version uint64
	removed bool
	// draining is set while one goroutine delivers to this observer.
	draining bool
}

// Value is a subject holding the latest value of type T.
//
// Observers are called through the Value's Dispatcher. An observer that
// attaches after a value was posted receives that latest value right away.
// Each observer sees versions in increasing order and never the same
// version twice; rapid posts may be coalesced to the newest one.
type Value[T any] struct {
	dispatcher Dispatcher
	hooks      Hooks

	mu        sync.Mutex
	latest    T
	version   uint64
	observers map[uint64]*observer[T]
	nextID    uint64

	// lifecycle serializes hook calls so OnActive/OnInactive never overlap.
	lifecycle sync.Mutex
}

// New returns an empty Value delivering through d (Immediate if nil).
func New[T any](d Dispatcher, hooks Hooks) *Value[T] {
	if d == nil {
		d = Immediate
	}
	return &Value[T]{
		dispatcher: d,
		hooks:      hooks,
		observers:  make(map[uint64]*observer[T]),
	}
}

// Post sets the latest value and notifies every observer.
func (v *Value[T]) Post(val T) {
	v.mu.Lock()
	v.latest = val
	v.version++
	obs := make([]*observer[T], 0, len(v.observers))
	for _, o := range v.observers {
		obs = append(obs, o)
	}
	v.mu.Unlock()

	for _, o := range obs {
		v.deliver(o)
	}
}

// Latest returns the current value and whether anything was posted yet.
func (v *Value[T]) Latest() (T, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.latest, v.version > 0
}

// Observe registers fn and returns a function that removes it.
func (v *Value[T]) Observe(fn func(T)) (cancel func()) {
	o := &observer[T]{fn: fn}

	v.lifecycle.Lock()
	v.mu.Lock()
	id := v.nextID
	v.nextID++
	v.observers[id] = o
	first := len(v.observers) == 1
	hasValue := v.version > 0
	v.mu.Unlock()
	if first && v.hooks.OnActive != nil {
		v.hooks.OnActive()
	}
	v.lifecycle.Unlock()

	if hasValue {
		v.deliver(o)
	}

	var once sync.Once
	return func() {
		once.Do(func() { v.remove(id) })
	}
}

// Observers returns the number of attached observers.
func (v *Value[T]) Observers() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return len(v.observers)
}

func (v *Value[T]) remove(id uint64) {
	v.lifecycle.Lock()
	defer v.lifecycle.Unlock()

	v.mu.Lock()
	if o, ok := v.observers[id]; ok {
		o.removed = true
		delete(v.observers, id)
	}
	last := len(v.observers) == 0
	v.mu.Unlock()

	if last && v.hooks.OnInactive != nil {
		v.hooks.OnInactive()
	}
}

func (v *Value[T]) deliver(o *observer[T]) {
	v.dispatcher.Dispatch(func() { v.drain(o) })
}

// drain delivers to o until it has seen the current version. Only one
// goroutine drains an observer at a time; others leave newer versions to it.
func (v *Value[T]) drain(o *observer[T]) {
	v.mu.Lock()
	if o.draining {
		v.mu.Unlock()
		return
	}
	o.draining = true
	defer func() {
		v.mu.Lock()
		o.draining = false
		v.mu.Unlock()
	}()

	for !o.removed && o.version < v.version {
		o.version = v.version
		val := v.latest
		v.mu.Unlock()

		o.fn(val)

		v.mu.Lock()
	}
	v.mu.Unlock()
}

// First observes v until the first delivery and returns that value.
func First[T any](ctx context.Context, v *Value[T]) (T, error) {
	ch := make(chan T, 1)
	cancel := v.Observe(func(val T) {
		select {
		case ch <- val:
		default:
		}
	})
	defer cancel()

	select {
	case val := <-ch:
		return val, nil
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}
