// Package lazy provides a process-wide singleton cell with an explicit
// construction state machine.
package lazy

import (
	"errors"
	"fmt"
	"sync/atomic"

	"golang.org/x/sync/singleflight"
)

// State is the construction state of a Cell.
type State int32

const (
	Uninitialized State = iota
	Constructing
	Ready
)

func (s State) String() string {
	switch s {
	case Uninitialized:
		return "uninitialized"
	case Constructing:
		return "constructing"
	case Ready:
		return "ready"
	default:
		return fmt.Sprintf("state(%d)", int32(s))
	}
}

// ErrConstructorPanicked is returned to every waiter when the constructor panics.
var ErrConstructorPanicked = errors.New("constructor panicked")

// Cell holds a value that is built at most once at a time.
//
// The first caller of Get moves the cell from Uninitialized to Constructing
// and runs the constructor. Callers arriving while construction is in
// flight share that result instead of starting their own. A successful
// construction moves the cell to Ready for good; a failed one moves it back
// to Uninitialized so a later Get may try again.
type Cell[T any] struct {
	state atomic.Int32
	val   T
	group singleflight.Group
}

const cellKey = "cell"

// State returns the current construction state.
func (c *Cell[T]) State() State {
	return State(c.state.Load())
}

// Get returns the cell's value, constructing it with init if needed.
func (c *Cell[T]) Get(init func() (T, error)) (T, error) {
	// val is published before state becomes Ready.
	if c.State() == Ready {
		return c.val, nil
	}

	v, err, _ := c.group.Do(cellKey, func() (any, error) {
		if c.State() == Ready {
			return c.val, nil
		}
		c.state.Store(int32(Constructing))

		val, err := construct(init)
		if err != nil {
			c.state.Store(int32(Uninitialized))
			return nil, err
		}
		c.val = val
		c.state.Store(int32(Ready))
		return val, nil
	})
	if err != nil {
		var zero T
		return zero, err
	}
	val, _ := v.(T)
	return val, nil
}

func construct[T any](init func() (T, error)) (val T, err error) {
	defer func() {
		if r := recover(); r != nil {
			var zero T
			val = zero
			err = fmt.Errorf("%w: %v", ErrConstructorPanicked, r)
		}
	}()
	return init()
}
