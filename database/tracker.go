package database

import "sync"

// Table names used for change notification.
const (
	UsersTable = "users"
	LogsTable  = "gym_logs"
)

type trackedObserver struct {
	tables map[string]struct{}
	fn     func()
}

// InvalidationTracker tells live queries that a table they read has changed.
type InvalidationTracker struct {
	mu        sync.Mutex
	nextID    int
	observers map[int]trackedObserver
}

func newInvalidationTracker() *InvalidationTracker {
	return &InvalidationTracker{observers: make(map[int]trackedObserver)}
}

// Add registers fn for changes to any of tables and returns its removal func.
func (t *InvalidationTracker) Add(fn func(), tables ...string) (remove func()) {
	set := make(map[string]struct{}, len(tables))
	for _, tbl := range tables {
		set[tbl] = struct{}{}
	}

	t.mu.Lock()
	id := t.nextID
	t.nextID++
	t.observers[id] = trackedObserver{tables: set, fn: fn}
	t.mu.Unlock()

	return func() {
		t.mu.Lock()
		delete(t.observers, id)
		t.mu.Unlock()
	}
}

// Notify calls every observer of the given tables. Callbacks run outside
// the tracker lock.
func (t *InvalidationTracker) Notify(tables ...string) {
	var fns []func()

	t.mu.Lock()
	for _, o := range t.observers {
		for _, tbl := range tables {
			if _, ok := o.tables[tbl]; ok {
				fns = append(fns, o.fn)
				break
			}
		}
	}
	t.mu.Unlock()

	for _, fn := range fns {
		fn()
	}
}

// Len returns the number of registered observers.
func (t *InvalidationTracker) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.observers)
}
