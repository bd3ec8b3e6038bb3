// Package lazy provides deferred-resolution handles: a value produced by a
// loader on first access and cached for every later access.
package lazy

import "sync"

// Value is a handle resolved on first Get. A failed load is cached too.
type Value[T any] struct {
	once   sync.Once
	load   func() (T, error)
	value  T
	err    error
	loaded bool
	mu     sync.Mutex
}

// New returns an unresolved handle around load.
func New[T any](load func() (T, error)) *Value[T] {
	return &Value[T]{load: load}
}

// Ready returns an already resolved handle.
func Ready[T any](v T) *Value[T] {
	l := &Value[T]{value: v, loaded: true}
	l.once.Do(func() {})
	return l
}

// Get resolves the handle if needed and returns the cached result.
func (l *Value[T]) Get() (T, error) {
	l.once.Do(func() {
		v, err := l.load()
		l.mu.Lock()
		l.value, l.err, l.loaded = v, err, true
		l.mu.Unlock()
	})
	return l.value, l.err
}

// Resolved reports whether the loader has already run.
func (l *Value[T]) Resolved() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.loaded
}
