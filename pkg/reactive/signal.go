// Package reactive provides the publication primitive the resolver
// uses to deliver outlet updates to its consumer.
package reactive

import (
	"reflect"
	"sync"
)

// Signal is a concurrency-safe value container with change
// notification. Subscribers are invoked after each value change, in
// subscription order, without any lock held.
type Signal[T any] struct {
	// value is the current signal value.
	value T

	// mu protects the value.
	mu sync.RWMutex

	// equal decides whether a Set actually changed the value.
	// If nil, defaultEquals is used.
	equal func(T, T) bool

	// subs are the active subscribers, keyed by subscription id.
	subs    map[uint64]func(T)
	order   []uint64
	nextSub uint64
	subMu   sync.Mutex

	// deliverMu serializes deliveries. The delivered value is re-read
	// under it, so with concurrent writers a subscriber can observe a
	// value twice but never an older value after a newer one.
	deliverMu sync.Mutex
}

// NewSignal creates a signal with the given initial value.
func NewSignal[T any](initial T) *Signal[T] {
	return &Signal[T]{value: initial}
}

// Get returns the current value.
func (s *Signal[T]) Get() T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.value
}

// Set updates the value and notifies subscribers if it changed.
func (s *Signal[T]) Set(value T) {
	s.mu.Lock()
	changed := !s.equals(s.value, value)
	if changed {
		s.value = value
	}
	s.mu.Unlock()

	if changed {
		s.notify()
	}
}

// Update atomically transforms the value and notifies subscribers if
// the result differs from the previous value.
func (s *Signal[T]) Update(fn func(T) T) {
	s.mu.Lock()
	oldValue := s.value
	newValue := fn(oldValue)
	changed := !s.equals(oldValue, newValue)
	if changed {
		s.value = newValue
	}
	s.mu.Unlock()

	if changed {
		s.notify()
	}
}

// Subscribe registers fn for value changes and invokes it immediately
// with the current value, so a late subscriber still observes the
// latest published state. The returned function removes the
// subscription.
func (s *Signal[T]) Subscribe(fn func(T)) (unsubscribe func()) {
	s.subMu.Lock()
	if s.subs == nil {
		s.subs = make(map[uint64]func(T))
	}
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.order = append(s.order, id)
	s.subMu.Unlock()

	s.deliverMu.Lock()
	fn(s.Get())
	s.deliverMu.Unlock()

	return func() {
		s.subMu.Lock()
		defer s.subMu.Unlock()
		delete(s.subs, id)
		for i, sid := range s.order {
			if sid == id {
				s.order = append(s.order[:i], s.order[i+1:]...)
				break
			}
		}
	}
}

// WithEquals configures a custom equality function and returns the
// signal. Useful where reflect.DeepEqual is too expensive or has the
// wrong semantics for T.
func (s *Signal[T]) WithEquals(fn func(T, T) bool) *Signal[T] {
	s.equal = fn
	return s
}

// notify calls subscribers with a copy of the subscriber list, so a
// callback may subscribe or unsubscribe without deadlocking. The value
// is read under deliverMu, after the store that triggered this call.
func (s *Signal[T]) notify() {
	s.subMu.Lock()
	fns := make([]func(T), 0, len(s.order))
	for _, id := range s.order {
		if fn, ok := s.subs[id]; ok {
			fns = append(fns, fn)
		}
	}
	s.subMu.Unlock()

	s.deliverMu.Lock()
	defer s.deliverMu.Unlock()
	value := s.Get()
	for _, fn := range fns {
		fn(value)
	}
}

func (s *Signal[T]) equals(a, b T) bool {
	if s.equal != nil {
		return s.equal(a, b)
	}
	return defaultEquals(a, b)
}

// defaultEquals uses == for common comparable types and falls back to
// reflect.DeepEqual for everything else.
func defaultEquals[T any](a, b T) bool {
	switch av := any(a).(type) {
	case string:
		return av == any(b).(string)
	case int:
		return av == any(b).(int)
	case int64:
		return av == any(b).(int64)
	case bool:
		return av == any(b).(bool)
	default:
		return reflect.DeepEqual(a, b)
	}
}
