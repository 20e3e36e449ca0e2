package route

import (
	"context"
	"fmt"
	"sync"
)

// LoadFunc produces one view. It may block (code-split fetch, disk,
// network); the context is cancelled when the requesting resolution is
// superseded. A LoadFunc must be safe to invoke once per resolution
// with no memoization required of it.
type LoadFunc[V any] func(ctx context.Context) (V, error)

// Loader is the view source for a route entry. It is a closed variant:
// the only implementations are Single and Named.
type Loader[V any] interface {
	load(ctx context.Context) (map[string]V, error)
}

// Single wraps one unnamed view loader. Its result is normalized to
// the "default" outlet.
func Single[V any](fn LoadFunc[V]) Loader[V] {
	return singleLoader[V]{fn: fn}
}

// Value is a Single loader for an already-available view.
func Value[V any](v V) Loader[V] {
	return Single(ValueFunc(v))
}

// ValueFunc is a LoadFunc for an already-available view, for use as a
// Named map entry.
func ValueFunc[V any](v V) LoadFunc[V] {
	return func(context.Context) (V, error) {
		return v, nil
	}
}

// Named wraps a multi-outlet loader map. Every key resolves before the
// route resolves; one failing key fails the route as a whole, so a
// partially populated outlet map is never observable.
func Named[V any](fns map[string]LoadFunc[V]) Loader[V] {
	return namedLoader[V]{fns: fns}
}

type singleLoader[V any] struct {
	fn LoadFunc[V]
}

func (l singleLoader[V]) load(ctx context.Context) (map[string]V, error) {
	v, err := l.fn(ctx)
	if err != nil {
		return nil, err
	}
	return map[string]V{DefaultOutlet: v}, nil
}

type namedLoader[V any] struct {
	fns map[string]LoadFunc[V]
}

func (l namedLoader[V]) load(ctx context.Context) (map[string]V, error) {
	views := make(map[string]V, len(l.fns))

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		firstErr error
	)
	for name, fn := range l.fns {
		wg.Add(1)
		go func(name string, fn LoadFunc[V]) {
			defer wg.Done()
			v, err := fn(ctx)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				if firstErr == nil {
					firstErr = fmt.Errorf("outlet %q: %w", name, err)
				}
				return
			}
			views[name] = v
		}(name, fn)
	}
	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}
	return views, nil
}
