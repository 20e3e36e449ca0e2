package resolver

import (
	"context"
	"log/slog"
	"sync"

	"github.com/wayfind-dev/wayfind/pkg/reactive"
	"github.com/wayfind-dev/wayfind/pkg/route"
)

// Outlet is one resolved view positioned in a named slot. Params are
// the route parameters the view was constructed with; Remainder is the
// path any nested resolver embedded inside the view should resolve.
type Outlet[V any] struct {
	View      V
	Params    route.Params
	Remainder string
}

// Outlets maps outlet name to resolved view. The "default" key is the
// parent's implicit child content; every key, including "default", is
// also addressable by name.
type Outlets[V any] map[string]Outlet[V]

// Default returns the implicit-children outlet, if present.
func (o Outlets[V]) Default() (Outlet[V], bool) {
	out, ok := o[route.DefaultOutlet]
	return out, ok
}

// State is one published resolution result. A State is replaced
// wholesale by the next completed, still-current resolution; it is
// never merged or patched.
type State[V any] struct {
	// Session identifies the resolution that produced this state.
	// Sessions increase strictly per resolver; publication is
	// last-session-wins.
	Session uint64

	// Path is the path the resolution was requested for.
	Path string

	// Params and Remainder come from the matched route. Both are zero
	// when no route matched.
	Params    route.Params
	Remainder string

	// Outlets is the resolved view map, nil when no route matched or
	// the route's loader failed.
	Outlets Outlets[V]
}

// Reporter receives view-loader failures. The resolver reports and
// clears; it never retries.
type Reporter func(path string, err error)

// Resolver resolves paths against an immutable route table and
// publishes the resulting outlet map. Resolution is asynchronous and
// last-write-wins: a slower, older resolution can never overwrite a
// newer one's result.
type Resolver[V any] struct {
	table  *route.Table[V]
	state  *reactive.Signal[State[V]]
	report Reporter
	logger *slog.Logger
	obs    []Observer

	mu      sync.Mutex
	session uint64
	cancel  context.CancelFunc
	closed  bool
}

// Option configures a Resolver.
type Option[V any] func(*Resolver[V])

// WithLogger sets the resolver's logger.
func WithLogger[V any](logger *slog.Logger) Option[V] {
	return func(r *Resolver[V]) {
		r.logger = logger
	}
}

// WithReporter sets the diagnostic sink for loader failures.
// The default reporter logs at Error level.
func WithReporter[V any](report Reporter) Option[V] {
	return func(r *Resolver[V]) {
		r.report = report
	}
}

// WithObserver attaches a session observer (metrics, tracing).
func WithObserver[V any](obs Observer) Option[V] {
	return func(r *Resolver[V]) {
		r.obs = append(r.obs, obs)
	}
}

// New creates a resolver over the given table.
func New[V any](table *route.Table[V], opts ...Option[V]) *Resolver[V] {
	r := &Resolver[V]{
		table: table,
		state: reactive.NewSignal(State[V]{}),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.logger == nil {
		r.logger = slog.Default().With("component", "resolver")
	}
	if r.report == nil {
		r.report = func(path string, err error) {
			r.logger.Error("view load failed", "path", path, "err", err)
		}
	}
	return r
}

// State returns the resolver's published-state signal. Subscribers
// receive the current state immediately and every publication after.
func (r *Resolver[V]) State() *reactive.Signal[State[V]] {
	return r.state
}

// Current returns the last published state.
func (r *Resolver[V]) Current() State[V] {
	return r.state.Get()
}

// Subscribe registers fn on the state signal.
func (r *Resolver[V]) Subscribe(fn func(State[V])) (unsubscribe func()) {
	return r.state.Subscribe(fn)
}

// Logger returns the resolver's logger.
func (r *Resolver[V]) Logger() *slog.Logger {
	return r.logger
}

// Resolve starts a resolution session for path and returns without
// waiting for it. The new session becomes current immediately,
// superseding any in-flight session: the superseded loader's context
// is cancelled and its result, should it still arrive, is discarded.
//
// A path with no matching route publishes an empty state synchronously.
func (r *Resolver[V]) Resolve(path string) {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return
	}
	r.session++
	sid := r.session
	if r.cancel != nil {
		r.cancel()
	}
	ctx, cancel := context.WithCancel(context.Background())
	r.cancel = cancel
	r.mu.Unlock()

	ctx, finish := r.observeBegin(ctx, path)

	entry, _, ok := r.table.Match(path)
	if !ok {
		// Nothing to load and nothing in flight for this session:
		// clear synchronously. The monotonic publish guard still
		// applies, so a concurrent newer session is never clobbered.
		cancel()
		r.publish(State[V]{Session: sid, Path: path})
		finish(Result{Outcome: OutcomeNone})
		return
	}

	go func() {
		views, err := entry.Load(ctx)
		if err != nil {
			r.report(path, err)
			if r.current(sid) {
				r.publish(State[V]{Session: sid, Path: path})
				finish(Result{Outcome: OutcomeError, Route: entry.Pattern().String(), Err: err})
			} else {
				finish(Result{Outcome: OutcomeStale, Route: entry.Pattern().String(), Err: err})
			}
			return
		}

		if !r.current(sid) {
			finish(Result{Outcome: OutcomeStale, Route: entry.Pattern().String()})
			return
		}

		// Re-extract against the path captured at call time. The
		// session may be old yet still current; what must never leak
		// in is a different session's path.
		m, matched := entry.Pattern().Match(path)
		if !matched {
			// Table and pattern are immutable, so a re-match of a
			// previously matched path cannot fail.
			panic("resolver: re-extraction failed for " + path)
		}

		params := entry.Params(m)
		outlets := make(Outlets[V], len(views))
		for name, view := range views {
			outlets[name] = Outlet[V]{View: view, Params: params, Remainder: m.Remainder}
		}
		r.publish(State[V]{
			Session:   sid,
			Path:      path,
			Params:    params,
			Remainder: m.Remainder,
			Outlets:   outlets,
		})
		finish(Result{Outcome: OutcomeMatch, Route: entry.Pattern().String()})
	}()
}

// Close tears the resolver down: the in-flight session, if any, is
// cancelled and no further publication occurs. Resolve becomes a no-op.
func (r *Resolver[V]) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return
	}
	r.closed = true
	// Bump the session so any in-flight completion fails the currency
	// check even before it observes the context cancellation.
	r.session++
	if r.cancel != nil {
		r.cancel()
		r.cancel = nil
	}
}

// current reports whether sid is still the resolver's newest session.
func (r *Resolver[V]) current(sid uint64) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return !r.closed && sid == r.session
}

// publish stores a state if it is not older than the published one.
// The check runs inside the signal's atomic update, which closes the
// window between the currency check and the store: even if a newer
// session publishes in between, the older state is discarded here.
func (r *Resolver[V]) publish(next State[V]) {
	r.state.Update(func(cur State[V]) State[V] {
		if cur.Session > next.Session {
			return cur
		}
		return next
	})
}
