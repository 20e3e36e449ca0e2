package resolver

import "context"

// Outcome classifies how a resolution session ended.
type Outcome string

const (
	// OutcomeMatch means a route matched and its views were published.
	OutcomeMatch Outcome = "match"

	// OutcomeNone means no route matched; an empty state was published.
	OutcomeNone Outcome = "none"

	// OutcomeError means the matched route's loader failed; the error
	// was reported and an empty state published.
	OutcomeError Outcome = "error"

	// OutcomeStale means the session was superseded before completion
	// and its result discarded.
	OutcomeStale Outcome = "stale"
)

// Result describes a finished resolution session.
type Result struct {
	// Outcome is the session's classification.
	Outcome Outcome

	// Route is the matched pattern text, empty when no route matched.
	Route string

	// Err is the loader error for OutcomeError (and for a stale
	// session that happened to fail).
	Err error
}

// Observer receives resolution-session lifecycle notifications.
// Implementations live in pkg/telemetry; custom observers are welcome.
type Observer interface {
	// ResolveBegin is called when a session starts. The returned
	// context is passed to the route's loader, so observers can attach
	// trace spans. The returned finish function is called exactly once
	// when the session ends, on whichever goroutine it ends on.
	ResolveBegin(ctx context.Context, path string) (context.Context, func(Result))
}

// observeBegin fans ResolveBegin across the attached observers and
// returns a finish function that completes them in reverse order.
func (r *Resolver[V]) observeBegin(ctx context.Context, path string) (context.Context, func(Result)) {
	if len(r.obs) == 0 {
		return ctx, func(Result) {}
	}

	finishers := make([]func(Result), 0, len(r.obs))
	for _, obs := range r.obs {
		var finish func(Result)
		ctx, finish = obs.ResolveBegin(ctx, path)
		finishers = append(finishers, finish)
	}
	return ctx, func(res Result) {
		for i := len(finishers) - 1; i >= 0; i-- {
			finishers[i](res)
		}
	}
}
