// Package telemetry provides resolver observers for Prometheus metrics
// and OpenTelemetry tracing.
//
// Observers attach at construction time:
//
//	r := resolver.New(table,
//		resolver.WithObserver[View](telemetry.Metrics()),
//		resolver.WithObserver[View](telemetry.Trace()),
//	)
//
// A stale session (superseded before its loader completed) is counted
// under its own outcome rather than as an error; wasted loads are a
// normal cost of rapid navigation, not a failure.
package telemetry
