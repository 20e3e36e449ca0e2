package telemetry

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/wayfind-dev/wayfind/pkg/resolver"
)

// Default tracer name for wayfind applications.
const defaultTracerName = "wayfind"

// TraceConfig configures the OpenTelemetry resolution observer.
type TraceConfig struct {
	// TracerName is the name of the tracer (default: "wayfind").
	TracerName string

	// Filter determines which paths to trace. Return true to trace.
	// If nil, all resolutions are traced.
	Filter func(path string) bool

	// AttributeExtractor extracts custom attributes per session.
	AttributeExtractor func(path string) []attribute.KeyValue

	// tracer is the resolved tracer instance.
	tracer trace.Tracer
}

// TraceOption configures the OpenTelemetry resolution observer.
type TraceOption func(*TraceConfig)

// WithTracerName sets the tracer name.
func WithTracerName(name string) TraceOption {
	return func(c *TraceConfig) {
		c.TracerName = name
	}
}

// WithPathFilter sets a filter for which paths get traced.
func WithPathFilter(filter func(path string) bool) TraceOption {
	return func(c *TraceConfig) {
		c.Filter = filter
	}
}

// WithAttributeExtractor sets a custom attribute extractor.
func WithAttributeExtractor(extractor func(path string) []attribute.KeyValue) TraceOption {
	return func(c *TraceConfig) {
		c.AttributeExtractor = extractor
	}
}

// TraceObserver records one span per resolution session.
type TraceObserver struct {
	config TraceConfig
}

// Trace creates an OpenTelemetry observer for resolver sessions.
// Spans are named "resolve" and carry the requested path, the matched
// route pattern, and the session outcome. Loader failures set the span
// status to Error.
func Trace(opts ...TraceOption) *TraceObserver {
	config := TraceConfig{TracerName: defaultTracerName}
	for _, opt := range opts {
		opt(&config)
	}
	config.tracer = otel.Tracer(config.TracerName)
	return &TraceObserver{config: config}
}

// ResolveBegin implements resolver.Observer.
func (t *TraceObserver) ResolveBegin(ctx context.Context, path string) (context.Context, func(resolver.Result)) {
	if t.config.Filter != nil && !t.config.Filter(path) {
		return ctx, func(resolver.Result) {}
	}

	attrs := []attribute.KeyValue{
		attribute.String("wayfind.path", path),
	}
	if t.config.AttributeExtractor != nil {
		attrs = append(attrs, t.config.AttributeExtractor(path)...)
	}

	ctx, span := t.config.tracer.Start(ctx, "resolve",
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(attrs...),
	)

	return ctx, func(res resolver.Result) {
		span.SetAttributes(
			attribute.String("wayfind.outcome", string(res.Outcome)),
			attribute.String("wayfind.route", res.Route),
		)
		if res.Err != nil {
			span.RecordError(res.Err)
			span.SetStatus(codes.Error, res.Err.Error())
		} else {
			span.SetStatus(codes.Ok, "")
		}
		span.End()
	}
}
