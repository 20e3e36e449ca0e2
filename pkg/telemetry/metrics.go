package telemetry

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/wayfind-dev/wayfind/pkg/resolver"
)

// MetricsConfig configures the Prometheus resolution observer.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default: "wayfind").
	Namespace string

	// Subsystem is the metrics subsystem (default: "").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Buckets are the histogram buckets for resolution duration.
	// Default: prometheus.DefBuckets
	Buckets []float64

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer
}

// MetricsOption configures the Prometheus resolution observer.
type MetricsOption func(*MetricsConfig)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Namespace = namespace
	}
}

// WithSubsystem sets the metrics subsystem.
func WithSubsystem(subsystem string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Subsystem = subsystem
	}
}

// WithConstLabels sets constant labels for all metrics.
func WithConstLabels(labels prometheus.Labels) MetricsOption {
	return func(c *MetricsConfig) {
		c.ConstLabels = labels
	}
}

// WithBuckets sets the duration histogram buckets.
func WithBuckets(buckets []float64) MetricsOption {
	return func(c *MetricsConfig) {
		c.Buckets = buckets
	}
}

// WithRegistry sets the Prometheus registry.
func WithRegistry(registry prometheus.Registerer) MetricsOption {
	return func(c *MetricsConfig) {
		c.Registry = registry
	}
}

func defaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		Namespace: "wayfind",
		Buckets:   prometheus.DefBuckets,
		Registry:  prometheus.DefaultRegisterer,
	}
}

// MetricsObserver records resolution sessions as Prometheus metrics.
type MetricsObserver struct {
	resolutionsTotal   *prometheus.CounterVec
	resolutionDuration *prometheus.HistogramVec
	inFlight           prometheus.Gauge
}

// Metrics creates a Prometheus observer for resolver sessions.
//
// Metrics exposed:
//   - {ns}_resolutions_total{outcome,route}
//   - {ns}_resolution_duration_seconds{outcome}
//   - {ns}_resolutions_in_flight
func Metrics(opts ...MetricsOption) *MetricsObserver {
	config := defaultMetricsConfig()
	for _, opt := range opts {
		opt(&config)
	}

	factory := promauto.With(config.Registry)
	return &MetricsObserver{
		resolutionsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "resolutions_total",
			Help:        "Total number of resolution sessions by outcome",
			ConstLabels: config.ConstLabels,
		}, []string{"outcome", "route"}),

		resolutionDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "resolution_duration_seconds",
			Help:        "Resolution session duration in seconds",
			ConstLabels: config.ConstLabels,
			Buckets:     config.Buckets,
		}, []string{"outcome"}),

		inFlight: factory.NewGauge(prometheus.GaugeOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "resolutions_in_flight",
			Help:        "Resolution sessions currently in flight",
			ConstLabels: config.ConstLabels,
		}),
	}
}

// ResolveBegin implements resolver.Observer.
func (m *MetricsObserver) ResolveBegin(ctx context.Context, path string) (context.Context, func(resolver.Result)) {
	start := time.Now()
	m.inFlight.Inc()

	return ctx, func(res resolver.Result) {
		m.inFlight.Dec()
		// Label by route pattern, not raw path, to keep cardinality
		// bounded by the table size.
		m.resolutionsTotal.WithLabelValues(string(res.Outcome), res.Route).Inc()
		m.resolutionDuration.WithLabelValues(string(res.Outcome)).Observe(time.Since(start).Seconds())
	}
}
