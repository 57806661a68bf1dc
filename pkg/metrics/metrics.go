// Package metrics exposes runtime statistics as Prometheus collectors.
//
// Metrics collected:
//   - vela_flushes_total: Counter of outermost flushes by status
//   - vela_flush_duration_seconds: Histogram of flush duration
//   - vela_components_updated_total: Counter of component update steps
//   - vela_hydration_claims_total: Counter of claims by result
//   - vela_hydration_moves_total: Counter of nodes moved by reordering
//   - vela_active_animations: Gauge of running CSS animations
//   - vela_outro_groups_open: Gauge of open outro groups
//
// Example:
//
//	reg := prometheus.NewRegistry()
//	m := metrics.New(metrics.WithRegistry(reg))
//	rt := vela.NewRuntime(h, vela.WithMetrics(m))
//	http.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/vango-dev/vela/pkg/scheduler"
)

// Config configures the collectors.
type Config struct {
	// Namespace is the metrics namespace (default: "vela").
	Namespace string

	// Subsystem is the metrics subsystem (default: "").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Buckets are the histogram buckets for flush duration.
	Buckets []float64

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer
}

// Option configures the collectors.
type Option func(*Config)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) Option {
	return func(c *Config) {
		if namespace != "" {
			c.Namespace = namespace
		}
	}
}

// WithSubsystem sets the metrics subsystem.
func WithSubsystem(subsystem string) Option {
	return func(c *Config) { c.Subsystem = subsystem }
}

// WithConstLabels sets constant labels for all metrics.
func WithConstLabels(labels prometheus.Labels) Option {
	return func(c *Config) { c.ConstLabels = labels }
}

// WithBuckets sets the flush duration histogram buckets.
func WithBuckets(buckets []float64) Option {
	return func(c *Config) { c.Buckets = buckets }
}

// WithRegistry sets the Prometheus registry.
func WithRegistry(registry prometheus.Registerer) Option {
	return func(c *Config) { c.Registry = registry }
}

func defaultConfig() Config {
	return Config{
		Namespace: "vela",
		// Flushes are synchronous and usually well under a millisecond.
		Buckets:  []float64{.00005, .0001, .00025, .0005, .001, .0025, .005, .01, .025, .05, .1},
		Registry: prometheus.DefaultRegisterer,
	}
}

// Metrics holds the runtime collectors. It implements the observer
// interfaces of the scheduler, hydrate and transition packages.
type Metrics struct {
	flushes          *prometheus.CounterVec
	flushDuration    prometheus.Histogram
	componentsUpdate prometheus.Counter
	claims           *prometheus.CounterVec
	moves            prometheus.Counter
	animations       prometheus.Gauge
	outroGroups      prometheus.Gauge
}

// New creates and registers the collectors.
func New(opts ...Option) *Metrics {
	config := defaultConfig()
	for _, opt := range opts {
		opt(&config)
	}
	factory := promauto.With(config.Registry)

	return &Metrics{
		flushes: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "flushes_total",
			Help:        "Total number of scheduler flushes",
			ConstLabels: config.ConstLabels,
		}, []string{"status"}),

		flushDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "flush_duration_seconds",
			Help:        "Scheduler flush duration in seconds",
			ConstLabels: config.ConstLabels,
			Buckets:     config.Buckets,
		}),

		componentsUpdate: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "components_updated_total",
			Help:        "Total number of component update steps",
			ConstLabels: config.ConstLabels,
		}),

		claims: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "hydration_claims_total",
			Help:        "Total hydration claims by result",
			ConstLabels: config.ConstLabels,
		}, []string{"result"}),

		moves: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "hydration_moves_total",
			Help:        "Total nodes moved while reordering hydrated containers",
			ConstLabels: config.ConstLabels,
		}),

		animations: factory.NewGauge(prometheus.GaugeOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "active_animations",
			Help:        "Number of running CSS keyframe animations",
			ConstLabels: config.ConstLabels,
		}),

		outroGroups: factory.NewGauge(prometheus.GaugeOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "outro_groups_open",
			Help:        "Number of open outro groups",
			ConstLabels: config.ConstLabels,
		}),
	}
}

// FlushCompleted records a finished flush.
func (m *Metrics) FlushCompleted(s scheduler.FlushStats) {
	status := "success"
	if s.Err != nil {
		status = "error"
	}
	m.flushes.WithLabelValues(status).Inc()
	m.flushDuration.Observe(s.Duration.Seconds())
	m.componentsUpdate.Add(float64(s.Updated))
}

// Claimed records a hydration claim.
func (m *Metrics) Claimed(result string) {
	m.claims.WithLabelValues(result).Inc()
}

// Reordered records reorder moves.
func (m *Metrics) Reordered(moves int) {
	m.moves.Add(float64(moves))
}

// AnimationsActive sets the running animation gauge.
func (m *Metrics) AnimationsActive(n int) {
	m.animations.Set(float64(n))
}

// OutroGroupsOpen sets the open outro group gauge.
func (m *Metrics) OutroGroupsOpen(n int) {
	m.outroGroups.Set(float64(n))
}
