package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP Metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameHTTPRequestsTotal,
			Help: HelpTextHTTPRequestsTotal,
		},
		[]string{LabelMethod, LabelPath, LabelStatus},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricNameHTTPRequestDuration,
			Help:    HelpTextHTTPRequestDuration,
			Buckets: HTTPLatencyBuckets,
		},
		[]string{LabelMethod, LabelPath},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameHTTPRequestsInFlight,
			Help: HelpTextHTTPRequestsInFlight,
		},
	)
)

// Planner Metrics
var (
	PlansComputed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNamePlansComputed,
			Help: HelpTextPlansComputed,
		},
		[]string{LabelKind},
	)

	UpgradeSteps = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameUpgradeSteps,
			Help: HelpTextUpgradeSteps,
		},
	)

	TransitionsApplied = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameTransitionsApplied,
			Help: HelpTextTransitionsApplied,
		},
		[]string{LabelOperation},
	)

	TransitionsRejected = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameTransitionsRejected,
			Help: HelpTextTransitionsRejected,
		},
		[]string{LabelOperation},
	)
)

// Storage Metrics
var (
	PersistenceFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNamePersistenceFailures,
			Help: HelpTextPersistenceFailures,
		},
		[]string{LabelOperation},
	)

	StateDecodeFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameStateDecodeFailures,
			Help: HelpTextStateDecodeFailures,
		},
		[]string{LabelSource},
	)

	StateCacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameStateCacheLookups,
			Help: HelpTextStateCacheLookups,
		},
		[]string{LabelResult},
	)
)
