package metrics

// ============================================================================
// Metric Names
// ============================================================================

// HTTP metric names
const (
	MetricNameHTTPRequestsTotal    = "http_requests_total"
	MetricNameHTTPRequestDuration  = "http_request_duration_seconds"
	MetricNameHTTPRequestsInFlight = "http_requests_in_flight"
)

// Planner metric names
const (
	MetricNamePlansComputed       = "pisle_plans_computed_total"
	MetricNameUpgradeSteps        = "pisle_upgrade_steps_total"
	MetricNameTransitionsApplied  = "pisle_transitions_applied_total"
	MetricNameTransitionsRejected = "pisle_transitions_rejected_total"
	MetricNamePersistenceFailures = "pisle_persistence_failures_total"
	MetricNameStateDecodeFailures = "pisle_state_decode_failures_total"
	MetricNameStateCacheLookups   = "pisle_state_cache_lookups_total"
)

// ============================================================================
// Metric Help Text
// ============================================================================

// HTTP metric help text
const (
	HelpTextHTTPRequestsTotal    = "Total number of HTTP requests"
	HelpTextHTTPRequestDuration  = "HTTP request latency in seconds"
	HelpTextHTTPRequestsInFlight = "Current number of HTTP requests being served"
)

// Planner metric help text
const (
	HelpTextPlansComputed       = "Total number of plans computed, by plan kind"
	HelpTextUpgradeSteps        = "Total number of simulated habitat upgrades"
	HelpTextTransitionsApplied  = "Total number of state transitions applied, by operation"
	HelpTextTransitionsRejected = "Total number of state transitions rejected, by operation"
	HelpTextPersistenceFailures = "Total number of failed state writes, by backend operation"
	HelpTextStateDecodeFailures = "Total number of stored or imported states that could not be decoded"
	HelpTextStateCacheLookups   = "Total number of state cache lookups, by result"
)

// ============================================================================
// Metric Label Names
// ============================================================================

// Common label names used across metrics
const (
	LabelMethod    = "method"
	LabelPath      = "path"
	LabelStatus    = "status"
	LabelKind      = "kind"
	LabelOperation = "operation"
	LabelSource    = "source"
	LabelResult    = "result"
)

// Plan kinds
const (
	PlanKindUpgrade = "upgrade"
	PlanKindEvolve  = "evolve"
	PlanKindPenguin = "penguin"
)

// Cache lookup results
const (
	CacheResultHit  = "hit"
	CacheResultMiss = "miss"
)

// ============================================================================
// Histogram Buckets
// ============================================================================

// HTTPLatencyBuckets defines the histogram buckets for HTTP request duration
// in seconds, from 1ms to 10s
var HTTPLatencyBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}

// UnmatchedRoute labels requests that did not hit a registered route
const UnmatchedRoute = "unmatched"
