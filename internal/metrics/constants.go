package metrics

// HTTP metric names
const (
	MetricNameHTTPRequestsTotal    = "http_requests_total"
	MetricNameHTTPRequestDuration  = "http_request_duration_seconds"
	MetricNameHTTPRequestsInFlight = "http_requests_in_flight"
)

// Event metric names
const (
	MetricNameEventsPublished    = "events_published_total"
	MetricNameEventHandlerErrors = "event_handler_errors_total"
)

// Business metric names
const (
	MetricNameSpinsTotal        = "spins_total"
	MetricNameTokensAwarded     = "tokens_awarded_total"
	MetricNameJackpotsTotal     = "jackpots_total"
	MetricNameTriggersTotal     = "chat_triggers_total"
	MetricNameTriggersRejected  = "chat_triggers_rejected_total"
	MetricNameTriggersDropped   = "chat_triggers_dropped_total"
	MetricNameSSEClientsCurrent = "sse_clients_connected"
)

// HTTP metric help text
const (
	HelpTextHTTPRequestsTotal    = "Total number of HTTP requests"
	HelpTextHTTPRequestDuration  = "HTTP request latency in seconds"
	HelpTextHTTPRequestsInFlight = "Current number of HTTP requests being served"
)

// Event metric help text
const (
	HelpTextEventsPublished    = "Total number of events published"
	HelpTextEventHandlerErrors = "Total number of event handler errors"
)

// Business metric help text
const (
	HelpTextSpinsTotal        = "Total number of settled spins by outcome tier"
	HelpTextTokensAwarded     = "Total tokens awarded across all spins"
	HelpTextJackpotsTotal     = "Total number of jackpot-tier spins"
	HelpTextTriggersTotal     = "Total chat triggers received by kind"
	HelpTextTriggersRejected  = "Total triggers rejected by cooldown or in-flight spin"
	HelpTextTriggersDropped   = "Total malformed or unknown triggers dropped"
	HelpTextSSEClientsCurrent = "Current number of connected SSE clients"
)

// Common label names used across metrics
const (
	LabelMethod = "method"
	LabelPath   = "path"
	LabelStatus = "status"
	LabelType   = "type"
	LabelTier   = "tier"
	LabelKind   = "kind"
	LabelReason = "reason"
)

// Rejection reason label values
const (
	ReasonCooldown = "cooldown"
	ReasonInFlight = "in_flight"
)

// HTTPLatencyBuckets defines the histogram buckets for HTTP request duration
// in seconds. These buckets range from 1ms to 10s to capture various latency
// patterns: fast (1-10ms), normal (10-100ms), slow (100ms-1s), very slow (1-10s)
var HTTPLatencyBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}
