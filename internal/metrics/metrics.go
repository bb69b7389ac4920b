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

// Event Metrics
var (
	EventsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameEventsPublished,
			Help: HelpTextEventsPublished,
		},
		[]string{LabelType},
	)

	EventHandlerErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameEventHandlerErrors,
			Help: HelpTextEventHandlerErrors,
		},
		[]string{LabelType},
	)
)

// Business Metrics
var (
	SpinsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameSpinsTotal,
			Help: HelpTextSpinsTotal,
		},
		[]string{LabelTier},
	)

	TokensAwarded = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameTokensAwarded,
			Help: HelpTextTokensAwarded,
		},
	)

	JackpotsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameJackpotsTotal,
			Help: HelpTextJackpotsTotal,
		},
	)

	TriggersTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameTriggersTotal,
			Help: HelpTextTriggersTotal,
		},
		[]string{LabelKind},
	)

	TriggersRejected = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameTriggersRejected,
			Help: HelpTextTriggersRejected,
		},
		[]string{LabelReason},
	)

	TriggersDropped = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameTriggersDropped,
			Help: HelpTextTriggersDropped,
		},
	)

	SSEClients = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameSSEClientsCurrent,
			Help: HelpTextSSEClientsCurrent,
		},
	)
)
