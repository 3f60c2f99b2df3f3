package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Chat-API Metrics
var (
	// Messages written, counting only fully fanned-out sends.
	MessagesSentTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "messenger",
			Subsystem: "chat_api",
			Name:      "messages_sent_total",
			Help:      "Total messages created",
		},
	)

	// Send fan-out duration (identity resolve + message insert + two index upserts).
	SendFanoutDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "messenger",
			Subsystem: "chat_api",
			Name:      "send_fanout_duration_seconds",
			Help:      "Duration of the full message write sequence",
			Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
	)

	// Conversation identity creations by mode (cas/plain) and outcome
	// (created/adopted).
	ConversationCreatesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "messenger",
			Subsystem: "chat_api",
			Name:      "conversation_creates_total",
			Help:      "Conversation identity mappings written",
		},
		[]string{"mode", "outcome"},
	)

	// Paged read duration per table.
	PagedReadDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "messenger",
			Subsystem: "chat_api",
			Name:      "paged_read_duration_seconds",
			Help:      "Duration of paged partition reads",
			Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
		[]string{"table"},
	)

	// Storage statement failures by statement label.
	QueryErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "messenger",
			Subsystem: "chat_api",
			Name:      "query_errors_total",
			Help:      "Cassandra statement failures",
		},
		[]string{"statement"},
	)
)
