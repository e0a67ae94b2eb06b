package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	MessagesRouted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chat_messages_routed_total",
			Help: "Total number of chat messages by detected intent",
		},
		[]string{"intent"},
	)

	RepliesSent = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chat_replies_total",
			Help: "Total number of chat replies by outcome",
		},
		[]string{"outcome"},
	)

	UpstreamDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "chat_upstream_request_duration_seconds",
			Help:    "Duration of upstream API requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"api", "status"},
	)
)
