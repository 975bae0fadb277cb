package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	generationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "brandkit_generations_total",
			Help: "Image generation requests by provider and outcome.",
		},
		[]string{"provider", "outcome"},
	)

	generationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "brandkit_generation_duration_seconds",
			Help:    "Time spent generating and branding one image.",
			Buckets: prometheus.ExponentialBuckets(0.5, 2, 10),
		},
	)

	chatMessagesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "brandkit_chat_messages_total",
			Help: "Chat messages processed across HTTP and WebSocket.",
		},
	)

	wsConnectionsActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "brandkit_ws_connections_active",
			Help: "Open WebSocket chat connections.",
		},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "brandkit_http_request_duration_seconds",
			Help:    "HTTP request latency by route.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route", "method", "code"},
	)
)
