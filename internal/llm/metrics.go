package llm

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// geminiRequests counts gateway calls.
	// Labels: mode (text, json), outcome (ok, not_configured, unavailable, invalid_response, invalid_json)
	geminiRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "ivmanto",
		Subsystem: "gemini",
		Name:      "requests_total",
		Help:      "Total Gemini generateContent calls by mode and outcome",
	}, []string{"mode", "outcome"})

	// geminiLatency measures round-trip time of calls that reached the network.
	geminiLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "ivmanto",
		Subsystem: "gemini",
		Name:      "latency_seconds",
		Help:      "Gemini generateContent latency in seconds",
		Buckets:   []float64{0.25, 0.5, 1, 2, 5, 10, 20, 30, 60},
	}, []string{"mode"})
)
