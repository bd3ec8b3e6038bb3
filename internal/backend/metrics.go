package backend

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// backendRequests counts backend calls.
// Labels: op (fetch_articles, fetch_article, generate_ideas), outcome (ok, not_found, error)
var backendRequests = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "ivmanto",
	Subsystem: "backend",
	Name:      "requests_total",
	Help:      "Total calls to the internal backend by operation and outcome",
}, []string{"op", "outcome"})
