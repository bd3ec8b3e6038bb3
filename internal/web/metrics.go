package web

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// pageRenders counts rendered views.
// Labels: view (route name), outcome (ok, error)
var pageRenders = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "ivmanto",
	Subsystem: "web",
	Name:      "page_renders_total",
	Help:      "Total page renders by view and outcome",
}, []string{"view", "outcome"})
