package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// eventsRecorded counts Record calls.
	// Labels: event (see eventLabel), outcome (recorded, dropped)
	eventsRecorded = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "ivmanto",
		Subsystem: "telemetry",
		Name:      "events_total",
		Help:      "Total data layer events by name and outcome",
	}, []string{"event", "outcome"})

	// sinkErrors counts failed sink publishes.
	sinkErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "ivmanto",
		Subsystem: "telemetry",
		Name:      "sink_errors_total",
		Help:      "Total failed event publishes by sink",
	}, []string{"sink"})
)

// eventLabel maps an event name onto a fixed label set. Client-pushed names
// are unbounded and all count as "other".
func eventLabel(name string) string {
	switch name {
	case PageViewEvent, GenerateIdeasEvent, AssistantRequestEvent:
		return name
	}
	return "other"
}
