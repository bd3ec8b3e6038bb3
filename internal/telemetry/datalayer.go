// Package telemetry implements consent-gated analytics: the visitor consent
// cookie, a process-wide data layer of structured events, Google Analytics
// session identifiers, and the sinks events are shipped to.
package telemetry

import (
	"context"
	"log/slog"
	"maps"
	"sync"
	"time"

	"github.com/google/uuid"
)

// maxBufferedEvents bounds the in-memory queue. Sinks see every event.
const maxBufferedEvents = 1000

// Event is one structured record pushed to the data layer.
type Event struct {
	ID        string         `json:"id"`
	Name      string         `json:"event"`
	Params    map[string]any `json:"params,omitempty"`
	Timestamp time.Time      `json:"timestamp"`
}

// Param returns the string value of a parameter, or "" when it is absent or
// not a string.
func (e Event) Param(key string) string {
	s, _ := e.Params[key].(string)
	return s
}

// Sink receives every event recorded after initialization.
type Sink interface {
	Name() string
	Publish(ctx context.Context, e Event) error
}

// DataLayer is the process-wide event queue. It is created once at startup
// and shared by every handler; it stays inert until Initialize is called,
// which happens the first time a consenting visitor is seen.
type DataLayer struct {
	mu          sync.Mutex
	initialized bool
	closed      bool
	events      []Event
	sinks       []Sink
	logger      *slog.Logger
	wg          sync.WaitGroup
	now         func() time.Time
}

// NewDataLayer creates an uninitialized data layer.
func NewDataLayer(logger *slog.Logger, sinks ...Sink) *DataLayer {
	if logger == nil {
		logger = slog.Default()
	}
	return &DataLayer{
		sinks:  sinks,
		logger: logger.With("service", "datalayer"),
		now:    time.Now,
	}
}

// Initialize enables recording. Only the first call has an effect; it
// reports whether this call performed the initialization.
func (d *DataLayer) Initialize() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.initialized {
		return false
	}
	d.initialized = true
	d.logger.Info("Cookie consent is \"accepted\". Data layer initialized.")
	return true
}

// Initialized reports whether Initialize has been called.
func (d *DataLayer) Initialized() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.initialized
}

// Record appends an event. Before initialization it only logs a warning and
// leaves the queue untouched. It never fails: sink errors are logged.
func (d *DataLayer) Record(ctx context.Context, name string, params map[string]any) {
	d.mu.Lock()
	if !d.initialized {
		d.mu.Unlock()
		d.logger.Warn("data layer not initialized, dropping event", "event", name)
		eventsRecorded.WithLabelValues(eventLabel(name), "dropped").Inc()
		return
	}
	if d.closed {
		d.mu.Unlock()
		d.logger.Warn("data layer closed, dropping event", "event", name)
		eventsRecorded.WithLabelValues(eventLabel(name), "dropped").Inc()
		return
	}

	e := Event{
		ID:        uuid.New().String(),
		Name:      name,
		Params:    maps.Clone(params),
		Timestamp: d.now().UTC(),
	}
	d.events = append(d.events, e)
	if over := len(d.events) - maxBufferedEvents; over > 0 {
		d.events = append(d.events[:0:0], d.events[over:]...)
	}
	sinks := d.sinks
	if len(sinks) > 0 {
		// Counted under mu: Close sees every publish started before it.
		d.wg.Add(1)
	}
	d.mu.Unlock()

	eventsRecorded.WithLabelValues(eventLabel(name), "recorded").Inc()

	if len(sinks) == 0 {
		return
	}
	// The request that produced the event may finish first.
	ctx = context.WithoutCancel(ctx)
	go func() {
		defer d.wg.Done()
		for _, s := range sinks {
			if err := s.Publish(ctx, e); err != nil {
				d.logger.Error("telemetry sink failed", "sink", s.Name(), "event", e.Name, "error", err)
				sinkErrors.WithLabelValues(s.Name()).Inc()
			}
		}
	}()
}

// Events returns a snapshot of the queue, oldest first.
func (d *DataLayer) Events() []Event {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]Event, len(d.events))
	copy(out, d.events)
	return out
}

// Wait blocks until events already handed to sinks have been published.
func (d *DataLayer) Wait() {
	d.wg.Wait()
}

// Close stops recording and waits for pending sink publishes. Events
// recorded afterwards are dropped.
func (d *DataLayer) Close() {
	d.mu.Lock()
	d.closed = true
	d.mu.Unlock()
	d.wg.Wait()
}
