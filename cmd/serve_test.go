package cmd

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/ivmanto/site/internal/telemetry"
)

// drainingServer mimics http.Server: Start returns ErrServerClosed as soon as
// Shutdown begins, while Shutdown itself keeps running a draining handler.
type drainingServer struct {
	layer    *telemetry.DataLayer
	stopping chan struct{}
	drained  chan struct{}
	startErr error
}

func (s *drainingServer) Start() error {
	if s.startErr != nil {
		return s.startErr
	}
	<-s.stopping
	return http.ErrServerClosed
}

func (s *drainingServer) Shutdown(ctx context.Context) error {
	close(s.stopping)
	time.Sleep(50 * time.Millisecond)
	s.layer.Record(ctx, telemetry.PageViewEvent, map[string]any{"page_path": "/blog"})
	close(s.drained)
	return nil
}

type countingSink struct {
	mu     sync.Mutex
	events []telemetry.Event
}

func (s *countingSink) Name() string { return "counting" }

func (s *countingSink) Publish(ctx context.Context, e telemetry.Event) error {
	time.Sleep(20 * time.Millisecond)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, e)
	return nil
}

func (s *countingSink) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.events)
}

func TestServeUntilDoneDrainsBeforeReturning(t *testing.T) {
	sink := &countingSink{}
	layer := telemetry.NewDataLayer(nil, sink)
	layer.Initialize()
	srv := &drainingServer{layer: layer, stopping: make(chan struct{}), drained: make(chan struct{})}

	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	if err := serveUntilDone(ctx, srv, layer, nil); err != nil {
		t.Fatalf("serveUntilDone: %v", err)
	}

	select {
	case <-srv.drained:
	default:
		t.Fatal("returned before the draining handler finished")
	}
	if n := sink.count(); n != 1 {
		t.Errorf("expected the drained request's event to be published, got %d", n)
	}

	layer.Record(t.Context(), telemetry.PageViewEvent, nil)
	layer.Wait()
	if n := sink.count(); n != 1 {
		t.Errorf("events after shutdown must be dropped, got %d published", n)
	}
}

func TestServeUntilDoneReturnsListenError(t *testing.T) {
	layer := telemetry.NewDataLayer(nil)
	listenErr := errors.New("address already in use")
	srv := &drainingServer{layer: layer, startErr: listenErr}

	if err := serveUntilDone(t.Context(), srv, layer, nil); !errors.Is(err, listenErr) {
		t.Errorf("expected the listen error, got %v", err)
	}
}
