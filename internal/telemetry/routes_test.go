package telemetry

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
)

func TestEventsEndpoint(t *testing.T) {
	store := setupStore(t)
	for _, e := range []Event{
		{ID: "a", Name: "page_view", Params: map[string]any{"page_path": "/"}, Timestamp: time.Now()},
		{ID: "b", Name: "generate_ideas", Timestamp: time.Now()},
	} {
		if err := store.Publish(t.Context(), e); err != nil {
			t.Fatalf("Publish: %v", err)
		}
	}

	r := chi.NewRouter()
	RegisterRoutes(r, store, "s3cret")

	req := httptest.NewRequest(http.MethodGet, "/api/telemetry/events?name=page_view", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status without token = %d, want 401", rec.Code)
	}

	req.Header.Set("Authorization", "Bearer s3cret")
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var events []Event
	if err := json.NewDecoder(rec.Body).Decode(&events); err != nil {
		t.Fatalf("decoding: %v", err)
	}
	if len(events) != 1 || events[0].ID != "a" {
		t.Errorf("expected only page_view a, got %+v", events)
	}
}

func TestEventsEndpointDisabledWithoutToken(t *testing.T) {
	r := chi.NewRouter()
	RegisterRoutes(r, setupStore(t), "")

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/telemetry/events", nil))
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestParseSince(t *testing.T) {
	now := time.Date(2024, 3, 2, 12, 0, 0, 0, time.UTC)

	got, err := ParseSince("24h", now)
	if err != nil || !got.Equal(now.Add(-24*time.Hour)) {
		t.Errorf("ParseSince(24h) = %v, %v", got, err)
	}
	got, err = ParseSince("2024-03-01T00:00:00Z", now)
	if err != nil || !got.Equal(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("ParseSince(rfc3339) = %v, %v", got, err)
	}
	if _, err := ParseSince("yesterday", now); err == nil {
		t.Error("expected error for unparseable value")
	}
}
