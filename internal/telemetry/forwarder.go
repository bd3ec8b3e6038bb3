package telemetry

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"
)

// MeasurementProtocolURL is the GA4 Measurement Protocol collection endpoint.
const MeasurementProtocolURL = "https://www.google-analytics.com/mp/collect"

// Forwarder sends data layer events to the GA4 Measurement Protocol. It is a
// Sink.
type Forwarder struct {
	apiSecret     string
	measurementID string
	endpoint      string
	client        *http.Client
	logger        *slog.Logger
}

// NewForwarder creates a forwarder. Both the API secret and the measurement
// id are required. An empty endpoint selects MeasurementProtocolURL.
func NewForwarder(apiSecret, measurementID, endpoint string, logger *slog.Logger) (*Forwarder, error) {
	if apiSecret == "" {
		return nil, errors.New("analytics API secret is required")
	}
	if measurementID == "" {
		return nil, errors.New("analytics measurement ID is required")
	}
	if endpoint == "" {
		endpoint = MeasurementProtocolURL
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Forwarder{
		apiSecret:     apiSecret,
		measurementID: measurementID,
		endpoint:      endpoint,
		client:        &http.Client{Timeout: 10 * time.Second},
		logger:        logger.With("service", "analytics_forwarder"),
	}, nil
}

func (f *Forwarder) Name() string {
	return "ga4"
}

type mpEvent struct {
	Name   string         `json:"name"`
	Params map[string]any `json:"params"`
}

type mpPayload struct {
	ClientID string    `json:"client_id"`
	Events   []mpEvent `json:"events"`
}

// Publish sends one event. Events without a client id cannot be attributed
// and are skipped with a warning.
func (f *Forwarder) Publish(ctx context.Context, e Event) error {
	clientID := e.Param("client_id")
	if clientID == "" {
		f.logger.Warn("Cannot forward event: ClientID is missing. The event will not be sent.", "event", e.Name)
		return nil
	}

	params := make(map[string]any, len(e.Params)+1)
	for k, v := range e.Params {
		if k == "client_id" || k == "session_id" || v == nil {
			continue
		}
		params[k] = v
	}
	if sessionID := e.Param("session_id"); sessionID != "" {
		params["session_id"] = sessionID
		// engagement_time_msec is required if session_id is provided.
		params["engagement_time_msec"] = "1"
	}

	body, err := json.Marshal(mpPayload{
		ClientID: clientID,
		Events:   []mpEvent{{Name: e.Name, Params: params}},
	})
	if err != nil {
		return fmt.Errorf("marshalling analytics payload: %w", err)
	}

	url := fmt.Sprintf("%s?api_secret=%s&measurement_id=%s", f.endpoint, f.apiSecret, f.measurementID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("creating analytics request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := f.client.Do(req)
	if err != nil {
		// The URL carries the secret.
		return errors.New("sending event to google analytics failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("google analytics returned status %d", resp.StatusCode)
	}

	f.logger.Debug("event forwarded to Google Analytics", "event", e.Name, "client_id_suffix", clientIDSuffix(clientID))
	return nil
}

func clientIDSuffix(id string) string {
	if len(id) > 4 {
		return "..." + id[len(id)-4:]
	}
	return "N/A"
}
