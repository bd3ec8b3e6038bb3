package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

const (
	googleAPIBaseURL = "https://generativelanguage.googleapis.com/v1beta/models"
	jsonMIMEType     = "application/json"
)

// GoogleProvider implements Completer using the Google Gemini API via direct HTTP.
// Calls are single-shot: no retry, no streaming.
type GoogleProvider struct {
	apiKey  string
	model   string
	baseURL string
	client  *http.Client
	logger  *slog.Logger
}

// NewGoogleProvider creates a new Google Gemini provider. An empty apiKey is
// accepted; every call then fails with ErrNotConfigured before any network
// traffic.
func NewGoogleProvider(apiKey, model, baseURL string, logger *slog.Logger) *GoogleProvider {
	if baseURL == "" {
		baseURL = googleAPIBaseURL
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &GoogleProvider{
		apiKey:  apiKey,
		model:   model,
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: 60 * time.Second},
		logger:  logger.With("service", "gemini"),
	}
}

func (p *GoogleProvider) Name() string {
	return "google"
}

// Complete returns the text of the first candidate.
func (p *GoogleProvider) Complete(ctx context.Context, prompt string) (string, error) {
	return p.generate(ctx, prompt, nil, "text")
}

// CompleteStructured requests application/json output and decodes it into
// out. Text that does not parse yields ErrInvalidJSON, which is distinct from
// the transport error ErrUnavailable.
func (p *GoogleProvider) CompleteStructured(ctx context.Context, prompt string, schema any, out any) error {
	text, err := p.generate(ctx, prompt, &geminiGenerationConfig{
		ResponseMIMEType: jsonMIMEType,
		ResponseSchema:   schema,
	}, "json")
	if err != nil {
		return err
	}

	if err := json.Unmarshal([]byte(cleanJSON(text)), out); err != nil {
		p.logger.Error("Failed to parse JSON response from AI", "reason", err, "text", text)
		geminiRequests.WithLabelValues("json", "invalid_json").Inc()
		return &Error{Kind: ErrInvalidJSON, Reason: err.Error()}
	}
	return nil
}

func (p *GoogleProvider) generate(ctx context.Context, prompt string, genCfg *geminiGenerationConfig, mode string) (string, error) {
	if p.apiKey == "" {
		p.logger.Error("Gemini API key is not configured. Set gemini.api_key or GEMINI_API_KEY.")
		geminiRequests.WithLabelValues(mode, "not_configured").Inc()
		return "", &Error{Kind: ErrNotConfigured}
	}

	start := time.Now()
	defer func() {
		geminiLatency.WithLabelValues(mode).Observe(time.Since(start).Seconds())
	}()

	apiReq := geminiRequest{
		Contents: []geminiContent{{
			Role:  "user",
			Parts: []geminiPart{{Text: prompt}},
		}},
		GenerationConfig: genCfg,
	}

	body, err := json.Marshal(apiReq)
	if err != nil {
		return "", fmt.Errorf("failed to marshal gemini request: %w", err)
	}

	url := fmt.Sprintf("%s/%s:generateContent?key=%s", p.baseURL, p.model, p.apiKey)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	httpResp, err := p.client.Do(httpReq)
	if err != nil {
		// The URL carries the key; log the model instead of the error's URL.
		p.logger.Error("gemini request failed", "model", p.model, "error", redactKey(err.Error(), p.apiKey))
		geminiRequests.WithLabelValues(mode, "unavailable").Inc()
		return "", &Error{Kind: ErrUnavailable}
	}
	defer httpResp.Body.Close()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		p.logger.Error("failed to read gemini response", "error", err)
		geminiRequests.WithLabelValues(mode, "unavailable").Inc()
		return "", &Error{Kind: ErrUnavailable}
	}

	if httpResp.StatusCode < 200 || httpResp.StatusCode > 299 {
		p.logger.Error("API Error Body", "status", httpResp.StatusCode, "body", string(respBody))
		geminiRequests.WithLabelValues(mode, "unavailable").Inc()
		return "", &Error{Kind: ErrUnavailable, Status: httpResp.StatusCode}
	}

	var apiResp geminiResponse
	if err := json.Unmarshal(respBody, &apiResp); err != nil {
		p.logger.Error("failed to unmarshal gemini response", "error", err)
		geminiRequests.WithLabelValues(mode, "invalid_response").Inc()
		return "", &Error{Kind: ErrInvalidResponse}
	}

	if apiResp.Error != nil {
		p.logger.Error("gemini API error", "status", apiResp.Error.Status, "message", apiResp.Error.Message)
		geminiRequests.WithLabelValues(mode, "unavailable").Inc()
		return "", &Error{Kind: ErrUnavailable, Status: apiResp.Error.Code}
	}

	text, ok := apiResp.firstText()
	if !ok {
		p.logger.Error("gemini response has no candidate text", "body", string(respBody))
		geminiRequests.WithLabelValues(mode, "invalid_response").Inc()
		return "", &Error{Kind: ErrInvalidResponse}
	}

	geminiRequests.WithLabelValues(mode, "ok").Inc()
	return text, nil
}

// cleanJSON removes a markdown code fence wrapped around a JSON payload.
func cleanJSON(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimPrefix(s, "```")
		s = strings.TrimSuffix(s, "```")
	}
	return strings.TrimSpace(s)
}

func redactKey(s, key string) string {
	if key == "" {
		return s
	}
	return strings.ReplaceAll(s, key, "REDACTED")
}
