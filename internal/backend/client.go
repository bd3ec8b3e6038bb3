// Package backend is the client of the site's internal HTTP backend: the
// article endpoints and the idea-generation proxy.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/ivmanto/site/internal/content"
)

var (
	// ErrNotFound is returned by GetArticle on a 404. It is an absent result,
	// not a failure.
	ErrNotFound = errors.New("not found")

	// ErrIdeasUnavailable is the only error GenerateIdeas returns. The cause
	// is logged, never surfaced.
	ErrIdeasUnavailable = errors.New("Failed to generate ideas. Please try again later.")
)

// StatusError reports a non-2xx answer from the backend.
type StatusError struct {
	Op     string
	Status int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("Failed to %s: %d", e.Op, e.Status)
}

// Idea is one generated blog idea.
type Idea struct {
	Title   string `json:"title"`
	Summary string `json:"summary"`
}

// Client talks to the backend over HTTP. Calls are single-shot: no retry.
type Client struct {
	baseURL string
	client  *http.Client
	logger  *slog.Logger
}

// NewClient creates a client for the backend rooted at baseURL.
func NewClient(baseURL string, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: 30 * time.Second},
		logger:  logger.With("service", "backend_client"),
	}
}

// ListArticles fetches GET /api/articles.
func (c *Client) ListArticles(ctx context.Context) ([]content.ArticleMeta, error) {
	var out []content.ArticleMeta
	if err := c.getJSON(ctx, "/api/articles", "fetch articles", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetArticle fetches GET /api/articles/{slug}. A 404 yields ErrNotFound.
func (c *Client) GetArticle(ctx context.Context, slug string) (*content.Article, error) {
	var out content.Article
	if err := c.getJSON(ctx, "/api/articles/"+url.PathEscape(slug), "fetch article", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GenerateIdeas posts {topic} to /api/generate-ideas. Every failure is
// translated to ErrIdeasUnavailable.
func (c *Client) GenerateIdeas(ctx context.Context, topic string) ([]Idea, error) {
	ideas, err := c.generateIdeas(ctx, topic)
	if err != nil {
		backendRequests.WithLabelValues("generate_ideas", "error").Inc()
		c.logger.Error("API Error in GenerateIdeas", "topic", topic, "error", err)
		return nil, ErrIdeasUnavailable
	}
	backendRequests.WithLabelValues("generate_ideas", "ok").Inc()
	return ideas, nil
}

func (c *Client) generateIdeas(ctx context.Context, topic string) ([]Idea, error) {
	body, err := json.Marshal(map[string]string{"topic": topic})
	if err != nil {
		return nil, fmt.Errorf("marshalling ideas request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/generate-ideas", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("ideas request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{Op: "generate ideas", Status: resp.StatusCode}
	}

	var ideas []Idea
	if err := json.NewDecoder(resp.Body).Decode(&ideas); err != nil {
		return nil, fmt.Errorf("decoding ideas: %w", err)
	}
	return ideas, nil
}

func (c *Client) getJSON(ctx context.Context, path, op string, out any) error {
	label := strings.ReplaceAll(op, " ", "_")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		backendRequests.WithLabelValues(label, "error").Inc()
		return fmt.Errorf("Failed to %s: %w", op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		io.Copy(io.Discard, resp.Body)
		backendRequests.WithLabelValues(label, "not_found").Inc()
		return ErrNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, resp.Body)
		backendRequests.WithLabelValues(label, "error").Inc()
		return &StatusError{Op: op, Status: resp.StatusCode}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		backendRequests.WithLabelValues(label, "error").Inc()
		return fmt.Errorf("Failed to %s: decoding response: %w", op, err)
	}
	backendRequests.WithLabelValues(label, "ok").Inc()
	return nil
}
