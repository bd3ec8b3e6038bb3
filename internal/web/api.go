package web

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"regexp"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/ivmanto/site/internal/content"
	"github.com/ivmanto/site/internal/llm"
	"github.com/ivmanto/site/internal/routes"
	"github.com/ivmanto/site/internal/seo"
	"github.com/ivmanto/site/internal/telemetry"
)

const maxBodyBytes = 64 << 10

// eventName follows the GA4 event naming rules.
var eventName = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_]{0,39}$`)

type resolveResponse struct {
	routes.Resolution
	Meta seo.Metadata `json:"meta"`
}

// handleResolve exposes the route resolver to the client navigator.
func (s *Site) handleResolve(w http.ResponseWriter, r *http.Request) {
	target := r.URL.Query().Get("path")
	if target == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "path is required"})
		return
	}

	res, err := routes.Resolve(target)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	meta := s.notFoundMeta()
	if !res.NotFound {
		p := target
		if res.Redirect != "" {
			p = res.Redirect
		}
		p, _, _ = strings.Cut(p, "#")
		p, _, _ = strings.Cut(p, "?")
		meta = seo.Resolve(p)
	}
	writeJSON(w, http.StatusOK, resolveResponse{Resolution: res, Meta: meta})
}

// handleListArticles serves GET /api/articles from the accessor cache.
func (s *Site) handleListArticles(w http.ResponseWriter, r *http.Request) {
	s.articles.FetchAll(r.Context())
	list := s.articles.Sorted()
	if len(list) == 0 {
		if msg := s.articles.Err(); msg != "" {
			writeJSON(w, http.StatusBadGateway, map[string]string{"error": msg})
			return
		}
		list = []content.ArticleMeta{}
	}
	writeJSON(w, http.StatusOK, list)
}

func (s *Site) handleGetArticle(w http.ResponseWriter, r *http.Request) {
	article, err := s.articles.Lookup(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		writeJSON(w, http.StatusBadGateway, map[string]string{"error": err.Error()})
		return
	}
	if article == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not found"})
		return
	}
	writeJSON(w, http.StatusOK, article)
}

type ideasRequest struct {
	Topic string `json:"topic"`
}

// handleGenerateIdeas serves POST /api/generate-ideas.
func (s *Site) handleGenerateIdeas(w http.ResponseWriter, r *http.Request) {
	var req ideasRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
		return
	}
	req.Topic = strings.TrimSpace(req.Topic)
	if req.Topic == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Topic cannot be empty"})
		return
	}

	ideas, err := s.generateIdeas(r, req.Topic)
	if err != nil {
		writeJSON(w, http.StatusBadGateway, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, ideas)
}

type assistantRequest struct {
	Prompt string `json:"prompt"`
	JSON   bool   `json:"json"`
	Schema any    `json:"schema,omitempty"`
}

type assistantResponse struct {
	Text  string `json:"text,omitempty"`
	Value any    `json:"value,omitempty"`
}

// handleAssistant proxies a completion to the Gemini gateway. With json set
// the answer is decoded and returned as a value.
func (s *Site) handleAssistant(w http.ResponseWriter, r *http.Request) {
	var req assistantRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
		return
	}
	if strings.TrimSpace(req.Prompt) == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Prompt cannot be empty"})
		return
	}
	if s.assistant == nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": llm.ErrNotConfigured.Error()})
		return
	}

	mode := "text"
	if req.JSON {
		mode = "json"
	}
	s.track(r, telemetry.AssistantRequestEvent, map[string]any{"mode": mode})

	var (
		resp assistantResponse
		err  error
	)
	if req.JSON {
		err = s.assistant.CompleteStructured(r.Context(), req.Prompt, req.Schema, &resp.Value)
	} else {
		resp.Text, err = s.assistant.Complete(r.Context(), req.Prompt)
	}
	if err != nil {
		writeJSON(w, assistantStatus(err), map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// assistantStatus maps gateway errors to HTTP statuses.
func assistantStatus(err error) int {
	switch {
	case errors.Is(err, llm.ErrNotConfigured):
		return http.StatusServiceUnavailable
	case errors.Is(err, llm.ErrUnavailable),
		errors.Is(err, llm.ErrInvalidResponse),
		errors.Is(err, llm.ErrInvalidJSON):
		return http.StatusBadGateway
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

type eventRequest struct {
	Event  string         `json:"event"`
	Params map[string]any `json:"params"`
}

// handleEvent pushes a client-side interaction event. Without consent the
// event is accepted and discarded.
func (s *Site) handleEvent(w http.ResponseWriter, r *http.Request) {
	var req eventRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
		return
	}
	if !eventName.MatchString(req.Event) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid event name"})
		return
	}

	s.track(r, req.Event, req.Params)
	w.WriteHeader(http.StatusNoContent)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
