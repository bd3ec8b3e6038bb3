package backend

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL+"/", nil)
}

func TestListArticles(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/articles" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		w.Write([]byte(`[{"slug":"a","title":"A","summary":"s","date":"2024-01-01","published":true}]`))
	})

	got, err := c.ListArticles(t.Context())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 || got[0].Slug != "a" || !got[0].Published {
		t.Errorf("unexpected articles: %+v", got)
	}
}

func TestListArticlesStatusError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	_, err := c.ListArticles(t.Context())
	var se *StatusError
	if !errors.As(err, &se) {
		t.Fatalf("expected StatusError, got %v", err)
	}
	if se.Status != http.StatusBadGateway {
		t.Errorf("expected 502, got %d", se.Status)
	}
	if err.Error() != "Failed to fetch articles: 502" {
		t.Errorf("unexpected message %q", err.Error())
	}
}

func TestGetArticle(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/articles/dama-principles":
			w.Write([]byte(`{"slug":"dama-principles","title":"DAMA","date":"2024-03-01","content":"<p>hi</p>"}`))
		default:
			http.NotFound(w, r)
		}
	})

	a, err := c.GetArticle(t.Context(), "dama-principles")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.Content != "<p>hi</p>" {
		t.Errorf("unexpected content %q", a.Content)
	}

	if _, err := c.GetArticle(t.Context(), "does-not-exist"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestGenerateIdeas(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/generate-ideas" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		var body map[string]string
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("decoding body: %v", err)
		}
		if body["topic"] != "data mesh" {
			t.Errorf("expected topic 'data mesh', got %q", body["topic"])
		}
		w.Write([]byte(`[{"title":"T1","summary":"S1"},{"title":"T2","summary":"S2"}]`))
	})

	ideas, err := c.GenerateIdeas(t.Context(), "data mesh")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(ideas) != 2 || ideas[1].Title != "T2" {
		t.Errorf("unexpected ideas: %+v", ideas)
	}
}

func TestGenerateIdeasTranslatesFailures(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{"server error", func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "vertex exploded", http.StatusInternalServerError)
		}},
		{"bad body", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`not json`))
		}},
	}
	for _, tt := range tests {
		c := newTestClient(t, tt.handler)
		_, err := c.GenerateIdeas(t.Context(), "x")
		if err != ErrIdeasUnavailable {
			t.Errorf("%s: expected ErrIdeasUnavailable, got %v", tt.name, err)
		}
	}
}

func TestGenerateIdeasTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c := NewClient(url, nil)
	if _, err := c.GenerateIdeas(t.Context(), "x"); err != ErrIdeasUnavailable {
		t.Errorf("expected ErrIdeasUnavailable, got %v", err)
	}
}
