// Package web serves the site: server-rendered pages for every route in the
// route table, the consent and idea forms, and the JSON endpoints used by the
// client navigator and the assistant.
package web

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/ivmanto/site/internal/articles"
	"github.com/ivmanto/site/internal/backend"
	"github.com/ivmanto/site/internal/config"
	"github.com/ivmanto/site/internal/content"
	"github.com/ivmanto/site/internal/llm"
	"github.com/ivmanto/site/internal/routes"
	"github.com/ivmanto/site/internal/seo"
	"github.com/ivmanto/site/internal/telemetry"
)

// Deps are the collaborators the site renders from.
type Deps struct {
	Articles  *articles.Accessor
	Ideas     backend.IdeaGenerator
	Assistant llm.Completer
	Layer     *telemetry.DataLayer
	Logger    *slog.Logger
}

// Site renders pages and answers the site's own API.
type Site struct {
	cfg       *config.Config
	articles  *articles.Accessor
	ideas     backend.IdeaGenerator
	assistant llm.Completer
	layer     *telemetry.DataLayer
	logger    *slog.Logger

	views *viewSet
	pages map[routes.Name]pageHandler
}

type pageHandler func(w http.ResponseWriter, r *http.Request, res routes.Resolution)

// New creates a Site. Templates of eagerly loaded views are parsed here.
func New(cfg *config.Config, deps Deps) (*Site, error) {
	views, err := newViewSet()
	if err != nil {
		return nil, err
	}
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	layer := deps.Layer
	if layer == nil {
		layer = telemetry.NewDataLayer(logger)
	}

	s := &Site{
		cfg:       cfg,
		articles:  deps.Articles,
		ideas:     deps.Ideas,
		assistant: deps.Assistant,
		layer:     layer,
		logger:    logger.With("service", "web"),
		views:     views,
	}
	s.pages = map[routes.Name]pageHandler{
		routes.Home:          s.handleHome,
		routes.About:         s.staticPage(routes.About),
		routes.Login:         s.staticPage(routes.Login),
		routes.Booking:       s.staticPage(routes.Booking),
		routes.BookingCancel: s.staticPage(routes.BookingCancel),
		routes.BookingDemo:   s.staticPage(routes.BookingDemo),
		routes.PrivacyPolicy: s.handlePrivacyPolicy,
		routes.ServicesIndex: s.handleServicesIndex,
		routes.ServiceDetail: s.handleServiceDetail,
		routes.BlogIndex:     s.handleBlogIndex,
		routes.BlogPost:      s.handleBlogPost,
	}
	return s, nil
}

// RegisterRoutes mounts the pages, forms and API endpoints on r.
func (s *Site) RegisterRoutes(r chi.Router) {
	pv := &telemetry.PageViews{
		Layer:         s.layer,
		ConsentCookie: s.cfg.Analytics.ConsentCookie,
		MeasurementID: s.cfg.Analytics.MeasurementID,
	}
	r.Group(func(r chi.Router) {
		r.Use(pv.Middleware)
		r.Get("/", s.servePage)
		r.Get("/*", s.servePage)
	})

	r.Post("/consent", s.handleConsent)
	r.Post("/ideas", s.handleIdeasForm)

	r.Route("/api", func(r chi.Router) {
		r.Get("/resolve", s.handleResolve)
		r.Get("/articles", s.handleListArticles)
		r.Get("/articles/{slug}", s.handleGetArticle)
		r.Post("/generate-ideas", s.handleGenerateIdeas)
		r.Post("/assistant", s.handleAssistant)
		r.Post("/events", s.handleEvent)
	})
}

// servePage resolves the request against the route table and dispatches to
// the route's view.
func (s *Site) servePage(w http.ResponseWriter, r *http.Request) {
	res, err := routes.Resolve(r.URL.RequestURI())
	if err != nil {
		s.notFound(w, r)
		return
	}
	if res.Redirect != "" {
		http.Redirect(w, r, res.Redirect, http.StatusMovedPermanently)
		return
	}
	h, ok := s.pages[res.Route.Name]
	if !ok {
		s.notFound(w, r)
		return
	}
	h(w, r, res)
}

// pageData is what every view receives. Data holds the view's own fields.
type pageData struct {
	Meta           seo.Metadata
	SiteName       string
	Canonical      string
	Path           string
	Route          routes.Name
	ConsentDecided bool
	GTMContainerID string
	Services       []content.Service
	Data           any
}

func (s *Site) render(w http.ResponseWriter, r *http.Request, status int, view routes.Name, meta seo.Metadata, data any) {
	consent := telemetry.ConsentValue(r, s.cfg.Analytics.ConsentCookie)
	pd := pageData{
		Meta:           meta,
		SiteName:       s.cfg.SiteName,
		Canonical:      strings.TrimRight(s.cfg.BaseURL, "/") + r.URL.Path,
		Path:           r.URL.Path,
		Route:          view,
		ConsentDecided: consent != "",
		Services:       s.articles.Services(),
		Data:           data,
	}
	if consent == telemetry.ConsentAccepted {
		pd.GTMContainerID = s.cfg.Analytics.GTMContainerID
	}

	body, err := s.views.render(view, pd)
	if err != nil {
		s.logger.Error("rendering page failed", "view", view, "path", r.URL.Path, "error", err)
		pageRenders.WithLabelValues(string(view), "error").Inc()
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	pageRenders.WithLabelValues(string(view), "ok").Inc()

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	w.Write(body)
}

func (s *Site) notFound(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, http.StatusNotFound, routes.NotFound, s.notFoundMeta(), nil)
}

func (s *Site) notFoundMeta() seo.Metadata {
	return seo.Metadata{
		Title:       "Page Not Found | " + s.cfg.SiteName,
		Description: seo.Default.Description,
	}
}

// renderError shows the error state of a view.
func (s *Site) renderError(w http.ResponseWriter, r *http.Request, status int, message string) {
	s.render(w, r, status, viewError, seo.Resolve(r.URL.Path), errorData{Message: message})
}

type errorData struct {
	Message string
}

// track records an interaction event for consenting visitors only.
func (s *Site) track(r *http.Request, name string, params map[string]any) {
	if !telemetry.HasConsent(r, s.cfg.Analytics.ConsentCookie) {
		return
	}
	s.layer.Initialize()

	session := telemetry.SessionFromRequest(r, s.cfg.Analytics.MeasurementID)
	if params == nil {
		params = map[string]any{}
	}
	params["client_id"] = telemetry.ParamValue(session.ClientID)
	params["session_id"] = telemetry.ParamValue(session.SessionID)
	s.layer.Record(r.Context(), name, params)
}
