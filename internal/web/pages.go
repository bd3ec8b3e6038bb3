package web

import (
	"html/template"
	"net/http"
	"net/url"
	"strings"

	"github.com/ivmanto/site/internal/backend"
	"github.com/ivmanto/site/internal/content"
	"github.com/ivmanto/site/internal/routes"
	"github.com/ivmanto/site/internal/seo"
	"github.com/ivmanto/site/internal/telemetry"
)

// latestCount is the number of articles teased on the home page.
const latestCount = 3

type homeData struct {
	Services   []content.Service
	Topic      string
	Ideas      []backend.Idea
	IdeasError string
	Latest     []content.ArticleMeta
}

func (s *Site) handleHome(w http.ResponseWriter, r *http.Request, _ routes.Resolution) {
	s.renderHome(w, r, http.StatusOK, homeData{})
}

func (s *Site) renderHome(w http.ResponseWriter, r *http.Request, status int, data homeData) {
	data.Services = s.articles.Services()

	s.articles.FetchAll(r.Context())
	latest := s.articles.Sorted()
	if len(latest) > latestCount {
		latest = latest[:latestCount]
	}
	data.Latest = latest

	s.render(w, r, status, routes.Home, seo.Resolve("/"), data)
}

// staticPage renders a view that needs no data.
func (s *Site) staticPage(view routes.Name) pageHandler {
	return func(w http.ResponseWriter, r *http.Request, _ routes.Resolution) {
		s.render(w, r, http.StatusOK, view, seo.Resolve(r.URL.Path), nil)
	}
}

func (s *Site) handlePrivacyPolicy(w http.ResponseWriter, r *http.Request, _ routes.Resolution) {
	s.render(w, r, http.StatusOK, routes.PrivacyPolicy, seo.Resolve(r.URL.Path), struct {
		ConsentCookie string
	}{s.cfg.Analytics.ConsentCookie})
}

func (s *Site) handleServicesIndex(w http.ResponseWriter, r *http.Request, _ routes.Resolution) {
	s.render(w, r, http.StatusOK, routes.ServicesIndex, seo.Resolve("/services"), struct {
		Services []content.Service
	}{s.articles.Services()})
}

type serviceData struct {
	Service *content.Service
	Details template.HTML
}

func (s *Site) handleServiceDetail(w http.ResponseWriter, r *http.Request, res routes.Resolution) {
	svc, ok := s.articles.ServiceByID(res.Params["id"])
	if !ok {
		s.notFound(w, r)
		return
	}

	details, err := svc.DetailsView.Get()
	if err != nil {
		s.logger.Error("rendering service details failed", "service", svc.ID, "error", err)
		s.renderError(w, r, http.StatusInternalServerError, "This service page could not be loaded.")
		return
	}

	meta := seo.Resolve(r.URL.Path)
	if meta == seo.Default {
		meta = seo.Metadata{Title: svc.Title + " | " + s.cfg.SiteName, Description: svc.Summary}
	}
	s.render(w, r, http.StatusOK, routes.ServiceDetail, meta, serviceData{Service: svc, Details: details})
}

type blogIndexData struct {
	Articles []content.ArticleMeta
	Error    string
}

// handleBlogIndex lists articles newest first. An empty cache with a recorded
// failure is the error state.
func (s *Site) handleBlogIndex(w http.ResponseWriter, r *http.Request, _ routes.Resolution) {
	s.articles.FetchAll(r.Context())
	list := s.articles.Sorted()

	data := blogIndexData{Articles: list}
	status := http.StatusOK
	if len(list) == 0 {
		if msg := s.articles.Err(); msg != "" {
			data.Error = msg
			status = http.StatusServiceUnavailable
		}
	}
	s.render(w, r, status, routes.BlogIndex, seo.Resolve("/blog"), data)
}

type blogPostData struct {
	Article *content.Article
	Body    template.HTML
}

// handleBlogPost renders one article. A missing article is the not-found
// view; any other failure is the error view.
func (s *Site) handleBlogPost(w http.ResponseWriter, r *http.Request, res routes.Resolution) {
	article, err := s.articles.Lookup(r.Context(), res.Params["slug"])
	if err != nil {
		s.renderError(w, r, http.StatusServiceUnavailable, err.Error())
		return
	}
	if article == nil {
		s.notFound(w, r)
		return
	}

	meta := seo.Metadata{
		Title:       article.Title + " | " + s.cfg.SiteName,
		Description: article.Summary,
	}
	s.render(w, r, http.StatusOK, routes.BlogPost, meta, blogPostData{
		Article: article,
		// Article bodies are rendered HTML, from the registry or the backend.
		Body: template.HTML(article.Content),
	})
}

// handleIdeasForm is the no-script submission of the idea generator.
func (s *Site) handleIdeasForm(w http.ResponseWriter, r *http.Request) {
	topic := strings.TrimSpace(r.FormValue("topic"))
	data := homeData{Topic: topic}

	if topic == "" {
		data.IdeasError = "Please enter a topic."
		s.renderHome(w, r, http.StatusBadRequest, data)
		return
	}

	ideas, err := s.generateIdeas(r, topic)
	if err != nil {
		data.IdeasError = err.Error()
		s.renderHome(w, r, http.StatusBadGateway, data)
		return
	}
	data.Ideas = ideas
	s.renderHome(w, r, http.StatusOK, data)
}

func (s *Site) generateIdeas(r *http.Request, topic string) ([]backend.Idea, error) {
	if s.ideas == nil {
		return nil, backend.ErrIdeasUnavailable
	}
	ideas, err := s.ideas.GenerateIdeas(r.Context(), topic)
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	s.track(r, telemetry.GenerateIdeasEvent, map[string]any{"topic": topic, "outcome": outcome})
	return ideas, err
}

// handleConsent stores the visitor's cookie choice and returns them to the
// page they came from.
func (s *Site) handleConsent(w http.ResponseWriter, r *http.Request) {
	value := r.FormValue("value")
	telemetry.SetConsent(w, s.cfg.Analytics.ConsentCookie, value, r.TLS != nil)
	if value == telemetry.ConsentAccepted {
		s.layer.Initialize()
	}
	http.Redirect(w, r, returnPath(r), http.StatusSeeOther)
}

// returnPath is the same-site referer, or "/".
func returnPath(r *http.Request) string {
	ref, err := url.Parse(r.Referer())
	if err != nil || ref.Host != r.Host || !strings.HasPrefix(ref.Path, "/") {
		return "/"
	}
	if ref.RawQuery != "" {
		return ref.Path + "?" + ref.RawQuery
	}
	return ref.Path
}
