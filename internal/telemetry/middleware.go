package telemetry

import (
	"net/http"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/ivmanto/site/internal/seo"
)

// Event names recorded by the site itself. PageViewEvent is recorded for
// every rendered page.
const (
	PageViewEvent         = "page_view"
	GenerateIdeasEvent    = "generate_ideas"
	AssistantRequestEvent = "assistant_request"
)

// PageViews records a page_view for every successful GET of a page by a
// consenting visitor. The first consenting visitor initializes the layer.
type PageViews struct {
	Layer         *DataLayer
	ConsentCookie string
	MeasurementID string
}

// Middleware wraps the page handlers.
func (p *PageViews) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || !HasConsent(r, p.ConsentCookie) {
			next.ServeHTTP(w, r)
			return
		}

		p.Layer.Initialize()

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		// Redirects are recorded at their target.
		if status := ww.Status(); status >= 300 && status < 400 {
			return
		}

		session := SessionFromRequest(r, p.MeasurementID)
		p.Layer.Record(r.Context(), PageViewEvent, map[string]any{
			"page_path":  r.URL.RequestURI(),
			"page_title": seo.Resolve(r.URL.Path).Title,
			"client_id":  ParamValue(session.ClientID),
			"session_id": ParamValue(session.SessionID),
		})
	})
}
