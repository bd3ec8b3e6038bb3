package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"time"

	"github.com/ivmanto/site/internal/lazy"
	"github.com/ivmanto/site/internal/routes"
	"github.com/ivmanto/site/internal/seo"
)

//go:embed templates/*.gohtml
var templateFS embed.FS

const layoutFile = "layout.gohtml"

// Views that are not routes.
const (
	viewError routes.Name = "error"
)

// viewFiles maps every view to its template file.
var viewFiles = map[routes.Name]string{
	routes.Home:          "home.gohtml",
	routes.About:         "about.gohtml",
	routes.Login:         "login.gohtml",
	routes.Booking:       "booking.gohtml",
	routes.BookingCancel: "booking_cancel.gohtml",
	routes.BookingDemo:   "booking_demo.gohtml",
	routes.PrivacyPolicy: "privacy_policy.gohtml",
	routes.ServicesIndex: "services_index.gohtml",
	routes.ServiceDetail: "service_detail.gohtml",
	routes.BlogIndex:     "blog_index.gohtml",
	routes.BlogPost:      "blog_post.gohtml",
	routes.NotFound:      "not_found.gohtml",
	viewError:            "error.gohtml",
}

var funcs = template.FuncMap{
	"cleanTitle": seo.CleanTitle,
	"formatDate": formatDate,
}

// formatDate renders a YYYY-MM-DD date as "March 1, 2024". Other input is
// returned unchanged.
func formatDate(s string) string {
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return s
	}
	return t.Format("January 2, 2006")
}

// viewSet holds one template per view. Views of lazy routes are parsed on
// their first render; the rest are parsed up front so a broken template fails
// at startup.
type viewSet struct {
	views map[routes.Name]*lazy.Value[*template.Template]
}

func newViewSet() (*viewSet, error) {
	vs := &viewSet{views: make(map[routes.Name]*lazy.Value[*template.Template], len(viewFiles))}
	for name, file := range viewFiles {
		if r, ok := routes.Lookup(name); ok && r.Lazy {
			vs.views[name] = lazy.New(func() (*template.Template, error) {
				return parseView(file)
			})
			continue
		}
		t, err := parseView(file)
		if err != nil {
			return nil, err
		}
		vs.views[name] = lazy.Ready(t)
	}
	return vs, nil
}

func parseView(file string) (*template.Template, error) {
	t, err := template.New(layoutFile).Funcs(funcs).ParseFS(templateFS, "templates/"+layoutFile, "templates/"+file)
	if err != nil {
		return nil, fmt.Errorf("parsing view %s: %w", file, err)
	}
	return t, nil
}

// render executes the named view into a buffer.
func (vs *viewSet) render(name routes.Name, data any) ([]byte, error) {
	v, ok := vs.views[name]
	if !ok {
		return nil, fmt.Errorf("unknown view %q", name)
	}
	t, err := v.Get()
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("rendering view %s: %w", name, err)
	}
	return buf.Bytes(), nil
}

// resolved reports whether the view's template has been parsed.
func (vs *viewSet) resolved(name routes.Name) bool {
	v, ok := vs.views[name]
	return ok && v.Resolved()
}
