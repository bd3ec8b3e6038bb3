// Package routes holds the site's route table and resolves request URLs
// against it: nested list/detail groups, slug normalization redirects, the
// catch-all not-found route and the scroll position contract.
package routes

import (
	"strings"
)

// Name identifies a route.
type Name string

const (
	Home          Name = "home"
	About         Name = "about"
	Login         Name = "login"
	Booking       Name = "booking"
	BookingCancel Name = "booking-cancel"
	BookingDemo   Name = "booking-demo"
	PrivacyPolicy Name = "privacy-policy"
	Services      Name = "services"
	ServicesIndex Name = "services-index"
	ServiceDetail Name = "service-detail"
	Blog          Name = "blog"
	BlogIndex     Name = "blog-index"
	BlogPost      Name = "blog-post"
	NotFound      Name = "not-found"
)

// Route is one entry of the flattened route table.
type Route struct {
	Name    Name   `json:"name"`
	Pattern string `json:"pattern"`
	// Parent names the group a child route belongs to.
	Parent Name `json:"parent,omitempty"`
	// Lazy routes have their view loaded on first visit.
	Lazy bool `json:"lazy"`

	segments []string
}

// Param returns the name of the route's path parameter, or "".
func (r Route) Param() string {
	for _, s := range r.segments {
		if strings.HasPrefix(s, ":") {
			return s[1:]
		}
	}
	return ""
}

// Path builds a concrete path from the pattern.
func (r Route) Path(params map[string]string) string {
	if len(r.segments) == 0 {
		return "/"
	}
	out := make([]string, len(r.segments))
	for i, s := range r.segments {
		if strings.HasPrefix(s, ":") {
			s = params[s[1:]]
		}
		out[i] = s
	}
	return "/" + strings.Join(out, "/")
}

// entry is a node of the declared table. Entries with children are groups:
// the group itself renders a layout, a child with an empty path is its index.
type entry struct {
	path     string
	name     Name
	lazy     bool
	children []entry
}

var table = []entry{
	{path: "/", name: Home},
	{path: "/services", name: Services, children: []entry{
		{path: "", name: ServicesIndex, lazy: true},
		{path: ":id", name: ServiceDetail, lazy: true},
	}},
	{path: "/blog", name: Blog, children: []entry{
		{path: "", name: BlogIndex, lazy: true},
		{path: ":slug", name: BlogPost, lazy: true},
	}},
	{path: "/about", name: About},
	{path: "/login", name: Login},
	{path: "/booking", name: Booking, lazy: true},
	{path: "/booking/cancel", name: BookingCancel, lazy: true},
	{path: "/booking-demo", name: BookingDemo, lazy: true},
	{path: "/privacy-policy", name: PrivacyPolicy},
}

// notFoundRoute terminates resolution of every unmatched path.
var notFoundRoute = Route{Name: NotFound, Pattern: "/:pathMatch(.*)*"}

var (
	flat   = flatten(table)
	byName = indexByName(flat)
)

func flatten(entries []entry) []Route {
	var out []Route
	for _, e := range entries {
		if len(e.children) == 0 {
			out = append(out, newRoute(e.name, "", e.path, e.lazy))
			continue
		}
		for _, c := range e.children {
			out = append(out, newRoute(c.name, e.name, joinPath(e.path, c.path), c.lazy))
		}
	}
	return out
}

func newRoute(name, parent Name, pattern string, lazy bool) Route {
	return Route{
		Name:     name,
		Pattern:  pattern,
		Parent:   parent,
		Lazy:     lazy,
		segments: split(pattern),
	}
}

func indexByName(rs []Route) map[Name]Route {
	m := make(map[Name]Route, len(rs)+1)
	for _, r := range rs {
		m[r.Name] = r
	}
	m[NotFound] = notFoundRoute
	return m
}

func joinPath(prefix, child string) string {
	if child == "" {
		return prefix
	}
	return strings.TrimRight(prefix, "/") + "/" + child
}

func split(path string) []string {
	path = strings.Trim(path, "/")
	if path == "" {
		return nil
	}
	return strings.Split(path, "/")
}

// Table returns the flattened route table in declaration order, followed by
// the catch-all.
func Table() []Route {
	out := make([]Route, 0, len(flat)+1)
	out = append(out, flat...)
	return append(out, notFoundRoute)
}

// Lookup returns the route with the given name.
func Lookup(name Name) (Route, bool) {
	r, ok := byName[name]
	return r, ok
}

// match returns the first route whose pattern matches path.
func match(path string) (Route, map[string]string, bool) {
	segs := split(path)
	for _, r := range flat {
		if len(r.segments) != len(segs) {
			continue
		}
		params := map[string]string{}
		ok := true
		for i, s := range r.segments {
			switch {
			case strings.HasPrefix(s, ":"):
				if segs[i] == "" {
					ok = false
				}
				params[s[1:]] = segs[i]
			case s != segs[i]:
				ok = false
			}
			if !ok {
				break
			}
		}
		if ok {
			return r, params, true
		}
	}
	return Route{}, nil, false
}
