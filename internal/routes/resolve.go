package routes

import (
	"fmt"
	"net/url"
	"strings"
)

// SlugPrefix marks a legacy article slug that is redirected to its
// unprefixed form.
const SlugPrefix = "_"

// Scroll is the scroll position a client applies after navigation.
type Scroll struct {
	Selector string `json:"el,omitempty"`
	Behavior string `json:"behavior,omitempty"`
	Top      *int   `json:"top,omitempty"`
}

// Resolution is the outcome of resolving a URL against the route table.
type Resolution struct {
	Route  Route             `json:"route"`
	Params map[string]string `json:"params,omitempty"`
	// Redirect is set when the URL must be replaced before rendering.
	Redirect string `json:"redirect,omitempty"`
	// Replace reports whether the redirect replaces the history entry.
	Replace  bool   `json:"replace,omitempty"`
	NotFound bool   `json:"notFound,omitempty"`
	Scroll   Scroll `json:"scroll"`
}

// Resolve maps a request URL (path, optional query and fragment) to a route.
func Resolve(rawURL string) (Resolution, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return Resolution{}, fmt.Errorf("parsing url %q: %w", rawURL, err)
	}

	res := Resolution{Scroll: ScrollFor(u.Fragment)}

	r, params, ok := match(u.Path)
	if !ok {
		res.Route = notFoundRoute
		res.Params = map[string]string{"pathMatch": strings.TrimPrefix(u.Path, "/")}
		res.NotFound = true
		return res, nil
	}
	res.Route = r
	if len(params) > 0 {
		res.Params = params
	}

	if r.Name == BlogPost {
		if slug := params["slug"]; strings.HasPrefix(slug, SlugPrefix) {
			target := *u
			target.Path = r.Path(map[string]string{"slug": strings.TrimPrefix(slug, SlugPrefix)})
			target.RawPath = ""
			if target.Path == "/blog/" {
				target.Path = "/blog"
			}
			res.Redirect = target.String()
			res.Replace = true
		}
	}
	return res, nil
}

// ScrollFor returns the scroll contract for a navigation: smooth scroll to
// the fragment's element when there is one, otherwise back to the top.
func ScrollFor(fragment string) Scroll {
	if fragment != "" {
		return Scroll{Selector: "#" + fragment, Behavior: "smooth"}
	}
	top := 0
	return Scroll{Top: &top}
}
