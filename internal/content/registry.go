// Package content holds the static content of the site: the embedded blog
// articles and the service catalogue.
package content

import (
	"fmt"
	"io/fs"
)

// Registry is the read-only content table. It is built once at startup and
// never mutated, so it is safe for concurrent use.
type Registry struct {
	articles []*StaticArticle
	bySlug   map[string]*StaticArticle
	services []Service
	byID     map[string]*Service
}

// Load builds the registry from the articles embedded in the binary.
func Load() (*Registry, error) {
	return NewRegistry(articleFS, "articles", staticServices)
}

// NewRegistry builds a registry from markdown articles under dir in fsys and
// the given services. Duplicate keys are rejected.
func NewRegistry(fsys fs.FS, dir string, services []Service) (*Registry, error) {
	articles, err := loadArticles(fsys, dir)
	if err != nil {
		return nil, err
	}

	r := &Registry{
		articles: articles,
		bySlug:   make(map[string]*StaticArticle, len(articles)),
		services: make([]Service, 0, len(services)),
		byID:     make(map[string]*Service, len(services)),
	}

	for _, a := range articles {
		if _, dup := r.bySlug[a.Meta.Slug]; dup {
			return nil, fmt.Errorf("duplicate article slug %q", a.Meta.Slug)
		}
		r.bySlug[a.Meta.Slug] = a
	}

	for _, s := range services {
		if s.ID == "" {
			return nil, fmt.Errorf("service %q has no id", s.Title)
		}
		if _, dup := r.byID[s.ID]; dup {
			return nil, fmt.Errorf("duplicate service id %q", s.ID)
		}
		r.services = append(r.services, prepareService(s))
		r.byID[s.ID] = nil
	}
	for i := range r.services {
		r.byID[r.services[i].ID] = &r.services[i]
	}

	return r, nil
}

// Articles returns every registered article, published or not, in file order.
func (r *Registry) Articles() []*StaticArticle {
	out := make([]*StaticArticle, len(r.articles))
	copy(out, r.articles)
	return out
}

// Published returns the metadata of published articles.
func (r *Registry) Published() []ArticleMeta {
	var out []ArticleMeta
	for _, a := range r.articles {
		if a.Meta.Published {
			out = append(out, a.Meta)
		}
	}
	return out
}

// ArticleBySlug returns the article registered under slug.
func (r *Registry) ArticleBySlug(slug string) (*StaticArticle, bool) {
	a, ok := r.bySlug[slug]
	return a, ok
}

// Services returns the service catalogue in display order.
func (r *Registry) Services() []Service {
	out := make([]Service, len(r.services))
	copy(out, r.services)
	return out
}

// ServiceByID returns the service with the given id. An empty id is absent.
func (r *Registry) ServiceByID(id string) (*Service, bool) {
	if id == "" {
		return nil, false
	}
	s, ok := r.byID[id]
	return s, ok
}
