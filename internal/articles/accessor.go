// Package articles exposes the blog articles to views: a one-shot cached
// listing fetched from a Source, single-article reads and derived views.
package articles

import (
	"context"
	"errors"
	"log/slog"
	"sort"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/ivmanto/site/internal/backend"
	"github.com/ivmanto/site/internal/content"
)

// Source is where articles come from. GetArticle returns backend.ErrNotFound
// for an unknown slug.
type Source interface {
	ListArticles(ctx context.Context) ([]content.ArticleMeta, error)
	GetArticle(ctx context.Context, slug string) (*content.Article, error)
}

// Accessor owns the fetched-articles cache. Failures are not returned to the
// caller; they are recorded in the last-error slot read through Err.
type Accessor struct {
	source   Source
	registry *content.Registry
	logger   *slog.Logger

	group singleflight.Group

	mu        sync.RWMutex
	cache     []content.ArticleMeta
	populated bool
	loading   bool
	lastErr   string
}

// New creates an Accessor. registry backs the service lookups.
func New(source Source, registry *content.Registry, logger *slog.Logger) *Accessor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Accessor{
		source:   source,
		registry: registry,
		logger:   logger.With("service", "articles"),
	}
}

// FetchAll populates the cache with one remote read. Once a fetch has
// succeeded further calls are no-ops. A failure leaves the cache empty and
// the populated flag unset, so the next call retries. Concurrent calls share
// a single in-flight request.
func (a *Accessor) FetchAll(ctx context.Context) {
	a.mu.RLock()
	done := a.populated
	a.mu.RUnlock()
	if done {
		return
	}

	// The shared fetch must outlive any single caller's cancellation.
	ctx = context.WithoutCancel(ctx)
	a.group.Do("all", func() (any, error) {
		a.mu.Lock()
		if a.populated {
			a.mu.Unlock()
			return nil, nil
		}
		a.loading = true
		a.lastErr = ""
		a.mu.Unlock()

		list, err := a.source.ListArticles(ctx)

		a.mu.Lock()
		defer a.mu.Unlock()
		a.loading = false
		if err != nil {
			a.lastErr = err.Error()
			a.logger.Error("fetching articles failed", "error", err)
			return nil, nil
		}
		a.cache = list
		a.populated = true
		a.logger.Debug("articles cached", "count", len(list))
		return nil, nil
	})
}

// FetchOne reads a single article. It returns nil when the article does not
// exist, and nil with the error slot set on any other failure.
func (a *Accessor) FetchOne(ctx context.Context, slug string) *content.Article {
	article, _ := a.Lookup(ctx, slug)
	return article
}

// Lookup is FetchOne for callers that must tell the two nil results apart
// without consulting the shared error slot: a missing article is (nil, nil),
// any other failure is recorded in the slot and also returned.
func (a *Accessor) Lookup(ctx context.Context, slug string) (*content.Article, error) {
	article, err := a.source.GetArticle(ctx, slug)
	if err != nil {
		if errors.Is(err, backend.ErrNotFound) {
			return nil, nil
		}
		a.mu.Lock()
		a.lastErr = err.Error()
		a.mu.Unlock()
		a.logger.Error("fetching article failed", "slug", slug, "error", err)
		return nil, err
	}
	return article, nil
}

// Articles returns a copy of the cache in source order.
func (a *Accessor) Articles() []content.ArticleMeta {
	a.mu.RLock()
	defer a.mu.RUnlock()
	out := make([]content.ArticleMeta, len(a.cache))
	copy(out, a.cache)
	return out
}

// Sorted returns the cache sorted by date, newest first. Articles sharing a
// date keep their source order. It is recomputed on every call.
func (a *Accessor) Sorted() []content.ArticleMeta {
	out := a.Articles()
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date > out[j].Date
	})
	return out
}

// Get returns the cached article with the given slug.
func (a *Accessor) Get(slug string) (content.ArticleMeta, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	for _, m := range a.cache {
		if m.Slug == slug {
			return m, true
		}
	}
	return content.ArticleMeta{}, false
}

// Err returns the last recorded failure, or "" when none.
func (a *Accessor) Err() string {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.lastErr
}

// Loading reports whether a bulk fetch is in flight.
func (a *Accessor) Loading() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.loading
}

// Services returns the service catalogue.
func (a *Accessor) Services() []content.Service {
	return a.registry.Services()
}

// ServiceByID returns the service with the given id.
func (a *Accessor) ServiceByID(id string) (*content.Service, bool) {
	return a.registry.ServiceByID(id)
}
