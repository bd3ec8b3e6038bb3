package articles

import (
	"context"

	"github.com/ivmanto/site/internal/backend"
	"github.com/ivmanto/site/internal/content"
)

// StaticSource serves the articles compiled into the binary. Unpublished
// articles are neither listed nor readable.
type StaticSource struct {
	registry *content.Registry
}

// NewStaticSource creates a Source backed by the content registry.
func NewStaticSource(registry *content.Registry) *StaticSource {
	return &StaticSource{registry: registry}
}

func (s *StaticSource) ListArticles(ctx context.Context) ([]content.ArticleMeta, error) {
	return s.registry.Published(), nil
}

func (s *StaticSource) GetArticle(ctx context.Context, slug string) (*content.Article, error) {
	a, ok := s.registry.ArticleBySlug(slug)
	if !ok || !a.Meta.Published {
		return nil, backend.ErrNotFound
	}
	return a.Content()
}
