package content

import (
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"path"
	"strings"

	"github.com/ivmanto/site/internal/lazy"
)

//go:embed articles/*.md
var articleFS embed.FS

// loadArticles reads every markdown file under dir in fsys. Metadata is
// parsed eagerly so listings need no rendering; bodies stay lazy.
// Files without a title are skipped.
func loadArticles(fsys fs.FS, dir string) ([]*StaticArticle, error) {
	paths, err := fs.Glob(fsys, path.Join(dir, "*.md"))
	if err != nil {
		return nil, fmt.Errorf("listing articles: %w", err)
	}

	md := newMarkdown()
	var out []*StaticArticle
	for _, p := range paths {
		source, err := fs.ReadFile(fsys, p)
		if err != nil {
			return nil, fmt.Errorf("reading article %s: %w", p, err)
		}

		meta, err := parseMeta(md, source)
		if err != nil {
			return nil, fmt.Errorf("parsing article %s: %w", p, err)
		}
		if meta.Title == "" {
			continue
		}
		meta.Slug = strings.TrimSuffix(path.Base(p), ".md")

		out = append(out, &StaticArticle{
			Meta: meta,
			View: lazy.New(func() (template.HTML, error) {
				return render(md, source)
			}),
		})
	}
	return out, nil
}

// Content resolves the article body and returns the full Article.
func (a *StaticArticle) Content() (*Article, error) {
	body, err := a.View.Get()
	if err != nil {
		return nil, fmt.Errorf("rendering article %s: %w", a.Meta.Slug, err)
	}
	return &Article{ArticleMeta: a.Meta, Content: string(body)}, nil
}
