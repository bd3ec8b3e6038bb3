package content

import (
	"html/template"

	"github.com/ivmanto/site/internal/lazy"
)

// ArticleMeta is the listing view of an article. Slug is unique across the
// registry and doubles as the blog route parameter.
type ArticleMeta struct {
	Slug      string `json:"slug" yaml:"-"`
	Title     string `json:"title" yaml:"title"`
	Summary   string `json:"summary" yaml:"summary"`
	Date      string `json:"date" yaml:"date"`
	Published bool   `json:"published" yaml:"published"`
}

// Article is an ArticleMeta plus its rendered body.
type Article struct {
	ArticleMeta
	Content string `json:"content"`
}

// StaticArticle is an article compiled into the binary. Its body is a lazily
// rendered view, produced on the first visit to the article.
type StaticArticle struct {
	Meta ArticleMeta
	View *lazy.Value[template.HTML]
}

// Service is one consultancy offering shown under /services.
type Service struct {
	ID         string
	MenuTitle  string
	Title      string
	Summary    string
	Icon       template.HTML // SVG path data
	Details    string        // plain text, #Tag marks a glossary term
	TagDetails map[string]string
	Industries []string

	DetailsView *lazy.Value[template.HTML]
}
