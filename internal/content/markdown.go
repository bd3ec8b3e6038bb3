package content

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/text"
	"go.abhg.dev/goldmark/frontmatter"
)

// newMarkdown returns the goldmark pipeline used for article bodies.
func newMarkdown() goldmark.Markdown {
	return goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			&frontmatter.Extender{},
			highlighting.NewHighlighting(
				highlighting.WithStyle("github"),
			),
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(
			html.WithUnsafe(),
		),
	)
}

// parseMeta reads only the frontmatter of an article source.
func parseMeta(md goldmark.Markdown, source []byte) (ArticleMeta, error) {
	var meta ArticleMeta

	ctx := parser.NewContext()
	md.Parser().Parse(text.NewReader(source), parser.WithContext(ctx))

	d := frontmatter.Get(ctx)
	if d == nil {
		return meta, nil
	}
	if err := d.Decode(&meta); err != nil {
		return meta, fmt.Errorf("frontmatter decode: %w", err)
	}
	return meta, nil
}

// render converts an article source to HTML, dropping the frontmatter block.
func render(md goldmark.Markdown, source []byte) (template.HTML, error) {
	var buf bytes.Buffer
	if err := md.Convert(source, &buf, parser.WithContext(parser.NewContext())); err != nil {
		return "", fmt.Errorf("goldmark convert: %w", err)
	}
	return template.HTML(buf.String()), nil
}
