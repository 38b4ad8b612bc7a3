// Package render turns markdown source into HTML for the preview pane.
package render

import (
	"bytes"
	"html"

	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	gmhtml "github.com/yuin/goldmark/renderer/html"

	"github.com/mattsolo1/codedocs/pkg/outline"
)

// Options configures a Pipeline. The markdown feature set itself is fixed.
type Options struct {
	// HighlightStyle enables syntax highlighting of fenced code with the
	// named chroma style. Empty disables it.
	HighlightStyle string
}

// Pipeline normalizes callouts and converts markdown to HTML. It holds no
// per-call state and is safe for concurrent use.
type Pipeline struct {
	md goldmark.Markdown
}

// New builds a Pipeline with tables, footnotes, strikethrough, task lists,
// smart punctuation and heading attributes enabled. Raw HTML is passed
// through unchanged.
func New(opts Options) *Pipeline {
	exts := []goldmark.Extender{
		extension.Table,
		extension.Footnote,
		extension.Strikethrough,
		extension.TaskList,
		extension.Typographer,
	}
	if opts.HighlightStyle != "" {
		exts = append(exts, highlighting.NewHighlighting(
			highlighting.WithStyle(opts.HighlightStyle),
		))
	}

	return &Pipeline{
		md: goldmark.New(
			goldmark.WithExtensions(exts...),
			goldmark.WithParserOptions(
				parser.WithAttribute(),
				parser.WithAutoHeadingID(),
			),
			goldmark.WithRendererOptions(gmhtml.WithUnsafe()),
		),
	}
}

// Render returns the HTML for source. It never fails: if conversion cannot
// complete, the escaped source is returned as preformatted text.
func (p *Pipeline) Render(source string) string {
	normalized := NormalizeCallouts(source)

	var buf bytes.Buffer
	ctx := parser.NewContext(parser.WithIDs(slugIDs{}))
	if err := p.md.Convert([]byte(normalized), &buf, parser.WithContext(ctx)); err != nil {
		return "<pre>" + html.EscapeString(source) + "</pre>\n"
	}
	return buf.String()
}

var defaultPipeline = New(Options{})

// Render converts source with the default pipeline.
func Render(source string) string {
	return defaultPipeline.Render(source)
}

// slugIDs assigns heading ids with the same rule the outline uses, so
// outline links resolve. Like the outline, it does not de-duplicate.
type slugIDs struct{}

func (slugIDs) Generate(value []byte, kind ast.NodeKind) []byte {
	slug := outline.Slug(string(value))
	if slug == "" {
		return []byte("heading")
	}
	return []byte(slug)
}

func (slugIDs) Put(value []byte) {}
