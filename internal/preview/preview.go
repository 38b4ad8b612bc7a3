// Package preview renders documents for the terminal.
package preview

import (
	"strconv"
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"

	"github.com/mattsolo1/codedocs/pkg/render"
)

const minWidth = 10

// Renderer turns markdown into styled terminal output. Glamour renderers
// are cached per wrap width.
type Renderer struct {
	style string

	mu        sync.Mutex
	renderers map[string]*glamour.TermRenderer
}

// New creates a renderer using a glamour standard style ("dark", "light",
// "notty", ...). An empty style means "dark".
func New(style string) *Renderer {
	if style == "" {
		style = "dark"
	}
	return &Renderer{style: style, renderers: map[string]*glamour.TermRenderer{}}
}

// Render renders source wrapped at width. Callout markers are normalized
// the same way as the HTML pipeline. On failure the source is returned as
// is.
func (r *Renderer) Render(source string, width int) string {
	source = strings.TrimSpace(render.NormalizeCallouts(source))
	if source == "" {
		return ""
	}
	if width < minWidth {
		width = minWidth
	}

	tr, err := r.renderer(width)
	if err != nil {
		return source
	}
	out, err := tr.Render(source)
	if err != nil {
		return source
	}
	return strings.TrimRight(out, "\n")
}

func (r *Renderer) renderer(width int) (*glamour.TermRenderer, error) {
	key := r.style + ":" + strconv.Itoa(width)

	r.mu.Lock()
	defer r.mu.Unlock()
	if tr := r.renderers[key]; tr != nil {
		return tr, nil
	}
	// WithAutoStyle queries the terminal and can block; a fixed style does not.
	tr, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(r.style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil, err
	}
	r.renderers[key] = tr
	return tr, nil
}
