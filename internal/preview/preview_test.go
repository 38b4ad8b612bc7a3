package preview

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderEmpty(t *testing.T) {
	r := New("notty")
	assert.Equal(t, "", r.Render("", 80))
	assert.Equal(t, "", r.Render("  \n\n", 80))
}

func TestRenderKeepsText(t *testing.T) {
	r := New("notty")
	out := r.Render("# Release Notes\n\nShipped the **parser**.", 80)

	assert.Contains(t, out, "Release Notes")
	assert.Contains(t, out, "parser")
	assert.False(t, strings.HasSuffix(out, "\n"))
}

func TestRenderNormalizesCallouts(t *testing.T) {
	r := New("notty")
	out := r.Render("> [!WARNING]\n> mind the gap", 80)

	assert.Contains(t, out, "WARNING")
	assert.NotContains(t, out, "[!WARNING]")
}

func TestRendererCachesPerWidth(t *testing.T) {
	r := New("")
	r.Render("text", 40)
	r.Render("text", 40)
	r.Render("text", 3)

	assert.Len(t, r.renderers, 2)
	assert.Contains(t, r.renderers, "dark:40")
	assert.Contains(t, r.renderers, "dark:10")
}
