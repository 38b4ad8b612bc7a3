package browser

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTildePath(t *testing.T) {
	tests := []struct {
		name string
		path string
		home string
		want string
	}{
		{"inside home", "/home/ana/docs", "/home/ana", "~/docs"},
		{"home itself", "/home/ana", "/home/ana", "~"},
		{"sibling with shared prefix", "/home/anabel/docs", "/home/ana", "/home/anabel/docs"},
		{"outside home", "/srv/docs", "/home/ana", "/srv/docs"},
		{"no home", "/srv/docs", "", "/srv/docs"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tildePath(tt.path, tt.home))
		})
	}
}

func TestDisplayDocument(t *testing.T) {
	tests := []struct {
		name string
		path string
		root string
		want string
	}{
		{"top level", "/docs/a.md", "/docs", "a.md"},
		{"nested", "/docs/guide/setup.md", "/docs", "guide/setup.md"},
		{"outside root", "/other/a.md", "/docs", "/other/a.md"},
		{"no root", "/docs/a.md", "", "/docs/a.md"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, displayDocument(tt.path, tt.root))
		})
	}
}
