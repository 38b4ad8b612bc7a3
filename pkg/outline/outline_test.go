package outline

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractBasic(t *testing.T) {
	got := Extract("# Title\n## Sub\nBody")

	assert.Equal(t, []Entry{
		{Level: 1, Title: "Title", Slug: "title"},
		{Level: 2, Title: "Sub", Slug: "sub"},
	}, got)
}

func TestExtractSkipsFencedHeadings(t *testing.T) {
	tests := []struct {
		name   string
		source string
		want   []string
	}{
		{
			name:   "closed fence",
			source: "# Before\n```go\n# not a heading\n```\n## After",
			want:   []string{"Before", "After"},
		},
		{
			name:   "unclosed fence hides the rest",
			source: "# Before\n```\n# hidden\n## also hidden",
			want:   []string{"Before"},
		},
		{
			name:   "indented fence still toggles",
			source: "  ```\n# hidden\n  ```\n# Shown",
			want:   []string{"Shown"},
		},
		{
			name:   "fence with info string",
			source: "```markdown\n# hidden\n```\n",
			want:   nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var titles []string
			for _, e := range Extract(tt.source) {
				titles = append(titles, e.Title)
			}
			assert.Equal(t, tt.want, titles)
		})
	}
}

func TestExtractLevels(t *testing.T) {
	tests := []struct {
		line  string
		level int
		title string
		ok    bool
	}{
		{"# One", 1, "One", true},
		{"###### Six", 6, "Six", true},
		{"####### Seven", 0, "", false},
		{"#", 0, "", false},
		{"###   ", 0, "", false},
		{"#NoSpace", 1, "NoSpace", true},
		{"##   padded  ", 2, "padded", true},
		{" # indented", 0, "", false},
		{"plain text", 0, "", false},
		{"## Windows line\r", 2, "Windows line", true},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			got := Extract(tt.line)
			if !tt.ok {
				assert.Empty(t, got)
				return
			}
			require.Len(t, got, 1)
			assert.Equal(t, tt.level, got[0].Level)
			assert.Equal(t, tt.title, got[0].Title)
		})
	}
}

func TestExtractNeverLeavesLevelRange(t *testing.T) {
	var b strings.Builder
	for i := 0; i <= 10; i++ {
		b.WriteString(strings.Repeat("#", i))
		b.WriteString(" heading\n")
	}
	for _, e := range Extract(b.String()) {
		assert.GreaterOrEqual(t, e.Level, 1)
		assert.LessOrEqual(t, e.Level, 6)
	}
}

func TestSlug(t *testing.T) {
	tests := []struct {
		title string
		want  string
	}{
		{"Title", "title"},
		{"Hello, World!", "hello-world"},
		{"C++ & Go", "c--go"},
		{"Getting Started (v2.0)", "getting-started-v20"},
		{"Café Ünïcode", "café-ünïcode"},
		{"snake_case-and-dash", "snakecaseanddash"},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			got := Slug(tt.title)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, got, Slug(tt.title), "slug must be deterministic")
		})
	}
}

func TestExtractDoesNotDeduplicateSlugs(t *testing.T) {
	got := Extract("## Notes\ntext\n## Notes")
	require.Len(t, got, 2)
	assert.Equal(t, got[0].Slug, got[1].Slug)
}

func TestBlock(t *testing.T) {
	got := Generate("# Guide\n## Install\n### From source\n## Usage\n")

	want := Header + "\n\n" +
		"- [Guide](#guide)\n" +
		"  - [Install](#install)\n" +
		"    - [From source](#from-source)\n" +
		"  - [Usage](#usage)\n"
	assert.Equal(t, want, got)
}

func TestBlockEmpty(t *testing.T) {
	assert.Equal(t, Header+"\n\n", Generate("no headings here"))
}

func TestBlockHeaderLiteral(t *testing.T) {
	got := Generate("# Guide\n")
	assert.True(t, strings.HasPrefix(got, "## Indice\n\n"), got)
}
