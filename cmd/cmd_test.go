package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mattsolo1/codedocs/pkg/frontmatter"
	"github.com/mattsolo1/codedocs/pkg/outline"
	"github.com/mattsolo1/codedocs/pkg/service"
	"github.com/mattsolo1/codedocs/pkg/tree"
)

func newTestApp(t *testing.T) *App {
	t.Helper()
	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{})

	svc, err := service.New(&service.Config{Logger: logrus.NewEntry(logger)})
	require.NoError(t, err)
	app := &App{Service: svc, Logger: logger}
	t.Cleanup(func() { app.Close() })
	return app
}

func writeDocs(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}
	return dir
}

func run(t *testing.T, cmd *cobra.Command, stdin string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestTreeCmd(t *testing.T) {
	app := newTestApp(t)
	dir := writeDocs(t, map[string]string{
		"guide/intro.md":  "# Intro",
		"readme.md":       "# Readme",
		"empty/notes.txt": "ignored",
	})

	out, err := run(t, NewTreeCmd(app), "", dir)
	require.NoError(t, err)
	assert.Equal(t, "guide/\n  intro.md\nreadme.md\n", out)

	out, err = run(t, NewTreeCmd(app), "", "--json", dir)
	require.NoError(t, err)
	var entries []*tree.Entry
	require.NoError(t, json.Unmarshal([]byte(out), &entries))
	require.Len(t, entries, 2)
	assert.True(t, entries[0].IsDir)
}

func TestTreeCmdEmptyFolder(t *testing.T) {
	app := newTestApp(t)
	dir := writeDocs(t, map[string]string{"a.txt": "x"})

	out, err := run(t, NewTreeCmd(app), "", dir)
	require.NoError(t, err)
	assert.Equal(t, "No markdown documents found\n", out)
}

func TestRenderCmd(t *testing.T) {
	app := newTestApp(t)
	dir := writeDocs(t, map[string]string{"a.md": "# Hello\n\n> [!NOTE]\n> careful\n"})

	out, err := run(t, NewRenderCmd(app), "", filepath.Join(dir, "a.md"))
	require.NoError(t, err)
	assert.Contains(t, out, `<h1 id="hello">Hello</h1>`)
	assert.Contains(t, out, "<strong>NOTE</strong>")

	out, err = run(t, NewRenderCmd(app), "", "--terminal", "--width", "40", filepath.Join(dir, "a.md"))
	require.NoError(t, err)
	assert.Contains(t, out, "Hello")
	assert.NotContains(t, out, "<h1")
}

func TestTocCmd(t *testing.T) {
	app := newTestApp(t)
	dir := writeDocs(t, map[string]string{"a.md": "# Title\n\n```\n# not a heading\n```\n\n## Part\n"})
	path := filepath.Join(dir, "a.md")

	out, err := run(t, NewTocCmd(app), "", path)
	require.NoError(t, err)
	assert.Contains(t, out, outline.Header)
	assert.Contains(t, out, "- [Title](#title)\n  - [Part](#part)\n")
	assert.NotContains(t, out, "not a heading")

	out, err = run(t, NewTocCmd(app), "", "--json", path)
	require.NoError(t, err)
	var entries []outline.Entry
	require.NoError(t, json.Unmarshal([]byte(out), &entries))
	assert.Equal(t, []outline.Entry{
		{Level: 1, Title: "Title", Slug: "title"},
		{Level: 2, Title: "Part", Slug: "part"},
	}, entries)

	_, err = run(t, NewTocCmd(app), "", "--insert", path)
	require.NoError(t, err)
	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(string(content), "- [Part](#part)\n"))
}

func TestNewCmd(t *testing.T) {
	app := newTestApp(t)
	dir := writeDocs(t, map[string]string{"a.md": "# A"})

	out, err := run(t, NewNewCmd(app), "", "--stdin=false", "-d", dir)
	require.NoError(t, err)
	assert.Contains(t, out, filepath.Join(dir, "Untitled.md"))

	_, err = run(t, NewNewCmd(app), "", "--stdin=false", "-d", dir)
	assert.ErrorIs(t, err, service.ErrExists)

	_, err = run(t, NewNewCmd(app), "", "--stdin=false", "-d", dir, "-T", "api", "endpoint")
	require.NoError(t, err)
	content, err := os.ReadFile(filepath.Join(dir, "endpoint.md"))
	require.NoError(t, err)
	assert.Contains(t, string(content), "**GET**")

	_, err = run(t, NewNewCmd(app), "piped text", "--stdin", "-d", dir, "idea")
	require.NoError(t, err)
	content, err = os.ReadFile(filepath.Join(dir, "idea.md"))
	require.NoError(t, err)
	assert.Equal(t, "piped text", string(content))
}

func TestNewCmdWithFrontmatter(t *testing.T) {
	app := newTestApp(t)
	dir := writeDocs(t, map[string]string{"a.md": "# A"})

	_, err := run(t, NewNewCmd(app), "", "--stdin=false", "-d", dir, "--meta", "--tag", "ops", "-T", "note", "deploy")
	require.NoError(t, err)

	content, err := os.ReadFile(filepath.Join(dir, "deploy.md"))
	require.NoError(t, err)
	fm, body, err := frontmatter.Parse(string(content))
	require.NoError(t, err)
	require.NotNil(t, fm)
	assert.Equal(t, "deploy", fm.Title)
	assert.Equal(t, []string{"ops"}, fm.Tags)
	assert.NotEmpty(t, fm.Created)
	assert.Contains(t, body, "[!NOTE]")

	out, err := run(t, NewSearchCmd(app), "", "-d", dir, "ops")
	require.NoError(t, err)
	assert.Contains(t, out, "deploy")
}

func TestRenameCmd(t *testing.T) {
	app := newTestApp(t)
	dir := writeDocs(t, map[string]string{"draft.md": "# Draft"})

	out, err := run(t, NewRenameCmd(app), "", filepath.Join(dir, "draft.md"), "final")
	require.NoError(t, err)
	assert.Equal(t, "Renamed to final.md\n", out)
	assert.FileExists(t, filepath.Join(dir, "final.md"))
	assert.NoFileExists(t, filepath.Join(dir, "draft.md"))
}

func TestDeleteCmd(t *testing.T) {
	tests := []struct {
		name    string
		stdin   string
		args    []string
		deleted bool
	}{
		{"answer yes", "y\n", nil, true},
		{"answer no", "n\n", nil, false},
		{"no answer", "", nil, false},
		{"yes flag", "", []string{"--yes"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newTestApp(t)
			dir := writeDocs(t, map[string]string{"old.md": "# Old", "keep.md": "# Keep"})
			path := filepath.Join(dir, "old.md")

			out, err := run(t, NewDeleteCmd(app), tt.stdin, append(tt.args, path)...)
			require.NoError(t, err)
			if tt.deleted {
				assert.NoFileExists(t, path)
				assert.Contains(t, out, "Deleted old.md")
			} else {
				assert.FileExists(t, path)
				assert.Contains(t, out, "Cancelled")
			}
		})
	}
}

func TestDeleteCmdRefusesDirectory(t *testing.T) {
	app := newTestApp(t)
	dir := writeDocs(t, map[string]string{"sub/a.md": "# A"})

	_, err := run(t, NewDeleteCmd(app), "", "-y", filepath.Join(dir, "sub"))
	assert.Error(t, err)
	assert.DirExists(t, filepath.Join(dir, "sub"))
}

func TestSearchCmd(t *testing.T) {
	app := newTestApp(t)
	dir := writeDocs(t, map[string]string{
		"deploy.md": "# Deploy\n\nkubernetes rollout",
		"other.md":  "# Other\n\nnothing here",
	})

	out, err := run(t, NewSearchCmd(app), "", "-d", dir, "kubernetes")
	require.NoError(t, err)
	assert.Contains(t, out, "Found 1 results")
	assert.Contains(t, out, "Deploy")

	out, err = run(t, NewSearchCmd(app), "", "-d", dir, "zebra")
	require.NoError(t, err)
	assert.Equal(t, "No results found\n", out)
}

func TestTemplatesCmd(t *testing.T) {
	out, err := run(t, NewTemplatesCmd(), "")
	require.NoError(t, err)
	assert.Contains(t, out, "NAME")
	assert.Contains(t, out, "api")
	assert.Contains(t, out, "checklist")
}

func TestVersionCmd(t *testing.T) {
	out, err := run(t, NewVersionCmd(), "", "--json")
	require.NoError(t, err)
	var info VersionInfo
	require.NoError(t, json.Unmarshal([]byte(out), &info))
	assert.Equal(t, Version, info.Version)
}
