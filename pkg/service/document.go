package service

import (
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	"github.com/mattsolo1/codedocs/pkg/frontmatter"
	"github.com/mattsolo1/codedocs/pkg/models"
)

// ParseDocument reads a document and extracts the metadata the search index
// needs. Frontmatter is optional; a broken block is ignored.
func ParseDocument(fs afero.Fs, path string) (*models.Document, error) {
	info, err := fs.Stat(path)
	if err != nil {
		return nil, err
	}
	content, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, err
	}
	contentStr := string(content)

	doc := &models.Document{
		Path:       path,
		Name:       info.Name(),
		Title:      extractTitle(contentStr),
		Content:    contentStr,
		Tags:       []string{},
		ModifiedAt: info.ModTime(),
		WordCount:  countWords(contentStr),
		HasTodos:   containsTodos(contentStr),
	}

	fm, body, err := frontmatter.Parse(contentStr)
	if err == nil && fm != nil {
		doc.Title = extractTitle(body)
		if fm.Title != "" {
			doc.Title = fm.Title
		}
		if len(fm.Tags) > 0 {
			doc.Tags = fm.Tags
		}
		if fm.Modified != "" {
			if t, err := frontmatter.ParseTimestamp(fm.Modified); err == nil {
				doc.ModifiedAt = t
			}
		}
	}
	if doc.Title == "" {
		doc.Title = strings.TrimSuffix(info.Name(), filepath.Ext(info.Name()))
	}

	return doc, nil
}

// extractTitle gets the title from the first level one heading
func extractTitle(content string) string {
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "# ") {
			return strings.TrimSpace(strings.TrimPrefix(line, "# "))
		}
	}
	return ""
}

// countWords counts words in content
func countWords(content string) int {
	return len(strings.Fields(content))
}

// containsTodos checks if content has task list items
func containsTodos(content string) bool {
	return strings.Contains(content, "- [ ]") || strings.Contains(content, "- [x]")
}
