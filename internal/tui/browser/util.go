package browser

import (
	"os"
	"path/filepath"
	"strings"
)

// displayRoot shows an open folder with the home directory written as ~.
func displayRoot(root string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return root
	}
	return tildePath(root, home)
}

func tildePath(path, home string) string {
	if home == "" || home == string(filepath.Separator) {
		return path
	}
	rel, err := filepath.Rel(home, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return path
	}
	if rel == "." {
		return "~"
	}
	return filepath.Join("~", rel)
}

// displayDocument shows a document relative to the open folder, or in full
// when it lies outside it.
func displayDocument(path, root string) string {
	if root == "" {
		return path
	}
	rel, err := filepath.Rel(root, path)
	if err != nil || rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return path
	}
	return rel
}
