package tree

import "errors"

// ErrNoDocuments reports a folder whose tree came out empty. Builders never
// return it; stores listing a folder do.
var ErrNoDocuments = errors.New("no markdown documents found in the selected folder")

// DocumentExtension is the only file extension the workspace treats as a
// document. The comparison is case-sensitive.
const DocumentExtension = "md"

// Entry represents a single node in the document tree. It can be a document
// or a directory that (transitively) contains documents.
type Entry struct {
	Name  string `json:"name"`
	Path  string `json:"path"`
	IsDir bool   `json:"is_dir"`

	// Hierarchy. Always empty for documents.
	Children []*Entry `json:"children"`
}

// Walk visits every entry depth-first in tree order. Returning false from fn
// stops the walk.
func Walk(entries []*Entry, fn func(e *Entry, depth int) bool) {
	walk(entries, 0, fn)
}

func walk(entries []*Entry, depth int, fn func(e *Entry, depth int) bool) bool {
	for _, e := range entries {
		if !fn(e, depth) {
			return false
		}
		if e.IsDir && !walk(e.Children, depth+1, fn) {
			return false
		}
	}
	return true
}

// Documents returns the paths of all document entries in tree order.
func Documents(entries []*Entry) []string {
	var paths []string
	Walk(entries, func(e *Entry, _ int) bool {
		if !e.IsDir {
			paths = append(paths, e.Path)
		}
		return true
	})
	return paths
}

// Find returns the entry with the given path, or nil.
func Find(entries []*Entry, path string) *Entry {
	var found *Entry
	Walk(entries, func(e *Entry, _ int) bool {
		if e.Path == path {
			found = e
			return false
		}
		return true
	})
	return found
}
