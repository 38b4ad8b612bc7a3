package models

import "time"

// Document is a markdown file of the open folder, as seen by the search
// index and the info views.
type Document struct {
	Path       string    `json:"path"`
	Name       string    `json:"name"`
	Title      string    `json:"title"`
	Content    string    `json:"content,omitempty"`
	Tags       []string  `json:"tags"`
	ModifiedAt time.Time `json:"modified_at"`
	WordCount  int       `json:"word_count"`
	HasTodos   bool      `json:"has_todos"`

	// Snippet is filled by search results with the matched fragment.
	Snippet string `json:"snippet,omitempty"`
}
