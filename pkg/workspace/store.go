package workspace

import (
	"context"
	"errors"

	"github.com/mattsolo1/codedocs/pkg/models"
	"github.com/mattsolo1/codedocs/pkg/tree"
)

var (
	// ErrCancelled is returned by a FolderPicker when the user declines.
	// It is not reported as a failure.
	ErrCancelled = errors.New("folder selection cancelled")

	ErrNoFolder          = errors.New("no folder is open")
	ErrNothingPending    = errors.New("nothing to confirm")
	ErrNameRequired      = errors.New("a new name is required")
	ErrUnknownTemplate   = errors.New("unknown template")
	ErrSearchUnavailable = errors.New("search is not available")
	// ErrMalformedResponse marks a collaborator reply that could not be
	// decoded into the expected shape.
	ErrMalformedResponse = errors.New("malformed response")
)

// Store is the filesystem collaborator the session drives. Every call may
// block; the session never holds its lock while one is in flight.
type Store interface {
	ListDocuments(ctx context.Context, folder string) ([]*tree.Entry, error)
	ReadDocument(ctx context.Context, path string) (string, error)
	SaveDocument(ctx context.Context, path, content string) error
	CreateDocument(ctx context.Context, folder, name string) (string, error)
	RenameDocument(ctx context.Context, oldPath, newName string) (string, error)
	DeleteDocument(ctx context.Context, path string) error
}

// Searcher is implemented by stores that index their documents.
type Searcher interface {
	SearchDocuments(ctx context.Context, query string, limit int) ([]*models.Document, error)
}

// FolderPicker asks the user for a folder. Implementations return
// ErrCancelled when the user declines.
type FolderPicker interface {
	PickFolder(ctx context.Context) (string, error)
}

// PickerFunc adapts a function to FolderPicker.
type PickerFunc func(ctx context.Context) (string, error)

func (f PickerFunc) PickFolder(ctx context.Context) (string, error) {
	return f(ctx)
}

// StaticPicker always picks the same folder. An empty value behaves like a
// cancelled dialog.
type StaticPicker string

func (p StaticPicker) PickFolder(context.Context) (string, error) {
	if p == "" {
		return "", ErrCancelled
	}
	return string(p), nil
}
