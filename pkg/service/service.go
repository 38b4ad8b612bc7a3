package service

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"

	"github.com/mattsolo1/codedocs/pkg/models"
	"github.com/mattsolo1/codedocs/pkg/search"
	"github.com/mattsolo1/codedocs/pkg/tree"
)

var (
	ErrInvalidFolder = errors.New("the selected path is not a valid folder")
	ErrNoDocuments   = tree.ErrNoDocuments
	ErrInvalidName   = errors.New("invalid document name")
	ErrExists        = errors.New("a document with that name already exists")
	ErrNotDocument   = errors.New("not a document")
)

// Service is the filesystem side of the workspace: it lists, reads and
// writes documents and keeps the search index in step with them.
type Service struct {
	fs      afero.Fs
	builder *tree.Builder
	Index   *search.Index
	Config  *Config
	log     *logrus.Entry
}

// Config holds service configuration
type Config struct {
	// DataDir holds the search index. Empty keeps the index in memory.
	// sqlite opens the index by path, so DataDir always lives on the OS
	// filesystem, whatever Fs is set to.
	DataDir string
	// Fs overrides the filesystem, mainly for tests. Nil means the OS.
	Fs     afero.Fs
	Logger *logrus.Entry
}

// New creates a new document service
func New(config *Config) (*Service, error) {
	if config == nil {
		config = &Config{}
	}
	fs := config.Fs
	if fs == nil {
		fs = afero.NewOsFs()
	}
	log := config.Logger
	if log == nil {
		logger := logrus.New()
		logger.SetOutput(os.Stderr)
		logger.SetLevel(logrus.WarnLevel)
		log = logrus.NewEntry(logger)
	}

	indexPath := search.MemoryPath
	if config.DataDir != "" {
		// The index is opened by sqlite, never through fs.
		if err := os.MkdirAll(config.DataDir, 0755); err != nil {
			return nil, fmt.Errorf("ensure data dir: %w", err)
		}
		indexPath = filepath.Join(config.DataDir, "index.db")
	}
	index, err := search.NewIndex(indexPath)
	if err != nil {
		return nil, fmt.Errorf("create index: %w", err)
	}

	return &Service{
		fs:      fs,
		builder: tree.NewBuilder(fs, tree.WithLogger(log.WithField("component", "tree"))),
		Index:   index,
		Config:  config,
		log:     log.WithField("component", "service"),
	}, nil
}

// ListDocuments builds the document tree of folder and refreshes the search
// index with its documents.
func (s *Service) ListDocuments(ctx context.Context, folder string) ([]*tree.Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if ok, err := afero.DirExists(s.fs, folder); err != nil || !ok {
		return nil, fmt.Errorf("%w: %s", ErrInvalidFolder, folder)
	}

	entries := s.builder.Build(folder)
	s.reindex(entries)
	if len(entries) == 0 {
		return entries, ErrNoDocuments
	}
	return entries, nil
}

// ReadDocument returns the content of the document at path.
func (s *Service) ReadDocument(ctx context.Context, path string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	content, err := afero.ReadFile(s.fs, path)
	if err != nil {
		return "", fmt.Errorf("read document: %w", err)
	}
	return string(content), nil
}

// SaveDocument writes content to path, creating the file if needed.
func (s *Service) SaveDocument(ctx context.Context, path, content string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := afero.WriteFile(s.fs, path, []byte(content), 0644); err != nil {
		return fmt.Errorf("save document: %w", err)
	}
	s.indexPath(path)
	return nil
}

// CreateDocument creates an empty document called name inside folder and
// returns its path. The document extension is appended when missing.
func (s *Service) CreateDocument(ctx context.Context, folder, name string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	name, err := documentName(name)
	if err != nil {
		return "", err
	}
	if ok, err := afero.DirExists(s.fs, folder); err != nil || !ok {
		return "", fmt.Errorf("create document: %w: %s", ErrInvalidFolder, folder)
	}

	path := filepath.Join(folder, name)
	f, err := s.fs.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			return "", fmt.Errorf("create document: %w: %s", ErrExists, name)
		}
		return "", fmt.Errorf("create document: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("create document: %w", err)
	}

	s.indexPath(path)
	return path, nil
}

// RenameDocument renames the document at oldPath to newName within the same
// directory and returns the new path. Existing files are never overwritten.
func (s *Service) RenameDocument(ctx context.Context, oldPath, newName string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	name, err := documentName(newName)
	if err != nil {
		return "", err
	}
	info, err := s.fs.Stat(oldPath)
	if err != nil {
		return "", fmt.Errorf("rename document: %w", err)
	}
	if info.IsDir() {
		return "", fmt.Errorf("rename document: %w: %s", ErrNotDocument, oldPath)
	}

	newPath := filepath.Join(filepath.Dir(oldPath), name)
	if newPath == oldPath {
		return oldPath, nil
	}
	if exists, _ := afero.Exists(s.fs, newPath); exists {
		return "", fmt.Errorf("rename document: %w: %s", ErrExists, name)
	}
	if err := s.fs.Rename(oldPath, newPath); err != nil {
		return "", fmt.Errorf("rename document: %w", err)
	}

	if err := s.Index.RemoveDocument(oldPath); err != nil {
		s.log.WithError(err).Warn("failed to drop renamed document from index")
	}
	s.indexPath(newPath)
	return newPath, nil
}

// DeleteDocument removes the document at path. Directories are refused.
func (s *Service) DeleteDocument(ctx context.Context, path string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	info, err := s.fs.Stat(path)
	if err != nil {
		return fmt.Errorf("delete document: %w", err)
	}
	if info.IsDir() {
		return fmt.Errorf("delete document: %w: %s", ErrNotDocument, path)
	}
	if err := s.fs.Remove(path); err != nil {
		return fmt.Errorf("delete document: %w", err)
	}

	if err := s.Index.RemoveDocument(path); err != nil {
		s.log.WithError(err).Warn("failed to drop deleted document from index")
	}
	return nil
}

// SearchDocuments searches the documents indexed by the last listing.
func (s *Service) SearchDocuments(ctx context.Context, query string, limit int) ([]*models.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	results, err := s.Index.Search(query, &search.Options{Limit: limit})
	if err != nil {
		return nil, fmt.Errorf("search index: %w", err)
	}
	return results, nil
}

// Close closes the service
func (s *Service) Close() error {
	if s.Index != nil {
		if err := s.Index.Close(); err != nil {
			return err
		}
	}
	return nil
}

func (s *Service) reindex(entries []*tree.Entry) {
	var docs []*models.Document
	for _, path := range tree.Documents(entries) {
		doc, err := ParseDocument(s.fs, path)
		if err != nil {
			s.log.WithError(err).WithField("path", path).Debug("skipping unparsable document")
			continue
		}
		docs = append(docs, doc)
	}
	if err := s.Index.Replace(docs); err != nil {
		s.log.WithError(err).Warn("failed to rebuild search index")
	}
}

func (s *Service) indexPath(path string) {
	doc, err := ParseDocument(s.fs, path)
	if err == nil {
		err = s.Index.IndexDocument(doc)
	}
	if err != nil {
		s.log.WithError(err).WithField("path", path).Warn("failed to index document")
	}
}

// documentName validates a user supplied file name and appends the document
// extension when it is missing.
func documentName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return "", fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	if tree.Extension(name) != tree.DocumentExtension {
		name += "." + tree.DocumentExtension
	}
	return name, nil
}
