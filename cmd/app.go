package cmd

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/mattsolo1/codedocs/cmd/config"
	"github.com/mattsolo1/codedocs/pkg/service"
	"github.com/mattsolo1/codedocs/pkg/workspace"
)

// App carries what the root command sets up before any subcommand runs.
type App struct {
	Service *service.Service
	Logger  *logrus.Logger
}

// NewSession creates a session backed by the app's service.
func (a *App) NewSession(picker workspace.FolderPicker) *workspace.Session {
	return workspace.New(a.Service, config.SessionConfig(a.Logger, picker))
}

// OpenSession creates a session with folder already open.
func (a *App) OpenSession(ctx context.Context, folder string) (*workspace.Session, error) {
	s := a.NewSession(workspace.StaticPicker(folder))
	if err := s.OpenFolder(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

// SelectDocument opens the folder holding path and selects the document.
func (a *App) SelectDocument(ctx context.Context, path string) (*workspace.Session, string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, "", fmt.Errorf("resolve %s: %w", path, err)
	}
	s, err := a.OpenSession(ctx, filepath.Dir(abs))
	if err != nil {
		return nil, "", err
	}
	if err := s.Select(ctx, abs); err != nil {
		return nil, "", err
	}
	return s, abs, nil
}

// Close releases the service.
func (a *App) Close() error {
	if a.Service == nil {
		return nil
	}
	return a.Service.Close()
}
