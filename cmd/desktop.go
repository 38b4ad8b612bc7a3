package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/mattsolo1/codedocs/cmd/config"
	"github.com/mattsolo1/codedocs/internal/desktop"
)

// NewDesktopCmd creates the `codedocs desktop` command.
func NewDesktopCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "desktop [folder]",
		Short: "Open the desktop editor window",
		Long: `Open the desktop editor with a document tree, an editor and a rendered
preview. Without a folder the window starts empty and the folder is chosen
with the native dialog.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var root string
			if len(args) > 0 {
				abs, err := filepath.Abs(args[0])
				if err != nil {
					return fmt.Errorf("resolve %s: %w", args[0], err)
				}
				root = abs
			}

			logger := logrus.NewEntry(app.Logger)
			bridge := desktop.New(app.Service, config.SessionConfig(app.Logger, nil), desktop.Options{
				Root:   root,
				Watch:  config.WatchEnabled(),
				Logger: logger,
			})
			if err := desktop.Run(bridge); err != nil {
				return fmt.Errorf("error running desktop app: %w", err)
			}
			return nil
		},
	}
	return cmd
}
