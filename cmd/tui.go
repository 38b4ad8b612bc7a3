package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/mattsolo1/codedocs/cmd/config"
	"github.com/mattsolo1/codedocs/internal/tui/browser"
	"github.com/mattsolo1/codedocs/pkg/workspace"
)

// NewTuiCmd creates the `codedocs tui` command.
func NewTuiCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tui [folder]",
		Short: "Browse, edit and preview documents in an interactive TUI",
		Long: `Launch an interactive Terminal User Interface for a documentation folder.
The left pane shows the document tree, the middle pane edits the selected
document and the right pane shows a live preview. Defaults to the current
directory.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			// Check for TTY
			if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
				return fmt.Errorf("TUI mode requires an interactive terminal")
			}

			folder := "."
			if len(args) > 0 {
				folder = args[0]
			}
			root, err := filepath.Abs(folder)
			if err != nil {
				return fmt.Errorf("resolve %s: %w", folder, err)
			}

			session := app.NewSession(workspace.StaticPicker(root))
			model := browser.New(session, browser.Options{
				Root:         root,
				PreviewStyle: config.PreviewStyle(),
				Watch:        config.WatchEnabled(),
				Logger:       logrus.NewEntry(app.Logger),
			})

			p := tea.NewProgram(model, tea.WithAltScreen())
			final, err := p.Run()
			if m, ok := final.(browser.Model); ok {
				m.Close()
			} else {
				model.Close()
			}
			if err != nil {
				return fmt.Errorf("error running TUI: %w", err)
			}
			return nil
		},
	}
	return cmd
}
