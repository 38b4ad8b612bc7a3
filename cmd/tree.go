package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mattsolo1/codedocs/pkg/service"
	"github.com/mattsolo1/codedocs/pkg/tree"
)

func NewTreeCmd(app *App) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "tree [folder]",
		Short: "Show the document tree of a folder",
		Long: `Show the markdown documents below a folder. Directories without
documents are left out.

Examples:
  codedocs tree              # Current directory
  codedocs tree ~/notes      # Another folder
  codedocs tree --json docs  # Machine readable`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			folder := "."
			if len(args) > 0 {
				folder = args[0]
			}
			abs, err := filepath.Abs(folder)
			if err != nil {
				return fmt.Errorf("resolve %s: %w", folder, err)
			}

			entries, err := app.Service.ListDocuments(cmd.Context(), abs)
			if err != nil && !errors.Is(err, service.ErrNoDocuments) {
				return err
			}

			out := cmd.OutOrStdout()
			if jsonOutput {
				data, err := json.MarshalIndent(entries, "", "  ")
				if err != nil {
					return fmt.Errorf("failed to marshal tree to JSON: %w", err)
				}
				fmt.Fprintln(out, string(data))
				return nil
			}

			if len(entries) == 0 {
				fmt.Fprintln(out, "No markdown documents found")
				return nil
			}
			fmt.Fprint(out, formatTree(entries))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output the tree as JSON")

	return cmd
}

func formatTree(entries []*tree.Entry) string {
	var b strings.Builder
	tree.Walk(entries, func(e *tree.Entry, depth int) bool {
		b.WriteString(strings.Repeat("  ", depth))
		b.WriteString(e.Name)
		if e.IsDir {
			b.WriteString("/")
		}
		b.WriteString("\n")
		return true
	})
	return b.String()
}
