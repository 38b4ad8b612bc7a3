package cmd

import (
	"bufio"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
)

func NewDeleteCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:     "delete <file>",
		Aliases: []string{"rm"},
		Short:   "Delete a document",
		Long: `Delete a document after confirmation. Directories are refused.

Examples:
  codedocs delete notes/old.md      # Asks before deleting
  codedocs delete -y notes/old.md   # No prompt`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			abs, err := filepath.Abs(args[0])
			if err != nil {
				return fmt.Errorf("resolve %s: %w", args[0], err)
			}
			session, err := app.OpenSession(ctx, filepath.Dir(abs))
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			session.RequestDelete(abs)
			if !yes {
				fmt.Fprintf(out, "Delete %s? [y/N] ", abs)
				answer, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
				answer = strings.ToLower(strings.TrimSpace(answer))
				if answer != "y" && answer != "yes" {
					session.Cancel()
					fmt.Fprintln(out, "Cancelled")
					return nil
				}
			}

			if err := session.Confirm(ctx, ""); err != nil {
				return err
			}
			fmt.Fprintln(out, session.Snapshot().Notice.Message)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Delete without asking")

	return cmd
}
