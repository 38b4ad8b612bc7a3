package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
)

func NewRenameCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rename <file> <new-name>",
		Short: "Rename a document in place",
		Long: `Rename a document within its folder. The .md extension is added when
missing and an existing file is never overwritten.

Examples:
  codedocs rename notes/draft.md final
  codedocs rename notes/draft.md "release plan.md"`,
		Args: cobra.ExactArgs(2),
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

			session.RequestRename(abs)
			if err := session.Confirm(ctx, args[1]); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), session.Snapshot().Notice.Message)
			return nil
		},
	}

	return cmd
}
