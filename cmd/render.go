package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mattsolo1/codedocs/cmd/config"
	"github.com/mattsolo1/codedocs/internal/preview"
)

func NewRenderCmd(app *App) *cobra.Command {
	var (
		terminal bool
		width    int
	)

	cmd := &cobra.Command{
		Use:   "render <file>",
		Short: "Render a document",
		Long: `Render a markdown document to HTML, or to styled terminal output
with --terminal.

Examples:
  codedocs render README.md > readme.html
  codedocs render --terminal docs/guide.md`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			content, err := app.Service.ReadDocument(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if terminal {
				r := preview.New(config.PreviewStyle())
				fmt.Fprintln(out, r.Render(content, width))
				return nil
			}
			fmt.Fprint(out, config.Pipeline().Render(content))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&terminal, "terminal", "t", false, "Render for the terminal instead of HTML")
	cmd.Flags().IntVarP(&width, "width", "w", 80, "Wrap width for terminal output")

	return cmd
}
