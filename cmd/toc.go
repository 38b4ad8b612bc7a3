package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mattsolo1/codedocs/pkg/outline"
)

func NewTocCmd(app *App) *cobra.Command {
	var (
		insert     bool
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:   "toc <file>",
		Short: "Print or insert a document's outline",
		Long: `Print the outline of a document as a linked index. Headings inside
fenced code blocks are ignored.

Examples:
  codedocs toc guide.md           # Print the index block
  codedocs toc --insert guide.md  # Append the index to the document
  codedocs toc --json guide.md    # Outline entries as JSON`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			session, path, err := app.SelectDocument(ctx, args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			entries := session.Outline()
			switch {
			case insert:
				session.InsertOutline()
				if err := session.Save(ctx); err != nil {
					return err
				}
				fmt.Fprintf(out, "Inserted index with %d entries into %s\n", len(entries), path)
			case jsonOutput:
				if entries == nil {
					entries = []outline.Entry{}
				}
				data, err := json.MarshalIndent(entries, "", "  ")
				if err != nil {
					return fmt.Errorf("failed to marshal outline to JSON: %w", err)
				}
				fmt.Fprintln(out, string(data))
			default:
				fmt.Fprint(out, outline.Block(entries))
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&insert, "insert", "i", false, "Append the index to the document and save it")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output outline entries as JSON")

	return cmd
}
