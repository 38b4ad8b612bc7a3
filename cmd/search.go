package cmd

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func NewSearchCmd(app *App) *cobra.Command {
	var (
		dir         string
		searchLimit int
	)

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search documents",
		Long: `Search the documents below a folder by title, content and tags.

Examples:
  codedocs search "authentication"        # Search the current folder
  codedocs search -d ~/notes todo --limit 5`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			session, err := app.OpenSession(ctx, dir)
			if err != nil {
				return err
			}

			query := strings.Join(args, " ")
			results, err := session.Search(ctx, query)
			if err != nil {
				return err
			}
			if searchLimit > 0 && len(results) > searchLimit {
				results = results[:searchLimit]
			}

			out := cmd.OutOrStdout()
			if len(results) == 0 {
				fmt.Fprintln(out, "No results found")
				return nil
			}

			fmt.Fprintf(out, "Found %d results:\n\n", len(results))
			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			for i, doc := range results {
				fmt.Fprintf(w, "%d.\t%s\t%s\n", i+1, doc.Title, doc.Path)
			}
			return w.Flush()
		},
	}

	cmd.Flags().StringVarP(&dir, "dir", "d", ".", "Folder to search")
	cmd.Flags().IntVar(&searchLimit, "limit", 20, "Maximum results")

	return cmd
}
