package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/mattsolo1/codedocs/cmd/config"
)

func NewTemplatesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "templates",
		Short: "List document templates",
		Long: `List the snippets available to "codedocs new --template" and the
editors. Add your own under "templates" in the config file.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tLABEL")
			for _, t := range config.Templates() {
				fmt.Fprintf(w, "%s\t%s\n", t.Name, t.Label)
			}
			return w.Flush()
		},
	}
	return cmd
}
