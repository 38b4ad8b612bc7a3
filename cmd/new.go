package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/mattsolo1/codedocs/cmd/config"
	"github.com/mattsolo1/codedocs/pkg/frontmatter"
	"github.com/mattsolo1/codedocs/pkg/tree"
)

func NewNewCmd(app *App) *cobra.Command {
	var (
		dir       string
		template  string
		fromStdin bool
		meta      bool
		tags      []string
	)

	cmd := &cobra.Command{
		Use:   "new [name]",
		Short: "Create a new document",
		Long: `Create a new markdown document in a folder. Without a name the
configured default (new_document_name) is used. Existing files are never
overwritten.

Examples:
  codedocs new                         # Untitled.md in the current folder
  codedocs new "meeting notes"         # meeting notes.md
  codedocs new -d docs api -T api      # docs/api.md seeded from a template
  codedocs new --meta --tag ops deploy # deploy.md with a frontmatter block

  # From stdin (auto-detected):
  echo "Quick thought" | codedocs new idea`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			// Auto-detect stdin if not explicitly set
			if !cmd.Flags().Changed("stdin") {
				stat, err := os.Stdin.Stat()
				if err == nil && (stat.Mode()&os.ModeCharDevice) == 0 {
					fromStdin = true
				}
			}

			name := ""
			if len(args) > 0 {
				name = args[0]
			}

			session, err := app.OpenSession(ctx, dir)
			if err != nil {
				return err
			}
			path, err := session.Create(ctx, name)
			if err != nil {
				return err
			}

			if template != "" || fromStdin || meta {
				if err := session.Select(ctx, path); err != nil {
					return err
				}
				if template != "" {
					if err := session.InsertTemplate(template); err != nil {
						return err
					}
				}
				if fromStdin {
					content, err := io.ReadAll(cmd.InOrStdin())
					if err != nil {
						return fmt.Errorf("read stdin: %w", err)
					}
					session.Edit(appendText(session.Snapshot().Buffer, string(content)))
				}
				if meta {
					now := frontmatter.FormatTimestamp(time.Now())
					fm := &frontmatter.Frontmatter{
						Title:    strings.TrimSuffix(filepath.Base(path), "."+tree.DocumentExtension),
						Tags:     tags,
						Created:  now,
						Modified: now,
					}
					session.Edit(frontmatter.BuildContent(fm, session.Snapshot().Buffer))
				}
				if err := session.Save(ctx); err != nil {
					return err
				}
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Created: %s\n", path)
			return nil
		},
	}

	cmd.Flags().StringVarP(&dir, "dir", "d", ".", "Folder to create the document in")
	cmd.Flags().StringVarP(&template, "template", "T", "", "Seed the document from a template")
	cmd.Flags().BoolVar(&fromStdin, "stdin", false, "Read content from stdin (auto-detected when piped)")
	cmd.Flags().BoolVarP(&meta, "meta", "m", false, "Start the document with a frontmatter block")
	cmd.Flags().StringSliceVar(&tags, "tag", nil, "Frontmatter tags (with --meta)")
	_ = cmd.RegisterFlagCompletionFunc("template", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		var names []string
		for _, t := range config.Templates() {
			names = append(names, t.Name)
		}
		return names, cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}

func appendText(buffer, text string) string {
	if buffer != "" && text != "" {
		buffer += "\n"
	}
	return buffer + text
}
