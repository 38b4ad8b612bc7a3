package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/mattsolo1/codedocs/cmd"
	"github.com/mattsolo1/codedocs/cmd/config"
)

func main() {
	app := &cmd.App{}

	rootCmd := &cobra.Command{
		Use:          "codedocs",
		Short:        "Browse, edit and preview a folder of markdown documentation",
		SilenceUsage: true,
	}
	config.AddGlobalFlags(rootCmd)

	rootCmd.PersistentPreRunE = func(c *cobra.Command, args []string) error {
		// This runs once before any subcommand
		config.InitConfig()

		logger, err := config.InitLogger()
		if err != nil {
			return err
		}
		app.Logger = logger

		svc, err := config.InitService(logger)
		if err != nil {
			return err
		}
		app.Service = svc
		return nil
	}
	rootCmd.PersistentPostRun = func(c *cobra.Command, args []string) {
		if err := app.Close(); err != nil && app.Logger != nil {
			app.Logger.WithError(err).Warn("failed to close service")
		}
	}

	// Add subcommands
	rootCmd.AddCommand(cmd.NewTreeCmd(app))
	rootCmd.AddCommand(cmd.NewRenderCmd(app))
	rootCmd.AddCommand(cmd.NewTocCmd(app))
	rootCmd.AddCommand(cmd.NewNewCmd(app))
	rootCmd.AddCommand(cmd.NewRenameCmd(app))
	rootCmd.AddCommand(cmd.NewDeleteCmd(app))
	rootCmd.AddCommand(cmd.NewSearchCmd(app))
	rootCmd.AddCommand(cmd.NewTemplatesCmd())
	rootCmd.AddCommand(cmd.NewTuiCmd(app))
	rootCmd.AddCommand(cmd.NewDesktopCmd(app))
	rootCmd.AddCommand(cmd.NewVersionCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
