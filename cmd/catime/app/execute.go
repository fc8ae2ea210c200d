package app

import (
	"context"
	"os"

	"github.com/spf13/cobra"
)

// Execute runs the catime CLI application with the given arguments.
// This is the main entry point called from main.go.
func (a *App) Execute(ctx context.Context, args []string) error {
	rootCmd := a.createRootCommand()
	rootCmd.SetArgs(args)
	return rootCmd.ExecuteContext(ctx)
}

// createRootCommand creates the root cobra command with all subcommands.
func (a *App) createRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "catime [query]",
		Short:   "View AI-generated hourly cat images",
		Version: a.version,
		Long: `Catime publishes one AI-generated cat image every hour and keeps an
append-only catalog of every cat it has ever made.

Query the catalog by cat number, date, date plus hour, 'today',
'yesterday', or 'latest'. Without a query it prints a summary of the
catalog. The 'view' subcommand serves the local gallery in a browser.`,
		Args:              cobra.MaximumNArgs(1),
		PersistentPreRunE: a.setupCommand,
		SilenceUsage:      true,
		SilenceErrors:     true,
		RunE: func(cmd *cobra.Command, args []string) error {
			query := ""
			if len(args) > 0 {
				query = args[0]
			}
			return a.runQuery(cmd.Context(), cmd.OutOrStdout(), query)
		},
	}

	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&a.config.Verbose, "verbose", "v", false, "verbose output (shortcut for --log-level=debug)")
	rootCmd.PersistentFlags().BoolVarP(&a.config.Quiet, "quiet", "q", false, "minimal output (shortcut for --log-level=warn)")
	rootCmd.PersistentFlags().BoolVar(&a.config.NoColor, "no-color", false, "disable colored output")
	rootCmd.PersistentFlags().String("log-level", "", "log level: trace, debug, info, warn, error (overrides -v/-q)")

	// Query flags
	rootCmd.Flags().StringVar(&a.config.Repo, "repo", a.config.Repo, "GitHub repo owner/name")
	rootCmd.Flags().BoolVar(&a.config.Local, "local", false, "use the local catlist.json")
	rootCmd.Flags().BoolVar(&a.config.List, "list", false, "list all cats")

	rootCmd.SetVersionTemplate("catime {{.Version}}\n")

	a.registerCommands(rootCmd)

	return rootCmd
}

// setupCommand is called before any command runs.
func (a *App) setupCommand(cmd *cobra.Command, _ []string) error {
	logLevel, err := cmd.Flags().GetString("log-level")
	if err != nil {
		logLevel = ""
	}
	a.config.UpdateFromFlags(a.config.Verbose, a.config.Quiet, a.config.NoColor, logLevel)

	// Reinitialize logger with updated config
	logger := NewLogger(a.config)
	a.logger = &logger

	return nil
}

// registerCommands registers all subcommands with the root command.
func (a *App) registerCommands(rootCmd *cobra.Command) {
	rootCmd.AddCommand(a.NewGenerateCommand())
	rootCmd.AddCommand(a.NewViewCommand())
	rootCmd.AddCommand(a.NewVersionCommand())
}

// ExitOnError is a helper that prints an error and exits with status 1.
// This is meant to be used in main.go for top-level error handling.
func ExitOnError(err error) {
	if err != nil {
		_, _ = os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}
}
