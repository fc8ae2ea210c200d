package app

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yazelin/catime"
	"github.com/yazelin/catime/internal/gemini"
	"github.com/yazelin/catime/internal/ghcli"
	"github.com/yazelin/catime/internal/gitrepo"
	"github.com/yazelin/catime/internal/server"
)

// NewGenerateCommand creates the generate command, which produces and
// publishes this hour's cat. It is the entry point the hourly workflow
// invokes.
func (a *App) NewGenerateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "generate",
		Short: "Generate this hour's cat and publish it",
		Long: `Generate runs the full hourly pipeline: gather news inspiration,
invent an idea, render an image prompt, generate the image, upload it as
a release asset, comment on the monthly gallery issue, and push the
updated catalog.

Requires GEMINI_API_KEY (or GOOGLE_API_KEY) and an authenticated gh CLI.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			gen, err := gemini.NewClient(ctx, a.config.GeminiAPIKey)
			if err != nil {
				return err
			}
			gh := ghcli.NewClient(a.config.Repo)
			repo := gitrepo.Open(a.config.CatalogDir).WithLogger(a.logger)

			client, err := catime.New(
				catime.WithDir(a.config.CatalogDir),
				catime.WithWorkDir(a.config.WorkDir),
				catime.WithStylesPath(a.config.StylesFile),
				catime.WithTextGenerator(gen),
				catime.WithImageGenerator(gen),
				catime.WithReleases(gh),
				catime.WithIssues(gh),
				catime.WithPusher(repo),
				catime.WithLogger(a.logger),
			)
			if err != nil {
				return err
			}
			return client.Run(ctx)
		},
	}
}

// NewViewCommand creates the view command, which serves the local gallery.
func (a *App) NewViewCommand() *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "view",
		Short: "Serve the cat gallery locally in a browser",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			srv := server.New(a.config.DocsDir, port).WithLogger(a.logger)
			fmt.Fprintf(cmd.OutOrStdout(), "Serving cat gallery at %s\n", srv.URL())
			return srv.Serve(cmd.Context())
		},
	}

	cmd.Flags().IntVar(&port, "port", 8000, "port to serve the gallery on")
	return cmd
}

// NewVersionCommand creates the version command.
func (a *App) NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "catime %s (commit %s, built %s)\n", a.version, a.commit, a.date)
		},
	}
}
