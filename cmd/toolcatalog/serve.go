package main

import (
	"github.com/spf13/cobra"

	"toolcatalog/internal/app"
	"toolcatalog/internal/domain"
	"toolcatalog/internal/infra/config"
)

func newServeCmd(opts *cliOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the catalog API server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			settings, err := config.Load(config.LoadOptions{
				ConfigPath: opts.configPath,
				Flags:      cmd.Flags(),
				Logger:     opts.logger,
			})
			if err != nil {
				return err
			}

			ctx, cancel := signalAwareContext(cmd.Context())
			defer cancel()

			application := app.New(opts.logger)
			return application.Serve(ctx, app.ServeConfig{Settings: settings})
		},
	}

	cmd.Flags().Int("port", domain.DefaultPort, "port for the API server")
	cmd.Flags().String("host", domain.DefaultListenHost, "interface for the API server")
	addCatalogFlag(cmd)
	cmd.Flags().Bool("watch", domain.DefaultWatchCatalog, "watch the catalog file and report edits")
	cmd.Flags().Bool("metrics", domain.DefaultMetricsEnabled, "expose Prometheus metrics")

	return cmd
}

func addCatalogFlag(cmd *cobra.Command) {
	cmd.Flags().String("catalog", domain.DefaultCatalogPath, "path to the catalog JSON file")
}

// resolveCatalogPath applies the same precedence as serve: flag, then
// environment and config file, then the default.
func resolveCatalogPath(cmd *cobra.Command, opts *cliOptions) (string, error) {
	settings, err := config.Load(config.LoadOptions{
		ConfigPath: opts.configPath,
		Flags:      cmd.Flags(),
		Logger:     opts.logger,
	})
	if err != nil {
		return "", err
	}
	return settings.Catalog.Path, nil
}
