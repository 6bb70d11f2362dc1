package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"toolcatalog/internal/app"
	"toolcatalog/internal/infra/config"
)

type cliOptions struct {
	configPath string
	envFile    string
	logDev     bool
	logger     *zap.Logger
}

func newRootCommand() *cobra.Command {
	opts := cliOptions{
		envFile: ".env",
		logger:  zap.NewNop(),
	}

	root := &cobra.Command{
		Use:           "toolcatalog",
		Short:         "Tool catalog API with chat and photo identification relays",
		Version:       app.Version + " (" + app.Build + ")",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			return opts.setup()
		},
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			_ = opts.logger.Sync()
		},
	}

	root.PersistentFlags().StringVar(&opts.configPath, "config", "", "path to an optional YAML settings file")
	root.PersistentFlags().StringVar(&opts.envFile, "env-file", opts.envFile, "dotenv file loaded before reading the environment")
	root.PersistentFlags().BoolVar(&opts.logDev, "log-dev", false, "human readable development logging")

	root.AddCommand(
		newServeCmd(&opts),
		newValidateCmd(&opts),
		newToolsCmd(&opts),
	)

	return root
}

func (o *cliOptions) setup() error {
	var (
		logger *zap.Logger
		err    error
	)
	if o.logDev {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		return err
	}
	o.logger = logger

	loaded, err := config.LoadDotEnv(o.envFile)
	if err != nil {
		return err
	}
	if loaded {
		o.logger.Debug("environment file loaded", zap.String("path", o.envFile))
	}
	return nil
}

func signalAwareContext(parent context.Context) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(parent)

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		defer signal.Stop(signals)
		select {
		case <-signals:
			cancel()
		case <-ctx.Done():
		}
	}()

	return ctx, cancel
}
