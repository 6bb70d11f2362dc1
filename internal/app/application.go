package app

import (
	"context"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"toolcatalog/internal/infra/assistant"
	"toolcatalog/internal/infra/catalog"
	"toolcatalog/internal/infra/httpapi"
	"toolcatalog/internal/infra/identify"
	"toolcatalog/internal/infra/telemetry"
)

// Application wires the catalog service and its background loops.
type Application struct {
	ctx        context.Context
	cfg        ServeConfig
	logger     *zap.Logger
	registry   *prometheus.Registry
	health     *telemetry.HealthTracker
	watcher    *catalog.Watcher
	assistant  *assistant.Assistant
	identifier *identify.Identifier
	server     *httpapi.Server
}

// ApplicationOptions captures dependencies and settings for Application.
type ApplicationOptions struct {
	Context     context.Context
	ServeConfig ServeConfig
	Logger      *zap.Logger
	Registry    *prometheus.Registry
	Health      *telemetry.HealthTracker
	Watcher     *catalog.Watcher
	Assistant   *assistant.Assistant
	Identifier  *identify.Identifier
	Server      *httpapi.Server
}

// NewApplication constructs the application runtime.
func NewApplication(opts ApplicationOptions) *Application {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Application{
		ctx:        ctx,
		cfg:        opts.ServeConfig,
		logger:     logger,
		registry:   opts.Registry,
		health:     opts.Health,
		watcher:    opts.Watcher,
		assistant:  opts.Assistant,
		identifier: opts.Identifier,
		server:     opts.Server,
	}
}

// Run starts the API server and background loops and blocks until the
// context is canceled or the API server fails.
func (a *Application) Run() error {
	settings := a.cfg.Settings
	a.logger.Info("tool catalog starting",
		zap.String("version", Version),
		zap.String("build", Build),
		zap.String("catalog", settings.Catalog.Path),
		zap.String("addr", a.server.Addr()),
		zap.Bool("chat_enabled", a.assistant != nil && a.assistant.Configured()),
		zap.Bool("identify_enabled", a.identifier != nil && a.identifier.Configured()),
	)

	ctx, cancel := context.WithCancel(a.ctx)
	defer cancel()

	var wg sync.WaitGroup
	if a.watcher != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := a.watcher.Run(ctx); err != nil {
				a.logger.Warn("catalog watcher stopped", zap.Error(err))
			}
		}()
	}

	if _, dedicated := resolveObservability(settings.Observability, a.registry, a.health); dedicated != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := telemetry.StartHTTPServer(ctx, *dedicated, a.logger); err != nil {
				a.logger.Warn("observability server stopped", zap.Error(err))
			}
		}()
	}

	err := a.server.Run(ctx)
	cancel()
	wg.Wait()
	return err
}
