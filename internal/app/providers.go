package app

import (
	"context"
	"errors"

	"github.com/cloudwego/eino/components/model"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"toolcatalog/internal/domain"
	"toolcatalog/internal/infra/assistant"
	"toolcatalog/internal/infra/catalog"
	"toolcatalog/internal/infra/httpapi"
	"toolcatalog/internal/infra/identify"
	"toolcatalog/internal/infra/llm"
	"toolcatalog/internal/infra/telemetry"
)

func NewMetricsRegistry() *prometheus.Registry {
	registry := prometheus.NewRegistry()
	registry.MustRegister(prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}))
	registry.MustRegister(prometheus.NewGoCollector())
	return registry
}

func NewMetrics(registry *prometheus.Registry) domain.Metrics {
	return telemetry.NewPrometheusMetrics(registry)
}

func NewHealthTracker() *telemetry.HealthTracker {
	return telemetry.NewHealthTracker()
}

func NewCatalogLoader(logger *zap.Logger, metrics domain.Metrics) *catalog.Loader {
	return catalog.NewLoader(logger, metrics)
}

func NewCatalogSource(cfg ServeConfig, loader *catalog.Loader) *catalog.FileSource {
	return catalog.NewFileSource(loader, cfg.Settings.Catalog.Path)
}

// NewCatalogWatcher returns nil when watching is disabled.
func NewCatalogWatcher(
	cfg ServeConfig,
	loader *catalog.Loader,
	metrics domain.Metrics,
	health *telemetry.HealthTracker,
	logger *zap.Logger,
) *catalog.Watcher {
	if !cfg.Settings.Catalog.Watch {
		return nil
	}
	return catalog.NewWatcher(catalog.WatcherOptions{
		Loader:  loader,
		Path:    cfg.Settings.Catalog.Path,
		Metrics: metrics,
		Health:  health,
		Logger:  logger,
	})
}

func NewAssistant(
	ctx context.Context,
	cfg ServeConfig,
	source domain.CatalogSource,
	metrics domain.Metrics,
	logger *zap.Logger,
) (*assistant.Assistant, error) {
	settings := cfg.Settings
	chatModel, err := newOptionalModel(ctx, "chat", settings.Chat.Model, settings.Server, logger)
	if err != nil {
		return nil, err
	}
	return assistant.New(assistant.Options{
		Source:  source,
		Model:   chatModel,
		Config:  settings.Chat,
		Timeout: settings.Server.RequestTimeout(),
		Metrics: metrics,
		Logger:  logger,
	}), nil
}

func NewIdentifier(
	ctx context.Context,
	cfg ServeConfig,
	source domain.CatalogSource,
	metrics domain.Metrics,
	logger *zap.Logger,
) (*identify.Identifier, error) {
	settings := cfg.Settings
	visionModel, err := newOptionalModel(ctx, "vision", settings.Vision.Model, settings.Server, logger)
	if err != nil {
		return nil, err
	}
	return identify.New(identify.Options{
		Source:  source,
		Model:   visionModel,
		Config:  settings.Vision,
		Timeout: settings.Server.RequestTimeout(),
		Metrics: metrics,
		Logger:  logger,
	}), nil
}

// newOptionalModel builds a chat model, or returns nil when no credential
// is configured so the relay can answer with a not-configured error.
func newOptionalModel(ctx context.Context, name string, config domain.ModelConfig, server domain.ServerConfig, logger *zap.Logger) (model.BaseChatModel, error) {
	chatModel, err := llm.NewChatModel(ctx, config, server.RequestTimeout())
	if errors.Is(err, domain.ErrNotConfigured) {
		logger.Warn("completion credential missing; relay disabled",
			zap.String("relay", name),
			telemetry.ModelField(config.Model),
		)
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return chatModel, nil
}

func NewAPIServer(
	cfg ServeConfig,
	source domain.CatalogSource,
	chat *assistant.Assistant,
	identifier *identify.Identifier,
	metrics domain.Metrics,
	registry *prometheus.Registry,
	health *telemetry.HealthTracker,
	logger *zap.Logger,
) *httpapi.Server {
	mounted, _ := resolveObservability(cfg.Settings.Observability, registry, health)
	return httpapi.New(httpapi.Options{
		Config:        cfg.Settings.Server,
		Catalog:       source,
		Chat:          chat,
		Identify:      identifier,
		Metrics:       metrics,
		Observability: mounted,
		Logger:        logger,
	})
}
