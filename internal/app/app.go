package app

import (
	"context"

	"go.uber.org/zap"

	"toolcatalog/internal/domain"
	"toolcatalog/internal/infra/catalog"
)

type App struct {
	logger *zap.Logger
}

// ServeConfig carries the resolved settings for a serve run.
type ServeConfig struct {
	Settings domain.Settings
}

type ValidateConfig struct {
	CatalogPath string
}

type ListToolsConfig struct {
	CatalogPath string
	Category    string
}

func New(logger *zap.Logger) *App {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &App{
		logger: logger,
	}
}

// Serve wires the application and blocks until ctx is done.
func (a *App) Serve(ctx context.Context, cfg ServeConfig) error {
	application, err := InitializeApplication(ctx, cfg, LoggingConfig{Logger: a.logger})
	if err != nil {
		return err
	}
	return application.Run()
}

// ListTools loads the catalog once and returns the tools in category, or
// every tool when category is empty.
func (a *App) ListTools(ctx context.Context, cfg ListToolsConfig) ([]domain.Tool, error) {
	logger := NewLogger(NewLogging(LoggingConfig{Logger: a.logger}))
	loader := catalog.NewLoader(logger, nil)
	data, err := loader.Load(ctx, cfg.CatalogPath)
	if err != nil {
		return nil, err
	}
	return data.ToolsInCategory(cfg.Category), nil
}
