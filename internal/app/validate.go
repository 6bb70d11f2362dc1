package app

import (
	"context"

	"go.uber.org/zap"

	"toolcatalog/internal/domain"
	"toolcatalog/internal/infra/catalog"
)

// ValidationReport summarizes a catalog file check.
type ValidationReport struct {
	Path       string                `json:"path" yaml:"path"`
	Categories int                   `json:"categories" yaml:"categories"`
	Tools      int                   `json:"tools" yaml:"tools"`
	Issues     []domain.CatalogIssue `json:"issues" yaml:"issues"`
}

// ValidateCatalog parses the catalog at the provided path and checks it
// against the catalog schema and its referential invariants. A parse failure is returned as an error; invariant
// violations are reported in the result.
func (a *App) ValidateCatalog(ctx context.Context, cfg ValidateConfig) (ValidationReport, error) {
	logger := NewLogger(NewLogging(LoggingConfig{Logger: a.logger}))

	loader := catalog.NewLoader(logger, nil)
	data, issues, err := loader.Inspect(ctx, cfg.CatalogPath)
	if err != nil {
		return ValidationReport{}, err
	}

	if issues == nil {
		issues = []domain.CatalogIssue{}
	}
	logger.Info("catalog validated",
		zap.String("catalog", cfg.CatalogPath),
		zap.Int("categories", len(data.Categories)),
		zap.Int("tools", len(data.Tools)),
		zap.Int("issues", len(issues)),
	)
	return ValidationReport{
		Path:       cfg.CatalogPath,
		Categories: len(data.Categories),
		Tools:      len(data.Tools),
		Issues:     issues,
	}, nil
}
