package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"toolcatalog/internal/domain"
	"toolcatalog/internal/infra/telemetry"
)

type Loader struct {
	logger  *zap.Logger
	metrics domain.Metrics
}

func NewLoader(logger *zap.Logger, metrics domain.Metrics) *Loader {
	if logger == nil {
		logger = zap.NewNop()
	}
	if metrics == nil {
		metrics = telemetry.NewNoopMetrics()
	}
	return &Loader{
		logger:  logger.Named("catalog"),
		metrics: metrics,
	}
}

// Load reads and parses the catalog file. Nothing is cached: every call hits
// the filesystem, so edits to the file are visible on the next request.
func (l *Loader) Load(ctx context.Context, path string) (domain.Catalog, error) {
	catalog, _, err := l.loadDocument(ctx, path)
	return catalog, err
}

// Inspect loads the catalog like Load and reports schema and referential
// issues alongside it. Issues do not make the load fail.
func (l *Loader) Inspect(ctx context.Context, path string) (domain.Catalog, []domain.CatalogIssue, error) {
	catalog, data, err := l.loadDocument(ctx, path)
	if err != nil {
		return domain.Catalog{}, nil, err
	}
	issues := append(CheckSchema(data), Validate(catalog)...)
	return catalog, issues, nil
}

func (l *Loader) loadDocument(ctx context.Context, path string) (domain.Catalog, []byte, error) {
	started := time.Now()
	catalog, data, err := l.load(ctx, path)
	l.metrics.ObserveCatalogLoad(time.Since(started), err)
	if err != nil {
		l.logger.Warn("catalog load failed",
			telemetry.EventField(telemetry.EventCatalogLoadFail),
			telemetry.PathField(path),
			zap.Error(err),
		)
		return domain.Catalog{}, nil, err
	}
	return catalog, data, nil
}

func (l *Loader) load(ctx context.Context, path string) (domain.Catalog, []byte, error) {
	if path == "" {
		return domain.Catalog{}, nil, domain.E(domain.CodeInternal, "catalog.load", "catalog path is required", domain.ErrCatalogUnavailable)
	}
	if err := ctx.Err(); err != nil {
		return domain.Catalog{}, nil, domain.Wrap(domain.CodeCanceled, "catalog.load", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return domain.Catalog{}, nil, domain.E(domain.CodeInternal, "catalog.load", "", fmt.Errorf("read catalog: %w", err))
	}
	catalog, err := Decode(data)
	if err != nil {
		return domain.Catalog{}, nil, domain.E(domain.CodeInternal, "catalog.load", "", err)
	}
	return catalog, data, nil
}

// Decode parses catalog JSON. Absent arrays decode as empty slices so the
// API never emits null for a list.
func Decode(data []byte) (domain.Catalog, error) {
	data = trimDocument(data)
	if len(data) == 0 {
		return domain.Catalog{}, errors.New("parse catalog: empty document")
	}
	if data[0] != '{' {
		return domain.Catalog{}, errors.New("parse catalog: document is not a JSON object")
	}

	var catalog domain.Catalog
	if err := json.Unmarshal(data, &catalog); err != nil {
		return domain.Catalog{}, fmt.Errorf("parse catalog: %w", err)
	}
	if catalog.Categories == nil {
		catalog.Categories = []domain.Category{}
	}
	if catalog.Tools == nil {
		catalog.Tools = []domain.Tool{}
	}
	return catalog, nil
}

func trimDocument(data []byte) []byte {
	return bytes.TrimSpace(bytes.TrimPrefix(data, []byte("\xef\xbb\xbf")))
}

// FileSource binds a Loader to a path and satisfies domain.CatalogSource.
type FileSource struct {
	loader *Loader
	path   string
}

func NewFileSource(loader *Loader, path string) *FileSource {
	return &FileSource{loader: loader, path: path}
}

func (s *FileSource) Load(ctx context.Context) (domain.Catalog, error) {
	return s.loader.Load(ctx, s.path)
}

func (s *FileSource) Path() string {
	return s.path
}

var _ domain.CatalogSource = (*FileSource)(nil)
