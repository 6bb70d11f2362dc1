package catalog

import (
	"context"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"toolcatalog/internal/domain"
	"toolcatalog/internal/infra/telemetry"
)

const (
	watcherHealthName     = "catalog-watcher"
	watcherHeartbeatEvery = 30 * time.Second
)

// Watcher reports edits to the catalog file. It validates each new version
// and refreshes the size gauges; request handling keeps reading the file
// directly and does not depend on the watcher.
type Watcher struct {
	loader   *Loader
	path     string
	debounce time.Duration
	metrics  domain.Metrics
	health   *telemetry.HealthTracker
	logger   *zap.Logger
	onChange func(domain.Catalog, []domain.CatalogIssue)
}

type WatcherOptions struct {
	Loader   *Loader
	Path     string
	Debounce time.Duration
	Metrics  domain.Metrics
	Health   *telemetry.HealthTracker
	Logger   *zap.Logger
	OnChange func(domain.Catalog, []domain.CatalogIssue)
}

func NewWatcher(opts WatcherOptions) *Watcher {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	metrics := opts.Metrics
	if metrics == nil {
		metrics = telemetry.NewNoopMetrics()
	}
	debounce := opts.Debounce
	if debounce <= 0 {
		debounce = domain.DefaultCatalogWatchDebounce
	}
	loader := opts.Loader
	if loader == nil {
		loader = NewLoader(logger, metrics)
	}
	return &Watcher{
		loader:   loader,
		path:     opts.Path,
		debounce: debounce,
		metrics:  metrics,
		health:   opts.Health,
		logger:   logger.Named("catalog_watcher"),
		onChange: opts.OnChange,
	}
}

// Run blocks until ctx is done. It inspects the file once at start so the
// gauges are populated before the first edit.
func (w *Watcher) Run(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	// Editors replace files by rename, so watch the directory.
	if err := watcher.Add(filepath.Dir(w.path)); err != nil {
		return err
	}

	var beat *telemetry.Heartbeat
	if w.health != nil {
		beat = w.health.Register(watcherHealthName, watcherHeartbeatEvery)
		defer w.health.Unregister(watcherHealthName)
	}
	ticker := time.NewTicker(watcherHeartbeatEvery)
	defer ticker.Stop()

	w.inspect(ctx)

	var timer *time.Timer
	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return nil
		case <-ticker.C:
			beat.Beat()
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			if err != nil {
				w.logger.Warn("catalog watcher error", zap.Error(err))
			}
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !shouldReloadForPath(event.Name, w.path) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
				continue
			}
			if !timer.Stop() {
				select {
				case <-timer.C:
				default:
				}
			}
			timer.Reset(w.debounce)
		case <-timerChan(timer):
			timer = nil
			beat.Beat()
			w.inspect(ctx)
		}
	}
}

func (w *Watcher) inspect(ctx context.Context) {
	catalog, issues, err := w.loader.Inspect(ctx, w.path)
	if err != nil {
		return
	}
	w.metrics.SetCatalogSize(len(catalog.Categories), len(catalog.Tools))

	for _, issue := range issues {
		w.logger.Warn("catalog issue",
			telemetry.EventField(telemetry.EventCatalogIssue),
			zap.String("kind", string(issue.Kind)),
			zap.String("subject", issue.Subject),
			zap.String("detail", issue.Detail),
		)
	}
	w.logger.Info("catalog inspected",
		telemetry.EventField(telemetry.EventCatalogChanged),
		telemetry.PathField(w.path),
		zap.Int("categories", len(catalog.Categories)),
		zap.Int("tools", len(catalog.Tools)),
		zap.Int("issues", len(issues)),
	)
	if w.onChange != nil {
		w.onChange(catalog, issues)
	}
}

func shouldReloadForPath(path string, catalogPath string) bool {
	if path == "" || catalogPath == "" {
		return false
	}
	return filepath.Clean(path) == filepath.Clean(catalogPath)
}

func timerChan(timer *time.Timer) <-chan time.Time {
	if timer == nil {
		return nil
	}
	return timer.C
}
