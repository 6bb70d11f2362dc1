package app

import (
	"github.com/prometheus/client_golang/prometheus"

	"toolcatalog/internal/domain"
	"toolcatalog/internal/infra/telemetry"
)

// resolveObservability decides where /metrics and /healthz are served. With
// no dedicated listen address they are mounted on the API listener; otherwise
// a separate observability server is returned.
func resolveObservability(cfg domain.ObservabilityConfig, registry *prometheus.Registry, health *telemetry.HealthTracker) (mounted *telemetry.HTTPServerOptions, dedicated *telemetry.HTTPServerOptions) {
	if !cfg.MetricsEnabled && !cfg.HealthzEnabled {
		return nil, nil
	}
	opts := &telemetry.HTTPServerOptions{
		Addr:          cfg.ListenAddress,
		EnableMetrics: cfg.MetricsEnabled,
		EnableHealthz: cfg.HealthzEnabled,
		Health:        health,
		Registry:      registry,
	}
	if cfg.ListenAddress == "" {
		return opts, nil
	}
	return nil, opts
}
