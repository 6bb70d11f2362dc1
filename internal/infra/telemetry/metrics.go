package telemetry

import (
	"time"

	"toolcatalog/internal/domain"
)

type NoopMetrics struct{}

func NewNoopMetrics() *NoopMetrics {
	return &NoopMetrics{}
}

func (n *NoopMetrics) ObserveRequest(_ domain.RequestMetric) {}

func (n *NoopMetrics) ObserveCatalogLoad(_ time.Duration, _ error) {}

func (n *NoopMetrics) SetCatalogSize(_ int, _ int) {}

func (n *NoopMetrics) ObserveCompletionLatency(_ domain.CompletionOp, _ string, _ time.Duration, _ error) {
}

func (n *NoopMetrics) ObserveCompletionTokens(_ domain.CompletionOp, _ string, _ int) {}

func (n *NoopMetrics) ObserveIdentifyOutcome(_ domain.IdentifyOutcome) {}

var _ domain.Metrics = (*NoopMetrics)(nil)
