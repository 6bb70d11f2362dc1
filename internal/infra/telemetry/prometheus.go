package telemetry

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"toolcatalog/internal/domain"
)

type PrometheusMetrics struct {
	requestDuration    *prometheus.HistogramVec
	catalogLoads       *prometheus.CounterVec
	catalogLoadLatency prometheus.Histogram
	catalogCategories  prometheus.Gauge
	catalogTools       prometheus.Gauge
	completionLatency  *prometheus.HistogramVec
	completionTokens   *prometheus.CounterVec
	identifyOutcomes   *prometheus.CounterVec
}

func NewPrometheusMetrics(registerer prometheus.Registerer) *PrometheusMetrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}
	factory := promauto.With(registerer)

	return &PrometheusMetrics{
		requestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "toolcatalog_http_request_duration_seconds",
				Help:    "Duration of API requests in seconds",
				Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10, 30},
			},
			[]string{"route", "method", "code"},
		),
		catalogLoads: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "toolcatalog_catalog_loads_total",
				Help: "Total number of catalog file loads",
			},
			[]string{"status"},
		),
		catalogLoadLatency: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "toolcatalog_catalog_load_seconds",
				Help:    "Time spent reading and parsing the catalog file",
				Buckets: []float64{.0005, .001, .0025, .005, .01, .025, .05, .1},
			},
		),
		catalogCategories: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "toolcatalog_catalog_categories",
				Help: "Number of categories in the last observed catalog file",
			},
		),
		catalogTools: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "toolcatalog_catalog_tools",
				Help: "Number of tools in the last observed catalog file",
			},
		),
		completionLatency: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "toolcatalog_completion_latency_seconds",
				Help:    "Latency of upstream completion calls in seconds",
				Buckets: []float64{.1, .25, .5, 1, 2.5, 5, 10, 20, 30},
			},
			[]string{"op", "model", "status"},
		),
		completionTokens: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "toolcatalog_completion_tokens_total",
				Help: "Total number of tokens consumed by completion calls",
			},
			[]string{"op", "model"},
		),
		identifyOutcomes: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "toolcatalog_identify_outcomes_total",
				Help: "Tool identification results by outcome",
			},
			[]string{"outcome"},
		),
	}
}

func (p *PrometheusMetrics) ObserveRequest(metric domain.RequestMetric) {
	p.requestDuration.
		WithLabelValues(metric.Route, metric.Method, strconv.Itoa(metric.Status)).
		Observe(metric.Duration.Seconds())
}

func (p *PrometheusMetrics) ObserveCatalogLoad(duration time.Duration, err error) {
	p.catalogLoads.WithLabelValues(statusLabel(err)).Inc()
	p.catalogLoadLatency.Observe(duration.Seconds())
}

func (p *PrometheusMetrics) SetCatalogSize(categories int, tools int) {
	p.catalogCategories.Set(float64(categories))
	p.catalogTools.Set(float64(tools))
}

func (p *PrometheusMetrics) ObserveCompletionLatency(op domain.CompletionOp, model string, duration time.Duration, err error) {
	p.completionLatency.WithLabelValues(string(op), model, statusLabel(err)).Observe(duration.Seconds())
}

func (p *PrometheusMetrics) ObserveCompletionTokens(op domain.CompletionOp, model string, tokens int) {
	p.completionTokens.WithLabelValues(string(op), model).Add(float64(tokens))
}

func (p *PrometheusMetrics) ObserveIdentifyOutcome(outcome domain.IdentifyOutcome) {
	p.identifyOutcomes.WithLabelValues(string(outcome)).Inc()
}

func statusLabel(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}

var _ domain.Metrics = (*PrometheusMetrics)(nil)
