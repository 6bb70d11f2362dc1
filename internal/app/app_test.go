package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"toolcatalog/internal/domain"
	"toolcatalog/internal/infra/telemetry"
)

const appCatalog = `{
  "categories": [
    {"id": "automotive", "name": "Automotive"},
    {"id": "carpentry", "name": "Carpentry"}
  ],
  "tools": [
    {"id": "t1", "name": "Socket Set", "category": "automotive", "description": "", "image": ""},
    {"id": "t16", "name": "Claw Hammer", "category": "carpentry", "description": "", "image": ""},
    {"id": "t16", "name": "Framing Hammer", "category": "framing", "description": "", "image": ""}
  ]
}`

func writeCatalog(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tools.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestValidateCatalog_ReportsIssues(t *testing.T) {
	path := writeCatalog(t, appCatalog)

	report, err := New(zap.NewNop()).ValidateCatalog(context.Background(), ValidateConfig{CatalogPath: path})
	require.NoError(t, err)
	assert.Equal(t, path, report.Path)
	assert.Equal(t, 2, report.Categories)
	assert.Equal(t, 3, report.Tools)

	kinds := make([]domain.CatalogIssueKind, 0, len(report.Issues))
	for _, issue := range report.Issues {
		kinds = append(kinds, issue.Kind)
	}
	assert.Contains(t, kinds, domain.IssueDuplicateTool)
	assert.Contains(t, kinds, domain.IssueUnknownCategory)
}

func TestValidateCatalog_ParseFailure(t *testing.T) {
	path := writeCatalog(t, `{"tools": [`)

	_, err := New(nil).ValidateCatalog(context.Background(), ValidateConfig{CatalogPath: path})
	require.Error(t, err)
}

func TestListTools(t *testing.T) {
	path := writeCatalog(t, appCatalog)
	application := New(zap.NewNop())

	tools, err := application.ListTools(context.Background(), ListToolsConfig{CatalogPath: path, Category: "carpentry"})
	require.NoError(t, err)
	require.Len(t, tools, 1)
	assert.Equal(t, "Claw Hammer", tools[0].Name)

	tools, err = application.ListTools(context.Background(), ListToolsConfig{CatalogPath: path})
	require.NoError(t, err)
	assert.Len(t, tools, 3)
}

func TestResolveObservability(t *testing.T) {
	registry := prometheus.NewRegistry()
	health := telemetry.NewHealthTracker()

	mounted, dedicated := resolveObservability(domain.ObservabilityConfig{MetricsEnabled: true, HealthzEnabled: true}, registry, health)
	require.NotNil(t, mounted)
	assert.Nil(t, dedicated)
	assert.True(t, mounted.EnableMetrics)

	mounted, dedicated = resolveObservability(domain.ObservabilityConfig{ListenAddress: "127.0.0.1:9090", MetricsEnabled: true}, registry, health)
	assert.Nil(t, mounted)
	require.NotNil(t, dedicated)
	assert.Equal(t, "127.0.0.1:9090", dedicated.Addr)
	assert.False(t, dedicated.EnableHealthz)

	mounted, dedicated = resolveObservability(domain.ObservabilityConfig{}, registry, health)
	assert.Nil(t, mounted)
	assert.Nil(t, dedicated)
}

func TestInitializeApplication_RunsUntilCanceled(t *testing.T) {
	path := writeCatalog(t, appCatalog)
	cfg := ServeConfig{Settings: domain.Settings{
		Server: domain.ServerConfig{
			Host:                  "127.0.0.1",
			Port:                  0,
			RequestTimeoutSeconds: 5,
		},
		Catalog: domain.CatalogConfig{Path: path, Watch: true},
		Chat: domain.ChatConfig{
			Model:        domain.ModelConfig{Provider: domain.DefaultProvider, Model: domain.DefaultChatModel},
			HistoryLimit: domain.DefaultHistoryLimit,
		},
		Vision: domain.VisionConfig{
			Model: domain.ModelConfig{Provider: domain.DefaultProvider, Model: domain.DefaultVisionModel, APIKey: "sk-test"},
		},
		Observability: domain.ObservabilityConfig{MetricsEnabled: true, HealthzEnabled: true},
	}}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	application, err := InitializeApplication(ctx, cfg, LoggingConfig{Logger: zap.NewNop()})
	require.NoError(t, err)
	assert.False(t, application.assistant.Configured())
	assert.True(t, application.identifier.Configured())
	require.NotNil(t, application.watcher)

	errChan := make(chan error, 1)
	go func() {
		errChan <- application.Run()
	}()

	time.Sleep(100 * time.Millisecond)
	cancel()

	select {
	case err := <-errChan:
		assert.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("application did not stop in time")
	}
}
