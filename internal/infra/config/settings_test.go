package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"toolcatalog/internal/domain"
)

// clearEnv blanks every variable Load reads so the host environment cannot
// leak into assertions.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, envs := range envKeys {
		for _, env := range envs {
			t.Setenv(env, "")
			require.NoError(t, os.Unsetenv(env))
		}
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	settings, err := Load(LoadOptions{Logger: zap.NewNop()})
	require.NoError(t, err)

	assert.Equal(t, domain.DefaultPort, settings.Server.Port)
	assert.Equal(t, domain.DefaultListenHost, settings.Server.Host)
	assert.Equal(t, domain.DefaultCatalogPath, settings.Catalog.Path)
	assert.True(t, settings.Catalog.Watch)
	assert.Equal(t, domain.DefaultChatModel, settings.Chat.Model.Model)
	assert.Equal(t, domain.DefaultHistoryLimit, settings.Chat.HistoryLimit)
	assert.Equal(t, domain.DefaultSampleToolsPerCategory, settings.Chat.SampleToolsPerCategory)
	assert.Equal(t, domain.DefaultVisionMaxTokens, settings.Vision.Model.MaxTokens)
	assert.Equal(t, int64(domain.DefaultMaxBodyBytes), settings.Server.MaxBodyBytes)
	assert.False(t, settings.Chat.Model.Configured())
	assert.False(t, settings.Vision.Model.Configured())
	assert.True(t, settings.Observability.MetricsEnabled)
}

func TestLoad_Environment(t *testing.T) {
	clearEnv(t)
	t.Setenv(domain.EnvPort, "8081")
	t.Setenv(domain.EnvCatalogPath, "/srv/tools.json")
	t.Setenv(domain.EnvOpenAIAPIKey, "sk-chat")
	t.Setenv(domain.EnvChatModel, "gpt-4o")
	t.Setenv(domain.EnvMetricsEnabled, "false")

	settings, err := Load(LoadOptions{})
	require.NoError(t, err)

	assert.Equal(t, 8081, settings.Server.Port)
	assert.Equal(t, "/srv/tools.json", settings.Catalog.Path)
	assert.Equal(t, "sk-chat", settings.Chat.Model.APIKey)
	assert.Equal(t, "gpt-4o", settings.Chat.Model.Model)
	assert.False(t, settings.Observability.MetricsEnabled)
	// Vision shares the chat credential when it has none of its own.
	assert.Equal(t, "sk-chat", settings.Vision.Model.APIKey)
}

func TestLoad_SeparateVisionCredential(t *testing.T) {
	clearEnv(t)
	t.Setenv(domain.EnvOpenAIAPIKey, "sk-chat")
	t.Setenv(domain.EnvVisionAPIKey, "sk-vision")

	settings, err := Load(LoadOptions{})
	require.NoError(t, err)
	assert.Equal(t, "sk-chat", settings.Chat.Model.APIKey)
	assert.Equal(t, "sk-vision", settings.Vision.Model.APIKey)
}

func TestLoad_ConfigFileWithEnvExpansion(t *testing.T) {
	clearEnv(t)
	t.Setenv("TEST_CHAT_KEY", "sk-from-file")
	t.Setenv("TEST_PORT", "4000")

	file := writeTempConfig(t, `
server:
  port: ${TEST_PORT}
  requestTimeoutSeconds: 12
catalog:
  path: ./fixtures/tools.json
  watch: false
chat:
  apiKey: "${TEST_CHAT_KEY}"
  historyLimit: 4
vision:
  model: gpt-4o
`)

	settings, err := Load(LoadOptions{ConfigPath: file, Logger: zap.NewNop()})
	require.NoError(t, err)

	assert.Equal(t, 4000, settings.Server.Port)
	assert.Equal(t, 12, settings.Server.RequestTimeoutSeconds)
	assert.Equal(t, "./fixtures/tools.json", settings.Catalog.Path)
	assert.False(t, settings.Catalog.Watch)
	assert.Equal(t, "sk-from-file", settings.Chat.Model.APIKey)
	assert.Equal(t, 4, settings.Chat.HistoryLimit)
	assert.Equal(t, "gpt-4o", settings.Vision.Model.Model)
}

func TestLoad_EnvironmentBeatsConfigFile(t *testing.T) {
	clearEnv(t)
	t.Setenv(domain.EnvPort, "9000")
	file := writeTempConfig(t, "server:\n  port: 4000\n")

	settings, err := Load(LoadOptions{ConfigPath: file})
	require.NoError(t, err)
	assert.Equal(t, 9000, settings.Server.Port)
}

func TestLoad_FlagsBeatEnvironment(t *testing.T) {
	clearEnv(t)
	t.Setenv(domain.EnvPort, "9000")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.Int("port", 3000, "")
	flags.String("catalog", "", "")
	require.NoError(t, flags.Parse([]string{"--port", "7070"}))

	settings, err := Load(LoadOptions{Flags: flags})
	require.NoError(t, err)
	assert.Equal(t, 7070, settings.Server.Port)
	assert.Equal(t, domain.DefaultCatalogPath, settings.Catalog.Path)
}

func TestLoad_InvalidSettings(t *testing.T) {
	clearEnv(t)
	file := writeTempConfig(t, `
server:
  port: 70000
chat:
  provider: anthropic
  historyLimit: -1
`)

	_, err := Load(LoadOptions{ConfigPath: file})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "server.port")
	assert.Contains(t, err.Error(), "chat.provider")
	assert.Contains(t, err.Error(), "chat.historyLimit")
}

func TestLoad_MissingConfigFile(t *testing.T) {
	clearEnv(t)
	_, err := Load(LoadOptions{ConfigPath: filepath.Join(t.TempDir(), "missing.yaml")})
	require.Error(t, err)
}

func TestLoad_MalformedConfigFile(t *testing.T) {
	clearEnv(t)
	file := writeTempConfig(t, "server: [unterminated")

	_, err := Load(LoadOptions{ConfigPath: file})
	require.Error(t, err)
}

func writeTempConfig(t *testing.T, content string) string {
	t.Helper()
	file := filepath.Join(t.TempDir(), "toolcatalog.yaml")
	require.NoError(t, os.WriteFile(file, []byte(content), 0o600))
	return file
}
