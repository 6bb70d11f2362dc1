package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"toolcatalog/internal/domain"
)

// LoadOptions controls where settings come from. Precedence, highest first:
// changed flags, environment, config file, defaults.
type LoadOptions struct {
	ConfigPath string
	Flags      *pflag.FlagSet
	Logger     *zap.Logger
}

// flagKeys maps CLI flag names onto settings keys.
var flagKeys = map[string]string{
	"port":    "server.port",
	"host":    "server.host",
	"catalog": "catalog.path",
	"watch":   "catalog.watch",
	"metrics": "observability.metricsEnabled",
}

var envKeys = map[string][]string{
	"server.port":                  {domain.EnvPort},
	"catalog.path":                 {domain.EnvCatalogPath},
	"chat.apiKey":                  {domain.EnvOpenAIAPIKey},
	"chat.baseURL":                 {domain.EnvOpenAIBaseURL},
	"chat.model":                   {domain.EnvChatModel},
	"vision.apiKey":                {domain.EnvVisionAPIKey},
	"vision.baseURL":               {domain.EnvOpenAIBaseURL},
	"vision.model":                 {domain.EnvVisionModel},
	"observability.metricsEnabled": {domain.EnvMetricsEnabled},
	"observability.listenAddress":  {domain.EnvObservabilityAddr},
}

func newSettingsViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")
	setDefaults(v)
	for key, envs := range envKeys {
		_ = v.BindEnv(append([]string{key}, envs...)...)
	}
	return v
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", domain.DefaultListenHost)
	v.SetDefault("server.port", domain.DefaultPort)
	v.SetDefault("server.requestTimeoutSeconds", domain.DefaultRequestTimeoutSeconds)
	v.SetDefault("server.maxBodyBytes", domain.DefaultMaxBodyBytes)
	v.SetDefault("server.readHeaderTimeoutSeconds", domain.DefaultReadHeaderTimeoutSeconds)
	v.SetDefault("server.shutdownTimeoutSeconds", domain.DefaultShutdownTimeoutSeconds)
	v.SetDefault("catalog.path", domain.DefaultCatalogPath)
	v.SetDefault("catalog.watch", domain.DefaultWatchCatalog)
	v.SetDefault("chat.provider", domain.DefaultProvider)
	v.SetDefault("chat.model", domain.DefaultChatModel)
	v.SetDefault("chat.maxTokens", domain.DefaultChatMaxTokens)
	v.SetDefault("chat.temperature", domain.DefaultChatTemperature)
	v.SetDefault("chat.historyLimit", domain.DefaultHistoryLimit)
	v.SetDefault("chat.sampleToolsPerCategory", domain.DefaultSampleToolsPerCategory)
	v.SetDefault("vision.provider", domain.DefaultProvider)
	v.SetDefault("vision.model", domain.DefaultVisionModel)
	v.SetDefault("vision.maxTokens", domain.DefaultVisionMaxTokens)
	v.SetDefault("vision.temperature", domain.DefaultVisionTemperature)
	v.SetDefault("observability.listenAddress", domain.DefaultObservabilityListenAddress)
	v.SetDefault("observability.metricsEnabled", domain.DefaultMetricsEnabled)
	v.SetDefault("observability.healthzEnabled", domain.DefaultHealthzEnabled)
}

// Load resolves settings. Credentials are read once here, at process start.
func Load(opts LoadOptions) (domain.Settings, error) {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	v := newSettingsViper()

	if opts.ConfigPath != "" {
		data, err := os.ReadFile(opts.ConfigPath)
		if err != nil {
			return domain.Settings{}, fmt.Errorf("read config: %w", err)
		}
		expanded, missing, err := expandConfigEnv(data)
		if err != nil {
			return domain.Settings{}, err
		}
		if len(missing) > 0 {
			logger.Warn("missing environment variables in config",
				zap.String("path", opts.ConfigPath),
				zap.Strings("missing", missing),
			)
		}
		if err := v.ReadConfig(strings.NewReader(expanded)); err != nil {
			return domain.Settings{}, fmt.Errorf("parse config: %w", err)
		}
	}

	if opts.Flags != nil {
		opts.Flags.Visit(func(f *pflag.Flag) {
			if key, ok := flagKeys[f.Name]; ok {
				v.Set(key, f.Value.String())
			}
		})
	}

	settings := fromViper(v)
	if errs := validate(settings); len(errs) > 0 {
		return domain.Settings{}, errors.New(strings.Join(errs, "; "))
	}
	return settings, nil
}

func fromViper(v *viper.Viper) domain.Settings {
	chat := domain.ModelConfig{
		Provider:    strings.ToLower(strings.TrimSpace(v.GetString("chat.provider"))),
		Model:       strings.TrimSpace(v.GetString("chat.model")),
		APIKey:      strings.TrimSpace(v.GetString("chat.apiKey")),
		BaseURL:     strings.TrimSpace(v.GetString("chat.baseURL")),
		MaxTokens:   v.GetInt("chat.maxTokens"),
		Temperature: float32(v.GetFloat64("chat.temperature")),
	}
	vision := domain.ModelConfig{
		Provider:    strings.ToLower(strings.TrimSpace(v.GetString("vision.provider"))),
		Model:       strings.TrimSpace(v.GetString("vision.model")),
		APIKey:      strings.TrimSpace(v.GetString("vision.apiKey")),
		BaseURL:     strings.TrimSpace(v.GetString("vision.baseURL")),
		MaxTokens:   v.GetInt("vision.maxTokens"),
		Temperature: float32(v.GetFloat64("vision.temperature")),
	}
	// The vision relay shares the chat credential unless given its own.
	if vision.APIKey == "" {
		vision.APIKey = chat.APIKey
	}

	return domain.Settings{
		Server: domain.ServerConfig{
			Host:                     strings.TrimSpace(v.GetString("server.host")),
			Port:                     v.GetInt("server.port"),
			RequestTimeoutSeconds:    v.GetInt("server.requestTimeoutSeconds"),
			MaxBodyBytes:             v.GetInt64("server.maxBodyBytes"),
			ReadHeaderTimeoutSeconds: v.GetInt("server.readHeaderTimeoutSeconds"),
			ShutdownTimeoutSeconds:   v.GetInt("server.shutdownTimeoutSeconds"),
		},
		Catalog: domain.CatalogConfig{
			Path:  strings.TrimSpace(v.GetString("catalog.path")),
			Watch: v.GetBool("catalog.watch"),
		},
		Chat: domain.ChatConfig{
			Model:                  chat,
			HistoryLimit:           v.GetInt("chat.historyLimit"),
			SampleToolsPerCategory: v.GetInt("chat.sampleToolsPerCategory"),
		},
		Vision: domain.VisionConfig{
			Model: vision,
		},
		Observability: domain.ObservabilityConfig{
			ListenAddress:  strings.TrimSpace(v.GetString("observability.listenAddress")),
			MetricsEnabled: v.GetBool("observability.metricsEnabled"),
			HealthzEnabled: v.GetBool("observability.healthzEnabled"),
		},
	}
}

func validate(s domain.Settings) []string {
	var errs []string
	if s.Server.Port <= 0 || s.Server.Port > 65535 {
		errs = append(errs, fmt.Sprintf("server.port must be between 1 and 65535, got %d", s.Server.Port))
	}
	if s.Server.RequestTimeoutSeconds <= 0 {
		errs = append(errs, "server.requestTimeoutSeconds must be positive")
	}
	if s.Server.MaxBodyBytes <= 0 {
		errs = append(errs, "server.maxBodyBytes must be positive")
	}
	if s.Catalog.Path == "" {
		errs = append(errs, "catalog.path is required")
	}
	if s.Chat.HistoryLimit < 0 {
		errs = append(errs, "chat.historyLimit must not be negative")
	}
	if s.Chat.SampleToolsPerCategory < 0 {
		errs = append(errs, "chat.sampleToolsPerCategory must not be negative")
	}
	models := []struct {
		name  string
		model domain.ModelConfig
	}{
		{"chat", s.Chat.Model},
		{"vision", s.Vision.Model},
	}
	for _, m := range models {
		if m.model.Provider != domain.DefaultProvider {
			errs = append(errs, fmt.Sprintf("%s.provider %q is not supported", m.name, m.model.Provider))
		}
		if m.model.Model == "" {
			errs = append(errs, fmt.Sprintf("%s.model is required", m.name))
		}
	}
	return errs
}
