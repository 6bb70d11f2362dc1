package domain

import "time"

// Settings is the resolved process configuration.
type Settings struct {
	Server        ServerConfig
	Catalog       CatalogConfig
	Chat          ChatConfig
	Vision        VisionConfig
	Observability ObservabilityConfig
}

type ServerConfig struct {
	Host                     string
	Port                     int
	RequestTimeoutSeconds    int
	MaxBodyBytes             int64
	ReadHeaderTimeoutSeconds int
	ShutdownTimeoutSeconds   int
}

type CatalogConfig struct {
	Path  string
	Watch bool
}

// ModelConfig describes how to reach a completion service.
type ModelConfig struct {
	Provider    string
	Model       string
	APIKey      string
	BaseURL     string
	MaxTokens   int
	Temperature float32
}

// Configured reports whether a credential is present.
func (c ModelConfig) Configured() bool {
	return c.APIKey != ""
}

type ChatConfig struct {
	Model                  ModelConfig
	HistoryLimit           int
	SampleToolsPerCategory int
}

type VisionConfig struct {
	Model ModelConfig
}

type ObservabilityConfig struct {
	ListenAddress  string
	MetricsEnabled bool
	HealthzEnabled bool
}

// RequestTimeout returns the upper bound applied to upstream calls.
func (c ServerConfig) RequestTimeout() time.Duration {
	if c.RequestTimeoutSeconds <= 0 {
		return DefaultRequestTimeoutSeconds * time.Second
	}
	return time.Duration(c.RequestTimeoutSeconds) * time.Second
}
