package domain

import "time"

const (
	DefaultPort                       = 3000
	DefaultListenHost                 = "0.0.0.0"
	DefaultCatalogPath                = "data/tools.json"
	DefaultProvider                   = "openai"
	DefaultChatModel                  = "gpt-4o-mini"
	DefaultVisionModel                = "gpt-4o-mini"
	DefaultChatMaxTokens              = 500
	DefaultVisionMaxTokens            = 50
	DefaultChatTemperature            = 0.7
	DefaultVisionTemperature          = 0
	DefaultHistoryLimit               = 10
	DefaultSampleToolsPerCategory     = 5
	DefaultRequestTimeoutSeconds      = 30
	DefaultMaxBodyBytes               = 10 * 1024 * 1024
	DefaultReadHeaderTimeoutSeconds   = 10
	DefaultShutdownTimeoutSeconds     = 5
	DefaultObservabilityListenAddress = ""
	DefaultMetricsEnabled             = true
	DefaultHealthzEnabled             = true
	DefaultWatchCatalog               = true
	DefaultCatalogWatchDebounce       = 250 * time.Millisecond

	// UnknownToolSentinel is the reply the vision model gives when no catalog tool matches.
	UnknownToolSentinel = "UNKNOWN"
)

const (
	EnvPort              = "PORT"
	EnvCatalogPath       = "CATALOG_PATH"
	EnvOpenAIAPIKey      = "OPENAI_API_KEY"
	EnvVisionAPIKey      = "OPENAI_VISION_API_KEY"
	EnvOpenAIBaseURL     = "OPENAI_BASE_URL"
	EnvChatModel         = "CHAT_MODEL"
	EnvVisionModel       = "VISION_MODEL"
	EnvMetricsEnabled    = "METRICS_ENABLED"
	EnvObservabilityAddr = "OBSERVABILITY_LISTEN_ADDRESS"
)
