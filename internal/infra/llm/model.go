package llm

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"

	"toolcatalog/internal/domain"
)

// NewChatModel creates the chat model described by config. It returns
// domain.ErrNotConfigured when no credential is present so callers can defer
// the failure to request time.
func NewChatModel(ctx context.Context, config domain.ModelConfig, timeout time.Duration) (model.ToolCallingChatModel, error) {
	apiKey := strings.TrimSpace(config.APIKey)
	if apiKey == "" {
		return nil, domain.E(domain.CodeFailedPrecond, "llm.new_chat_model", "", domain.ErrNotConfigured)
	}

	switch config.Provider {
	case domain.DefaultProvider, "":
		cfg := &openai.ChatModelConfig{
			Model:   config.Model,
			APIKey:  apiKey,
			Timeout: timeout,
		}
		if config.BaseURL != "" {
			cfg.BaseURL = config.BaseURL
		}
		if config.MaxTokens > 0 {
			maxTokens := config.MaxTokens
			cfg.MaxTokens = &maxTokens
		}
		temperature := config.Temperature
		cfg.Temperature = &temperature
		return openai.NewChatModel(ctx, cfg)
	default:
		return nil, fmt.Errorf("unsupported provider: %s", config.Provider)
	}
}
