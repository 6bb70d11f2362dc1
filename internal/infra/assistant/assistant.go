package assistant

import (
	"context"
	"strings"
	"time"

	"github.com/cloudwego/eino/components/model"
	"go.uber.org/zap"

	"toolcatalog/internal/domain"
	"toolcatalog/internal/infra/llm"
	"toolcatalog/internal/infra/telemetry"
)

const (
	msgNotConfigured   = "Chat assistant is not configured. Set OPENAI_API_KEY to enable it."
	msgMessageRequired = "Message is required"
)

// Assistant relays chat turns to the completion service with a catalog
// aware system prompt.
type Assistant struct {
	source  domain.CatalogSource
	model   model.BaseChatModel
	config  domain.ChatConfig
	timeout time.Duration
	metrics domain.Metrics
	logger  *zap.Logger
}

// Options configures an Assistant. A nil Model means no credential was
// configured; every Reply then fails with domain.ErrNotConfigured.
type Options struct {
	Source  domain.CatalogSource
	Model   model.BaseChatModel
	Config  domain.ChatConfig
	Timeout time.Duration
	Metrics domain.Metrics
	Logger  *zap.Logger
}

// New creates an Assistant.
func New(opts Options) *Assistant {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	metrics := opts.Metrics
	if metrics == nil {
		metrics = telemetry.NewNoopMetrics()
	}
	return &Assistant{
		source:  opts.Source,
		model:   opts.Model,
		config:  opts.Config,
		timeout: opts.Timeout,
		metrics: metrics,
		logger:  logger.Named("assistant"),
	}
}

// Configured reports whether a completion model is available.
func (a *Assistant) Configured() bool {
	return a.model != nil
}

// Reply answers a single chat message.
func (a *Assistant) Reply(ctx context.Context, req domain.ChatRequest) (domain.ChatReply, error) {
	const op = "assistant.reply"
	if a.model == nil {
		return domain.ChatReply{}, &domain.Error{Code: domain.CodeFailedPrecond, Op: op, Message: msgNotConfigured, Cause: domain.ErrNotConfigured}
	}
	message := strings.TrimSpace(req.Message)
	if message == "" {
		return domain.ChatReply{}, &domain.Error{Code: domain.CodeInvalidArgument, Op: op, Message: msgMessageRequired, Cause: domain.ErrInvalidRequest}
	}

	catalog, err := a.source.Load(ctx)
	if err != nil {
		return domain.ChatReply{}, domain.Wrap(domain.CodeInternal, op, err)
	}

	systemPrompt := BuildSystemPrompt(catalog, a.config.SampleToolsPerCategory)
	history := trimHistory(req.History, a.config.HistoryLimit)
	messages := toMessages(systemPrompt, history, message)

	response, err := llm.Generate(ctx, a.model, messages, llm.Call{
		Op:      domain.CompletionOpChat,
		Model:   a.config.Model.Model,
		Timeout: a.timeout,
		Metrics: a.metrics,
	})
	if err != nil {
		telemetry.LoggerWithRequest(ctx, a.logger).Warn("chat completion failed",
			telemetry.EventField(telemetry.EventCompletionFail),
			telemetry.ModelField(a.config.Model.Model),
			zap.Error(err),
		)
		return domain.ChatReply{}, err
	}
	return domain.ChatReply{Reply: response.Content}, nil
}
