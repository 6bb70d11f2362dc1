package identify

import (
	"context"
	"strings"
	"time"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"go.uber.org/zap"

	"toolcatalog/internal/domain"
	"toolcatalog/internal/infra/llm"
	"toolcatalog/internal/infra/telemetry"
)

const (
	msgNotConfigured = "Tool identification is not configured. Set OPENAI_API_KEY to enable it."
	msgNoMatch       = "Could not identify a tool from our catalog in this photo."
)

const promptHeader = `Identify the hand or power tool shown in this photo.
Reply with the exact name of the matching tool from the list below and nothing else.
If none of the tools match, reply with UNKNOWN.

Tools:
`

// Identifier relays photos to a vision model and resolves the reply against
// the catalog.
type Identifier struct {
	source  domain.CatalogSource
	model   model.BaseChatModel
	config  domain.VisionConfig
	timeout time.Duration
	metrics domain.Metrics
	logger  *zap.Logger
}

// Options configures an Identifier. A nil Model means no credential was
// configured.
type Options struct {
	Source  domain.CatalogSource
	Model   model.BaseChatModel
	Config  domain.VisionConfig
	Timeout time.Duration
	Metrics domain.Metrics
	Logger  *zap.Logger
}

func New(opts Options) *Identifier {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	metrics := opts.Metrics
	if metrics == nil {
		metrics = telemetry.NewNoopMetrics()
	}
	return &Identifier{
		source:  opts.Source,
		model:   opts.Model,
		config:  opts.Config,
		timeout: opts.Timeout,
		metrics: metrics,
		logger:  logger.Named("identify"),
	}
}

// Configured reports whether a vision model is available.
func (i *Identifier) Configured() bool {
	return i.model != nil
}

// Identify names the catalog tool shown in req.Image. A reply that matches
// nothing yields a result with a nil Tool and a human-readable message.
func (i *Identifier) Identify(ctx context.Context, req domain.IdentifyRequest) (domain.IdentifyResult, error) {
	const op = "identify.identify"
	if i.model == nil {
		return domain.IdentifyResult{}, &domain.Error{Code: domain.CodeFailedPrecond, Op: op, Message: msgNotConfigured, Cause: domain.ErrNotConfigured}
	}
	if err := ValidateImage(req.Image); err != nil {
		return domain.IdentifyResult{}, err
	}

	catalog, err := i.source.Load(ctx)
	if err != nil {
		return domain.IdentifyResult{}, domain.Wrap(domain.CodeInternal, op, err)
	}

	logger := telemetry.LoggerWithRequest(ctx, i.logger)
	response, err := llm.Generate(ctx, i.model, []*schema.Message{visionMessage(catalog.ToolNames(), req.Image)}, llm.Call{
		Op:      domain.CompletionOpIdentify,
		Model:   i.config.Model.Model,
		Timeout: i.timeout,
		Metrics: i.metrics,
	})
	if err != nil {
		logger.Warn("vision completion failed",
			telemetry.EventField(telemetry.EventCompletionFail),
			telemetry.ModelField(i.config.Model.Model),
			zap.Error(err),
		)
		return domain.IdentifyResult{}, err
	}

	tool, ok := ResolveToolName(response.Content, catalog.Tools)
	if !ok {
		outcome := domain.IdentifyOutcomeNoMatch
		if isSentinel(response.Content) {
			outcome = domain.IdentifyOutcomeUnknown
		}
		i.metrics.ObserveIdentifyOutcome(outcome)
		logger.Info("no catalog tool identified",
			telemetry.EventField(telemetry.EventToolIdentified),
			zap.String("outcome", string(outcome)),
			zap.String("reply", response.Content),
		)
		return domain.IdentifyResult{Message: msgNoMatch}, nil
	}

	i.metrics.ObserveIdentifyOutcome(domain.IdentifyOutcomeMatched)
	logger.Info("catalog tool identified",
		telemetry.EventField(telemetry.EventToolIdentified),
		zap.String("tool_id", tool.ID),
		zap.String("reply", response.Content),
	)
	return domain.IdentifyResult{Tool: &domain.IdentifiedTool{ID: tool.ID, Name: tool.Name}}, nil
}

func visionMessage(toolNames []string, image string) *schema.Message {
	return &schema.Message{
		Role: schema.User,
		MultiContent: []schema.ChatMessagePart{
			{
				Type: schema.ChatMessagePartTypeText,
				Text: promptHeader + strings.Join(toolNames, "\n"),
			},
			{
				Type: schema.ChatMessagePartTypeImageURL,
				ImageURL: &schema.ChatMessageImageURL{
					URL:    image,
					Detail: schema.ImageURLDetailAuto,
				},
			},
		},
	}
}
