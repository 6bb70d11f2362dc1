package llm

import (
	"context"
	"errors"
	"time"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"

	"toolcatalog/internal/domain"
)

// Call describes one completion request.
type Call struct {
	Op      domain.CompletionOp
	Model   string
	Timeout time.Duration
	Metrics domain.Metrics
}

// Generate issues a single completion bounded by call.Timeout, records
// latency and token usage, and classifies any failure. There is no retry.
func Generate(ctx context.Context, chatModel model.BaseChatModel, messages []*schema.Message, call Call) (*schema.Message, error) {
	op := string(call.Op) + ".generate"
	if chatModel == nil {
		return nil, domain.E(domain.CodeFailedPrecond, op, "", domain.ErrNotConfigured)
	}
	if call.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, call.Timeout)
		defer cancel()
	}

	started := time.Now()
	response, err := chatModel.Generate(ctx, messages)
	if err == nil && response == nil {
		err = errors.New("completion response is nil")
	}
	if call.Metrics != nil {
		call.Metrics.ObserveCompletionLatency(call.Op, call.Model, time.Since(started), err)
	}
	if err != nil {
		return nil, Classify(op, err)
	}
	observeTokenUsage(call, response)
	return response, nil
}

func observeTokenUsage(call Call, response *schema.Message) {
	if call.Metrics == nil || response.ResponseMeta == nil || response.ResponseMeta.Usage == nil {
		return
	}
	tokens := response.ResponseMeta.Usage.TotalTokens
	if tokens <= 0 {
		return
	}
	call.Metrics.ObserveCompletionTokens(call.Op, call.Model, tokens)
}
