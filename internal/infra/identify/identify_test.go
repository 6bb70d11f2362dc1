package identify

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	goopenai "github.com/meguminnnnnnnnn/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"toolcatalog/internal/domain"
)

const samplePhoto = "data:image/jpeg;base64,/9j/4AAQSkZJRg=="

// mockChatModel implements model.ToolCallingChatModel for testing.
type mockChatModel struct {
	generateFunc func(ctx context.Context, messages []*schema.Message) (*schema.Message, error)
	calls        int
}

func (m *mockChatModel) Generate(ctx context.Context, messages []*schema.Message, _ ...model.Option) (*schema.Message, error) {
	m.calls++
	if m.generateFunc != nil {
		return m.generateFunc(ctx, messages)
	}
	return nil, errors.New("not implemented")
}

func (m *mockChatModel) Stream(_ context.Context, _ []*schema.Message, _ ...model.Option) (*schema.StreamReader[*schema.Message], error) {
	return nil, errors.New("not implemented")
}

func (m *mockChatModel) BindTools(_ []*schema.ToolInfo) error {
	return nil
}

func (m *mockChatModel) WithTools(_ []*schema.ToolInfo) (model.ToolCallingChatModel, error) {
	return m, nil
}

type staticSource struct {
	catalog domain.Catalog
	err     error
}

func (s staticSource) Load(context.Context) (domain.Catalog, error) {
	return s.catalog, s.err
}

type outcomeRecorder struct {
	outcomes []domain.IdentifyOutcome
}

func (r *outcomeRecorder) ObserveRequest(domain.RequestMetric)     {}
func (r *outcomeRecorder) ObserveCatalogLoad(time.Duration, error) {}
func (r *outcomeRecorder) SetCatalogSize(int, int)                 {}
func (r *outcomeRecorder) ObserveCompletionLatency(domain.CompletionOp, string, time.Duration, error) {
}
func (r *outcomeRecorder) ObserveCompletionTokens(domain.CompletionOp, string, int) {}
func (r *outcomeRecorder) ObserveIdentifyOutcome(outcome domain.IdentifyOutcome) {
	r.outcomes = append(r.outcomes, outcome)
}

func replying(content string) *mockChatModel {
	return &mockChatModel{generateFunc: func(context.Context, []*schema.Message) (*schema.Message, error) {
		return schema.AssistantMessage(content, nil), nil
	}}
}

func newTestIdentifier(chatModel model.BaseChatModel, metrics domain.Metrics) *Identifier {
	return New(Options{
		Source:  staticSource{catalog: domain.Catalog{Tools: resolveCatalog()}},
		Model:   chatModel,
		Config:  domain.VisionConfig{Model: domain.ModelConfig{Model: "gpt-4o-mini"}},
		Timeout: time.Second,
		Metrics: metrics,
		Logger:  zap.NewNop(),
	})
}

func TestIdentify_SendsImageAndToolList(t *testing.T) {
	var captured []*schema.Message
	chatModel := &mockChatModel{generateFunc: func(_ context.Context, messages []*schema.Message) (*schema.Message, error) {
		captured = messages
		return schema.AssistantMessage("Claw Hammer", nil), nil
	}}
	metrics := &outcomeRecorder{}

	result, err := newTestIdentifier(chatModel, metrics).Identify(context.Background(), domain.IdentifyRequest{Image: samplePhoto})
	require.NoError(t, err)
	require.NotNil(t, result.Tool)
	assert.Equal(t, domain.IdentifiedTool{ID: "t16", Name: "Claw Hammer"}, *result.Tool)
	assert.Empty(t, result.Message)
	assert.Equal(t, []domain.IdentifyOutcome{domain.IdentifyOutcomeMatched}, metrics.outcomes)

	require.Len(t, captured, 1)
	parts := captured[0].MultiContent
	require.Len(t, parts, 2)
	assert.Equal(t, schema.ChatMessagePartTypeText, parts[0].Type)
	assert.Contains(t, parts[0].Text, "Socket Set\nWire Stripper/Cutter\nClaw Hammer\nHammer\nLevel")
	assert.Contains(t, parts[0].Text, "UNKNOWN")
	require.NotNil(t, parts[1].ImageURL)
	assert.Equal(t, samplePhoto, parts[1].ImageURL.URL)
}

func TestIdentify_Unknown(t *testing.T) {
	for _, reply := range []string{"UNKNOWN", "unknown.", " Unknown "} {
		metrics := &outcomeRecorder{}
		result, err := newTestIdentifier(replying(reply), metrics).Identify(context.Background(), domain.IdentifyRequest{Image: samplePhoto})
		require.NoError(t, err)
		assert.Nil(t, result.Tool)
		assert.Equal(t, "Could not identify a tool from our catalog in this photo.", result.Message)
		assert.Equal(t, []domain.IdentifyOutcome{domain.IdentifyOutcomeUnknown}, metrics.outcomes)
	}
}

func TestIdentify_NoMatch(t *testing.T) {
	metrics := &outcomeRecorder{}
	result, err := newTestIdentifier(replying("Chainsaw"), metrics).Identify(context.Background(), domain.IdentifyRequest{Image: samplePhoto})
	require.NoError(t, err)
	assert.Nil(t, result.Tool)
	assert.Equal(t, []domain.IdentifyOutcome{domain.IdentifyOutcomeNoMatch}, metrics.outcomes)
}

func TestIdentify_InvalidImage(t *testing.T) {
	for _, image := range []string{"", "not-a-data-url", "data:text/plain;base64,aGk=", "data:image/png,raw"} {
		chatModel := replying("Level")
		_, err := newTestIdentifier(chatModel, nil).Identify(context.Background(), domain.IdentifyRequest{Image: image})
		require.Error(t, err, image)
		assert.ErrorIs(t, err, domain.ErrInvalidImagePayload)
		code, _ := domain.CodeFrom(err)
		assert.Equal(t, domain.CodeInvalidArgument, code)
		assert.Zero(t, chatModel.calls)
	}
}

func TestIdentify_NotConfigured(t *testing.T) {
	identifier := newTestIdentifier(nil, nil)
	assert.False(t, identifier.Configured())

	_, err := identifier.Identify(context.Background(), domain.IdentifyRequest{Image: samplePhoto})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNotConfigured)
}

func TestIdentify_UpstreamFailure(t *testing.T) {
	chatModel := &mockChatModel{generateFunc: func(context.Context, []*schema.Message) (*schema.Message, error) {
		return nil, &goopenai.APIError{HTTPStatusCode: http.StatusTooManyRequests, Message: "Rate limit reached"}
	}}
	_, err := newTestIdentifier(chatModel, nil).Identify(context.Background(), domain.IdentifyRequest{Image: samplePhoto})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrUpstreamQuota)
}

func TestIdentify_CatalogFailure(t *testing.T) {
	chatModel := replying("Level")
	identifier := New(Options{
		Source: staticSource{err: errors.New("open data/tools.json: no such file or directory")},
		Model:  chatModel,
	})
	_, err := identifier.Identify(context.Background(), domain.IdentifyRequest{Image: samplePhoto})
	require.Error(t, err)
	code, _ := domain.CodeFrom(err)
	assert.Equal(t, domain.CodeInternal, code)
	assert.Zero(t, chatModel.calls)
}
