package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	goopenai "github.com/meguminnnnnnnnn/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"toolcatalog/internal/domain"
)

func apiError(status int, code any, message string) error {
	return &goopenai.APIError{
		Code:           code,
		Message:        message,
		HTTPStatus:     http.StatusText(status),
		HTTPStatusCode: status,
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode domain.ErrorCode
		wantIs   error
	}{
		{
			name:     "api error 401",
			err:      fmt.Errorf("failed to create chat completion: %w", apiError(http.StatusUnauthorized, "invalid_api_key", "Incorrect API key provided")),
			wantCode: domain.CodeUnauthenticated,
			wantIs:   domain.ErrUpstreamAuth,
		},
		{
			name:     "api error 403",
			err:      apiError(http.StatusForbidden, nil, "Project does not have access"),
			wantCode: domain.CodeUnauthenticated,
			wantIs:   domain.ErrUpstreamAuth,
		},
		{
			name:     "api error 429",
			err:      fmt.Errorf("generate: %w", apiError(http.StatusTooManyRequests, "rate_limit_exceeded", "Rate limit reached")),
			wantCode: domain.CodeResourceExhaust,
			wantIs:   domain.ErrUpstreamQuota,
		},
		{
			name:     "api error code without auth status",
			err:      apiError(http.StatusBadRequest, "insufficient_quota", "You exceeded your current quota"),
			wantCode: domain.CodeResourceExhaust,
			wantIs:   domain.ErrUpstreamQuota,
		},
		{
			name:     "request error 429",
			err:      fmt.Errorf("generate: %w", &goopenai.RequestError{HTTPStatusCode: http.StatusTooManyRequests, Err: errors.New("too many requests")}),
			wantCode: domain.CodeResourceExhaust,
			wantIs:   domain.ErrUpstreamQuota,
		},
		{
			name:     "request error 502",
			err:      &goopenai.RequestError{HTTPStatusCode: http.StatusBadGateway, Err: errors.New("bad gateway")},
			wantCode: domain.CodeInternal,
		},
		{
			name:     "api error 500 with 401 in request id",
			err:      apiError(http.StatusInternalServerError, nil, "internal error, request id: req_4011abc"),
			wantCode: domain.CodeInternal,
		},
		{
			name:     "text 500 with 401 in request id",
			err:      errors.New("error, status code: 500, message: internal error, request id: req_4011abc"),
			wantCode: domain.CodeInternal,
		},
		{
			name:     "text mentioning quota in passing",
			err:      errors.New("status code: 500, message: quota service unavailable"),
			wantCode: domain.CodeInternal,
		},
		{
			name:     "text invalid_api_key code",
			err:      errors.New(`{"error":{"code":"invalid_api_key"}}`),
			wantCode: domain.CodeUnauthenticated,
			wantIs:   domain.ErrUpstreamAuth,
		},
		{
			name:     "text insufficient_quota code",
			err:      fmt.Errorf("generate: %w", errors.New("insufficient_quota")),
			wantCode: domain.CodeResourceExhaust,
			wantIs:   domain.ErrUpstreamQuota,
		},
		{
			name:     "deadline",
			err:      fmt.Errorf("post: %w", context.DeadlineExceeded),
			wantCode: domain.CodeDeadlineExceeded,
		},
		{
			name:     "other",
			err:      errors.New("connection reset by peer"),
			wantCode: domain.CodeInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			classified := Classify("chat.reply", tt.err)
			require.Error(t, classified)

			code, ok := domain.CodeFrom(classified)
			require.True(t, ok)
			assert.Equal(t, tt.wantCode, code)
			assert.ErrorIs(t, classified, tt.err)
			if tt.wantIs != nil {
				assert.ErrorIs(t, classified, tt.wantIs)
			}
		})
	}
}

func TestClassify_ReadableMessages(t *testing.T) {
	err := Classify("chat.reply", apiError(http.StatusUnauthorized, nil, "unauthorized"))
	assert.Equal(t, msgAuth, domain.MessageFrom(err, "fallback"))

	err = Classify("chat.reply", apiError(http.StatusInternalServerError, nil, "server error"))
	assert.Equal(t, "fallback", domain.MessageFrom(err, "fallback"))
}

func TestClassify_KeepsDomainErrors(t *testing.T) {
	original := domain.E(domain.CodeInvalidArgument, "identify", "bad", nil)
	assert.Same(t, original, Classify("identify", original))
	assert.NoError(t, Classify("identify", nil))
}
