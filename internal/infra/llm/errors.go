package llm

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"unicode"

	goopenai "github.com/meguminnnnnnnnn/go-openai"

	"toolcatalog/internal/domain"
)

const (
	msgAuth  = "AI service authentication failed. Please check the API key."
	msgQuota = "AI service quota exceeded or rate limited. Please try again later."
)

type upstreamKind int

const (
	upstreamOther upstreamKind = iota
	upstreamAuth
	upstreamQuota
)

var upstreamCodes = map[string]upstreamKind{
	"invalid_api_key":    upstreamAuth,
	"insufficient_quota": upstreamQuota,
}

// Classify maps an upstream completion failure onto the domain error
// taxonomy. Provider errors are recognised by HTTP status first, then by the
// provider's error code.
func Classify(op string, err error) error {
	if err == nil {
		return nil
	}
	var domainErr *domain.Error
	if errors.As(err, &domainErr) {
		return err
	}
	if errors.Is(err, context.Canceled) {
		return domain.E(domain.CodeCanceled, op, "Request canceled", err)
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return domain.E(domain.CodeDeadlineExceeded, op, "AI service timed out", err)
	}

	switch upstreamKindOf(err) {
	case upstreamAuth:
		return &domain.Error{
			Code:    domain.CodeUnauthenticated,
			Op:      op,
			Message: msgAuth,
			Cause:   errors.Join(domain.ErrUpstreamAuth, err),
		}
	case upstreamQuota:
		return &domain.Error{
			Code:      domain.CodeResourceExhaust,
			Op:        op,
			Message:   msgQuota,
			Cause:     errors.Join(domain.ErrUpstreamQuota, err),
			Retryable: true,
		}
	default:
		return domain.E(domain.CodeInternal, op, "", err)
	}
}

func upstreamKindOf(err error) upstreamKind {
	var apiErr *goopenai.APIError
	if errors.As(err, &apiErr) {
		if kind := kindFromStatus(apiErr.HTTPStatusCode); kind != upstreamOther {
			return kind
		}
		if code, ok := apiErr.Code.(string); ok {
			if kind, ok := upstreamCodes[strings.ToLower(code)]; ok {
				return kind
			}
		}
	}
	var reqErr *goopenai.RequestError
	if errors.As(err, &reqErr) {
		if kind := kindFromStatus(reqErr.HTTPStatusCode); kind != upstreamOther {
			return kind
		}
	}
	return kindFromText(err.Error())
}

func kindFromStatus(status int) upstreamKind {
	switch status {
	case http.StatusUnauthorized, http.StatusForbidden:
		return upstreamAuth
	case http.StatusTooManyRequests:
		return upstreamQuota
	default:
		return upstreamOther
	}
}

// kindFromText looks for a provider error code as a whole token in text.
func kindFromText(text string) upstreamKind {
	tokens := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_'
	})
	for _, token := range tokens {
		if kind, ok := upstreamCodes[token]; ok {
			return kind
		}
	}
	return upstreamOther
}
