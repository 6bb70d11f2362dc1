package domain

import (
	"errors"
	"fmt"
)

type ErrorCode string

const (
	CodeInvalidArgument  ErrorCode = "INVALID_ARGUMENT"
	CodeNotFound         ErrorCode = "NOT_FOUND"
	CodeUnavailable      ErrorCode = "UNAVAILABLE"
	CodeFailedPrecond    ErrorCode = "FAILED_PRECONDITION"
	CodeUnauthenticated  ErrorCode = "UNAUTHENTICATED"
	CodeResourceExhaust  ErrorCode = "RESOURCE_EXHAUSTED"
	CodeInternal         ErrorCode = "INTERNAL"
	CodeCanceled         ErrorCode = "CANCELED"
	CodeDeadlineExceeded ErrorCode = "DEADLINE_EXCEEDED"
)

var (
	ErrInvalidRequest      = errors.New("invalid request")
	ErrToolNotFound        = errors.New("tool not found")
	ErrNotConfigured       = errors.New("service not configured")
	ErrUpstreamAuth        = errors.New("upstream rejected credentials")
	ErrUpstreamQuota       = errors.New("upstream quota exceeded")
	ErrCatalogUnavailable  = errors.New("catalog unavailable")
	ErrInvalidImagePayload = errors.New("invalid image payload")
)

// Error is the error type shared by every layer. Message is safe to show to
// API callers; Cause carries the internal detail and is only logged.
type Error struct {
	Code      ErrorCode
	Op        string
	Message   string
	Cause     error
	Retryable bool
	Meta      map[string]string
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	msg := e.Message
	if msg == "" && e.Cause != nil {
		msg = e.Cause.Error()
	}
	if e.Op == "" {
		if msg == "" {
			return string(e.Code)
		}
		return fmt.Sprintf("%s: %s", e.Code, msg)
	}
	if msg == "" {
		return fmt.Sprintf("%s: %s", e.Op, e.Code)
	}
	return fmt.Sprintf("%s: %s: %s", e.Op, e.Code, msg)
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

func E(code ErrorCode, op, msg string, cause error) *Error {
	if msg == "" && cause != nil {
		msg = cause.Error()
	}
	return &Error{
		Code:    code,
		Op:      op,
		Message: msg,
		Cause:   cause,
	}
}

func Wrap(code ErrorCode, op string, err error) *Error {
	if err == nil {
		return nil
	}
	var existing *Error
	if errors.As(err, &existing) {
		if existing.Op != "" || op == "" {
			return existing
		}
		return &Error{
			Code:      existing.Code,
			Op:        op,
			Message:   existing.Message,
			Cause:     existing.Cause,
			Retryable: existing.Retryable,
			Meta:      existing.Meta,
		}
	}
	return E(code, op, "", err)
}

func CodeFrom(err error) (ErrorCode, bool) {
	if err == nil {
		return "", false
	}
	var domainErr *Error
	if errors.As(err, &domainErr) && domainErr.Code != "" {
		return domainErr.Code, true
	}
	switch {
	case errors.Is(err, ErrInvalidRequest), errors.Is(err, ErrInvalidImagePayload):
		return CodeInvalidArgument, true
	case errors.Is(err, ErrToolNotFound):
		return CodeNotFound, true
	case errors.Is(err, ErrNotConfigured):
		return CodeFailedPrecond, true
	case errors.Is(err, ErrUpstreamAuth):
		return CodeUnauthenticated, true
	case errors.Is(err, ErrUpstreamQuota):
		return CodeResourceExhaust, true
	case errors.Is(err, ErrCatalogUnavailable):
		return CodeInternal, true
	default:
		return "", false
	}
}

// MessageFrom returns the message explicitly attached to err, or fallback.
// Messages copied from a cause by E are never returned.
func MessageFrom(err error, fallback string) string {
	var domainErr *Error
	if !errors.As(err, &domainErr) || domainErr.Message == "" {
		return fallback
	}
	if domainErr.Cause != nil && domainErr.Message == domainErr.Cause.Error() {
		return fallback
	}
	return domainErr.Message
}
