package httpapi

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"toolcatalog/internal/domain"
	"toolcatalog/internal/infra/hashutil"
	"toolcatalog/internal/infra/telemetry"
)

const (
	msgCategoriesFailed = "Failed to load categories"
	msgToolsFailed      = "Failed to load tools"
	msgToolFailed       = "Failed to load tool"
	msgToolNotFound     = "Tool not found"
	msgChatFailed       = "Failed to get a response from the assistant"
	msgIdentifyFailed   = "Failed to identify tool"
	msgInvalidJSON      = "Request body must be valid JSON"
	msgBodyTooLarge     = "Request body is too large"
	msgNotFound         = "Not found"
	msgInternal         = "Internal server error"
)

type errorBody struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, value any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(value)
}

// writeCatalogJSON writes a catalog read with a content ETag and answers a
// matching If-None-Match with 304.
func (s *Server) writeCatalogJSON(w http.ResponseWriter, r *http.Request, label string, value any) {
	etag := hashutil.JSONETag(s.logger, label, value)
	if etag != "" {
		w.Header().Set("ETag", etag)
		if etagMatches(r.Header.Values("If-None-Match"), etag) {
			w.WriteHeader(http.StatusNotModified)
			return
		}
	}
	writeJSON(w, http.StatusOK, value)
}

// etagMatches applies the weak comparison If-None-Match calls for: any listed
// tag equal to etag once the W/ prefix is dropped, or "*".
func etagMatches(headers []string, etag string) bool {
	for _, header := range headers {
		for _, candidate := range strings.Split(header, ",") {
			candidate = strings.TrimSpace(candidate)
			if candidate == "*" || strings.TrimPrefix(candidate, "W/") == etag {
				return true
			}
		}
	}
	return false
}

// writeError maps err onto a status code and a caller-safe message. Only
// client-facing codes may surface their own message; everything else gets
// fallback and the detail goes to the log.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	code, ok := domain.CodeFrom(err)
	if !ok {
		code = domain.CodeInternal
	}
	status := statusFor(code)

	message := fallback
	if exposesMessage(code) {
		message = domain.MessageFrom(err, fallback)
	}

	logger := telemetry.LoggerWithRequest(r.Context(), s.logger)
	if status >= http.StatusInternalServerError {
		logger.Error("request failed", zap.String("code", string(code)), zap.Int(telemetry.FieldStatus, status), zap.Error(err))
	} else {
		logger.Debug("request rejected", zap.String("code", string(code)), zap.Int(telemetry.FieldStatus, status), zap.Error(err))
	}
	writeJSON(w, status, errorBody{Error: message})
}

func statusFor(code domain.ErrorCode) int {
	switch code {
	case domain.CodeInvalidArgument:
		return http.StatusBadRequest
	case domain.CodeNotFound:
		return http.StatusNotFound
	case domain.CodeFailedPrecond, domain.CodeUnauthenticated, domain.CodeResourceExhaust, domain.CodeUnavailable, domain.CodeDeadlineExceeded:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func exposesMessage(code domain.ErrorCode) bool {
	switch code {
	case domain.CodeInvalidArgument, domain.CodeNotFound, domain.CodeFailedPrecond,
		domain.CodeUnauthenticated, domain.CodeResourceExhaust:
		return true
	default:
		return false
	}
}

// decodeBody reads a JSON request body into dst. An empty body leaves dst at
// its zero value so field-level validation can report what is missing.
func decodeBody(r *http.Request, dst any) error {
	const op = "httpapi.decode_body"
	err := json.NewDecoder(r.Body).Decode(dst)
	switch {
	case err == nil, errors.Is(err, io.EOF):
		return nil
	default:
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return &domain.Error{Code: domain.CodeInvalidArgument, Op: op, Message: msgBodyTooLarge, Cause: err}
		}
		return &domain.Error{Code: domain.CodeInvalidArgument, Op: op, Message: msgInvalidJSON, Cause: errors.Join(domain.ErrInvalidRequest, err)}
	}
}
