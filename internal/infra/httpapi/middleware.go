package httpapi

import (
	"net/http"
	"time"

	"go.uber.org/zap"

	"toolcatalog/internal/domain"
	"toolcatalog/internal/infra/telemetry"
)

const unmatchedRoute = "unmatched"

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	if r.status == 0 {
		r.status = status
	}
	r.ResponseWriter.WriteHeader(status)
}

func (r *statusRecorder) Write(p []byte) (int, error) {
	if r.status == 0 {
		r.status = http.StatusOK
	}
	return r.ResponseWriter.Write(p)
}

func (r *statusRecorder) Unwrap() http.ResponseWriter {
	return r.ResponseWriter
}

// instrument attaches request metadata, echoes the request id, and records
// an access log line and a latency observation per request.
func (s *Server) instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		started := time.Now()
		ctx, meta := telemetry.RequestMetaFromHTTP(r)
		r = r.WithContext(ctx)
		w.Header().Set(telemetry.RequestIDHeader, meta.RequestID)

		rec := &statusRecorder{ResponseWriter: w}
		next.ServeHTTP(rec, r)

		status := rec.status
		if status == 0 {
			status = http.StatusOK
		}
		route := r.Pattern
		if route == "" {
			route = unmatchedRoute
		}
		duration := time.Since(started)
		s.metrics.ObserveRequest(domain.RequestMetric{
			Route:    route,
			Method:   r.Method,
			Status:   status,
			Duration: duration,
		})
		telemetry.LoggerWithRequest(ctx, s.logger).Info("request served",
			telemetry.EventField(telemetry.EventRequestServed),
			telemetry.RouteField(route),
			zap.String(telemetry.FieldMethod, r.Method),
			telemetry.PathField(r.URL.Path),
			zap.Int(telemetry.FieldStatus, status),
			telemetry.DurationField(duration),
		)
	})
}

func (s *Server) recoverPanics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			recovered := recover()
			if recovered == nil {
				return
			}
			if recovered == http.ErrAbortHandler {
				panic(recovered)
			}
			telemetry.LoggerWithRequest(r.Context(), s.logger).Error("handler panic",
				telemetry.EventField(telemetry.EventRequestPanic),
				telemetry.PathField(r.URL.Path),
				zap.Any("panic", recovered),
				zap.Stack("stack"),
			)
			writeJSON(w, http.StatusInternalServerError, errorBody{Error: msgInternal})
		}()
		next.ServeHTTP(w, r)
	})
}

func (s *Server) limitBody(next http.Handler) http.Handler {
	limit := s.config.MaxBodyBytes
	if limit <= 0 {
		limit = domain.DefaultMaxBodyBytes
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, limit)
		next.ServeHTTP(w, r)
	})
}
