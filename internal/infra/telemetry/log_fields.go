package telemetry

import (
	"time"

	"go.uber.org/zap"
)

const (
	FieldEvent      = "event"
	FieldRoute      = "route"
	FieldMethod     = "method"
	FieldStatus     = "status"
	FieldModel      = "model"
	FieldOp         = "op"
	FieldDurationMs = "duration_ms"
	FieldRequestID  = "request_id"
	FieldTraceID    = "trace_id"
	FieldSpanID     = "span_id"
	FieldPath       = "path"
)

const (
	EventRequestServed   = "request_served"
	EventRequestPanic    = "request_panic"
	EventCatalogLoadFail = "catalog_load_failure"
	EventCatalogChanged  = "catalog_changed"
	EventCatalogIssue    = "catalog_issue"
	EventCompletionFail  = "completion_failure"
	EventToolIdentified  = "tool_identified"
)

func EventField(event string) zap.Field {
	return zap.String(FieldEvent, event)
}

func RouteField(route string) zap.Field {
	return zap.String(FieldRoute, route)
}

func ModelField(model string) zap.Field {
	return zap.String(FieldModel, model)
}

func OpField(op string) zap.Field {
	return zap.String(FieldOp, op)
}

func PathField(path string) zap.Field {
	return zap.String(FieldPath, path)
}

func DurationField(duration time.Duration) zap.Field {
	return zap.Int64(FieldDurationMs, duration.Milliseconds())
}

func RequestIDField(value string) zap.Field {
	return zap.String(FieldRequestID, value)
}

func TraceIDField(value string) zap.Field {
	return zap.String(FieldTraceID, value)
}

func SpanIDField(value string) zap.Field {
	return zap.String(FieldSpanID, value)
}
