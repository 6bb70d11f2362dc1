package domain

import "time"

// CompletionOp names the relay that issued a model call.
type CompletionOp string

const (
	CompletionOpChat     CompletionOp = "chat"
	CompletionOpIdentify CompletionOp = "identify"
)

// RequestMetric captures one served HTTP request.
type RequestMetric struct {
	Route    string
	Method   string
	Status   int
	Duration time.Duration
}

// Metrics records service observations.
type Metrics interface {
	ObserveRequest(metric RequestMetric)
	ObserveCatalogLoad(duration time.Duration, err error)
	SetCatalogSize(categories int, tools int)
	ObserveCompletionLatency(op CompletionOp, model string, duration time.Duration, err error)
	ObserveCompletionTokens(op CompletionOp, model string, tokens int)
	ObserveIdentifyOutcome(outcome IdentifyOutcome)
}
