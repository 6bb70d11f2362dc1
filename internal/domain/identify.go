package domain

// IdentifyRequest is the body of POST /api/identify-tool. Image holds a
// base64 data URL such as "data:image/jpeg;base64,...".
type IdentifyRequest struct {
	Image string `json:"image"`
}

// IdentifiedTool is the reduced tool projection returned on a match.
type IdentifiedTool struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// IdentifyResult is the body returned by POST /api/identify-tool.
// Tool is nil when nothing in the catalog matched.
type IdentifyResult struct {
	Tool    *IdentifiedTool `json:"tool"`
	Message string          `json:"message,omitempty"`
}

// IdentifyOutcome labels how a resolution attempt ended.
type IdentifyOutcome string

const (
	IdentifyOutcomeMatched IdentifyOutcome = "matched"
	IdentifyOutcomeUnknown IdentifyOutcome = "unknown"
	IdentifyOutcomeNoMatch IdentifyOutcome = "no_match"
)
