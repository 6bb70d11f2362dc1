package catalog

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/google/jsonschema-go/jsonschema"

	"toolcatalog/internal/domain"
)

var catalogSchema = sync.OnceValues(func() (*jsonschema.Resolved, error) {
	schema, err := jsonschema.For[domain.Catalog](nil)
	if err != nil {
		return nil, fmt.Errorf("infer catalog schema: %w", err)
	}
	return schema.Resolve(nil)
})

// CheckSchema validates the raw catalog document against the schema inferred
// from domain.Catalog: required fields, field types, and no unknown keys.
// Decode is more lenient, so a document can load and still fail here.
func CheckSchema(data []byte) []domain.CatalogIssue {
	resolved, err := catalogSchema()
	if err != nil {
		return []domain.CatalogIssue{{Kind: domain.IssueSchema, Subject: "schema", Detail: err.Error()}}
	}

	var instance any
	if err := json.Unmarshal(trimDocument(data), &instance); err != nil {
		return []domain.CatalogIssue{{Kind: domain.IssueSchema, Subject: "document", Detail: err.Error()}}
	}
	if err := resolved.Validate(instance); err != nil {
		return []domain.CatalogIssue{{Kind: domain.IssueSchema, Subject: "document", Detail: err.Error()}}
	}
	return nil
}
