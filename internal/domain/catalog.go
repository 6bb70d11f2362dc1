package domain

import "context"

// Category groups tools on the catalog page.
type Category struct {
	ID   string `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`
	Icon string `json:"icon,omitempty" yaml:"icon,omitempty"`
}

// Tool is a single catalog entry. Category references a Category ID.
type Tool struct {
	ID          string   `json:"id" yaml:"id"`
	Name        string   `json:"name" yaml:"name"`
	Category    string   `json:"category" yaml:"category"`
	Description string   `json:"description" yaml:"description"`
	Image       string   `json:"image" yaml:"image"`
	Uses        []string `json:"uses,omitempty" yaml:"uses,omitempty"`
}

// Catalog is the parsed content of the data file.
type Catalog struct {
	Categories []Category `json:"categories"`
	Tools      []Tool     `json:"tools"`
}

// CatalogSource yields a freshly loaded catalog on every call.
type CatalogSource interface {
	Load(ctx context.Context) (Catalog, error)
}

// ToolsInCategory returns the tools whose category equals id, in file order.
// An empty id returns every tool.
func (c Catalog) ToolsInCategory(id string) []Tool {
	if id == "" {
		return c.Tools
	}
	out := make([]Tool, 0)
	for _, tool := range c.Tools {
		if tool.Category == id {
			out = append(out, tool)
		}
	}
	return out
}

// ToolByID returns the first tool whose id matches exactly.
func (c Catalog) ToolByID(id string) (Tool, bool) {
	for _, tool := range c.Tools {
		if tool.ID == id {
			return tool, true
		}
	}
	return Tool{}, false
}

// ToolNames lists tool names in file order.
func (c Catalog) ToolNames() []string {
	names := make([]string, len(c.Tools))
	for i, tool := range c.Tools {
		names[i] = tool.Name
	}
	return names
}

// CatalogIssueKind classifies a data file problem found by validation.
type CatalogIssueKind string

const (
	IssueDuplicateCategory CatalogIssueKind = "duplicate_category"
	IssueDuplicateTool     CatalogIssueKind = "duplicate_tool"
	IssueUnknownCategory   CatalogIssueKind = "unknown_category"
	IssueMissingID         CatalogIssueKind = "missing_id"
	IssueMissingName       CatalogIssueKind = "missing_name"
	IssueSchema            CatalogIssueKind = "schema"
)

// CatalogIssue describes one validation finding.
type CatalogIssue struct {
	Kind    CatalogIssueKind `json:"kind" yaml:"kind"`
	Subject string           `json:"subject" yaml:"subject"`
	Detail  string           `json:"detail" yaml:"detail"`
}
