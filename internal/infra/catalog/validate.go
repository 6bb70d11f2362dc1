package catalog

import (
	"fmt"
	"strings"

	"toolcatalog/internal/domain"
)

// Validate reports structural problems in a catalog. The API never calls it;
// it backs the validate command and the file watcher.
func Validate(catalog domain.Catalog) []domain.CatalogIssue {
	var issues []domain.CatalogIssue

	categoryIDs := make(map[string]struct{}, len(catalog.Categories))
	for i, category := range catalog.Categories {
		subject := fmt.Sprintf("categories[%d]", i)
		if strings.TrimSpace(category.ID) == "" {
			issues = append(issues, domain.CatalogIssue{Kind: domain.IssueMissingID, Subject: subject, Detail: "category id is empty"})
			continue
		}
		if strings.TrimSpace(category.Name) == "" {
			issues = append(issues, domain.CatalogIssue{Kind: domain.IssueMissingName, Subject: category.ID, Detail: "category name is empty"})
		}
		if _, seen := categoryIDs[category.ID]; seen {
			issues = append(issues, domain.CatalogIssue{
				Kind:    domain.IssueDuplicateCategory,
				Subject: category.ID,
				Detail:  fmt.Sprintf("%s repeats category id %q", subject, category.ID),
			})
			continue
		}
		categoryIDs[category.ID] = struct{}{}
	}

	toolIDs := make(map[string]struct{}, len(catalog.Tools))
	for i, tool := range catalog.Tools {
		subject := fmt.Sprintf("tools[%d]", i)
		if strings.TrimSpace(tool.ID) == "" {
			issues = append(issues, domain.CatalogIssue{Kind: domain.IssueMissingID, Subject: subject, Detail: "tool id is empty"})
		} else if _, seen := toolIDs[tool.ID]; seen {
			issues = append(issues, domain.CatalogIssue{
				Kind:    domain.IssueDuplicateTool,
				Subject: tool.ID,
				Detail:  fmt.Sprintf("%s repeats tool id %q", subject, tool.ID),
			})
		} else {
			toolIDs[tool.ID] = struct{}{}
			subject = tool.ID
		}
		if strings.TrimSpace(tool.Name) == "" {
			issues = append(issues, domain.CatalogIssue{Kind: domain.IssueMissingName, Subject: subject, Detail: "tool name is empty"})
		}
		if _, ok := categoryIDs[tool.Category]; !ok {
			issues = append(issues, domain.CatalogIssue{
				Kind:    domain.IssueUnknownCategory,
				Subject: subject,
				Detail:  fmt.Sprintf("category %q is not defined", tool.Category),
			})
		}
	}

	return issues
}
