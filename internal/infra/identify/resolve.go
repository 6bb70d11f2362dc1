package identify

import (
	"regexp"
	"strings"

	"toolcatalog/internal/domain"
)

var slashPattern = regexp.MustCompile(`\s*/\s*`)

// ResolveToolName maps a free-form model reply onto a catalog tool.
//
// The reply is trimmed, loses one trailing period and is upper-cased. The
// unknown sentinel never matches. Otherwise the first tool, in catalog
// order, whose upper-cased name equals or is contained in the reply wins.
// Failing that, slashes and their surrounding whitespace are collapsed to a
// single space on both sides and containment is tried in either direction.
// Matching is intentionally loose and short names can match spuriously.
func ResolveToolName(reply string, tools []domain.Tool) (domain.Tool, bool) {
	normalized := strings.ToUpper(strings.TrimSuffix(strings.TrimSpace(reply), "."))
	if normalized == "" || normalized == domain.UnknownToolSentinel {
		return domain.Tool{}, false
	}

	for _, tool := range tools {
		name := strings.ToUpper(tool.Name)
		if name == "" {
			continue
		}
		if name == normalized || strings.Contains(normalized, name) {
			return tool, true
		}
	}

	collapsed := collapseSlashes(normalized)
	for _, tool := range tools {
		name := collapseSlashes(strings.ToUpper(tool.Name))
		if strings.TrimSpace(name) == "" {
			continue
		}
		if strings.Contains(collapsed, name) || strings.Contains(name, collapsed) {
			return tool, true
		}
	}
	return domain.Tool{}, false
}

func collapseSlashes(value string) string {
	return slashPattern.ReplaceAllString(value, " ")
}

// isSentinel reports whether reply is the unknown sentinel after
// normalization.
func isSentinel(reply string) bool {
	return strings.ToUpper(strings.TrimSuffix(strings.TrimSpace(reply), ".")) == domain.UnknownToolSentinel
}
