package assistant

import (
	"strings"

	"github.com/cloudwego/eino/schema"

	"toolcatalog/internal/domain"
)

const systemInstructions = `You are a friendly hardware store assistant for our tool catalog.
Help customers choose tools, explain how to use them safely, and give short step-by-step instructions for common jobs.
Prefer recommending tools that appear in the catalog below. Keep answers concise and practical.`

// BuildSystemPrompt renders the instructional message with the category
// names and up to perCategory tool names sampled from each category.
func BuildSystemPrompt(catalog domain.Catalog, perCategory int) string {
	var b strings.Builder
	b.WriteString(systemInstructions)
	b.WriteString("\n\nCatalog categories:\n")
	for _, category := range catalog.Categories {
		b.WriteString("- ")
		b.WriteString(category.Name)
		names := sampleToolNames(catalog, category.ID, perCategory)
		if len(names) > 0 {
			b.WriteString(": ")
			b.WriteString(strings.Join(names, ", "))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func sampleToolNames(catalog domain.Catalog, categoryID string, limit int) []string {
	if limit <= 0 {
		return nil
	}
	names := make([]string, 0, limit)
	for _, tool := range catalog.Tools {
		if tool.Category != categoryID {
			continue
		}
		names = append(names, tool.Name)
		if len(names) == limit {
			break
		}
	}
	return names
}

// trimHistory keeps the last limit turns that have a known role and
// non-empty content.
func trimHistory(history []domain.ChatMessage, limit int) []domain.ChatMessage {
	if limit <= 0 {
		return nil
	}
	kept := make([]domain.ChatMessage, 0, len(history))
	for _, msg := range history {
		if strings.TrimSpace(msg.Content) == "" {
			continue
		}
		switch msg.Role {
		case domain.ChatRoleUser, domain.ChatRoleAssistant:
			kept = append(kept, msg)
		}
	}
	if len(kept) > limit {
		kept = kept[len(kept)-limit:]
	}
	return kept
}

func toMessages(systemPrompt string, history []domain.ChatMessage, message string) []*schema.Message {
	messages := make([]*schema.Message, 0, len(history)+2)
	messages = append(messages, schema.SystemMessage(systemPrompt))
	for _, msg := range history {
		switch msg.Role {
		case domain.ChatRoleUser:
			messages = append(messages, schema.UserMessage(msg.Content))
		case domain.ChatRoleAssistant:
			messages = append(messages, schema.AssistantMessage(msg.Content, nil))
		}
	}
	messages = append(messages, schema.UserMessage(message))
	return messages
}
