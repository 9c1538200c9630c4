package service

import (
	"strings"

	"github.com/trtslyr/islajournal/internal/domain"
)

// Section labels are fixed; the assembler's only job is formatting. Non-empty
// sections appear exactly once, in source tier order, and the user's question
// appears verbatim at the end.
const (
	promptPreamble = "You are a thoughtful writing companion inside a private journaling app. " +
		"Answer in a warm, conversational tone, ground every claim in the journal excerpts " +
		"provided below, and say so plainly when the journal does not contain the answer. " +
		"Never invent entries the writer did not make."

	labelProfile   = "## About the writer"
	labelHistory   = "## Recent conversation"
	labelCustom    = "## Pinned entries"
	labelRetrieved = "## Related journal entries"
	labelQuestion  = "## Question"
)

// AssemblePrompt concatenates the allocated context sections into the final
// instruction text for the generation backend.
func AssemblePrompt(c *domain.AssembledContext, query string) string {
	var sb strings.Builder
	sb.WriteString(promptPreamble)

	sections := []struct {
		label string
		body  string
	}{
		{labelProfile, c.Profile},
		{labelHistory, c.History},
		{labelCustom, c.Custom},
		{labelRetrieved, c.Retrieved},
	}
	for _, s := range sections {
		if s.body == "" {
			continue
		}
		sb.WriteString("\n\n")
		sb.WriteString(s.label)
		sb.WriteString("\n")
		sb.WriteString(s.body)
	}

	sb.WriteString("\n\n")
	sb.WriteString(labelQuestion)
	sb.WriteString("\n")
	sb.WriteString(query)

	return sb.String()
}
