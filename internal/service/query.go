package service

import (
	"context"
	"strings"

	"github.com/trtslyr/islajournal/internal/domain"
	"github.com/trtslyr/islajournal/internal/telemetry"
)

// DefaultAnswerTokens caps the generation backend's output when the caller
// does not configure one.
const DefaultAnswerTokens = 1000

// Generator is the external text-generation backend: prompt and token limit
// in, generated text out. Timeouts around the call are the caller's concern.
type Generator interface {
	Generate(ctx context.Context, prompt string, maxTokens int) (string, error)
}

// ContextSource produces the budgeted prompt context for a query.
type ContextSource interface {
	Build(ctx context.Context, query string, conversation []domain.ConversationMessage, settings domain.ContextSettings) (*domain.AssembledContext, error)
}

// QueryService is the end-to-end read path: retrieve, budget, assemble,
// generate.
type QueryService struct {
	builder      ContextSource
	generator    Generator
	answerTokens int
}

// NewQueryService creates a new QueryService instance
func NewQueryService(builder ContextSource, generator Generator, answerTokens int) *QueryService {
	if answerTokens <= 0 {
		answerTokens = DefaultAnswerTokens
	}
	return &QueryService{
		builder:      builder,
		generator:    generator,
		answerTokens: answerTokens,
	}
}

// Answer produces the generated answer for a free-text question about the
// journal. Generation failures are not retried here; they surface as a
// GENERATION_ERROR carrying a user-facing fallback message.
func (s *QueryService) Answer(
	ctx context.Context,
	userText string,
	conversation []domain.ConversationMessage,
	settings domain.ContextSettings,
) (string, error) {
	ctx, span := telemetry.StartSpan(ctx, "QueryService.Answer", telemetry.SpanAttributes{
		Operation: "answer",
	})
	defer span.End()

	if strings.TrimSpace(userText) == "" {
		return "", domain.ErrEmptyQuery
	}

	assembled, err := s.builder.Build(ctx, userText, conversation, settings)
	if err != nil {
		span.SetError(err)
		return "", err
	}

	prompt := AssemblePrompt(assembled, userText)

	answer, err := s.generator.Generate(ctx, prompt, s.answerTokens)
	if err != nil {
		span.SetError(err)
		return "", domain.NewDomainErrorWithCause(domain.ErrCodeGeneration, domain.ErrGenerationFailed.Message, err)
	}
	return answer, nil
}
