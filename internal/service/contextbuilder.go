package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/trtslyr/islajournal/internal/domain"
	"github.com/trtslyr/islajournal/internal/telemetry"
)

// NoRelevantEntries is the retrieved-tier content for a query against an empty
// index. It is a sentinel visible to the prompt assembler, not an error.
const NoRelevantEntries = "No relevant journal entries found."

// retrievedTopK bounds how many ranked files the retrieval tier considers.
const retrievedTopK = 10

// ProfileSource returns the user's profile text blob, or "" when no profile
// has been written.
type ProfileSource interface {
	Profile(ctx context.Context) (string, error)
}

// FileContentSource looks up a journal file with its full content.
type FileContentSource interface {
	GetByID(ctx context.Context, id string) (*domain.JournalFile, error)
}

// Searcher ranks journal files against a query.
type Searcher interface {
	Search(ctx context.Context, query string, topK int) ([]domain.SimilarityResult, error)
}

// ContextBuilder packs competing content sources into a bounded prompt
// context. The packing is a deterministic priority waterfall, not an
// optimization: profile, then conversation history, then pinned files, then
// retrieved passages, each tier consuming budget the later tiers never get
// back. An item that would overflow its tier is dropped whole, never trimmed,
// even when that leaves room a smaller later item could have used.
type ContextBuilder struct {
	profiles      ProfileSource
	files         FileContentSource
	search        Searcher
	defaultBudget int
}

// NewContextBuilder creates a new ContextBuilder instance
func NewContextBuilder(profiles ProfileSource, files FileContentSource, search Searcher, defaultBudget int) *ContextBuilder {
	if defaultBudget <= 0 {
		defaultBudget = domain.DefaultTokenBudget
	}
	return &ContextBuilder{
		profiles:      profiles,
		files:         files,
		search:        search,
		defaultBudget: defaultBudget,
	}
}

// Build runs the budget waterfall for one query. It is read-only with respect
// to storage; abandoning the returned context has no side effect.
func (b *ContextBuilder) Build(
	ctx context.Context,
	query string,
	conversation []domain.ConversationMessage,
	settings domain.ContextSettings,
) (*domain.AssembledContext, error) {
	ctx, span := telemetry.StartSpan(ctx, "ContextBuilder.Build", telemetry.SpanAttributes{
		Operation: "build_context",
	})
	defer span.End()

	total := settings.TokenBudget
	if total <= 0 {
		total = b.defaultBudget
	}
	budget := domain.DeriveTokenBudget(total)

	out := &domain.AssembledContext{Budget: budget}

	// Tier 1: profile, truncated at the last sentence boundary that fits.
	profile, err := b.profiles.Profile(ctx)
	if err != nil && !errors.Is(err, domain.ErrProfileNotFound) {
		span.SetError(err)
		return nil, domain.NewDomainErrorWithCause(domain.ErrCodeStorage, "failed to load profile", err)
	}
	out.Profile = truncateAtSentence(profile, budget.Profile)
	out.Used.Profile = EstimateTokens(out.Profile)

	// Tier 2: conversation history, newest first, whole messages only,
	// stopping at the first message that does not fit.
	out.History, out.Used.Conversation = packHistory(conversation, budget.Conversation)

	// Tier 3: pinned files. The cap is a fixed share of the remainder left by
	// the reserved tiers, computed once before any file is accepted.
	remainder := budget.Total - out.Used.Profile - out.Used.Conversation
	customCap := int(float64(remainder) * domain.CustomShareOfRemainder)
	out.Budget.Custom = customCap

	custom, customUsed, err := b.packCustomFiles(ctx, settings, customCap)
	if err != nil {
		span.SetError(err)
		return nil, err
	}
	out.Custom = custom
	out.Used.Custom = customUsed

	// Tier 4: retrieved passages take whatever is left.
	retrievedCap := budget.Total - out.Used.Profile - out.Used.Conversation - out.Used.Custom
	out.Budget.Retrieved = retrievedCap

	retrieved, retrievedUsed, err := b.packRetrieved(ctx, query, retrievedCap)
	if err != nil {
		span.SetError(err)
		return nil, err
	}
	out.Retrieved = retrieved
	out.Used.Retrieved = retrievedUsed

	return out, nil
}

// truncateAtSentence returns the longest prefix of text, ending on a sentence
// boundary, whose estimated cost fits the cap. Text is never cut mid-sentence;
// when not even the first sentence fits the result is empty.
func truncateAtSentence(text string, limit int) string {
	text = strings.TrimSpace(text)
	if text == "" {
		return ""
	}
	if EstimateTokens(text) <= limit {
		return text
	}

	var fit string
	for _, end := range sentenceBoundaries(text) {
		candidate := strings.TrimSpace(text[:end])
		if EstimateTokens(candidate) > limit {
			break
		}
		fit = candidate
	}
	return fit
}

// sentenceBoundaries returns byte offsets just past each sentence terminator
// run in text, in ascending order.
func sentenceBoundaries(text string) []int {
	var bounds []int
	inRun := false
	for i, r := range text {
		if r == '.' || r == '!' || r == '?' {
			inRun = true
			continue
		}
		if inRun {
			bounds = append(bounds, i)
			inRun = false
		}
	}
	if inRun {
		bounds = append(bounds, len(text))
	}
	return bounds
}

// packHistory walks the most recent messages backward, accepting each whole
// message only while the running total stays within cap. Older messages are
// dropped, not trimmed mid-message, and the walk stops at the first rejection.
func packHistory(conversation []domain.ConversationMessage, limit int) (string, int) {
	used := 0
	var accepted []string
	for i := len(conversation) - 1; i >= 0; i-- {
		line := fmt.Sprintf("%s: %s", conversation[i].Role, conversation[i].Content)
		cost := EstimateTokens(line)
		if len(accepted) > 0 {
			cost++ // the joining newline
		}
		if used+cost > limit {
			break
		}
		accepted = append(accepted, line)
		used += cost
	}

	// Accepted newest-first; render chronologically.
	for i, j := 0, len(accepted)-1; i < j; i, j = i+1, j-1 {
		accepted[i], accepted[j] = accepted[j], accepted[i]
	}
	return strings.Join(accepted, "\n"), used
}

func (b *ContextBuilder) packCustomFiles(ctx context.Context, settings domain.ContextSettings, limit int) (string, int, error) {
	used := 0
	var blocks []string
	for _, id := range settings.SelectedFileIDs {
		if id == settings.ProfileFileID {
			continue
		}

		f, err := b.files.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, domain.ErrFileNotFound) {
				log.Printf("context: pinned file %s no longer exists, skipping", id)
				continue
			}
			return "", 0, domain.NewDomainErrorWithCause(domain.ErrCodeStorage, "failed to load pinned file", err)
		}

		// Charge for the block as rendered, header and separator included, so
		// the assembled section itself stays within the cap.
		block := fmt.Sprintf("[%s]\n%s", f.Name, f.Content)
		if len(blocks) > 0 {
			block = "\n\n" + block
		}
		cost := EstimateTokens(block)
		if used+cost > limit {
			// First overflow ends the tier; remaining files are dropped
			// entirely, never partially included.
			break
		}
		blocks = append(blocks, block)
		used += cost
	}
	return strings.Join(blocks, ""), used, nil
}

func (b *ContextBuilder) packRetrieved(ctx context.Context, query string, limit int) (string, int, error) {
	results, err := b.search.Search(ctx, query, retrievedTopK)
	if err != nil {
		return "", 0, err
	}
	if len(results) == 0 {
		return NoRelevantEntries, 0, nil
	}

	used := 0
	var blocks []string
	for _, r := range results {
		block := fmt.Sprintf("[%s]\n%s", r.FileName, r.BestChunkText)
		if len(blocks) > 0 {
			block = "\n\n" + block
		}
		cost := EstimateTokens(block)
		if used+cost > limit {
			break
		}
		blocks = append(blocks, block)
		used += cost
	}
	return strings.Join(blocks, ""), used, nil
}
