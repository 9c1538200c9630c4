package domain

import "time"

// MessageRole identifies the author of a conversation message.
type MessageRole string

const (
	MessageRoleUser      MessageRole = "user"
	MessageRoleAssistant MessageRole = "assistant"
)

// ConversationMessage is a single turn in a chat session. The conversation
// subsystem owns its lifecycle; the context builder consumes it read-only.
type ConversationMessage struct {
	ID        string
	Role      MessageRole
	Content   string
	CreatedAt time.Time
}

// ContextSettings carries the per-query knobs the user controls: which files
// are pinned into the prompt, which file holds the profile, and an optional
// override of the total token budget.
type ContextSettings struct {
	SelectedFileIDs []string
	ProfileFileID   string
	TokenBudget     int
}

// DefaultTokenBudget is the total context budget when the user has not
// configured one.
const DefaultTokenBudget = 30000

// Fixed reserved caps for the high-priority tiers. Custom and retrieved
// content compete for whatever the reserved tiers leave behind.
const (
	ProfileTokenCap      = 100
	ConversationTokenCap = 300
	// CustomShareOfRemainder caps pinned files at this share of the budget
	// remaining after profile and conversation, computed once before any
	// pinned file is accepted.
	CustomShareOfRemainder = 0.6
)

// TokenBudget is the per-query allocation plan resolved by the context
// builder's waterfall.
type TokenBudget struct {
	Total        int
	Profile      int
	Conversation int
	Custom       int
	Retrieved    int
}

// DeriveTokenBudget resolves the fixed caps for a given total. The custom and
// retrieved caps depend on actual usage of the earlier tiers and are filled in
// during allocation.
func DeriveTokenBudget(total int) TokenBudget {
	if total <= 0 {
		total = DefaultTokenBudget
	}
	return TokenBudget{
		Total:        total,
		Profile:      ProfileTokenCap,
		Conversation: ConversationTokenCap,
	}
}

// TokenUsage records the estimated token cost actually consumed per tier.
type TokenUsage struct {
	Profile      int
	Conversation int
	Custom       int
	Retrieved    int
}

// Total returns the combined estimated cost across all tiers.
func (u TokenUsage) Total() int {
	return u.Profile + u.Conversation + u.Custom + u.Retrieved
}

// AssembledContext is the output of the budget waterfall: one bounded text
// block per tier, each individually non-overflowing.
type AssembledContext struct {
	Profile   string
	History   string
	Custom    string
	Retrieved string

	Budget TokenBudget
	Used   TokenUsage
}
