package model

import (
	"github.com/cloudwego/eino/schema"
)

// IntentLabel is the classified purpose of a user query.
type IntentLabel string

const (
	IntentConversation  IntentLabel = "conversation"
	IntentDocumentation IntentLabel = "documentation"
	IntentDataQuery     IntentLabel = "data_query"
)

// AppState stores per-invocation state for the Eino Graph.
// Concurrency model:
//   - This struct is registered as Graph Local State via compose.WithGenLocalState.
//   - All reads/writes happen only inside Eino state handlers:
//     WithStatePreHandler, WithStatePostHandler, or compose.ProcessState.
//   - Eino serializes access to state within these handlers, so no additional
//     mutex/atomic is required as long as you never touch it outside handlers.
//   - Do not access AppState directly from outside handlers. For persistence,
//     use repositories/services (e.g., MessagesManager).
type AppState struct {
	ConversationID string
	Query          string
	Intent         IntentLabel

	// Turns is the conversation transcript for this run: prior turns seeded
	// at Start, then appended to by exactly one handler branch. Append-only
	// within a run; after a successful run the last turn is assistant-authored.
	Turns []*schema.Message

	// Accumulated total LLM cost (USD) across model invocations for this query
	TotalCostUSD float64
}

// HistoryMessage is one prior turn as supplied by the caller.
type HistoryMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// QueryInput represents the input for processing user queries. History is
// optional; when present its last entry duplicates Query and is excluded
// when seeding prior turns.
type QueryInput struct {
	ConversationID string           `json:"conversation_id"`
	Query          string           `json:"query"`
	History        []HistoryMessage `json:"history,omitempty"`
}
