package conversations

import (
	"context"
	"strings"

	"github.com/hrnexus-poc/server/internal/agent/model"
	logx "github.com/hrnexus-poc/server/pkg/logger"

	"github.com/cloudwego/eino/schema"
)

// MessagesManager resolves the working message window for a run. The
// repository is optional: when it is nil the manager works purely from
// the history the caller supplies with the request.
type MessagesManager struct {
	conversationRepo model.ConversationRepository
	maxTurns         int
}

func NewMessagesManager(conversationRepo model.ConversationRepository, config model.ConversationConfig) *MessagesManager {
	return &MessagesManager{
		conversationRepo: conversationRepo,
		maxTurns:         config.MaxTurns,
	}
}

// SeedHistory converts the request history into schema messages. The
// trailing entry is always excluded: by contract it is the current query,
// which each branch appends itself. If the request carries no history and
// a repository is configured, persisted history is loaded instead. The
// window is capped at the configured turn limit.
func (cm *MessagesManager) SeedHistory(ctx context.Context, input *model.QueryInput) ([]*schema.Message, error) {
	entries := input.History
	if len(entries) > 0 {
		entries = entries[:len(entries)-1]
		return trimTail(convertHistory(entries), cm.maxTurns), nil
	}

	if cm.conversationRepo == nil {
		return nil, nil
	}
	history, err := cm.conversationRepo.LoadHistory(ctx, input.ConversationID)
	if err != nil {
		return nil, err
	}
	return trimTail(history.Messages, cm.maxTurns), nil
}

// SaveUserMessage persists the current query. Persistence failures are
// logged and swallowed so a flaky store never fails the run.
func (cm *MessagesManager) SaveUserMessage(ctx context.Context, conversationID string, query string) {
	if cm.conversationRepo == nil {
		return
	}
	if err := cm.conversationRepo.AddMessage(ctx, conversationID, schema.UserMessage(query)); err != nil {
		logx.Warn().Err(err).Str("conversationID", conversationID).Msg("failed to persist user message")
	}
}

// SaveResponse persists the assistant reply, best effort like SaveUserMessage.
func (cm *MessagesManager) SaveResponse(ctx context.Context, conversationID string, content string) {
	if cm.conversationRepo == nil {
		return
	}
	if err := cm.conversationRepo.AddMessage(ctx, conversationID, schema.AssistantMessage(content, nil)); err != nil {
		logx.Warn().Err(err).Str("conversationID", conversationID).Msg("failed to persist assistant message")
	}
}

func convertHistory(entries []model.HistoryMessage) []*schema.Message {
	msgs := make([]*schema.Message, 0, len(entries))
	for _, e := range entries {
		if e.Content == "" {
			continue
		}
		switch strings.ToLower(strings.TrimSpace(e.Role)) {
		case "assistant":
			msgs = append(msgs, schema.AssistantMessage(e.Content, nil))
		default:
			msgs = append(msgs, schema.UserMessage(e.Content))
		}
	}
	return msgs
}

func trimTail(messages []*schema.Message, maxTurns int) []*schema.Message {
	if maxTurns <= 0 || len(messages) <= maxTurns {
		result := make([]*schema.Message, len(messages))
		copy(result, messages)
		return result
	}
	source := messages[len(messages)-maxTurns:]
	result := make([]*schema.Message, len(source))
	copy(result, source)
	return result
}
