package nodes

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"

	"github.com/hrnexus-poc/server/internal/agent/graph/conversations"
	"github.com/hrnexus-poc/server/internal/agent/model"
	"github.com/hrnexus-poc/server/internal/agent/tools"
	"github.com/hrnexus-poc/server/internal/retrieval"
	logx "github.com/hrnexus-poc/server/pkg/logger"
)

// runState is the snapshot a branch handler needs from the graph state.
type runState struct {
	ConversationID string
	Query          string
	Turns          []*schema.Message
}

// readRunState copies the per-run snapshot out of the graph local state.
func readRunState(ctx context.Context) (runState, error) {
	var rs runState
	err := compose.ProcessState(ctx, func(_ context.Context, state *model.AppState) error {
		rs.ConversationID = state.ConversationID
		rs.Query = state.Query
		rs.Turns = make([]*schema.Message, len(state.Turns))
		copy(rs.Turns, state.Turns)
		return nil
	})
	if err != nil {
		return runState{}, fmt.Errorf("failed to access state: %w", err)
	}
	return rs, nil
}

// finalizeTurn appends the user query and the branch's terminal assistant
// message to the transcript, then persists the reply best effort.
func finalizeTurn(ctx context.Context, mm *conversations.MessagesManager, reply *schema.Message) error {
	var conversationID string
	err := compose.ProcessState(ctx, func(_ context.Context, state *model.AppState) error {
		conversationID = state.ConversationID
		state.Turns = append(state.Turns, schema.UserMessage(state.Query), reply)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to access state: %w", err)
	}
	mm.SaveResponse(ctx, conversationID, reply.Content)
	return nil
}

// logUsageCost computes and logs USD cost for one model invocation, and
// accumulates the run total on the state.
func logUsageCost(out *schema.Message, state *model.AppState, node, modelName string) {
	if !model.CostEnabled() || out == nil || out.ResponseMeta == nil || out.ResponseMeta.Usage == nil {
		return
	}
	pricing := model.ResolvePricing(modelName)
	inC, outC, totalC := model.ComputeCost(out.ResponseMeta.Usage, pricing)
	if out.Extra == nil {
		out.Extra = map[string]any{}
	}
	out.Extra["usage_cost"] = map[string]any{
		"currency":          "USD",
		"model":             modelName,
		"prompt_tokens":     out.ResponseMeta.Usage.PromptTokens,
		"completion_tokens": out.ResponseMeta.Usage.CompletionTokens,
		"total_tokens":      out.ResponseMeta.Usage.TotalTokens,
		"input_cost":        inC,
		"output_cost":       outC,
		"total_cost":        totalC,
	}
	logx.Debug().
		Str("conversation_id", state.ConversationID).
		Str("node", node).
		Str("model", modelName).
		Int("prompt_tokens", out.ResponseMeta.Usage.PromptTokens).
		Int("completion_tokens", out.ResponseMeta.Usage.CompletionTokens).
		Int("total_tokens", out.ResponseMeta.Usage.TotalTokens).
		Float64("input_cost_usd", inC).
		Float64("output_cost_usd", outC).
		Float64("total_cost_usd", totalC).
		Msg("LLM usage")

	state.TotalCostUSD += totalC
	out.Extra["usage_cost_total_usd"] = state.TotalCostUSD
}

// formatToolSummary renders one non-empty tool result in the shape the
// synthesis prompt and the raw fallback both use.
func formatToolSummary(toolName string, out *tools.SearchOutput) string {
	records, err := json.MarshalIndent(out.Records, "", "  ")
	if err != nil {
		records = []byte(fmt.Sprintf("%v", out.Records))
	}
	return fmt.Sprintf("Found %d result(s) from %s:\n%s", out.Total, toolName, string(records))
}

// joinDocuments concatenates retrieved passages into one context block,
// each tagged with its source filename.
func joinDocuments(docs []*schema.Document) string {
	var b strings.Builder
	for i, doc := range docs {
		if doc == nil {
			continue
		}
		if i > 0 {
			b.WriteString("\n\n")
		}
		source := "unknown"
		if s, ok := doc.MetaData[retrieval.SourceMetaKey].(string); ok && s != "" {
			source = s
		}
		fmt.Fprintf(&b, "[%s]\n%s", source, doc.Content)
	}
	return b.String()
}
