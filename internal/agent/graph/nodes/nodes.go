package nodes

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"

	"github.com/hrnexus-poc/server/internal/agent/graph/conversations"
	"github.com/hrnexus-poc/server/internal/agent/graph/parsers"
	"github.com/hrnexus-poc/server/internal/agent/graph/prompts"
	"github.com/hrnexus-poc/server/internal/agent/model"
	"github.com/hrnexus-poc/server/internal/agent/tools"
	errx "github.com/hrnexus-poc/server/internal/core/error"
	"github.com/hrnexus-poc/server/internal/retrieval"
	logx "github.com/hrnexus-poc/server/pkg/logger"
)

// Graph node names.
const (
	NodeInputConverter   = "InputConverter"
	NodeIntentClassifier = "IntentClassifier"
	NodeConversation     = "ConversationHandler"
	NodeDocumentation    = "DocumentationHandler"
	NodeDataQuery        = "DataQueryHandler"
)

// Fixed replies for the degradation paths. The data query literal is part
// of the public contract: callers and tests match it verbatim.
const (
	NoDataMessage           = "No matching data found for your query."
	DocsUnavailableMessage  = "Documentation search is currently unavailable."
	DocsNoResultsMessage    = "No relevant documentation found for your question."
	DocsErrorMessage        = "An error occurred while searching documentation."
	synthesisNoToolsNotice  = "All tool results are included above. Do not request any further tool calls; synthesize the final answer for the user from the gathered data, formatted with markdown."
)

// NewInputConverterPreHandler seeds the per-run state: conversation id,
// query, prior turns, and a zeroed cost accumulator. The current user
// message is persisted here so it survives even a failed run.
func NewInputConverterPreHandler(mm *conversations.MessagesManager) func(context.Context, model.QueryInput, *model.AppState) (model.QueryInput, error) {
	return func(ctx context.Context, in model.QueryInput, s *model.AppState) (model.QueryInput, error) {
		s.ConversationID = in.ConversationID
		s.Query = in.Query
		s.Intent = ""
		s.TotalCostUSD = 0

		turns, err := mm.SeedHistory(ctx, &in)
		if err != nil {
			logx.Warn().Err(err).Str("conversation_id", in.ConversationID).Msg("failed to seed conversation history, starting fresh")
			turns = nil
		}
		s.Turns = turns

		mm.SaveUserMessage(ctx, in.ConversationID, in.Query)
		return in, nil
	}
}

// NewInputConverterNode builds the classifier request: the fixed category
// prompt plus the raw user query.
func NewInputConverterNode() *compose.Lambda {
	return compose.InvokableLambda(func(ctx context.Context, input model.QueryInput) ([]*schema.Message, error) {
		systemPrompt, err := prompts.RenderIntentSystem(ctx)
		if err != nil {
			return nil, fmt.Errorf("render intent system prompt: %w", err)
		}

		messages := []*schema.Message{
			schema.SystemMessage(systemPrompt),
			schema.UserMessage(input.Query),
		}
		return messages, nil
	})
}

// NewIntentClassifierNode invokes the intent model. Failures here have no
// safe fallback and propagate as a typed classification error, failing
// the whole run.
func NewIntentClassifierNode(cms *ChatModels) *compose.Lambda {
	return compose.InvokableLambda(func(ctx context.Context, messages []*schema.Message) (*schema.Message, error) {
		out, err := cms.Intent.Generate(ctx, messages)
		if err != nil {
			logx.Error().Err(err).Bool("rate_limited", errx.IsRateLimited(err)).Msg("Intent classification failed")
			return nil, errx.WrapClassification(err)
		}
		return out, nil
	})
}

// NewIntentClassifierPostHandler parses the classifier output into the
// routing label and records usage cost.
func NewIntentClassifierPostHandler(modelName string) func(context.Context, *schema.Message, *model.AppState) (*schema.Message, error) {
	return func(ctx context.Context, out *schema.Message, state *model.AppState) (*schema.Message, error) {
		logUsageCost(out, state, NodeIntentClassifier, modelName)

		state.Intent = parsers.ParseIntentLabel(out.Content)
		logx.Debug().
			Str("conversation_id", state.ConversationID).
			Str("intent", string(state.Intent)).
			Str("raw", strings.TrimSpace(out.Content)).
			Msg("Intent classified")
		return out, nil
	}
}

// NewIntentCondition routes the classified query to its handler branch.
func NewIntentCondition() func(context.Context, *schema.Message) (string, error) {
	return func(ctx context.Context, _ *schema.Message) (string, error) {
		var intent model.IntentLabel
		err := compose.ProcessState(ctx, func(_ context.Context, state *model.AppState) error {
			intent = state.Intent
			return nil
		})
		if err != nil {
			return "", fmt.Errorf("failed to access state: %w", err)
		}

		switch intent {
		case model.IntentConversation:
			return NodeConversation, nil
		case model.IntentDocumentation:
			return NodeDocumentation, nil
		default:
			return NodeDataQuery, nil
		}
	}
}

// NewConversationNode answers greetings and identity questions with the
// assistant persona. The one branch designed to degrade on any model
// failure: it replies with a canned greeting instead of failing the run.
func NewConversationNode(cms *ChatModels, mm *conversations.MessagesManager, promptCfg model.PromptConfig) *compose.Lambda {
	fallback := fmt.Sprintf("Hello! I'm %s, your HR and engineering assistant. How can I help you today?", promptCfg.AssistantName)

	return compose.InvokableLambda(func(ctx context.Context, _ *schema.Message) (*schema.Message, error) {
		rs, err := readRunState(ctx)
		if err != nil {
			return nil, err
		}

		systemPrompt, err := prompts.RenderConversationSystem(ctx, promptCfg)
		if err != nil {
			return nil, fmt.Errorf("render conversation prompt: %w", err)
		}

		messages := make([]*schema.Message, 0, len(rs.Turns)+2)
		messages = append(messages, schema.SystemMessage(systemPrompt))
		messages = append(messages, rs.Turns...)
		messages = append(messages, schema.UserMessage(rs.Query))

		reply, err := cms.Response.Generate(ctx, messages)
		if err != nil {
			wrapped := errx.WrapSynthesis(err)
			logx.Warn().Err(wrapped).Bool("rate_limited", errx.IsRateLimited(err)).Msg("Conversation reply failed, using canned greeting")
			reply = schema.AssistantMessage(fallback, nil)
		} else {
			recordBranchCost(ctx, reply, NodeConversation, cms.ResponseModelName)
		}

		if err := finalizeTurn(ctx, mm, reply); err != nil {
			return nil, err
		}
		return reply, nil
	})
}

// NewDocumentationNode grounds an answer in retrieved knowledge-base
// passages. Every failure mode is converted into an honest canned turn;
// this branch never fails the run.
func NewDocumentationNode(cms *ChatModels, mm *conversations.MessagesManager, index retrieval.Index) *compose.Lambda {
	return compose.InvokableLambda(func(ctx context.Context, _ *schema.Message) (*schema.Message, error) {
		rs, err := readRunState(ctx)
		if err != nil {
			return nil, err
		}

		reply := documentationReply(ctx, cms, index, rs.Query)
		if err := finalizeTurn(ctx, mm, reply); err != nil {
			return nil, err
		}
		return reply, nil
	})
}

func documentationReply(ctx context.Context, cms *ChatModels, index retrieval.Index, query string) *schema.Message {
	if index == nil || !index.IsReady() {
		logx.Warn().Msg("Document index not ready, degrading documentation reply")
		return schema.AssistantMessage(DocsUnavailableMessage, nil)
	}

	docs, err := index.Retrieve(ctx, query)
	if err != nil {
		wrapped := errx.WrapRetrieval(err)
		logx.Error().Err(wrapped).Msg("Documentation retrieval failed")
		return schema.AssistantMessage(DocsErrorMessage, nil)
	}
	if len(docs) == 0 {
		return schema.AssistantMessage(DocsNoResultsMessage, nil)
	}

	promptText, err := prompts.RenderDocumentationPrompt(ctx, joinDocuments(docs), query)
	if err != nil {
		logx.Error().Err(err).Msg("Documentation prompt render failed")
		return schema.AssistantMessage(DocsErrorMessage, nil)
	}

	reply, err := cms.Response.Generate(ctx, []*schema.Message{schema.UserMessage(promptText)})
	if err != nil {
		wrapped := errx.WrapSynthesis(err)
		logx.Error().Err(wrapped).Bool("rate_limited", errx.IsRateLimited(err)).Msg("Documentation synthesis failed")
		return schema.AssistantMessage(DocsErrorMessage, nil)
	}
	recordBranchCost(ctx, reply, NodeDocumentation, cms.ResponseModelName)
	return reply
}

// NewDataQueryNode runs the fixed two-phase tool protocol: one
// function-calling round against the full registry, then one synthesis
// round with tools withheld. There is deliberately no loop; a second
// request for tools can never happen.
func NewDataQueryNode(cms *ChatModels, mm *conversations.MessagesManager, registry *tools.Registry) *compose.Lambda {
	return compose.InvokableLambda(func(ctx context.Context, _ *schema.Message) (*schema.Message, error) {
		rs, err := readRunState(ctx)
		if err != nil {
			return nil, err
		}

		reply, err := dataQueryReply(ctx, cms, registry, rs)
		if err != nil {
			return nil, err
		}
		if err := finalizeTurn(ctx, mm, reply); err != nil {
			return nil, err
		}
		return reply, nil
	})
}

func dataQueryReply(ctx context.Context, cms *ChatModels, registry *tools.Registry, rs runState) (*schema.Message, error) {
	systemPrompt, err := prompts.RenderDataQuerySystem(ctx, registry.Infos())
	if err != nil {
		return nil, fmt.Errorf("render data query prompt: %w", err)
	}

	request := make([]*schema.Message, 0, len(rs.Turns)+2)
	request = append(request, schema.SystemMessage(systemPrompt))
	request = append(request, rs.Turns...)
	request = append(request, schema.UserMessage(rs.Query))

	decision, err := cms.ResponseWithTools.Generate(ctx, request)
	if err != nil {
		wrapped := errx.WrapSynthesis(err)
		logx.Error().Err(wrapped).Bool("rate_limited", errx.IsRateLimited(err)).Msg("Tool-call round failed")
		return schema.AssistantMessage(NoDataMessage, nil), nil
	}
	recordBranchCost(ctx, decision, NodeDataQuery, cms.ResponseModelName)

	// A data query that yields no tool invocation is treated as an empty
	// result, never as a conversational answer.
	if len(decision.ToolCalls) == 0 {
		logx.Debug().Str("conversation_id", rs.ConversationID).Msg("Model requested no tools for data query")
		return schema.AssistantMessage(NoDataMessage, nil), nil
	}

	toolMsgs, summaries, err := executeToolCalls(ctx, registry, decision.ToolCalls)
	if err != nil {
		return nil, err
	}
	if len(summaries) == 0 {
		return schema.AssistantMessage(NoDataMessage, nil), nil
	}
	rawResults := strings.Join(summaries, "\n\n")

	synthesis := make([]*schema.Message, 0, len(request)+len(toolMsgs)+2)
	synthesis = append(synthesis, request...)
	synthesis = append(synthesis, decision)
	synthesis = append(synthesis, toolMsgs...)
	synthesis = append(synthesis, schema.SystemMessage(synthesisNoToolsNotice))

	final, err := cms.Response.Generate(ctx, synthesis)
	if err != nil {
		wrapped := errx.WrapSynthesis(err)
		logx.Warn().Err(wrapped).Bool("rate_limited", errx.IsRateLimited(err)).Msg("Synthesis round failed, emitting raw tool results")
		return schema.AssistantMessage(rawResults, nil), nil
	}
	if strings.TrimSpace(final.Content) == "" {
		logx.Warn().Msg("Synthesis returned empty content, emitting raw tool results")
		return schema.AssistantMessage(rawResults, nil), nil
	}
	recordBranchCost(ctx, final, NodeDataQuery, cms.ResponseModelName)
	return final, nil
}

// executeToolCalls invokes each requested tool sequentially. Empty result
// sets still produce a tool message for the synthesis round but are
// excluded from the raw summaries. An unknown tool name aborts the branch.
func executeToolCalls(ctx context.Context, registry *tools.Registry, calls []schema.ToolCall) ([]*schema.Message, []string, error) {
	toolMsgs := make([]*schema.Message, 0, len(calls))
	summaries := make([]string, 0, len(calls))

	for _, call := range calls {
		var in tools.SearchInput
		if err := json.Unmarshal([]byte(call.Function.Arguments), &in); err != nil {
			logx.Warn().
				Str("tool", call.Function.Name).
				Str("arguments", call.Function.Arguments).
				Err(err).
				Msg("Malformed tool arguments, invoking with empty input")
		}

		out, err := registry.Invoke(ctx, call.Function.Name, &in)
		if err != nil {
			logx.Error().Err(err).Str("tool", call.Function.Name).Msg("Tool invocation failed")
			return nil, nil, err
		}

		body, merr := json.Marshal(out)
		if merr != nil {
			body = []byte(fmt.Sprintf(`{"total":%d}`, out.Total))
		}
		toolMsgs = append(toolMsgs, schema.ToolMessage(string(body), call.ID, schema.WithToolName(call.Function.Name)))

		logx.Debug().
			Str("tool", call.Function.Name).
			Int("total", out.Total).
			Msg("Tool executed")

		if out.Total > 0 {
			summaries = append(summaries, formatToolSummary(call.Function.Name, out))
		}
	}
	return toolMsgs, summaries, nil
}

// recordBranchCost logs usage cost from inside a branch lambda, where the
// state is only reachable through ProcessState.
func recordBranchCost(ctx context.Context, out *schema.Message, node, modelName string) {
	_ = compose.ProcessState(ctx, func(_ context.Context, state *model.AppState) error {
		logUsageCost(out, state, node, modelName)
		return nil
	})
}
