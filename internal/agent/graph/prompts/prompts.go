package prompts

import (
	"context"
	_ "embed"
	"fmt"
	"strings"

	"github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/schema"

	"github.com/hrnexus-poc/server/internal/agent/model"
)

//go:embed template/intent_prompt.txt
var intentSystemPrompt string

//go:embed template/conversation_prompt.txt
var conversationSystemPrompt string

//go:embed template/documentation_prompt.txt
var documentationPrompt string

//go:embed template/data_query_prompt.txt
var dataQuerySystemPrompt string

// RenderIntentSystem renders the intent classification system prompt.
// The template is static; rendering it through the Eino prompt component
// still emits Prompt callbacks for observers.
func RenderIntentSystem(ctx context.Context) (string, error) {
	return renderStatic(ctx, "intent", intentSystemPrompt)
}

// RenderConversationSystem renders the casual conversation persona prompt.
func RenderConversationSystem(ctx context.Context, config model.PromptConfig) (string, error) {
	tpl := prompt.FromMessages(
		schema.GoTemplate,
		schema.SystemMessage(conversationSystemPrompt),
	)
	msgs, err := tpl.Format(ctx, map[string]any{
		"AssistantName": config.AssistantName,
		"CompanyName":   config.CompanyName,
	})
	if err != nil {
		return "", fmt.Errorf("conversation prompt render: %w", err)
	}
	if len(msgs) == 0 || msgs[0] == nil {
		return "", fmt.Errorf("conversation prompt render: empty result")
	}
	return msgs[0].Content, nil
}

// RenderDocumentationPrompt renders the grounded documentation answer prompt
// with the retrieved passages inlined as context.
func RenderDocumentationPrompt(ctx context.Context, docContext, query string) (string, error) {
	tpl := prompt.FromMessages(
		schema.GoTemplate,
		schema.UserMessage(documentationPrompt),
	)
	msgs, err := tpl.Format(ctx, map[string]any{
		"Context": docContext,
		"Query":   query,
	})
	if err != nil {
		return "", fmt.Errorf("documentation prompt render: %w", err)
	}
	if len(msgs) == 0 || msgs[0] == nil {
		return "", fmt.Errorf("documentation prompt render: empty result")
	}
	return msgs[0].Content, nil
}

// RenderDataQuerySystem renders the tool-use system prompt. The tool
// section is built from the live registry so the prompt never drifts
// from the bound tools.
func RenderDataQuerySystem(ctx context.Context, infos []*schema.ToolInfo) (string, error) {
	var b strings.Builder
	for i, info := range infos {
		fmt.Fprintf(&b, "**TOOL %d: %s** - %s\n\n", i+1, info.Name, info.Desc)
	}

	tpl := prompt.FromMessages(
		schema.GoTemplate,
		schema.SystemMessage(dataQuerySystemPrompt),
	)
	msgs, err := tpl.Format(ctx, map[string]any{
		"ToolCount": len(infos),
		"Tools":     b.String(),
	})
	if err != nil {
		return "", fmt.Errorf("data query prompt render: %w", err)
	}
	if len(msgs) == 0 || msgs[0] == nil {
		return "", fmt.Errorf("data query prompt render: empty result")
	}
	return msgs[0].Content, nil
}

func renderStatic(ctx context.Context, name, content string) (string, error) {
	// wrap via a messages placeholder so static text passes through unformatted
	tpl := prompt.FromMessages(
		schema.FString,
		schema.MessagesPlaceholder("system_messages", false),
	)
	msgs, err := tpl.Format(ctx, map[string]any{
		"system_messages": []*schema.Message{schema.SystemMessage(content)},
	})
	if err != nil {
		return "", fmt.Errorf("%s prompt render: %w", name, err)
	}
	if len(msgs) == 0 || msgs[0] == nil {
		return "", fmt.Errorf("%s prompt render: empty result", name)
	}
	return msgs[0].Content, nil
}
