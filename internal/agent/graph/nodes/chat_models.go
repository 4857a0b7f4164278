package nodes

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino-ext/components/model/gemini"
	einomodel "github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"google.golang.org/genai"

	"github.com/hrnexus-poc/server/internal/agent/model"
	logx "github.com/hrnexus-poc/server/pkg/logger"
)

// ChatModelConfig holds the configuration for chat model creation
type ChatModelConfig struct {
	APIKey       string
	BaseURL      string
	IntentConfig *model.IntentModelConfig
	RespConfig   *model.ResponseModelConfig
}

// ChatModels holds the intent classifier model plus the response model in
// two bindings: plain (conversation, documentation, synthesis) and
// tool-enabled (the data query tool-call round).
type ChatModels struct {
	Intent            einomodel.ToolCallingChatModel
	Response          einomodel.ToolCallingChatModel
	ResponseWithTools einomodel.ToolCallingChatModel
	IntentModelName   string
	ResponseModelName string
}

// NewChatModels creates the intent and response chat models with the given configuration
func NewChatModels(ctx context.Context, config ChatModelConfig) (*ChatModels, error) {

	clientCfg := &genai.ClientConfig{
		APIKey:  config.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if config.BaseURL != "" {
		clientCfg.HTTPOptions.BaseURL = config.BaseURL
	}

	client, err := genai.NewClient(ctx, clientCfg)
	if err != nil {
		logx.Error().Err(err).Msg("Error creating Gemini client")
		return nil, fmt.Errorf("error creating Gemini client: %w", err)
	}

	// Intent classification emits a single label; thinking is disabled to
	// keep the call cheap and the output short.
	chatModelIntent, err := gemini.NewChatModel(ctx, &gemini.Config{
		Client:      client,
		Model:       config.IntentConfig.Model,
		Temperature: &config.IntentConfig.Temperature,
		MaxTokens:   &config.IntentConfig.MaxTokens,
		ThinkingConfig: &genai.ThinkingConfig{
			IncludeThoughts: false,
			ThinkingBudget:  genai.Ptr(int32(0)),
		},
	})
	if err != nil {
		logx.Error().Err(err).Msg("Error creating intent model")
		return nil, fmt.Errorf("error creating intent model: %w", err)
	}

	chatModelResponse, err := gemini.NewChatModel(ctx, &gemini.Config{
		Client:      client,
		Model:       config.RespConfig.Model,
		Temperature: &config.RespConfig.Temperature,
		MaxTokens:   &config.RespConfig.MaxTokens,
		ThinkingConfig: &genai.ThinkingConfig{
			IncludeThoughts: true,
			ThinkingBudget:  genai.Ptr(int32(2000)),
		},
	})
	if err != nil {
		logx.Error().Err(err).Msg("Error creating response model")
		return nil, fmt.Errorf("error creating response model: %w", err)
	}

	return &ChatModels{
		Intent:            chatModelIntent,
		Response:          chatModelResponse,
		IntentModelName:   config.IntentConfig.Model,
		ResponseModelName: config.RespConfig.Model,
	}, nil
}

// BindRegistryTools derives the tool-enabled response model binding. The
// plain Response binding is left untouched so the synthesis round cannot
// request further tool calls.
func (cm *ChatModels) BindRegistryTools(tools []*schema.ToolInfo) error {
	withTools, err := cm.Response.WithTools(tools)
	if err != nil {
		logx.Error().Err(err).Msg("Failed to bind tools")
		return fmt.Errorf("failed to bind tools: %w", err)
	}
	cm.ResponseWithTools = withTools

	logx.Debug().Int("tool_count", len(tools)).Msg("Successfully bound tools to response model")
	return nil
}
