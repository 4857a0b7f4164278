package graph

import (
	"context"
	"fmt"
	"strings"

	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"

	"github.com/hrnexus-poc/server/internal/agent/graph/conversations"
	"github.com/hrnexus-poc/server/internal/agent/graph/nodes"
	"github.com/hrnexus-poc/server/internal/agent/graph/observers"
	"github.com/hrnexus-poc/server/internal/agent/model"
	"github.com/hrnexus-poc/server/internal/agent/tools"
	"github.com/hrnexus-poc/server/internal/retrieval"
	logx "github.com/hrnexus-poc/server/pkg/logger"
)

// RunFallbackMessage is returned when a run produces no assistant turn.
const RunFallbackMessage = "I couldn't process your request."

// Runner is a thin wrapper to execute the compiled graph with the public QueryInput.
type Runner interface {
	Invoke(ctx context.Context, in model.QueryInput) (string, error)
}

// Config holds everything needed to compose the full pipeline end-to-end.
// This is a convenience layer over GraphConfig that also constructs
// ChatModels and MessagesManager. ConversationRepo and DocumentIndex are
// optional; the pipeline degrades without them.
type Config struct {
	APIKey           string
	BaseURL          string
	IntentModel      model.IntentModelConfig
	ResponseModel    model.ResponseModelConfig
	Prompt           model.PromptConfig
	Conversation     model.ConversationConfig
	ConversationRepo model.ConversationRepository
	Registry         *tools.Registry
	DocumentIndex    retrieval.Index
}

// GraphConfig holds all configuration needed to build the graph
type GraphConfig struct {
	ChatModels      *nodes.ChatModels
	MessagesManager *conversations.MessagesManager
	PromptConfig    model.PromptConfig
	Registry        *tools.Registry
	DocumentIndex   retrieval.Index
}

// GraphBuilder handles the construction of the pipeline graph
type GraphBuilder struct {
	config *GraphConfig
	graph  *compose.Graph[model.QueryInput, *schema.Message]
}

type graphRunner struct {
	runnable compose.Runnable[model.QueryInput, *schema.Message]
}

// NewRunner wraps a compiled graph in the public Runner interface.
func NewRunner(runnable compose.Runnable[model.QueryInput, *schema.Message]) Runner {
	return &graphRunner{runnable: runnable}
}

func (r *graphRunner) Invoke(ctx context.Context, in model.QueryInput) (string, error) {
	out, err := r.runnable.Invoke(ctx, in, compose.WithCallbacks(observers.NewAllCallbacks()))
	if err != nil {
		return "", err
	}
	if out == nil || strings.TrimSpace(out.Content) == "" {
		logx.Warn().Str("conversation_id", in.ConversationID).Msg("Run produced no assistant turn, returning fallback")
		return RunFallbackMessage, nil
	}
	return out.Content, nil
}

// BuildPipeline composes ChatModels, MessagesManager, builds the graph, and returns a Runner.
func BuildPipeline(ctx context.Context, cfg Config) (Runner, error) {
	if cfg.Registry == nil {
		return nil, fmt.Errorf("tool registry is nil")
	}

	cms, err := nodes.NewChatModels(ctx, nodes.ChatModelConfig{
		APIKey:       cfg.APIKey,
		BaseURL:      cfg.BaseURL,
		IntentConfig: &cfg.IntentModel,
		RespConfig:   &cfg.ResponseModel,
	})
	if err != nil {
		return nil, err
	}

	mm := conversations.NewMessagesManager(cfg.ConversationRepo, cfg.Conversation)

	runnable, err := BuildGraph(ctx, &GraphConfig{
		ChatModels:      cms,
		MessagesManager: mm,
		PromptConfig:    cfg.Prompt,
		Registry:        cfg.Registry,
		DocumentIndex:   cfg.DocumentIndex,
	})
	if err != nil {
		return nil, err
	}

	logx.Debug().Msg("Pipeline graph built successfully")
	return NewRunner(runnable), nil
}

// BuildGraph constructs and returns the compiled pipeline graph
func BuildGraph(ctx context.Context, config *GraphConfig) (compose.Runnable[model.QueryInput, *schema.Message], error) {
	if config == nil {
		return nil, fmt.Errorf("graph config is nil")
	}
	if config.ChatModels == nil || config.ChatModels.Intent == nil || config.ChatModels.Response == nil {
		return nil, fmt.Errorf("chat models are not properly initialized")
	}
	if config.MessagesManager == nil {
		return nil, fmt.Errorf("messages manager is nil")
	}
	if config.Registry == nil {
		return nil, fmt.Errorf("tool registry is nil")
	}

	if err := config.ChatModels.BindRegistryTools(config.Registry.Infos()); err != nil {
		return nil, fmt.Errorf("failed to bind registry tools: %w", err)
	}

	builder := &GraphBuilder{
		config: config,
		graph: compose.NewGraph[model.QueryInput, *schema.Message](
			compose.WithGenLocalState(func(ctx context.Context) *model.AppState {
				return &model.AppState{}
			}),
		),
	}

	builder.addNodes()
	builder.addEdges()

	if err := builder.addBranches(); err != nil {
		return nil, err
	}

	return builder.compile(ctx)
}

// addNodes adds all processing nodes to the graph
func (b *GraphBuilder) addNodes() {
	b.graph.AddLambdaNode(nodes.NodeInputConverter,
		nodes.NewInputConverterNode(),
		compose.WithStatePreHandler(nodes.NewInputConverterPreHandler(b.config.MessagesManager)),
	)

	b.graph.AddLambdaNode(nodes.NodeIntentClassifier,
		nodes.NewIntentClassifierNode(b.config.ChatModels),
		compose.WithStatePostHandler(nodes.NewIntentClassifierPostHandler(b.config.ChatModels.IntentModelName)),
	)

	b.graph.AddLambdaNode(nodes.NodeConversation,
		nodes.NewConversationNode(b.config.ChatModels, b.config.MessagesManager, b.config.PromptConfig),
	)

	b.graph.AddLambdaNode(nodes.NodeDocumentation,
		nodes.NewDocumentationNode(b.config.ChatModels, b.config.MessagesManager, b.config.DocumentIndex),
	)

	b.graph.AddLambdaNode(nodes.NodeDataQuery,
		nodes.NewDataQueryNode(b.config.ChatModels, b.config.MessagesManager, b.config.Registry),
	)
}

// addEdges creates the main flow connections between nodes
func (b *GraphBuilder) addEdges() {
	edges := [][2]string{
		{compose.START, nodes.NodeInputConverter},
		{nodes.NodeInputConverter, nodes.NodeIntentClassifier},
		{nodes.NodeConversation, compose.END},
		{nodes.NodeDocumentation, compose.END},
		{nodes.NodeDataQuery, compose.END},
	}

	for _, edge := range edges {
		b.graph.AddEdge(edge[0], edge[1])
	}
}

// addBranches creates the intent routing branch
func (b *GraphBuilder) addBranches() error {
	intentBranch := compose.NewGraphBranch(
		nodes.NewIntentCondition(),
		map[string]bool{
			nodes.NodeConversation:  true,
			nodes.NodeDocumentation: true,
			nodes.NodeDataQuery:     true,
		},
	)
	if err := b.graph.AddBranch(nodes.NodeIntentClassifier, intentBranch); err != nil {
		logx.Error().Err(err).Msg("Error adding intent branch")
		return fmt.Errorf("error adding intent branch: %w", err)
	}
	return nil
}

// compile finalizes and compiles the graph
func (b *GraphBuilder) compile(ctx context.Context) (compose.Runnable[model.QueryInput, *schema.Message], error) {
	runnable, err := b.graph.Compile(ctx, compose.WithMaxRunSteps(10))
	if err != nil {
		logx.Error().Err(err).Msg("Error compiling graph")
		return nil, fmt.Errorf("error compiling graph: %w", err)
	}

	logx.Debug().Msg("Graph compiled successfully")
	return runnable, nil
}
