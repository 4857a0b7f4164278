package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"github.com/hrnexus-poc/server/internal/agent/graph"
	"github.com/hrnexus-poc/server/internal/agent/model"
	"github.com/hrnexus-poc/server/internal/agent/repo"
	"github.com/hrnexus-poc/server/internal/agent/tools"
	"github.com/hrnexus-poc/server/internal/core"
	"github.com/hrnexus-poc/server/internal/records"
	"github.com/hrnexus-poc/server/internal/retrieval"
	logx "github.com/hrnexus-poc/server/pkg/logger"
	pkgredis "github.com/hrnexus-poc/server/pkg/redis"
)

// AppConfig defines all configurable parameters for the assistant,
// sourced from environment variables (loaded from .env for local runs).
type AppConfig struct {
	Environment string `envconfig:"APP_ENV" default:"development"`

	// Infrastructure. Redis is optional; without it conversation history
	// lives only in the per-request payload.
	Redis pkgredis.Config

	// LLM provider
	APIKey  string `envconfig:"GEMINI_API_KEY" required:"true"`
	BaseURL string `envconfig:"GEMINI_BASE_URL"`

	// Pipeline configs
	Intent       model.IntentModelConfig
	Response     model.ResponseModelConfig
	Prompt       model.PromptConfig
	Conversation model.ConversationConfig
	Data         model.DataConfig
	Retrieval    model.RetrievalConfig
}

func main() {
	ctx := context.Background()

	if err := godotenv.Load(".env"); err != nil {
		log.Printf("Warning: Could not load .env file: %v", err)
	}

	var envCfg AppConfig
	if err := envconfig.Process("", &envCfg); err != nil {
		log.Fatalf("Failed to process environment config: %v", err)
	}

	logx.Init(logx.LoggerOpts{Environment: core.ParseEnvironment(envCfg.Environment)})

	// Datasets are loaded once and shared read-only across runs.
	store, err := records.Load(envCfg.Data.Dir)
	if err != nil {
		log.Fatalf("Failed to load datasets from %s: %v", envCfg.Data.Dir, err)
	}
	registry := tools.NewRegistry(store)

	index, err := retrieval.BuildDocumentIndex(envCfg.Retrieval.DocsDir, envCfg.Retrieval.TopK)
	if err != nil {
		log.Fatalf("Failed to build document index: %v", err)
	}

	var conversationRepo model.ConversationRepository
	if envCfg.Redis.URL != "" {
		rdb, err := envCfg.Redis.New()
		if err != nil {
			log.Fatalf("Failed to initialise Redis client: %v", err)
		}
		defer rdb.Close()

		ttl, err := time.ParseDuration(envCfg.Conversation.TTL)
		if err != nil {
			log.Fatalf("Invalid CONVERSATION_TTL '%s': %v", envCfg.Conversation.TTL, err)
		}
		conversationRepo = repo.NewRedisConversationRepository(rdb, ttl)
		fmt.Println("Connected to Redis successfully")
	} else {
		fmt.Println("REDIS_URL not set, running without conversation persistence")
	}

	runner, err := graph.BuildPipeline(ctx, graph.Config{
		APIKey:           envCfg.APIKey,
		BaseURL:          envCfg.BaseURL,
		IntentModel:      envCfg.Intent,
		ResponseModel:    envCfg.Response,
		Prompt:           envCfg.Prompt,
		Conversation:     envCfg.Conversation,
		ConversationRepo: conversationRepo,
		Registry:         registry,
		DocumentIndex:    index,
	})
	if err != nil {
		log.Fatalf("Failed to build pipeline: %v", err)
	}

	testQueries := []struct {
		description string
		query       string
	}{
		{
			description: "Greeting and capability question",
			query:       "Hi! What can you help me with?",
		},
		{
			description: "Documentation lookup",
			query:       "What is our code review process?",
		},
		{
			description: "Employee data query",
			query:       "Who is on the Backend team?",
		},
		{
			description: "Numeric filter query",
			query:       "Which employees have more than 5 years of experience?",
		},
		{
			description: "Deployment history query",
			query:       "Show me the failed deployments",
		},
	}

	conversationID := "demo-conversation-1"

	for i, test := range testQueries {
		fmt.Printf("\nTest %d: %s\n", i+1, test.description)
		fmt.Printf("Query: %q\n", test.query)

		response, err := runner.Invoke(ctx, model.QueryInput{
			ConversationID: conversationID,
			Query:          test.query,
		})
		if err != nil {
			log.Fatalf("Failed to run pipeline for test %d: %v", i+1, err)
		}

		fmt.Printf("Response %d: %s\n", i+1, response)
		fmt.Println("────────────────────────────────────────────────")

		time.Sleep(500 * time.Millisecond)
	}

	fmt.Println("All pipeline tests completed successfully!")
}
