package model

// ================ Config ================
type ConversationConfig struct {
	TTL      string `envconfig:"CONVERSATION_TTL" default:"15m"`
	MaxTurns int    `envconfig:"CONVERSATION_MAX_TURNS" default:"10"`
}

type IntentModelConfig struct {
	Model       string  `envconfig:"INTENT_MODEL" default:"gemini-2.5-flash-lite"`
	MaxTokens   int     `envconfig:"INTENT_MAX_TOKENS" default:"64"`
	Temperature float32 `envconfig:"INTENT_TEMPERATURE" default:"0"`
}

type ResponseModelConfig struct {
	Model       string  `envconfig:"RESPONSE_MODEL" default:"gemini-2.5-flash"`
	MaxTokens   int     `envconfig:"RESPONSE_MAX_TOKENS" default:"2000"`
	Temperature float32 `envconfig:"RESPONSE_TEMPERATURE" default:"0.3"`
}

type PromptConfig struct {
	AssistantName string `envconfig:"PROMPT_ASSISTANT_NAME" default:"HRNexus"`
	CompanyName   string `envconfig:"PROMPT_COMPANY_NAME" default:"the company"`
}

type DataConfig struct {
	Dir string `envconfig:"DATA_DIR" default:"data"`
}

type RetrievalConfig struct {
	DocsDir string `envconfig:"DOCS_DIR" default:"docs/kb"`
	TopK    int    `envconfig:"RETRIEVAL_TOP_K" default:"3"`
}
