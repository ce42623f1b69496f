package mealmind

import "time"

type ModelConfig struct {
	ModelID     string  `env:"MODEL_ID,default=gemini-2.5-flash"`
	MaxTokens   int32   `env:"MAX_TOKENS,default=2048"`
	Temperature float32 `env:"TEMPERATURE,default=0.2"`
	TopP        float32 `env:"TOP_P,default=0.9"`
}

type AdvisorConfig struct {
	ArtifactsCatalogPath   string        `env:"ARTIFACTS_CATALOG_PATH,default=artifacts/catalog.json"`
	ArtifactsInventoryPath string        `env:"ARTIFACTS_INVENTORY_PATH,default=artifacts/inventory.json"`
	BaseOllamaEndpoint     string        `env:"BASE_OLLAMA_ENDPOINT,default=http://localhost:11434"`
	GeminiAPIKey           string        `env:"GEMINI_API_KEY,default="`
	Generator              string        `env:"GENERATOR,default=mock"`
	GenerateTimeout        time.Duration `env:"GENERATE_TIMEOUT,default=20s"`
	MaxToolIterations      int           `env:"MAX_TOOL_ITERATIONS,default=6"`
	SlackWebhookURL        string        `env:"SLACK_WEBHOOK_URL,default="`
	SlackChannel           string        `env:"SLACK_CHANNEL,default=#meal-advisor"`
}
