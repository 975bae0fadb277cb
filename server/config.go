package server

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds the service configuration, populated from environment
// variables. A .env file in the working directory is consulted first.
type Config struct {
	Port string `envconfig:"PORT" default:"8080"`

	// OutputDir receives generated images and backs the /outputs routes.
	OutputDir string `envconfig:"OUTPUT_DIR" default:"outputs"`

	// LogoPath and LabelText are the branding defaults applied when a
	// request does not carry its own. Both empty means no overlay.
	LogoPath  string `envconfig:"LOGO_PATH"`
	LabelText string `envconfig:"LABEL_TEXT"`

	ChatModel  string `envconfig:"CHAT_MODEL" default:"gpt-4o"`
	ImageModel string `envconfig:"IMAGE_MODEL" default:"gemini-2.0-flash-preview-image-generation"`

	AnthropicAPIKey string `envconfig:"ANTHROPIC_API_KEY"`
	OpenAIAPIKey    string `envconfig:"OPENAI_API_KEY"`
	GoogleAPIKey    string `envconfig:"GOOGLE_API_KEY"`

	// RedisAddr switches session storage to Redis; empty keeps chat
	// history in process memory.
	RedisAddr     string        `envconfig:"REDIS_ADDR"`
	RedisPassword string        `envconfig:"REDIS_PASSWORD"`
	SessionTTL    time.Duration `envconfig:"SESSION_TTL" default:"24h"`

	ReadTimeout     time.Duration `envconfig:"READ_TIMEOUT" default:"30s"`
	WriteTimeout    time.Duration `envconfig:"WRITE_TIMEOUT" default:"120s"`
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"30s"`
}

// LoadConfig reads configuration from the environment.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return &cfg, nil
}
