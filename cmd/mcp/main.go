// Command mcp serves the brandkit generation tools over MCP stdio, so MCP
// clients like Claude Desktop can generate and brand marketing images.
//
// Configuration is via environment variables; a .env file is honored:
//
//	OUTPUT_DIR        - Where generated images land (default: outputs)
//	LOGO_PATH         - Default logo stamped onto images (optional)
//	LABEL_TEXT        - Default contact line drawn onto images (optional)
//	IMAGE_MODEL       - Image model identifier (default: gemini-2.0-flash-preview-image-generation)
//	ANTHROPIC_API_KEY - Anthropic API key
//	OPENAI_API_KEY    - OpenAI API key
//	GOOGLE_API_KEY    - Google API key
//
// Configuration for Claude Desktop (claude_desktop_config.json):
//
//	{
//	    "mcpServers": {
//	        "brandkit": {
//	            "command": "go",
//	            "args": ["run", "./cmd/mcp"],
//	            "cwd": "/path/to/brandkit",
//	            "env": {"GOOGLE_API_KEY": "..."}
//	        }
//	    }
//	}
package main

import (
	"log"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"github.com/brandkit/brandkit/client"
	"github.com/brandkit/brandkit/mcp"
	"github.com/brandkit/brandkit/model"
)

type config struct {
	OutputDir  string `envconfig:"OUTPUT_DIR" default:"outputs"`
	LogoPath   string `envconfig:"LOGO_PATH"`
	LabelText  string `envconfig:"LABEL_TEXT"`
	ImageModel string `envconfig:"IMAGE_MODEL" default:"gemini-2.0-flash-preview-image-generation"`

	AnthropicAPIKey string `envconfig:"ANTHROPIC_API_KEY"`
	OpenAIAPIKey    string `envconfig:"OPENAI_API_KEY"`
	GoogleAPIKey    string `envconfig:"GOOGLE_API_KEY"`
}

func main() {
	// Stdout is the MCP transport; everything else goes to stderr.
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	_ = godotenv.Load()
	var cfg config
	if err := envconfig.Process("", &cfg); err != nil {
		log.Fatalf("Configuration error: %v", err)
	}

	imageModel, err := model.Resolve(cfg.ImageModel)
	if err != nil {
		log.Fatalf("Model error: %v", err)
	}

	c := client.New(client.Config{
		APIKeys: client.APIKeys{
			Anthropic: cfg.AnthropicAPIKey,
			OpenAI:    cfg.OpenAIAPIKey,
			Google:    cfg.GoogleAPIKey,
		},
		Defaults: client.Defaults{Image: imageModel},
		Logger:   logger,
	})

	defaults := mcp.Defaults{
		OutputDir: cfg.OutputDir,
		LogoPath:  cfg.LogoPath,
		LabelText: cfg.LabelText,
		Model:     cfg.ImageModel,
	}

	if err := mcp.ServeStdio(c, defaults); err != nil {
		log.Fatal(err)
	}
}
