// Command brandkit turns a list of prompts into branded campaign images
// on disk. Each prompt becomes one or more files named
// {prefix}_{slug}_{index}{ext} under the output directory.
//
// With no prompt flags it runs the built-in campaign prompt set:
//
//	go run ./cmd/brandkit -logo ./logo.png -label "555-0100"
//
// Prompts can be given inline or from a file, one per line:
//
//	go run ./cmd/brandkit -p "A red sneaker" -p "A blue backpack"
//	go run ./cmd/brandkit -prompts-file prompts.txt -prefix spring_sale
//
// API keys are read from the environment; a .env file is honored.
package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/brandkit/brandkit/batch"
	"github.com/brandkit/brandkit/client"
	"github.com/brandkit/brandkit/model"
	"github.com/brandkit/brandkit/retry"
)

// promptList accumulates repeated -p flags.
type promptList []string

func (p *promptList) String() string { return strings.Join(*p, ", ") }

func (p *promptList) Set(v string) error {
	*p = append(*p, v)
	return nil
}

func main() {
	var prompts promptList
	flag.Var(&prompts, "p", "prompt to generate; repeat for multiple")
	promptsFile := flag.String("prompts-file", "", "file with one prompt per line")
	prefix := flag.String("prefix", "campaign", "output filename prefix")
	outDir := flag.String("out", "outputs", "output directory")
	logoPath := flag.String("logo", "", "logo stamped into the bottom-right corner")
	label := flag.String("label", "", "contact line drawn in the bottom-left corner")
	modelID := flag.String("model", "gemini-2.0-flash-preview-image-generation", "image model identifier")
	systemPrompt := flag.String("system-prompt", "", "generation style guidance; empty uses the built-in marketing template")
	maxRetries := flag.Int("max-retries", 3, "attempts per prompt for transient failures")
	verbose := flag.Bool("v", false, "enable debug logging")
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	_ = godotenv.Load()

	list := []string(prompts)
	if *promptsFile != "" {
		fromFile, err := batch.ReadPromptsFile(*promptsFile)
		if err != nil {
			log.Fatalf("Prompts file error: %v", err)
		}
		list = append(list, fromFile...)
	}
	if len(list) == 0 {
		list = batch.DefaultPrompts
	}

	imageModel, err := model.Resolve(*modelID)
	if err != nil {
		log.Fatalf("Model error: %v", err)
	}

	retryCfg := retry.DefaultConfig()
	retryCfg.MaxAttempts = *maxRetries

	// The runner retries the whole prompt exchange itself, so the client's
	// own retry layer is off: -max-retries is the total budget per prompt.
	clientRetry := retry.Disabled()
	c := client.New(client.Config{
		APIKeys: client.APIKeys{
			Anthropic: os.Getenv("ANTHROPIC_API_KEY"),
			OpenAI:    os.Getenv("OPENAI_API_KEY"),
			Google:    os.Getenv("GOOGLE_API_KEY"),
		},
		Defaults:    client.Defaults{Image: imageModel},
		RetryConfig: &clientRetry,
		Logger:      logger,
	})

	sp := *systemPrompt
	if sp == "" {
		sp = batch.DefaultSystemPrompt
	}

	runner := batch.New(c, batch.Config{
		OutDir:       *outDir,
		Prefix:       *prefix,
		LogoPath:     *logoPath,
		LabelText:    *label,
		Model:        imageModel,
		SystemPrompt: sp,
		Retry:        &retryCfg,
		Logger:       logger,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	results := runner.Run(ctx, list)

	succeeded := 0
	for _, res := range results {
		if res.OK() {
			succeeded++
			logger.Info("done", "prompt", res.Prompt, "path", res.ImagePath)
		} else {
			logger.Error("failed", "prompt", res.Prompt, "error", res.Error)
		}
	}
	logger.Info("batch complete",
		"total", len(results),
		"succeeded", succeeded,
		"failed", len(results)-succeeded,
	)

	if len(results) > 0 && succeeded == 0 {
		os.Exit(1)
	}
}
