// Package main runs the brandkit HTTP service: branded image generation,
// session-scoped chat over POST and WebSocket, and static serving of the
// output directory.
//
// Configuration is via environment variables; a .env file in the working
// directory is honored:
//
//	PORT              - Server port (default: 8080)
//	OUTPUT_DIR        - Where generated images land (default: outputs)
//	LOGO_PATH         - Default logo stamped onto images (optional)
//	LABEL_TEXT        - Default contact line drawn onto images (optional)
//	CHAT_MODEL        - Chat model identifier (default: gpt-4o)
//	IMAGE_MODEL       - Image model identifier (default: gemini-2.0-flash-preview-image-generation)
//	REDIS_ADDR        - Redis address for session storage (optional; in-memory without it)
//	REDIS_PASSWORD    - Redis password (optional)
//	SESSION_TTL       - Redis session expiry (default: 24h)
//	ANTHROPIC_API_KEY - Anthropic API key
//	OPENAI_API_KEY    - OpenAI API key
//	GOOGLE_API_KEY    - Google API key
//
// Usage:
//
//	go run ./cmd/serve
package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/brandkit/brandkit/client"
	"github.com/brandkit/brandkit/model"
	"github.com/brandkit/brandkit/server"
	"github.com/brandkit/brandkit/session"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	cfg, err := server.LoadConfig()
	if err != nil {
		log.Fatalf("Configuration error: %v", err)
	}

	c, err := newClient(cfg, logger)
	if err != nil {
		log.Fatalf("Client error: %v", err)
	}

	sessions, err := newSessionStore(cfg)
	if err != nil {
		log.Fatalf("Session store error: %v", err)
	}

	srv, err := server.New(cfg, c, sessions, logger)
	if err != nil {
		log.Fatalf("Server error: %v", err)
	}

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		logger.Info("shutting down")
		ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			logger.Error("shutdown failed", "error", err)
		}
	}()

	if err := srv.Start(); err != nil {
		log.Fatalf("Server error: %v", err)
	}
	logger.Info("server stopped")
}

func newClient(cfg *server.Config, logger *slog.Logger) (*client.Client, error) {
	chatModel, err := model.Resolve(cfg.ChatModel)
	if err != nil {
		return nil, err
	}
	imageModel, err := model.Resolve(cfg.ImageModel)
	if err != nil {
		return nil, err
	}

	return client.New(client.Config{
		APIKeys: client.APIKeys{
			Anthropic: cfg.AnthropicAPIKey,
			OpenAI:    cfg.OpenAIAPIKey,
			Google:    cfg.GoogleAPIKey,
		},
		Defaults: client.Defaults{
			Chat:  chatModel,
			Image: imageModel,
		},
		Logger: logger,
	}), nil
}

func newSessionStore(cfg *server.Config) (session.Store, error) {
	if cfg.RedisAddr == "" {
		return session.NewMemory(), nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return session.NewRedis(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.SessionTTL)
}
