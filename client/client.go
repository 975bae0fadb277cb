package client

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	ai "github.com/brandkit/brandkit"
	"github.com/brandkit/brandkit/internal/provider/anthropic"
	"github.com/brandkit/brandkit/internal/provider/google"
	"github.com/brandkit/brandkit/internal/provider/openai"
	"github.com/brandkit/brandkit/retry"
)

// Feature represents a capability that a provider may support.
type Feature string

const (
	FeatureChat        Feature = "chat"
	FeatureImage       Feature = "image"
	FeatureImageStream Feature = "image_stream"
)

// providerCapabilities defines which features each provider supports.
var providerCapabilities = map[ai.Provider]map[Feature]bool{
	ai.ProviderAnthropic: {
		FeatureChat:        true,
		FeatureImage:       false,
		FeatureImageStream: false,
	},
	ai.ProviderOpenAI: {
		FeatureChat:        true,
		FeatureImage:       true,
		FeatureImageStream: false,
	},
	ai.ProviderGoogle: {
		FeatureChat:        true,
		FeatureImage:       true,
		FeatureImageStream: true,
	},
}

// APIKeys holds API keys for different providers.
// Only configure keys for providers you intend to use.
type APIKeys struct {
	Anthropic string
	OpenAI    string
	Google    string
}

// Defaults holds default models for each capability.
// The model's provider determines which backend is used.
type Defaults struct {
	Chat  ai.Model
	Image ai.Model
}

// Config holds configuration for creating a unified client.
type Config struct {
	// APIKeys contains authentication keys for each provider.
	// Only configure keys for providers you intend to use.
	APIKeys APIKeys

	// Defaults contains default models for each capability.
	// The model's provider determines which backend is used.
	Defaults Defaults

	// RetryConfig configures retry behavior for transient errors.
	// If nil, uses default retry configuration (3 attempts with exponential backoff).
	RetryConfig *retry.Config

	// Logger receives retry warnings and diagnostic messages.
	// If nil, slog.Default() is used.
	Logger *slog.Logger

	// Events is an optional channel for receiving client operation events.
	// Events are sent non-blocking; if the channel is full, events are dropped.
	Events chan<- Event
}

// ErrFeatureNotSupported is returned when a feature is unavailable for the provider.
type ErrFeatureNotSupported struct {
	Provider string
	Feature  string
}

func (e *ErrFeatureNotSupported) Error() string {
	return fmt.Sprintf("%s provider does not support %s", e.Provider, e.Feature)
}

// ErrMissingAPIKey is returned when a model is used but no API key
// is configured for that model's provider.
type ErrMissingAPIKey struct {
	Provider string
	Model    string
}

func (e *ErrMissingAPIKey) Error() string {
	if e.Model != "" {
		return fmt.Sprintf("no API key configured for %s (required by model %q)", e.Provider, e.Model)
	}
	return fmt.Sprintf("no API key configured for %s", e.Provider)
}

// ErrNoModel is returned when no model is specified and no default is configured.
type ErrNoModel struct {
	Operation string
}

// operationHints maps operation names to their config field and option function.
var operationHints = map[string]struct {
	configField string
	optionFunc  string
}{
	"chat":         {"Defaults.Chat", "brandkit.WithModel()"},
	"chat_stream":  {"Defaults.Chat", "brandkit.WithModel()"},
	"image":        {"Defaults.Image", "brandkit.WithImageModel()"},
	"image_stream": {"Defaults.Image", "brandkit.WithImageModel()"},
}

func (e *ErrNoModel) Error() string {
	if hint, ok := operationHints[e.Operation]; ok {
		return fmt.Sprintf("no model specified for %s: set client.Config %s or use %s",
			e.Operation, hint.configField, hint.optionFunc)
	}
	return fmt.Sprintf("no model specified for %s and no default configured", e.Operation)
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithDefaultTemperature sets the default temperature for chat requests.
// Per-request options override this default.
func WithDefaultTemperature(t float64) ClientOption {
	return func(c *Client) {
		c.defaultChatOpts = append(c.defaultChatOpts, ai.WithTemperature(t))
	}
}

// WithDefaultMaxTokens sets the default max tokens for chat requests.
// Per-request options override this default.
func WithDefaultMaxTokens(n int) ClientOption {
	return func(c *Client) {
		c.defaultChatOpts = append(c.defaultChatOpts, ai.WithMaxTokens(n))
	}
}

// WithDefaultChatOptions sets default options for all chat requests.
// Per-request options override these defaults.
func WithDefaultChatOptions(opts ...ai.Option) ClientOption {
	return func(c *Client) {
		c.defaultChatOpts = append(c.defaultChatOpts, opts...)
	}
}

// WithVertex routes Google requests through the Vertex AI backend for the
// given project and location instead of the Gemini API. Vertex authenticates
// via Application Default Credentials, so no Google API key is required.
func WithVertex(project, location string) ClientOption {
	return func(c *Client) {
		c.vertexProject = project
		c.vertexLocation = location
	}
}

// Client is a unified interface to all AI provider capabilities.
// Provider clients are lazily initialized when first needed.
type Client struct {
	apiKeys         APIKeys
	defaults        Defaults
	retryConfig     retry.Config
	logger          *slog.Logger
	events          chan<- Event
	defaultChatOpts []ai.Option
	vertexProject   string
	vertexLocation  string

	// Lazy-initialized providers (protected by mutex)
	mu              sync.RWMutex
	anthropicClient *anthropic.Client
	openaiClient    *openai.Client
	googleClient    *google.Client
	googleInitErr   error
}

// New creates a unified client with the given configuration.
// Provider clients are lazily initialized when first needed based on the model used.
// Optional ClientOption arguments configure default behaviors like temperature.
func New(cfg Config, opts ...ClientOption) *Client {
	retryConfig := retry.DefaultConfig()
	if cfg.RetryConfig != nil {
		retryConfig = *cfg.RetryConfig
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	c := &Client{
		apiKeys:     cfg.APIKeys,
		defaults:    cfg.Defaults,
		retryConfig: retryConfig,
		logger:      logger,
		events:      cfg.Events,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// getAnthropicClient returns the Anthropic client, initializing it if needed.
func (c *Client) getAnthropicClient() (*anthropic.Client, error) {
	c.mu.RLock()
	if c.anthropicClient != nil {
		defer c.mu.RUnlock()
		return c.anthropicClient, nil
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()

	// Double-check after acquiring write lock
	if c.anthropicClient != nil {
		return c.anthropicClient, nil
	}

	if c.apiKeys.Anthropic == "" {
		return nil, &ErrMissingAPIKey{Provider: "anthropic"}
	}

	c.anthropicClient = anthropic.New(c.apiKeys.Anthropic)
	return c.anthropicClient, nil
}

// getOpenAIClient returns the OpenAI client, initializing it if needed.
func (c *Client) getOpenAIClient() (*openai.Client, error) {
	c.mu.RLock()
	if c.openaiClient != nil {
		defer c.mu.RUnlock()
		return c.openaiClient, nil
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()

	// Double-check after acquiring write lock
	if c.openaiClient != nil {
		return c.openaiClient, nil
	}

	if c.apiKeys.OpenAI == "" {
		return nil, &ErrMissingAPIKey{Provider: "openai"}
	}

	c.openaiClient = openai.New(c.apiKeys.OpenAI)
	return c.openaiClient, nil
}

// getGoogleClient returns the Google client, initializing it if needed.
func (c *Client) getGoogleClient(ctx context.Context) (*google.Client, error) {
	c.mu.RLock()
	if c.googleClient != nil {
		defer c.mu.RUnlock()
		return c.googleClient, nil
	}
	if c.googleInitErr != nil {
		defer c.mu.RUnlock()
		return nil, c.googleInitErr
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()

	// Double-check after acquiring write lock
	if c.googleClient != nil {
		return c.googleClient, nil
	}
	if c.googleInitErr != nil {
		return nil, c.googleInitErr
	}

	if !c.googleConfigured() {
		return nil, &ErrMissingAPIKey{Provider: "google"}
	}

	var gopts []google.ClientOption
	if c.vertexProject != "" {
		gopts = append(gopts, google.WithVertex(c.vertexProject, c.vertexLocation))
	}
	client, err := google.New(ctx, c.apiKeys.Google, gopts...)
	if err != nil {
		c.googleInitErr = fmt.Errorf("failed to initialize Google client: %w", err)
		return nil, c.googleInitErr
	}

	c.googleClient = client
	return c.googleClient, nil
}

// resolveProvider determines which provider to use for a given model.
func (c *Client) resolveProvider(model ai.Model) ai.Provider {
	return model.Provider()
}

// getChatProvider returns the chat provider for the given model.
func (c *Client) getChatProvider(ctx context.Context, model ai.Model) (ai.ChatProvider, ai.Provider, error) {
	provider := c.resolveProvider(model)

	switch provider {
	case ai.ProviderAnthropic:
		client, err := c.getAnthropicClient()
		if err != nil {
			return nil, "", err
		}
		return client, provider, nil
	case ai.ProviderOpenAI:
		client, err := c.getOpenAIClient()
		if err != nil {
			return nil, "", err
		}
		return client, provider, nil
	case ai.ProviderGoogle:
		client, err := c.getGoogleClient(ctx)
		if err != nil {
			return nil, "", err
		}
		return client, provider, nil
	default:
		return nil, "", fmt.Errorf("unsupported provider: %s", provider)
	}
}

// getImageProvider returns the image provider for the given model.
func (c *Client) getImageProvider(ctx context.Context, model ai.Model) (ai.ImageProvider, ai.Provider, error) {
	provider := c.resolveProvider(model)

	if !providerCapabilities[provider][FeatureImage] {
		return nil, "", &ErrFeatureNotSupported{Provider: provider.String(), Feature: "image"}
	}

	switch provider {
	case ai.ProviderOpenAI:
		client, err := c.getOpenAIClient()
		if err != nil {
			return nil, "", err
		}
		return client, provider, nil
	case ai.ProviderGoogle:
		client, err := c.getGoogleClient(ctx)
		if err != nil {
			return nil, "", err
		}
		return client, provider, nil
	default:
		return nil, "", &ErrFeatureNotSupported{Provider: provider.String(), Feature: "image"}
	}
}

// Chat sends a conversation and returns a complete response.
// The model can be specified via WithModel option, or the default chat model is used.
// Automatically retries on transient errors according to the client's retry configuration.
func (c *Client) Chat(ctx context.Context, messages []ai.Message, opts ...ai.Option) (*ai.Response, error) {
	// Prepend default options so per-request options override them
	opts = append(c.defaultChatOpts, opts...)
	options := ai.ApplyOptions(opts...)

	// Determine which model to use
	model := options.Model
	if model == nil {
		model = c.defaults.Chat
	}
	if model == nil {
		return nil, &ErrNoModel{Operation: "chat"}
	}

	// Get the appropriate provider
	chatProvider, provider, err := c.getChatProvider(ctx, model)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	emit(c.events, Event{
		Type:      EventRequestStart,
		Operation: "chat",
		Provider:  provider,
		Model:     model.String(),
	})

	// Ensure model is passed to the underlying provider
	if options.Model == nil {
		opts = append([]ai.Option{ai.WithModel(model)}, opts...)
	}

	retryEvents := make(chan retry.Event, 10)
	go c.watchRetryEvents(retryEvents, "chat", provider)

	resp, err := retry.DoWithEvents(ctx, c.retryConfig, retryEvents, func() (*ai.Response, error) {
		return chatProvider.Chat(ctx, messages, opts...)
	})

	close(retryEvents)

	if err != nil {
		emit(c.events, Event{
			Type:      EventRequestError,
			Operation: "chat",
			Provider:  provider,
			Model:     model.String(),
			Duration:  time.Since(start),
			Error:     err,
		})
		return nil, err
	}

	var usage *ai.Usage
	if resp != nil {
		usage = &resp.Usage
	}
	emit(c.events, Event{
		Type:      EventRequestComplete,
		Operation: "chat",
		Provider:  provider,
		Model:     model.String(),
		Duration:  time.Since(start),
		Usage:     usage,
	})
	return resp, nil
}

// ChatStream sends a conversation and returns a channel of streaming events.
// The model can be specified via WithModel option, or the default chat model is used.
// Automatically retries on transient errors when establishing the stream connection.
func (c *Client) ChatStream(ctx context.Context, messages []ai.Message, opts ...ai.Option) (<-chan ai.StreamEvent, error) {
	// Prepend default options so per-request options override them
	opts = append(c.defaultChatOpts, opts...)
	options := ai.ApplyOptions(opts...)

	// Determine which model to use
	model := options.Model
	if model == nil {
		model = c.defaults.Chat
	}
	if model == nil {
		return nil, &ErrNoModel{Operation: "chat_stream"}
	}

	// Get the appropriate provider
	chatProvider, provider, err := c.getChatProvider(ctx, model)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	emit(c.events, Event{
		Type:      EventRequestStart,
		Operation: "chat_stream",
		Provider:  provider,
		Model:     model.String(),
	})

	// Ensure model is passed to the underlying provider
	if options.Model == nil {
		opts = append([]ai.Option{ai.WithModel(model)}, opts...)
	}

	retryEvents := make(chan retry.Event, 10)
	go c.watchRetryEvents(retryEvents, "chat_stream", provider)

	ch, err := retry.DoStreamWithEvents(ctx, c.retryConfig, retryEvents, func() (<-chan ai.StreamEvent, error) {
		return chatProvider.ChatStream(ctx, messages, opts...)
	})

	close(retryEvents)

	if err != nil {
		emit(c.events, Event{
			Type:      EventRequestError,
			Operation: "chat_stream",
			Provider:  provider,
			Model:     model.String(),
			Duration:  time.Since(start),
			Error:     err,
		})
		return nil, err
	}

	emit(c.events, Event{
		Type:      EventRequestComplete,
		Operation: "chat_stream",
		Provider:  provider,
		Model:     model.String(),
		Duration:  time.Since(start),
	})
	return ch, nil
}

// GenerateImage creates images from a text prompt.
// The model can be specified via WithImageModel option, or the default image model is used.
// Returns ErrFeatureNotSupported if the provider doesn't support image generation,
// and brandkit.ErrNoImage if the provider responds successfully but without image data.
// Automatically retries on transient errors according to the client's retry configuration.
func (c *Client) GenerateImage(ctx context.Context, prompt string, opts ...ai.ImageOption) (*ai.ImageResponse, error) {
	options := ai.ApplyImageOptions(opts...)

	// Determine which model to use
	model := options.Model
	if model == nil {
		model = c.defaults.Image
	}
	if model == nil {
		return nil, &ErrNoModel{Operation: "image"}
	}

	// Get the appropriate provider
	imageProvider, provider, err := c.getImageProvider(ctx, model)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	emit(c.events, Event{
		Type:      EventRequestStart,
		Operation: "image",
		Provider:  provider,
		Model:     model.String(),
	})

	// Ensure model is passed to the underlying provider
	if options.Model == nil {
		opts = append([]ai.ImageOption{ai.WithImageModel(model)}, opts...)
	}

	retryEvents := make(chan retry.Event, 10)
	go c.watchRetryEvents(retryEvents, "image", provider)

	resp, err := retry.DoWithEvents(ctx, c.retryConfig, retryEvents, func() (*ai.ImageResponse, error) {
		return imageProvider.GenerateImage(ctx, prompt, opts...)
	})

	close(retryEvents)

	if err != nil {
		emit(c.events, Event{
			Type:      EventRequestError,
			Operation: "image",
			Provider:  provider,
			Model:     model.String(),
			Duration:  time.Since(start),
			Error:     err,
		})
		return nil, err
	}

	// A successful call can still come back without image data, for
	// example when the model answers the prompt in prose. That outcome
	// is not retried; callers check for ErrNoImage.
	if resp == nil || len(resp.Payloads) == 0 {
		if resp != nil && resp.Text != "" {
			c.logger.Debug("model returned text instead of an image",
				"provider", provider,
				"model", model.String(),
				"text", resp.Text)
		}
		emit(c.events, Event{
			Type:      EventRequestError,
			Operation: "image",
			Provider:  provider,
			Model:     model.String(),
			Duration:  time.Since(start),
			Error:     ai.ErrNoImage,
		})
		return nil, ai.ErrNoImage
	}

	emit(c.events, Event{
		Type:      EventRequestComplete,
		Operation: "image",
		Provider:  provider,
		Model:     model.String(),
		Duration:  time.Since(start),
	})
	return resp, nil
}

// StreamImage creates images from a text prompt and returns a channel of chunks
// carrying image data and interleaved text as the provider produces them.
// The model can be specified via WithImageModel option, or the default image model is used.
// Returns ErrFeatureNotSupported if the provider doesn't support streaming image generation.
// Automatically retries on transient errors when establishing the stream connection.
func (c *Client) StreamImage(ctx context.Context, prompt string, opts ...ai.ImageOption) (<-chan ai.ImageChunk, error) {
	options := ai.ApplyImageOptions(opts...)

	// Determine which model to use
	model := options.Model
	if model == nil {
		model = c.defaults.Image
	}
	if model == nil {
		return nil, &ErrNoModel{Operation: "image_stream"}
	}

	// Resolve provider and check capability
	provider := c.resolveProvider(model)

	if !providerCapabilities[provider][FeatureImageStream] {
		return nil, &ErrFeatureNotSupported{Provider: provider.String(), Feature: "image_stream"}
	}

	// Google is the only provider with a streaming image API
	var streamer ai.ImageStreamer
	switch provider {
	case ai.ProviderGoogle:
		client, err := c.getGoogleClient(ctx)
		if err != nil {
			return nil, err
		}
		streamer = client
	default:
		return nil, &ErrFeatureNotSupported{Provider: provider.String(), Feature: "image_stream"}
	}

	start := time.Now()
	emit(c.events, Event{
		Type:      EventRequestStart,
		Operation: "image_stream",
		Provider:  provider,
		Model:     model.String(),
	})

	// Ensure model is passed to the underlying provider
	if options.Model == nil {
		opts = append([]ai.ImageOption{ai.WithImageModel(model)}, opts...)
	}

	retryEvents := make(chan retry.Event, 10)
	go c.watchRetryEvents(retryEvents, "image_stream", provider)

	ch, err := retry.DoStreamWithEvents(ctx, c.retryConfig, retryEvents, func() (<-chan ai.ImageChunk, error) {
		return streamer.StreamImage(ctx, prompt, opts...)
	})

	close(retryEvents)

	if err != nil {
		emit(c.events, Event{
			Type:      EventRequestError,
			Operation: "image_stream",
			Provider:  provider,
			Model:     model.String(),
			Duration:  time.Since(start),
			Error:     err,
		})
		return nil, err
	}

	emit(c.events, Event{
		Type:      EventRequestComplete,
		Operation: "image_stream",
		Provider:  provider,
		Model:     model.String(),
		Duration:  time.Since(start),
	})
	return ch, nil
}

// SupportsFeature returns true if the given feature is supported by any configured provider.
func (c *Client) SupportsFeature(f Feature) bool {
	switch f {
	case FeatureChat:
		return c.apiKeys.Anthropic != "" || c.apiKeys.OpenAI != "" || c.googleConfigured()
	case FeatureImage:
		return c.apiKeys.OpenAI != "" || c.googleConfigured()
	case FeatureImageStream:
		return c.googleConfigured()
	default:
		return false
	}
}

// googleConfigured reports whether the Google provider can be initialized,
// either with an API key or with a Vertex project.
func (c *Client) googleConfigured() bool {
	return c.apiKeys.Google != "" || c.vertexProject != ""
}

// watchRetryEvents reads from a retry events channel, logs retry warnings,
// and forwards events to the client's event channel as EventRetry events.
func (c *Client) watchRetryEvents(retryEvents <-chan retry.Event, operation string, provider ai.Provider) {
	for re := range retryEvents {
		switch re.Type {
		case retry.EventRetrying:
			c.logger.Warn("retrying request",
				"operation", operation,
				"provider", provider,
				"attempt", re.Attempt,
				"max_attempts", re.MaxAttempts,
				"delay", re.Delay,
				"error", re.Error)
		case retry.EventExhausted:
			c.logger.Warn("retry attempts exhausted",
				"operation", operation,
				"provider", provider,
				"attempts", re.Attempt,
				"error", re.Error)
		}

		reCopy := re // Copy to avoid pointer issues
		emit(c.events, Event{
			Type:       EventRetry,
			Operation:  operation,
			Provider:   provider,
			RetryEvent: &reCopy,
		})
	}
}
