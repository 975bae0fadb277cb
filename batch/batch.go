// Package batch turns lists of prompts into branded campaign images on disk.
//
// A Runner drives the full pipeline for each prompt: stream the generation,
// collect image payloads, stamp brand elements, and save the files. Prompts
// are processed strictly in order and a failed prompt never aborts the rest
// of the batch.
package batch

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	ai "github.com/brandkit/brandkit"
	"github.com/brandkit/brandkit/compose"
	"github.com/brandkit/brandkit/retry"
)

// Generator is the streaming image source a Runner draws from.
// *client.Client satisfies this interface.
type Generator interface {
	StreamImage(ctx context.Context, prompt string, opts ...ai.ImageOption) (<-chan ai.ImageChunk, error)
}

// Config controls where batch output lands and how images are branded.
type Config struct {
	// OutDir receives generated files; created with any missing parents
	// before the first write. Defaults to "outputs".
	OutDir string

	// Prefix starts every output filename. Defaults to "campaign".
	Prefix string

	// LogoPath is stamped bottom-right onto every image; empty skips the logo.
	LogoPath string

	// LabelText is drawn bottom-left onto every image; empty skips the label.
	LabelText string

	// Model selects the image model; nil uses the generator's default.
	Model ai.Model

	// SystemPrompt carries style guidance applied to every prompt.
	SystemPrompt string

	// Retry bounds attempts per prompt. It covers the whole exchange,
	// stream establishment and consumption both, so a stream that resets
	// mid-flight is retried rather than failed outright. Nil uses
	// retry.DefaultConfig().
	Retry *retry.Config

	// Logger defaults to slog.Default().
	Logger *slog.Logger
}

// Runner generates branded images for batches of prompts.
type Runner struct {
	gen      Generator
	cfg      Config
	overlay  compose.Overlay
	retryCfg retry.Config
	logger   *slog.Logger
}

// New creates a Runner with the given generator and configuration.
func New(gen Generator, cfg Config) *Runner {
	if cfg.OutDir == "" {
		cfg.OutDir = "outputs"
	}
	if cfg.Prefix == "" {
		cfg.Prefix = "campaign"
	}
	retryCfg := retry.DefaultConfig()
	if cfg.Retry != nil {
		retryCfg = *cfg.Retry
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{
		gen:      gen,
		cfg:      cfg,
		overlay:  compose.Overlay{LogoPath: cfg.LogoPath, Label: cfg.LabelText},
		retryCfg: retryCfg,
		logger:   logger,
	}
}

// Run processes prompts sequentially, one at a time. Blank prompts are
// skipped, so the returned slice holds exactly one result per non-blank
// prompt, in input order. A failure on one prompt is recorded in its
// result and the rest of the batch still runs.
func (r *Runner) Run(ctx context.Context, prompts []string) []ai.GenerationResult {
	results := make([]ai.GenerationResult, 0, len(prompts))

	for _, p := range prompts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}

		// A cancelled batch still yields one result per remaining prompt.
		if err := ctx.Err(); err != nil {
			results = append(results, ai.FailureResult(p, err))
			continue
		}

		r.logger.Info("generating", "prompt", p)

		paths, err := r.generate(ctx, p)
		if err != nil {
			r.logger.Error("generation failed", "prompt", p, "error", err)
			results = append(results, ai.FailureResult(p, err))
			continue
		}

		r.logger.Info("saved", "prompt", p, "files", len(paths))
		results = append(results, ai.SuccessResult(p, paths[0], ""))
	}

	return results
}

// generate runs one prompt's generation and writes each branded payload to
// the output directory. Returns the saved file paths. The retry budget wraps
// the full exchange, so a transient error mid-stream restarts the prompt
// from scratch instead of failing it.
func (r *Runner) generate(ctx context.Context, prompt string) ([]string, error) {
	var opts []ai.ImageOption
	if r.cfg.Model != nil {
		opts = append(opts, ai.WithImageModel(r.cfg.Model))
	}
	if r.cfg.SystemPrompt != "" {
		opts = append(opts, ai.WithSystemPrompt(r.cfg.SystemPrompt))
	}

	events := make(chan retry.Event, 10)
	go r.watchRetryEvents(events, prompt)

	payloads, err := retry.DoWithEvents(ctx, r.retryCfg, events, func() ([]ai.ImagePayload, error) {
		return r.collect(ctx, prompt, opts)
	})

	close(events)

	if err != nil {
		return nil, err
	}
	if len(payloads) == 0 {
		return nil, ai.ErrNoImage
	}

	if err := os.MkdirAll(r.cfg.OutDir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}

	slug := ai.Slugify(prompt)
	paths := make([]string, 0, len(payloads))
	for i, payload := range payloads {
		data := r.overlay.Apply(payload.Data)
		name := fmt.Sprintf("%s_%s_%d%s", r.cfg.Prefix, slug, i, ai.ExtensionForMIME(payload.MIMEType))
		path := filepath.Join(r.cfg.OutDir, name)
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return nil, fmt.Errorf("write %s: %w", path, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// collect runs one full exchange: establish the stream, then drain it,
// gathering every image payload before anything is written so a mid-stream
// failure leaves no partial output behind.
func (r *Runner) collect(ctx context.Context, prompt string, opts []ai.ImageOption) ([]ai.ImagePayload, error) {
	ch, err := r.gen.StreamImage(ctx, prompt, opts...)
	if err != nil {
		return nil, err
	}

	var payloads []ai.ImagePayload
	for chunk := range ch {
		if chunk.Err != nil {
			return nil, chunk.Err
		}
		if text := strings.TrimSpace(chunk.Text); text != "" {
			r.logger.Debug("model text", "text", text)
		}
		payloads = append(payloads, chunk.ImagePayloads()...)
	}
	return payloads, nil
}

// watchRetryEvents logs retry warnings for one prompt's exchange.
func (r *Runner) watchRetryEvents(events <-chan retry.Event, prompt string) {
	for ev := range events {
		switch ev.Type {
		case retry.EventRetrying:
			r.logger.Warn("retrying prompt",
				"prompt", prompt,
				"attempt", ev.Attempt,
				"max_attempts", ev.MaxAttempts,
				"delay", ev.Delay,
				"error", ev.Error)
		case retry.EventExhausted:
			r.logger.Warn("retry attempts exhausted",
				"prompt", prompt,
				"attempts", ev.Attempt,
				"error", ev.Error)
		}
	}
}
