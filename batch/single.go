package batch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	ai "github.com/brandkit/brandkit"
	"github.com/brandkit/brandkit/compose"
	"github.com/brandkit/brandkit/model"
)

// ImageGenerator is the single-shot image source used by GenerateOne.
// *client.Client satisfies this interface.
type ImageGenerator interface {
	GenerateImage(ctx context.Context, prompt string, opts ...ai.ImageOption) (*ai.ImageResponse, error)
}

// GenerateOne runs the pipeline for a single request: generate an image,
// stamp brand elements onto it, and save it under req.OutputDir with a
// random image_{hex} name. It returns the path of the saved file.
//
// Unlike Runner, which derives filenames from the prompt, GenerateOne names
// files randomly so repeated identical requests never clobber each other.
func GenerateOne(ctx context.Context, gen ImageGenerator, req ai.GenerationRequest) (string, error) {
	prompt := strings.TrimSpace(req.Prompt)
	if prompt == "" {
		return "", ai.NewUserInputError("prompt is required", 400, nil)
	}

	var opts []ai.ImageOption
	if req.Model != "" {
		m, err := model.Resolve(req.Model)
		if err != nil {
			return "", ai.NewUserInputError(fmt.Sprintf("unknown model %q", req.Model), 400, err)
		}
		opts = append(opts, ai.WithImageModel(m))
		// DALL-E returns hosted URLs unless bytes are requested, and the
		// branding step needs bytes.
		if m.Provider() == ai.ProviderOpenAI {
			opts = append(opts, ai.WithImageFormat(ai.ImageFormatBase64))
		}
	}
	if req.SystemPrompt != "" {
		opts = append(opts, ai.WithSystemPrompt(req.SystemPrompt))
	}

	resp, err := gen.GenerateImage(ctx, prompt, opts...)
	if err != nil {
		return "", err
	}

	// Branding needs the raw bytes, so URL-only payloads are no use here.
	var data []byte
	for _, p := range resp.ImagePayloads() {
		if p.Inline() {
			data = p.Data
			break
		}
	}
	if data == nil {
		if len(resp.ImagePayloads()) > 0 {
			return "", ai.NewPermanentError("provider returned a hosted URL instead of image bytes", 0, nil)
		}
		return "", ai.ErrNoImage
	}

	overlay := compose.Overlay{LogoPath: req.LogoPath, Label: req.LabelText}
	data = overlay.Apply(data)

	outDir := req.OutputDir
	if outDir == "" {
		outDir = "outputs"
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}

	name := fmt.Sprintf("image_%s.png", uuid.NewString()[:8])
	path := filepath.Join(outDir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	return path, nil
}
