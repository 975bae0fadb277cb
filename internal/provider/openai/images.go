package openai

import (
	"context"
	"encoding/base64"
	"fmt"

	ai "github.com/brandkit/brandkit"
	"github.com/openai/openai-go"
)

// GenerateImage generates images from a text prompt using DALL-E.
func (c *Client) GenerateImage(ctx context.Context, prompt string, opts ...ai.ImageOption) (*ai.ImageResponse, error) {
	options := ai.ApplyImageOptions(opts...)

	// Determine model
	model := DefaultImageModel
	if options.Model != nil {
		model = ImageModel(options.Model.String())
	}

	// DALL-E has no system role at all; fold guidance into the prompt.
	if options.SystemPrompt != "" {
		prompt = options.SystemPrompt + "\n\nUser request: " + prompt
	}

	params := openai.ImageGenerateParams{
		Model:  openai.ImageModel(model.String()),
		Prompt: prompt,
	}

	// Apply size (default: 1024x1024)
	size := options.Size
	if size == "" {
		size = ai.ImageSize1024x1024
	}
	params.Size = openai.ImageGenerateParamsSize(size)

	// Apply count (DALL-E 3 only supports n=1)
	n := options.Count
	if n <= 0 {
		n = 1
	}
	params.N = openai.Int(int64(n))

	// Apply quality
	if options.Quality != "" {
		params.Quality = openai.ImageGenerateParamsQuality(options.Quality)
	}

	// Apply style
	if options.Style != "" {
		params.Style = openai.ImageGenerateParamsStyle(options.Style)
	}

	// Apply format
	format := options.Format
	if format == "" {
		format = ai.ImageFormatURL
	}
	params.ResponseFormat = openai.ImageGenerateParamsResponseFormat(format)

	resp, err := c.client.Images.Generate(ctx, params)
	if err != nil {
		return nil, wrapError(err)
	}

	payloads := make([]ai.ImagePayload, 0, len(resp.Data))
	for i, img := range resp.Data {
		payload := ai.ImagePayload{
			URL:           img.URL,
			RevisedPrompt: img.RevisedPrompt,
		}
		if img.B64JSON != "" {
			data, err := base64.StdEncoding.DecodeString(img.B64JSON)
			if err != nil {
				return nil, fmt.Errorf("decode image %d: %w", i, err)
			}
			payload.Data = data
			payload.MIMEType = "image/png"
		}
		payloads = append(payloads, payload)
	}

	return &ai.ImageResponse{Payloads: payloads}, nil
}
