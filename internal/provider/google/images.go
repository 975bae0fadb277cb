package google

import (
	"context"

	ai "github.com/brandkit/brandkit"
	"google.golang.org/genai"
)

// GenerateImage generates images with a Gemini image-output model in a single
// round trip. Any text the model produces alongside the images is returned on
// the response for callers to log.
func (c *Client) GenerateImage(ctx context.Context, prompt string, opts ...ai.ImageOption) (*ai.ImageResponse, error) {
	options := ai.ApplyImageOptions(opts...)

	model := DefaultImageModel
	if options.Model != nil {
		model = ImageModel(options.Model.String())
	}

	contents := buildImageContents(prompt, options.SystemPrompt)

	resp, err := c.client.Models.GenerateContent(ctx, model.String(), contents, imageConfig())
	if err != nil {
		return nil, wrapError(err)
	}

	out := &ai.ImageResponse{}
	if len(resp.Candidates) > 0 && resp.Candidates[0].Content != nil {
		out.Payloads, out.Text = extractParts(resp.Candidates[0].Content.Parts)
	}
	return out, nil
}

// StreamImage generates images as a stream of chunks. Image-output models
// interleave text commentary with inline image data; each chunk carries
// whatever the model produced in that iteration.
func (c *Client) StreamImage(ctx context.Context, prompt string, opts ...ai.ImageOption) (<-chan ai.ImageChunk, error) {
	options := ai.ApplyImageOptions(opts...)

	model := DefaultImageModel
	if options.Model != nil {
		model = ImageModel(options.Model.String())
	}

	contents := buildImageContents(prompt, options.SystemPrompt)

	ch := make(chan ai.ImageChunk)

	go func() {
		defer close(ch)

		for resp, err := range c.client.Models.GenerateContentStream(ctx, model.String(), contents, imageConfig()) {
			if err != nil {
				ch <- ai.ImageChunk{Err: wrapError(err)}
				return
			}
			if resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != "" {
				ch <- ai.ImageChunk{Err: &BlockedError{Reason: string(resp.PromptFeedback.BlockReason)}}
				return
			}

			var chunk ai.ImageChunk
			if len(resp.Candidates) > 0 && resp.Candidates[0].Content != nil {
				chunk.Payloads, chunk.Text = extractParts(resp.Candidates[0].Content.Parts)
			}
			if len(chunk.Payloads) > 0 || chunk.Text != "" {
				ch <- chunk
			}
		}
	}()

	return ch, nil
}

// buildImageContents folds the system prompt into a single user message; the
// image generation API accepts no system role.
func buildImageContents(prompt, systemPrompt string) []*genai.Content {
	combined := prompt
	if systemPrompt != "" {
		combined = systemPrompt + "\n\nUser request: " + prompt
	}
	return []*genai.Content{{
		Role:  "user",
		Parts: []*genai.Part{{Text: combined}},
	}}
}

func imageConfig() *genai.GenerateContentConfig {
	return &genai.GenerateContentConfig{
		ResponseModalities: []string{"TEXT", "IMAGE"},
	}
}

func extractParts(parts []*genai.Part) ([]ai.ImagePayload, string) {
	var payloads []ai.ImagePayload
	var text string
	for _, part := range parts {
		if part.InlineData != nil && len(part.InlineData.Data) > 0 {
			payloads = append(payloads, ai.ImagePayload{
				Data:     part.InlineData.Data,
				MIMEType: part.InlineData.MIMEType,
			})
		}
		if part.Text != "" {
			text += part.Text
		}
	}
	return payloads, text
}
