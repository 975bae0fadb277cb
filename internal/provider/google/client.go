package google

import (
	"context"
	"fmt"

	"github.com/brandkit/brandkit"
	"google.golang.org/genai"
)

// Client wraps the Google GenAI SDK to implement brandkit.ChatProvider and
// brandkit.ImageProvider.
type Client struct {
	client   *genai.Client
	model    ChatModel
	project  string
	location string
}

// New creates a new Google GenAI client with the given API key.
// By default requests use the Gemini API backend; WithVertex switches to
// Vertex AI, which authenticates via Application Default Credentials (ADC)
// and ignores the API key.
func New(ctx context.Context, apiKey string, opts ...ClientOption) (*Client, error) {
	c := &Client{model: DefaultChatModel}
	for _, opt := range opts {
		opt(c)
	}

	config := &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	}
	if c.project != "" {
		config = &genai.ClientConfig{
			Backend:  genai.BackendVertexAI,
			Project:  c.project,
			Location: c.location,
		}
	}

	client, err := genai.NewClient(ctx, config)
	if err != nil {
		return nil, err
	}
	c.client = client
	return c, nil
}

// ClientOption configures the Google client.
type ClientOption func(*Client)

// WithModel sets the default model for chat requests.
func WithModel(model ChatModel) ClientOption {
	return func(c *Client) {
		c.model = model
	}
}

// WithVertex routes requests through the Vertex AI backend for the given
// project and location.
func WithVertex(project, location string) ClientOption {
	return func(c *Client) {
		c.project = project
		c.location = location
	}
}

// Chat sends a conversation and returns a complete response.
func (c *Client) Chat(ctx context.Context, messages []brandkit.Message, opts ...brandkit.Option) (*brandkit.Response, error) {
	options := brandkit.ApplyOptions(opts...)
	model := c.model
	if options.Model != nil {
		model = ChatModel(options.Model.String())
	}

	contents := convertMessages(messages)
	config := chatConfig(options)

	resp, err := c.client.Models.GenerateContent(ctx, model.String(), contents, config)
	if err != nil {
		return nil, wrapError(err)
	}

	content := ""
	if len(resp.Candidates) > 0 && resp.Candidates[0].Content != nil {
		for _, part := range resp.Candidates[0].Content.Parts {
			if part.Text != "" {
				content += part.Text
			}
		}
	}

	finishReason := ""
	if len(resp.Candidates) > 0 {
		finishReason = string(resp.Candidates[0].FinishReason)
	}

	usage := brandkit.Usage{}
	if resp.UsageMetadata != nil {
		usage.InputTokens = int(resp.UsageMetadata.PromptTokenCount)
		usage.OutputTokens = int(resp.UsageMetadata.CandidatesTokenCount)
	}

	return &brandkit.Response{
		Content:      content,
		FinishReason: finishReason,
		Usage:        usage,
	}, nil
}

// ChatStream sends a conversation and returns a channel of streaming events.
func (c *Client) ChatStream(ctx context.Context, messages []brandkit.Message, opts ...brandkit.Option) (<-chan brandkit.StreamEvent, error) {
	options := brandkit.ApplyOptions(opts...)
	model := c.model
	if options.Model != nil {
		model = ChatModel(options.Model.String())
	}

	contents := convertMessages(messages)
	config := chatConfig(options)

	ch := make(chan brandkit.StreamEvent)

	go func() {
		defer close(ch)

		var fullContent string
		var finishReason string
		var usage brandkit.Usage
		var iterCount int

		for resp, err := range c.client.Models.GenerateContentStream(ctx, model.String(), contents, config) {
			iterCount++
			if err != nil {
				ch <- brandkit.StreamEvent{Err: wrapError(fmt.Errorf("stream error at iteration %d: %w", iterCount, err))}
				return
			}

			if resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != "" {
				ch <- brandkit.StreamEvent{
					Err: &BlockedError{Reason: string(resp.PromptFeedback.BlockReason)},
				}
				return
			}

			if len(resp.Candidates) > 0 && resp.Candidates[0].Content != nil {
				for _, part := range resp.Candidates[0].Content.Parts {
					if part.Text != "" {
						ch <- brandkit.StreamEvent{Delta: part.Text}
						fullContent += part.Text
					}
				}
				finishReason = string(resp.Candidates[0].FinishReason)
			}

			if resp.UsageMetadata != nil {
				usage.InputTokens = int(resp.UsageMetadata.PromptTokenCount)
				usage.OutputTokens = int(resp.UsageMetadata.CandidatesTokenCount)
			}
		}

		if iterCount == 0 {
			ch <- brandkit.StreamEvent{Err: fmt.Errorf("stream returned no data")}
			return
		}

		ch <- brandkit.StreamEvent{
			Done: true,
			Response: &brandkit.Response{
				Content:      fullContent,
				FinishReason: finishReason,
				Usage:        usage,
			},
		}
	}()

	return ch, nil
}

// chatConfig translates request options into a genai generation config.
func chatConfig(options *brandkit.Options) *genai.GenerateContentConfig {
	config := &genai.GenerateContentConfig{}
	if options.MaxTokens > 0 {
		config.MaxOutputTokens = int32(options.MaxTokens)
	}
	if options.Temperature != nil {
		temp := float32(*options.Temperature)
		config.Temperature = &temp
	}
	return config
}

var _ brandkit.ChatProvider = (*Client)(nil)
var _ brandkit.ImageProvider = (*Client)(nil)
var _ brandkit.ImageStreamer = (*Client)(nil)
