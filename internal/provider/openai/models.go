package openai

// ChatModel represents an OpenAI chat/completion model.
type ChatModel string

const (
	// GPT-4 Series
	GPT4o     ChatModel = "gpt-4o"
	GPT4oMini ChatModel = "gpt-4o-mini"
	GPT41     ChatModel = "gpt-4.1"

	// DefaultChatModel is the recommended default chat model.
	DefaultChatModel ChatModel = GPT4o
)

// String returns the model identifier string.
func (m ChatModel) String() string { return string(m) }

// ImageModel represents an OpenAI image generation model.
type ImageModel string

const (
	DallE3    ImageModel = "dall-e-3"
	DallE2    ImageModel = "dall-e-2"
	GPTImage1 ImageModel = "gpt-image-1"

	// DefaultImageModel is the recommended default image model.
	DefaultImageModel ImageModel = DallE3
)

// String returns the model identifier string.
func (m ImageModel) String() string { return string(m) }
