package google

// ChatModel represents a Google Gemini chat model.
type ChatModel string

const (
	// Gemini 2.5 Series
	Gemini25Pro   ChatModel = "gemini-2.5-pro"
	Gemini25Flash ChatModel = "gemini-2.5-flash"

	// DefaultChatModel is the recommended default chat model.
	DefaultChatModel ChatModel = Gemini25Flash
)

// String returns the model identifier string.
func (m ChatModel) String() string { return string(m) }

// ImageModel represents a Gemini model with image output enabled.
type ImageModel string

const (
	Gemini20FlashImage ImageModel = "gemini-2.0-flash-preview-image-generation"
	Gemini25FlashImage ImageModel = "gemini-2.5-flash-image"

	// DefaultImageModel is the recommended default image model.
	DefaultImageModel ImageModel = Gemini20FlashImage
)

// String returns the model identifier string.
func (m ImageModel) String() string { return string(m) }
