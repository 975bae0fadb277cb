package model

import ai "github.com/brandkit/brandkit"

// ImageModel represents an image generation model from any provider.
type ImageModel struct {
	id       string
	provider ai.Provider
	pricing  ImagePricing
}

// String returns the API identifier for this model.
func (m ImageModel) String() string { return m.id }

// Provider returns which provider this model belongs to.
func (m ImageModel) Provider() ai.Provider { return m.provider }

// Pricing returns the pricing for this model.
func (m ImageModel) Pricing() ImagePricing { return m.pricing }

// Google Gemini Image Models
// Model pricing last verified: August 2026
var (
	// Gemini flash image models return inline bytes, optionally streamed.
	Gemini20FlashImage = ImageModel{id: "gemini-2.0-flash-preview-image-generation", provider: ai.ProviderGoogle, pricing: ImagePricing{PerImage: 0.039}}
	Gemini25FlashImage = ImageModel{id: "gemini-2.5-flash-image", provider: ai.ProviderGoogle, pricing: ImagePricing{PerImage: 0.039}}

	// DefaultGeminiImageModel is the recommended default Google image model.
	DefaultGeminiImageModel = Gemini20FlashImage
)

// OpenAI Image Models
// Model pricing last verified: August 2026
var (
	// DALL-E models return hosted URLs by default.
	DallE3 = ImageModel{id: "dall-e-3", provider: ai.ProviderOpenAI, pricing: ImagePricing{LowQuality: 0.040, MediumQuality: 0.040, HighQuality: 0.080}}
	DallE2 = ImageModel{id: "dall-e-2", provider: ai.ProviderOpenAI, pricing: ImagePricing{PerImage: 0.016}}

	GPTImage1 = ImageModel{id: "gpt-image-1", provider: ai.ProviderOpenAI, pricing: ImagePricing{LowQuality: 0.011, MediumQuality: 0.042, HighQuality: 0.167}}

	// DefaultDallEModel is the recommended default OpenAI image model.
	DefaultDallEModel = DallE3
)

// DefaultImageModel is the model generation uses when a request names none.
var DefaultImageModel = Gemini20FlashImage
