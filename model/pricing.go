package model

import ai "github.com/brandkit/brandkit"

// ChatPricing contains pricing per million tokens (USD) for chat models.
type ChatPricing struct {
	// InputPerMillion is the standard input token pricing.
	InputPerMillion float64
	// OutputPerMillion is the standard output token pricing.
	OutputPerMillion float64
}

// ImagePricing contains image generation pricing (USD).
// Different providers use different pricing models.
type ImagePricing struct {
	// PerImage is a flat per-image price (Google, DALL-E 2).
	PerImage float64
	// LowQuality is the price for low quality images (OpenAI).
	LowQuality float64
	// MediumQuality is the price for medium quality images (OpenAI).
	MediumQuality float64
	// HighQuality is the price for high quality images (OpenAI).
	HighQuality float64
}

// HasQualityTiers returns true if the model has quality-based pricing tiers.
func (p ImagePricing) HasQualityTiers() bool {
	return p.LowQuality > 0 || p.MediumQuality > 0 || p.HighQuality > 0
}

// HasFlatPricing returns true if the model uses flat per-image pricing.
func (p ImagePricing) HasFlatPricing() bool {
	return p.PerImage > 0
}

// CalculateCost returns the USD cost of the given token usage at the given
// pricing.
func CalculateCost(usage ai.Usage, pricing ChatPricing) float64 {
	inputCost := float64(usage.InputTokens) / 1_000_000 * pricing.InputPerMillion
	outputCost := float64(usage.OutputTokens) / 1_000_000 * pricing.OutputPerMillion
	return inputCost + outputCost
}
