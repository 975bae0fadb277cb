package brandkit

import "context"

// ImageProvider defines the interface for providers that generate images in
// a single round trip.
type ImageProvider interface {
	// GenerateImage creates images from a text prompt.
	GenerateImage(ctx context.Context, prompt string, opts ...ImageOption) (*ImageResponse, error)
}

// ImageStreamer defines the interface for providers that generate images as
// a stream of chunks.
type ImageStreamer interface {
	// StreamImage creates images from a text prompt, delivered incrementally.
	// The channel is closed when the stream is complete or an error occurs.
	// Callers should check ImageChunk.Err for any errors.
	StreamImage(ctx context.Context, prompt string, opts ...ImageOption) (<-chan ImageChunk, error)
}

// ImagePayload is a single generated image as returned by a provider:
// inline binary data with its declared media type, or a hosted URL for
// providers that return links instead of bytes.
type ImagePayload struct {
	// Data contains the raw image bytes when the provider returns them inline.
	Data []byte
	// MIMEType is the media type the provider declared for Data.
	MIMEType string
	// URL points at a provider-hosted image when no inline data is returned.
	URL string
	// RevisedPrompt contains the prompt actually used, when the provider
	// rewrites prompts (DALL-E 3 does).
	RevisedPrompt string
}

// Inline reports whether the payload carries inline image bytes.
func (p ImagePayload) Inline() bool { return len(p.Data) > 0 }

// PayloadCarrier is implemented by both image response shapes so callers can
// extract payloads without inspecting which shape they received.
type PayloadCarrier interface {
	ImagePayloads() []ImagePayload
}

// ImageResponse is the single synchronous response shape: every payload the
// provider produced, plus any incidental text emitted alongside them.
type ImageResponse struct {
	Payloads []ImagePayload
	// Text holds commentary the model produced with the images. It is
	// informational only and never part of a generation result.
	Text string
}

// ImagePayloads returns the payloads embedded in the response.
func (r *ImageResponse) ImagePayloads() []ImagePayload { return r.Payloads }

// ImageChunk is one element of the streamed response shape. A chunk may
// carry image payloads, a text delta, both, or neither.
type ImageChunk struct {
	Payloads []ImagePayload
	// Text holds the incidental text delta for this chunk, if any.
	Text string
	// Err contains any error that occurred during streaming.
	Err error
}

// ImagePayloads returns the payloads embedded in the chunk.
func (c ImageChunk) ImagePayloads() []ImagePayload { return c.Payloads }

// ImageFormat specifies the output format for generated images.
type ImageFormat string

const (
	// ImageFormatURL returns images as URLs.
	ImageFormatURL ImageFormat = "url"
	// ImageFormatBase64 returns images as base64-encoded data.
	ImageFormatBase64 ImageFormat = "b64_json"
)

// ImageSize represents predefined image dimensions.
type ImageSize string

const (
	ImageSize256x256   ImageSize = "256x256"
	ImageSize512x512   ImageSize = "512x512"
	ImageSize1024x1024 ImageSize = "1024x1024"
	ImageSize1024x1792 ImageSize = "1024x1792" // Portrait
	ImageSize1792x1024 ImageSize = "1792x1024" // Landscape
)

// ImageQuality specifies the quality level for generated images.
// Note: Only supported by DALL-E 3.
type ImageQuality string

const (
	ImageQualityStandard ImageQuality = "standard"
	ImageQualityHD       ImageQuality = "hd"
)

// ImageStyle specifies the visual style for generated images.
// Note: Only supported by DALL-E 3.
type ImageStyle string

const (
	ImageStyleVivid   ImageStyle = "vivid"
	ImageStyleNatural ImageStyle = "natural"
)
