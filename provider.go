package brandkit

// Provider identifies an AI provider.
type Provider string

// String returns the provider identifier.
func (p Provider) String() string { return string(p) }

// Supported providers.
const (
	ProviderAnthropic Provider = "anthropic"
	ProviderOpenAI    Provider = "openai"
	ProviderGoogle    Provider = "google"
)

// Model identifies a specific model and the provider that serves it.
// Concrete catalog entries live in the model package.
type Model interface {
	String() string
	Provider() Provider
}
