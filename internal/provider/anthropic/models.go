package anthropic

// ChatModel represents an Anthropic chat model.
type ChatModel string

const (
	// Claude 4.5 Family
	ClaudeSonnet45 ChatModel = "claude-sonnet-4-5" // Alias - auto-updates
	ClaudeHaiku45  ChatModel = "claude-haiku-4-5"  // Alias - auto-updates

	// DefaultChatModel is the recommended default chat model.
	DefaultChatModel ChatModel = ClaudeSonnet45
)

// String returns the model identifier string.
func (m ChatModel) String() string { return string(m) }
