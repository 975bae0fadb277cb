package model

import (
	"strings"

	ai "github.com/brandkit/brandkit"
)

// catalog indexes every known model by its API identifier.
var catalog = map[string]ai.Model{
	GPT4o.id:     GPT4o,
	GPT4oMini.id: GPT4oMini,
	GPT41.id:     GPT41,

	ClaudeSonnet45.id: ClaudeSonnet45,
	ClaudeHaiku45.id:  ClaudeHaiku45,

	Gemini25Pro.id:   Gemini25Pro,
	Gemini25Flash.id: Gemini25Flash,

	Gemini20FlashImage.id: Gemini20FlashImage,
	Gemini25FlashImage.id: Gemini25FlashImage,

	DallE3.id:    DallE3,
	DallE2.id:    DallE2,
	GPTImage1.id: GPTImage1,
}

// Resolve maps an API model identifier to a catalog model. Identifiers not in
// the catalog but with a recognizable provider prefix resolve to a model of
// that provider, so newly released models work without a library update.
// Unrecognizable identifiers return a user input error.
func Resolve(id string) (ai.Model, error) {
	id = strings.TrimSpace(id)
	if m, ok := catalog[id]; ok {
		return m, nil
	}
	switch {
	case strings.HasPrefix(id, "imagen-"):
		return ImageModel{id: id, provider: ai.ProviderGoogle}, nil
	case strings.HasPrefix(id, "dall-e"), strings.HasPrefix(id, "gpt-image"):
		return ImageModel{id: id, provider: ai.ProviderOpenAI}, nil
	case strings.HasPrefix(id, "gemini-"):
		return ChatModel{id: id, provider: ai.ProviderGoogle}, nil
	case strings.HasPrefix(id, "gpt-"), strings.HasPrefix(id, "chatgpt-"),
		strings.HasPrefix(id, "o1"), strings.HasPrefix(id, "o3"), strings.HasPrefix(id, "o4"):
		return ChatModel{id: id, provider: ai.ProviderOpenAI}, nil
	case strings.HasPrefix(id, "claude-"):
		return ChatModel{id: id, provider: ai.ProviderAnthropic}, nil
	}
	return nil, ai.NewUserInputError("unknown model: "+id, 0, nil)
}
