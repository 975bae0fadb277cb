package model

import (
	"testing"

	ai "github.com/brandkit/brandkit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve(t *testing.T) {
	t.Run("resolves catalog chat models", func(t *testing.T) {
		m, err := Resolve("gpt-4o")
		require.NoError(t, err)
		assert.Equal(t, GPT4o, m)
		assert.Equal(t, ai.ProviderOpenAI, m.Provider())
	})

	t.Run("resolves catalog image models", func(t *testing.T) {
		m, err := Resolve("gemini-2.0-flash-preview-image-generation")
		require.NoError(t, err)
		assert.Equal(t, Gemini20FlashImage, m)
		assert.Equal(t, ai.ProviderGoogle, m.Provider())
	})

	t.Run("trims whitespace", func(t *testing.T) {
		m, err := Resolve("  dall-e-3  ")
		require.NoError(t, err)
		assert.Equal(t, DallE3, m)
	})

	t.Run("infers provider from prefix", func(t *testing.T) {
		tests := []struct {
			id       string
			provider ai.Provider
		}{
			{"gemini-3.0-flash", ai.ProviderGoogle},
			{"imagen-4", ai.ProviderGoogle},
			{"gpt-5-turbo", ai.ProviderOpenAI},
			{"gpt-image-2", ai.ProviderOpenAI},
			{"dall-e-4", ai.ProviderOpenAI},
			{"o3-mini", ai.ProviderOpenAI},
			{"claude-opus-5", ai.ProviderAnthropic},
		}
		for _, tt := range tests {
			m, err := Resolve(tt.id)
			require.NoError(t, err, tt.id)
			assert.Equal(t, tt.provider, m.Provider(), tt.id)
			assert.Equal(t, tt.id, m.String(), tt.id)
		}
	})

	t.Run("rejects unknown identifiers", func(t *testing.T) {
		_, err := Resolve("mistral-large")
		require.Error(t, err)
		assert.True(t, ai.IsUserInput(err))
	})

	t.Run("rejects empty identifier", func(t *testing.T) {
		_, err := Resolve("")
		require.Error(t, err)
		assert.True(t, ai.IsUserInput(err))
	})
}

func TestDefaultModels(t *testing.T) {
	assert.Equal(t, ai.ProviderGoogle, DefaultImageModel.Provider())
	assert.Equal(t, ai.ProviderOpenAI, DefaultChatModel.Provider())

	// defaults must round-trip through Resolve
	m, err := Resolve(DefaultImageModel.String())
	require.NoError(t, err)
	assert.Equal(t, DefaultImageModel, m)
}
