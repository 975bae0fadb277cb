package brandkit

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoleConstants(t *testing.T) {
	assert.Equal(t, Role("user"), RoleUser)
	assert.Equal(t, Role("assistant"), RoleAssistant)
	assert.Equal(t, Role("system"), RoleSystem)
}

func TestNewMessage(t *testing.T) {
	tests := []struct {
		name    string
		role    Role
		content string
	}{
		{"user message", RoleUser, "Generate a red shoe"},
		{"assistant message", RoleAssistant, "Here is your image"},
		{"system message", RoleSystem, "You are a helpful and creative assistant"},
		{"empty content", RoleUser, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := NewMessage(tt.role, tt.content)
			assert.Equal(t, tt.role, msg.Role)
			assert.Equal(t, tt.content, msg.Content)
		})
	}
}

func TestMessageJSON(t *testing.T) {
	t.Run("round-trips through JSON", func(t *testing.T) {
		msg := NewMessage(RoleUser, "hello")
		data, err := json.Marshal(msg)
		require.NoError(t, err)

		var decoded Message
		require.NoError(t, json.Unmarshal(data, &decoded))
		assert.Equal(t, msg, decoded)
	})

	t.Run("uses wire field names", func(t *testing.T) {
		data, err := json.Marshal(NewMessage(RoleAssistant, "hi"))
		require.NoError(t, err)
		assert.JSONEq(t, `{"role":"assistant","content":"hi"}`, string(data))
	})
}
