package openai

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ai "github.com/brandkit/brandkit"
)

// newStubClient points the SDK at a local server serving canned responses.
func newStubClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	oc := openai.NewClient(option.WithAPIKey("test"), option.WithBaseURL(server.URL))
	return &Client{client: &oc, model: DefaultChatModel}
}

func TestChat_NoChoices(t *testing.T) {
	client := newStubClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"chatcmpl-1","object":"chat.completion","created":1,"model":"gpt-4o","choices":[],"usage":{"prompt_tokens":7,"completion_tokens":0,"total_tokens":7}}`))
	})

	resp, err := client.Chat(context.Background(), []ai.Message{ai.NewMessage(ai.RoleUser, "hi")})
	require.NoError(t, err)
	assert.Empty(t, resp.Content)
	assert.Equal(t, 7, resp.Usage.InputTokens)
}

func TestChatStream_UsageOnlyStream(t *testing.T) {
	client := newStubClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		_, _ = w.Write([]byte(
			"data: {\"id\":\"chatcmpl-1\",\"object\":\"chat.completion.chunk\",\"created\":1,\"model\":\"gpt-4o\",\"choices\":[],\"usage\":{\"prompt_tokens\":7,\"completion_tokens\":0,\"total_tokens\":7}}\n\n" +
				"data: [DONE]\n\n"))
	})

	ch, err := client.ChatStream(context.Background(), []ai.Message{ai.NewMessage(ai.RoleUser, "hi")})
	require.NoError(t, err)

	var events []ai.StreamEvent
	for ev := range ch {
		require.NoError(t, ev.Err)
		events = append(events, ev)
	}

	// A stream with no choices still finishes with a usable final event.
	require.Len(t, events, 1)
	assert.True(t, events[0].Done)
	require.NotNil(t, events[0].Response)
	assert.Empty(t, events[0].Response.Content)
	assert.Equal(t, 7, events[0].Response.Usage.InputTokens)
}

func TestChatStream_DeltasAccumulate(t *testing.T) {
	client := newStubClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		_, _ = w.Write([]byte(
			"data: {\"id\":\"chatcmpl-1\",\"object\":\"chat.completion.chunk\",\"created\":1,\"model\":\"gpt-4o\",\"choices\":[{\"index\":0,\"delta\":{\"role\":\"assistant\",\"content\":\"Hel\"}}]}\n\n" +
				"data: {\"id\":\"chatcmpl-1\",\"object\":\"chat.completion.chunk\",\"created\":1,\"model\":\"gpt-4o\",\"choices\":[{\"index\":0,\"delta\":{\"content\":\"lo\"},\"finish_reason\":\"stop\"}]}\n\n" +
				"data: [DONE]\n\n"))
	})

	ch, err := client.ChatStream(context.Background(), []ai.Message{ai.NewMessage(ai.RoleUser, "hi")})
	require.NoError(t, err)

	var deltas []string
	var final *ai.Response
	for ev := range ch {
		require.NoError(t, ev.Err)
		if ev.Done {
			final = ev.Response
			continue
		}
		deltas = append(deltas, ev.Delta)
	}

	assert.Equal(t, []string{"Hel", "lo"}, deltas)
	require.NotNil(t, final)
	assert.Equal(t, "Hello", final.Content)
	assert.Equal(t, "stop", final.FinishReason)
}
