// Package anthropic provides an Anthropic Claude API client implementing [brandkit.ChatProvider].
//
// This package wraps the official Anthropic Go SDK to provide Claude model access
// through the brandkit unified interface.
//
// # Supported Features
//
//   - Chat completions (streaming and non-streaming)
//
// Note: Anthropic does not currently support image generation; brand image
// requests route to Google or OpenAI models instead.
//
// # Available Models
//
// Claude 4.5 family:
//
//   - [ClaudeSonnet45]: Balanced performance and cost (recommended default)
//   - [ClaudeHaiku45]: Fast and cost-effective for simpler tasks
//
// # Basic Usage
//
//	client := anthropic.New(os.Getenv("ANTHROPIC_API_KEY"))
//
//	messages := []brandkit.Message{
//	    {Role: brandkit.RoleUser, Content: "Suggest a prompt for a bakery ad image."},
//	}
//
//	resp, err := client.Chat(ctx, messages)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(resp.Content)
//
// # Model Selection
//
// Set a default model at client creation:
//
//	client := anthropic.New(apiKey, anthropic.WithModel(anthropic.ClaudeHaiku45))
//
// Or per-request:
//
//	resp, err := client.Chat(ctx, messages, brandkit.WithModel(model.ClaudeHaiku45))
//
// # Streaming
//
//	stream, err := client.ChatStream(ctx, messages)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	for event := range stream {
//	    if event.Err != nil {
//	        log.Fatal(event.Err)
//	    }
//	    if event.Done {
//	        fmt.Printf("\nTokens: %d in, %d out\n",
//	            event.Response.Usage.InputTokens,
//	            event.Response.Usage.OutputTokens)
//	    } else {
//	        fmt.Print(event.Delta)
//	    }
//	}
package anthropic
