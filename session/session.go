// Package session stores per-session conversation history for the chat
// surfaces. Each session gets its own history keyed by session ID, so
// concurrent requests never mutate shared state.
package session

import (
	"context"

	ai "github.com/brandkit/brandkit"
)

// Store persists conversation history keyed by session ID.
// Implementations must be safe for concurrent use.
type Store interface {
	// History returns the session's messages in order, oldest first.
	// Unknown sessions yield an empty history, not an error.
	History(ctx context.Context, id string) ([]ai.Message, error)

	// Append adds messages to the end of the session's history.
	Append(ctx context.Context, id string, msgs ...ai.Message) error

	// Reset removes the session's history.
	Reset(ctx context.Context, id string) error
}
