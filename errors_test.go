package brandkit

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestErrNoImage(t *testing.T) {
	t.Run("is a sentinel error", func(t *testing.T) {
		assert.Error(t, ErrNoImage)
		assert.Equal(t, "no image produced", ErrNoImage.Error())
	})

	t.Run("detected through wrapping", func(t *testing.T) {
		wrapped := fmt.Errorf("gemini-2.0-flash: %w", ErrNoImage)
		assert.True(t, IsNoImage(wrapped))
		assert.True(t, errors.Is(wrapped, ErrNoImage))
	})

	t.Run("is not transient", func(t *testing.T) {
		assert.False(t, IsTransient(ErrNoImage))
	})
}

func TestError(t *testing.T) {
	t.Run("Error formats message with cause", func(t *testing.T) {
		cause := errors.New("connection reset")
		err := NewTransientError("request failed", 503, cause)
		assert.Equal(t, "request failed: connection reset", err.Error())
	})

	t.Run("Error formats message without cause", func(t *testing.T) {
		err := NewPermanentError("invalid API key", 401, nil)
		assert.Equal(t, "invalid API key", err.Error())
	})

	t.Run("Unwrap returns underlying error", func(t *testing.T) {
		cause := errors.New("boom")
		err := NewTransientError("wrapped", 500, cause)
		assert.Equal(t, cause, err.Unwrap())
		assert.True(t, errors.Is(err, cause))
	})

	t.Run("categories", func(t *testing.T) {
		tests := []struct {
			name      string
			err       *Error
			category  ErrorCategory
			retryable bool
		}{
			{
				name:      "transient",
				err:       NewTransientError("rate limited", 429, nil),
				category:  ErrorTransient,
				retryable: true,
			},
			{
				name:      "permanent",
				err:       NewPermanentError("forbidden", 403, nil),
				category:  ErrorPermanent,
				retryable: false,
			},
			{
				name:      "user input",
				err:       NewUserInputError("bad request", 400, nil),
				category:  ErrorUserInput,
				retryable: false,
			},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				assert.Equal(t, tt.category, tt.err.Category())
				assert.Equal(t, tt.retryable, tt.err.Retryable())
			})
		}
	})

	t.Run("RetryAfter carries server hint", func(t *testing.T) {
		err := NewTransientErrorWithRetry("rate limited", 429, 30*time.Second, nil)
		assert.Equal(t, 30*time.Second, err.RetryAfter())
		assert.Equal(t, 429, err.StatusCode())
	})
}

func TestCategoryHelpers(t *testing.T) {
	t.Run("detect category through wrapping", func(t *testing.T) {
		inner := NewTransientError("overloaded", 529, nil)
		wrapped := fmt.Errorf("provider call: %w", inner)

		assert.True(t, IsTransient(wrapped))
		assert.False(t, IsPermanent(wrapped))
		assert.False(t, IsUserInput(wrapped))
		assert.Equal(t, 529, StatusCodeOf(wrapped))
	})

	t.Run("uncategorized errors report nothing", func(t *testing.T) {
		err := errors.New("plain")
		assert.False(t, IsTransient(err))
		assert.False(t, IsPermanent(err))
		assert.False(t, IsUserInput(err))
		assert.Equal(t, 0, StatusCodeOf(err))
		assert.Equal(t, time.Duration(0), RetryAfterOf(err))
	})

	t.Run("nil error reports nothing", func(t *testing.T) {
		assert.False(t, IsTransient(nil))
		assert.False(t, IsPermanent(nil))
	})

	t.Run("RetryAfterOf finds wrapped delay", func(t *testing.T) {
		inner := NewTransientErrorWithRetry("rate limited", 429, 5*time.Second, nil)
		wrapped := fmt.Errorf("image call: %w", inner)
		assert.Equal(t, 5*time.Second, RetryAfterOf(wrapped))
	})
}
