package retry

import (
	"context"
	"errors"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/brandkit/brandkit"
)

// mockTransientError simulates a transient network error.
type mockTransientError struct {
	msg string
}

func (e *mockTransientError) Error() string   { return e.msg }
func (e *mockTransientError) Timeout() bool   { return true }
func (e *mockTransientError) Temporary() bool { return true }

// Ensure mockTransientError implements net.Error
var _ net.Error = (*mockTransientError)(nil)

// fastConfig keeps retry tests quick.
func fastConfig() Config {
	return Config{
		MaxAttempts:  3,
		InitialDelay: time.Millisecond,
		MaxDelay:     10 * time.Millisecond,
		Multiplier:   2.0,
		Jitter:       0,
	}
}

func TestDoSuccess(t *testing.T) {
	callCount := 0

	result, err := Do(context.Background(), fastConfig(), func() (string, error) {
		callCount++
		return "success", nil
	})

	assert.NoError(t, err)
	assert.Equal(t, "success", result)
	assert.Equal(t, 1, callCount)
}

func TestDoRetryOnTransientError(t *testing.T) {
	callCount := 0
	transientErr := &mockTransientError{msg: "timeout"}

	result, err := Do(context.Background(), fastConfig(), func() (string, error) {
		callCount++
		if callCount < 3 {
			return "", transientErr
		}
		return "success", nil
	})

	assert.NoError(t, err)
	assert.Equal(t, "success", result)
	assert.Equal(t, 3, callCount)
}

func TestDoNoRetryOnPermanentError(t *testing.T) {
	callCount := 0
	authErr := brandkit.NewPermanentError("invalid API key", 401, nil)

	_, err := Do(context.Background(), fastConfig(), func() (string, error) {
		callCount++
		return "", authErr
	})

	assert.Error(t, err)
	assert.Equal(t, authErr, err)
	assert.Equal(t, 1, callCount) // No retries
}

func TestDoNoRetryOnUncategorizedError(t *testing.T) {
	callCount := 0
	plainErr := errors.New("something odd happened")

	_, err := Do(context.Background(), fastConfig(), func() (string, error) {
		callCount++
		return "", plainErr
	})

	assert.Error(t, err)
	assert.Equal(t, plainErr, err)
	assert.Equal(t, 1, callCount)
}

func TestDoNoRetryOnNoImage(t *testing.T) {
	callCount := 0

	_, err := Do(context.Background(), fastConfig(), func() (string, error) {
		callCount++
		return "", brandkit.ErrNoImage
	})

	assert.ErrorIs(t, err, brandkit.ErrNoImage)
	assert.Equal(t, 1, callCount)
}

func TestDoExhaustsRetries(t *testing.T) {
	callCount := 0
	transientErr := &mockTransientError{msg: "timeout"}

	_, err := Do(context.Background(), fastConfig(), func() (string, error) {
		callCount++
		return "", transientErr
	})

	assert.Error(t, err)
	assert.Equal(t, transientErr, err)
	assert.Equal(t, 3, callCount) // All attempts exhausted
}

func TestDoRespectsContextCancellation(t *testing.T) {
	cfg := Config{
		MaxAttempts:  10,
		InitialDelay: time.Second, // Long delay
		MaxDelay:     time.Second,
		Multiplier:   1.0,
		Jitter:       0,
	}

	ctx, cancel := context.WithCancel(context.Background())
	callCount := 0

	go func() {
		time.Sleep(50 * time.Millisecond)
		cancel()
	}()

	_, err := Do(ctx, cfg, func() (string, error) {
		callCount++
		return "", &mockTransientError{msg: "timeout"}
	})

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, callCount) // Only first attempt before cancellation
}

func TestDoWithDisabledRetry(t *testing.T) {
	callCount := 0

	_, err := Do(context.Background(), Disabled(), func() (string, error) {
		callCount++
		return "", &mockTransientError{msg: "timeout"}
	})

	assert.Error(t, err)
	assert.Equal(t, 1, callCount)
}

func TestDoStreamSuccess(t *testing.T) {
	callCount := 0

	ch, err := DoStream(context.Background(), fastConfig(), func() (<-chan string, error) {
		callCount++
		c := make(chan string, 1)
		c <- "data"
		close(c)
		return c, nil
	})

	assert.NoError(t, err)
	assert.NotNil(t, ch)
	assert.Equal(t, 1, callCount)

	data := <-ch
	assert.Equal(t, "data", data)
}

func TestDoStreamRetryOnTransientError(t *testing.T) {
	callCount := 0
	transientErr := &mockTransientError{msg: "timeout"}

	ch, err := DoStream(context.Background(), fastConfig(), func() (<-chan string, error) {
		callCount++
		if callCount < 3 {
			return nil, transientErr
		}
		c := make(chan string, 1)
		c <- "success"
		close(c)
		return c, nil
	})

	assert.NoError(t, err)
	assert.NotNil(t, ch)
	assert.Equal(t, 3, callCount)
}

func TestDoStreamNoRetryOnPermanentError(t *testing.T) {
	callCount := 0
	authErr := brandkit.NewPermanentError("forbidden", 403, nil)

	_, err := DoStream(context.Background(), fastConfig(), func() (<-chan string, error) {
		callCount++
		return nil, authErr
	})

	assert.Error(t, err)
	assert.Equal(t, authErr, err)
	assert.Equal(t, 1, callCount)
}

func TestDoHonorsRetryAfterFromError(t *testing.T) {
	cfg := Config{
		MaxAttempts:  3,
		InitialDelay: 10 * time.Millisecond,
		MaxDelay:     100 * time.Millisecond,
		Multiplier:   2.0,
		Jitter:       0,
	}

	callCount := 0
	callTimes := make([]time.Time, 0, 3)

	// RetryAfter of 50ms is larger than the 10ms configured delay.
	retryErr := brandkit.NewTransientErrorWithRetry("rate limited", 429, 50*time.Millisecond, nil)

	_, err := Do(context.Background(), cfg, func() (string, error) {
		callTimes = append(callTimes, time.Now())
		callCount++
		if callCount < 3 {
			return "", retryErr
		}
		return "success", nil
	})

	assert.NoError(t, err)
	assert.Equal(t, 3, callCount)

	if len(callTimes) >= 2 {
		delay := callTimes[1].Sub(callTimes[0])
		assert.GreaterOrEqual(t, delay, 45*time.Millisecond, "should honor RetryAfter of 50ms")
	}
}

func TestDoWithEventsEmitsSequence(t *testing.T) {
	events := make(chan Event, 32)
	callCount := 0
	transientErr := brandkit.NewTransientError("overloaded", 503, nil)

	result, err := DoWithEvents(context.Background(), fastConfig(), events, func() (int, error) {
		callCount++
		if callCount < 2 {
			return 0, transientErr
		}
		return 42, nil
	})
	close(events)

	assert.NoError(t, err)
	assert.Equal(t, 42, result)

	var types []EventType
	for ev := range events {
		types = append(types, ev.Type)
		assert.False(t, ev.Timestamp.IsZero())
	}
	assert.Equal(t, []EventType{
		EventAttemptStart,
		EventAttemptFailed,
		EventRetrying,
		EventAttemptStart,
		EventSuccess,
	}, types)
}

func TestDoWithEventsExhaustion(t *testing.T) {
	events := make(chan Event, 32)
	transientErr := brandkit.NewTransientError("overloaded", 503, nil)

	_, err := DoWithEvents(context.Background(), fastConfig(), events, func() (int, error) {
		return 0, transientErr
	})
	close(events)

	assert.Error(t, err)

	var last Event
	for ev := range events {
		last = ev
	}
	assert.Equal(t, EventExhausted, last.Type)
	assert.Equal(t, 3, last.MaxAttempts)
	assert.Equal(t, transientErr, last.Error)
}

func TestDoWithEventsNilChannel(t *testing.T) {
	// nil events channel must not panic or block
	result, err := DoWithEvents(context.Background(), fastConfig(), nil, func() (string, error) {
		return "ok", nil
	})

	assert.NoError(t, err)
	assert.Equal(t, "ok", result)
}

func TestEffectiveDelay(t *testing.T) {
	tests := []struct {
		name            string
		configuredDelay time.Duration
		retryAfter      time.Duration
		expectedDelay   time.Duration
	}{
		{
			name:            "RetryAfter larger than configured",
			configuredDelay: 100 * time.Millisecond,
			retryAfter:      500 * time.Millisecond,
			expectedDelay:   500 * time.Millisecond,
		},
		{
			name:            "configured larger than RetryAfter",
			configuredDelay: 500 * time.Millisecond,
			retryAfter:      100 * time.Millisecond,
			expectedDelay:   500 * time.Millisecond,
		},
		{
			name:            "no RetryAfter (zero)",
			configuredDelay: 100 * time.Millisecond,
			retryAfter:      0,
			expectedDelay:   100 * time.Millisecond,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var err error
			if tt.retryAfter > 0 {
				err = brandkit.NewTransientErrorWithRetry("test", 429, tt.retryAfter, nil)
			} else {
				err = brandkit.NewTransientError("test", 429, nil)
			}

			delay := effectiveDelay(tt.configuredDelay, err)
			assert.Equal(t, tt.expectedDelay, delay)
		})
	}
}

func TestRetryAfterFromError(t *testing.T) {
	t.Run("with CategorizedError and RetryAfter", func(t *testing.T) {
		err := brandkit.NewTransientErrorWithRetry("rate limited", 429, 30*time.Second, nil)
		assert.Equal(t, 30*time.Second, retryAfterFromError(err))
	})

	t.Run("with CategorizedError but no RetryAfter", func(t *testing.T) {
		err := brandkit.NewTransientError("server error", 500, nil)
		assert.Equal(t, time.Duration(0), retryAfterFromError(err))
	})

	t.Run("with non-CategorizedError", func(t *testing.T) {
		assert.Equal(t, time.Duration(0), retryAfterFromError(errors.New("generic error")))
	})

	t.Run("with nil error", func(t *testing.T) {
		assert.Equal(t, time.Duration(0), retryAfterFromError(nil))
	})
}
