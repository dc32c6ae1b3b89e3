package errors

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsRetryable(t *testing.T) {
	assert.False(t, IsRetryable(nil))
	assert.False(t, IsRetryable(errors.New("plain")))
	assert.False(t, IsRetryable(NewValidationError("duration must be positive")))
	assert.False(t, IsRetryable(NewNotFoundError("habit", "h-1")))
	assert.True(t, IsRetryable(NewTelegramError(errors.New("getMe: 502"))))
	assert.True(t, IsRetryable(NewInternalError(errors.New("boom"))))
}

func TestIsRetryableUnwrapsCause(t *testing.T) {
	wrapped := fmt.Errorf("send message: %w", NewTelegramError(errors.New("timeout")))
	assert.True(t, IsRetryable(wrapped))
}

func TestWithRetrySucceedsFirstTry(t *testing.T) {
	calls := 0
	err := WithRetry(context.Background(), func() error {
		calls++
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 1, calls)
}

func TestWithRetryRetriesRetryableErrors(t *testing.T) {
	calls := 0
	err := WithRetry(context.Background(), func() error {
		calls++
		if calls < 3 {
			return NewTelegramError(errors.New("flaky"))
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestWithRetryStopsOnNonRetryable(t *testing.T) {
	calls := 0
	err := WithRetry(context.Background(), func() error {
		calls++
		return NewValidationError("bad input")
	})

	require.Error(t, err)
	assert.Equal(t, 1, calls)

	var appErr *AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "E100", appErr.Code)
}

func TestWithRetryGivesUpAfterMaxRetries(t *testing.T) {
	calls := 0
	err := WithRetry(context.Background(), func() error {
		calls++
		return NewTelegramError(errors.New("still down"))
	})

	require.Error(t, err)
	assert.Equal(t, MaxRetries+1, calls)
}

func TestWithRetryHonorsContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	calls := 0
	err := WithRetry(ctx, func() error {
		calls++
		return NewTelegramError(errors.New("never reached"))
	})

	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, calls)
}

func TestWithRetryNilFn(t *testing.T) {
	assert.NoError(t, WithRetry(context.Background(), nil))
}
