package idempotency

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestManagerExecutesOnce(t *testing.T) {
	ctx := context.Background()
	manager := NewManager(NewMemoryStore(testLogger()), testLogger())

	calls := 0
	op := func(ctx context.Context) (interface{}, error) {
		calls++
		return "done", nil
	}

	first, err := manager.Execute(ctx, "msg:1:1", time.Minute, op)
	require.NoError(t, err)
	assert.False(t, first.FromCache)
	assert.Equal(t, "done", first.Response)

	second, err := manager.Execute(ctx, "msg:1:1", time.Minute, op)
	require.NoError(t, err)
	assert.True(t, second.FromCache)
	assert.Equal(t, "done", second.Response)

	assert.Equal(t, 1, calls)
}

func TestManagerDistinctKeys(t *testing.T) {
	ctx := context.Background()
	manager := NewManager(NewMemoryStore(testLogger()), testLogger())

	calls := 0
	op := func(ctx context.Context) (interface{}, error) {
		calls++
		return nil, nil
	}

	_, err := manager.Execute(ctx, "msg:1:1", time.Minute, op)
	require.NoError(t, err)
	_, err = manager.Execute(ctx, "msg:1:2", time.Minute, op)
	require.NoError(t, err)

	assert.Equal(t, 2, calls)
}

func TestManagerOperationError(t *testing.T) {
	ctx := context.Background()
	manager := NewManager(NewMemoryStore(testLogger()), testLogger())

	opErr := errors.New("handler failed")
	_, err := manager.Execute(ctx, "msg:1:1", time.Minute, func(ctx context.Context) (interface{}, error) {
		return nil, opErr
	})
	require.ErrorIs(t, err, opErr)

	// A failed operation releases the lock and is retried, not cached.
	calls := 0
	result, err := manager.Execute(ctx, "msg:1:1", time.Minute, func(ctx context.Context) (interface{}, error) {
		calls++
		return "recovered", nil
	})
	require.NoError(t, err)
	assert.False(t, result.FromCache)
	assert.Equal(t, 1, calls)
}

func TestManagerNilOperation(t *testing.T) {
	manager := NewManager(NewMemoryStore(testLogger()), testLogger())

	_, err := manager.Execute(context.Background(), "msg:1:1", time.Minute, nil)
	require.Error(t, err)
}
