package platform

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jengzang/stq-dashboard-go/internal/gateway"
)

func TestWithRetry_SuccessIsNotRetried(t *testing.T) {
	calls := 0
	err := withRetry(context.Background(), "test", func() error {
		calls++
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
}

func TestWithRetry_OnlyTransportErrorsRetry(t *testing.T) {
	calls := 0
	authErr := &gateway.Error{Kind: gateway.ErrAuth, Status: 401}
	err := withRetry(context.Background(), "test", func() error {
		calls++
		return authErr
	})
	assert.Equal(t, authErr, err)
	assert.Equal(t, 1, calls, "auth errors surface immediately")

	calls = 0
	clientErr := &gateway.Error{Kind: gateway.ErrClient, Status: 404}
	err = withRetry(context.Background(), "test", func() error {
		calls++
		return clientErr
	})
	assert.Equal(t, clientErr, err)
	assert.Equal(t, 1, calls)
}

func TestWithRetry_TransportErrorRetriesUntilSuccess(t *testing.T) {
	if testing.Short() {
		t.Skip("retry backoff sleeps between attempts")
	}

	calls := 0
	err := withRetry(context.Background(), "test", func() error {
		calls++
		if calls < 2 {
			return &gateway.Error{Kind: gateway.ErrTransport, Message: "connection refused"}
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}

func TestWithRetry_CancelledContextStopsBackoff(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	calls := 0
	transportErr := &gateway.Error{Kind: gateway.ErrTransport, Message: "connection refused"}
	err := withRetry(ctx, "test", func() error {
		calls++
		return transportErr
	})
	assert.Equal(t, transportErr, err)
	assert.Equal(t, 1, calls, "cancelled context skips the remaining attempts")
}
