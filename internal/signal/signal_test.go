package signal_test

import (
	"context"
	"errors"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrz1836/buildtrack/internal/signal"
)

// TestWithShutdown_ActiveContext verifies the returned context starts active.
func TestWithShutdown_ActiveContext(t *testing.T) {
	ctx, stop := signal.WithShutdown(context.Background())
	defer stop()

	select {
	case <-ctx.Done():
		t.Fatal("context should not be done before any signal")
	default:
	}
}

// TestWithShutdown_StopCancels verifies stop cancels the context and is safe
// to call repeatedly.
func TestWithShutdown_StopCancels(t *testing.T) {
	ctx, stop := signal.WithShutdown(context.Background())

	stop()
	stop()

	select {
	case <-ctx.Done():
	case <-time.After(time.Second):
		t.Fatal("context should be done after stop")
	}
	assert.True(t, errors.Is(ctx.Err(), context.Canceled))
}

// TestWithShutdown_SignalCancels verifies a SIGINT delivered to the process
// cancels the context.
func TestWithShutdown_SignalCancels(t *testing.T) {
	ctx, stop := signal.WithShutdown(context.Background())
	defer stop()

	require.NoError(t, syscall.Kill(syscall.Getpid(), syscall.SIGINT))

	select {
	case <-ctx.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("context should be done after SIGINT")
	}
}

// TestWithShutdown_ParentCancellation verifies parent cancellation propagates.
func TestWithShutdown_ParentCancellation(t *testing.T) {
	parent, cancel := context.WithCancel(context.Background())
	ctx, stop := signal.WithShutdown(parent)
	defer stop()

	cancel()

	select {
	case <-ctx.Done():
	case <-time.After(time.Second):
		t.Fatal("context should follow its parent")
	}
}
