// Package signal provides graceful shutdown handling for the buildtrack CLI.
//
// A replay can block reading an event stream from stdin; the shutdown context
// lets an interrupt end the read cleanly so the run can still be concluded.
//
// Import rules:
//   - CAN import: std lib only
//   - MUST NOT import: internal packages (to avoid circular dependencies)
package signal

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"
)

// WithShutdown returns a context canceled on SIGINT or SIGTERM.
// A second signal while shutdown is in progress exits the process
// immediately; a user hammering Ctrl+C should not have to wait.
//
// The returned stop function releases the signal registration and must be
// called once the context is no longer needed. It is safe to call more than
// once.
func WithShutdown(parent context.Context) (context.Context, func()) {
	ctx, cancel := context.WithCancel(parent)

	// Buffer of 1 so signal.Notify never drops a signal while the
	// goroutine is busy.
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	done := make(chan struct{})
	go func() {
		select {
		case <-sigCh:
			cancel()
		case <-done:
			return
		}
		// Shutdown already in progress; a second signal forces exit.
		select {
		case <-sigCh:
			os.Exit(1)
		case <-done:
		}
	}()

	var once sync.Once
	stop := func() {
		once.Do(func() {
			signal.Stop(sigCh)
			close(done)
			cancel()
		})
	}
	return ctx, stop
}
