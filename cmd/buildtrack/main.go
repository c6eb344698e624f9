// Package main provides the entry point for the buildtrack CLI.
package main

import (
	"context"
	"os"

	"github.com/mrz1836/buildtrack/internal/cli"
	"github.com/mrz1836/buildtrack/internal/signal"
)

// Build information set via ldflags at build time.
//
//nolint:gochecknoglobals // ldflags injection requires package-level vars
var (
	version = ""
	commit  = ""
	date    = ""
)

func main() {
	ctx, stop := signal.WithShutdown(context.Background())
	defer stop()

	info := cli.BuildInfo{Version: version, Commit: commit, Date: date}
	if err := cli.Execute(ctx, info); err != nil {
		stop()
		os.Exit(1)
	}
}
