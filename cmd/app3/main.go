// Package main is the entrypoint for the app3 service.
// app3 answers GET / with a fixed JSON message on port 3000.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/aelexs/app3/internal/config"
	"github.com/aelexs/app3/internal/domain"
	"github.com/aelexs/app3/internal/server"
)

// Exit codes. Startup failures (config, bind) never got as far as serving.
const (
	exitStartup = 1
	exitRuntime = 2
)

func main() {
	ctx := context.Background()
	if err := run(ctx); err != nil {
		fmt.Fprintln(os.Stderr, fatalMessage(err))
		os.Exit(exitCode(err))
	}
}

// exitCode picks the process exit status for a Run error.
func exitCode(err error) int {
	if domain.IsStartupError(err) {
		return exitStartup
	}
	return exitRuntime
}

// fatalMessage formats a Run error for stderr.
func fatalMessage(err error) string {
	if domain.IsStartupError(err) {
		return fmt.Sprintf("fatal: startup failed: %v", err)
	}
	return fmt.Sprintf("fatal: %v", err)
}

func run(ctx context.Context) error {
	return server.Run(ctx, server.Params{
		Name:           domain.ServiceName,
		PortFromConfig: func(cfg *config.Config) int { return cfg.HTTP.Port },
		Setup:          setup,
	}, nil)
}
