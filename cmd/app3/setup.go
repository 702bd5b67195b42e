package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aelexs/app3/internal/domain"
	"github.com/aelexs/app3/internal/message"
	"github.com/aelexs/app3/internal/server"
)

// setup is the app3 composition root: it builds the message handler and
// mounts it on the server mux.
func setup(_ context.Context, deps server.SetupDeps) error {
	h, err := message.NewHandler(domain.ServerMessage)
	if err != nil {
		return fmt.Errorf("app3 setup: %w", err)
	}
	h.Register(deps.Mux)

	deps.Logger.Debug("routes registered", slog.String("route", "GET /"))
	return nil
}
