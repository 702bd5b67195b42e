// Package server provides the service lifecycle runner.
// cmd/app3 delegates to server.Run for signal handling, config loading,
// observability init, listener binding, health checks, and graceful shutdown.
package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/aelexs/app3/internal/config"
	"github.com/aelexs/app3/internal/domain"
	"github.com/aelexs/app3/internal/errmap"
	"github.com/aelexs/app3/internal/observability"
)

// SetupDeps is handed to Params.Setup so the service can register its routes.
type SetupDeps struct {
	Config *config.Config
	Logger *slog.Logger
	Mux    *http.ServeMux
}

// Params configures a service's lifecycle runner.
type Params struct {
	// Name identifies the service in logs, traces, and metrics.
	Name string

	// PortFromConfig extracts the HTTP port for this service from config.
	PortFromConfig func(cfg *config.Config) int

	// Setup registers service routes on the mux. Optional.
	Setup func(ctx context.Context, deps SetupDeps) error

	// LogOutput receives structured logs. Nil means stdout.
	LogOutput io.Writer
}

// Listen binds a TCP listener on all interfaces at port. Bind failures
// (address in use, permission denied) wrap domain.ErrListen.
func Listen(ctx context.Context, port int) (net.Listener, error) {
	ln, err := (&net.ListenConfig{}).Listen(ctx, "tcp", fmt.Sprintf(":%d", port))
	if err != nil {
		return nil, fmt.Errorf("%w on port %d: %w", domain.ErrListen, port, err)
	}
	return ln, nil
}

// Run executes the full service lifecycle: signal handling, config loading,
// observability initialization, HTTP server with health checks, and graceful
// shutdown. If ln is non-nil, it is used instead of creating a new listener
// from config (enables port-0 testing).
//
// Run returns nil after a clean shutdown. Startup failures are returned
// immediately and are never retried.
func Run(ctx context.Context, p Params, ln net.Listener) error {
	// Signal-based cancellation: ctx.Done() closes on SIGTERM/SIGINT.
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger := observability.InitLogger(observability.LogConfig{
		Level:       cfg.Log.Level,
		Format:      cfg.Log.Format,
		ServiceName: p.Name,
		Environment: cfg.Environment,
		Output:      p.LogOutput,
	})

	// --- Startup order: tracer -> metrics -> routes -> listener -> HTTP server ---

	tracerProvider, err := observability.InitTracer(ctx, observability.TracerConfig{
		ServiceName:    p.Name,
		ServiceVersion: domain.ServiceVersion,
		Environment:    cfg.Environment,
		OTLPEndpoint:   cfg.OTEL.Endpoint,
	})
	if err != nil {
		return fmt.Errorf("initialize tracer: %w", err)
	}

	metricsProvider, err := observability.InitMetrics(ctx, observability.MetricsConfig{
		ServiceName:    p.Name,
		ServiceVersion: domain.ServiceVersion,
		Environment:    cfg.Environment,
		OTLPEndpoint:   cfg.OTEL.Endpoint,
	})
	if err != nil {
		flushTelemetry(logger, nil, tracerProvider)
		return fmt.Errorf("initialize metrics: %w", err)
	}

	// Health check shutdown coordination via atomic flag.
	var shuttingDown atomic.Bool

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		if shuttingDown.Load() {
			errmap.WriteHTTPError(w, fmt.Errorf("%s shutting down: %w", p.Name, domain.ErrUnavailable))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, `{"status":"healthy","service":%q}`, p.Name)
	})
	// Catch-all: anything no other pattern claims is a JSON 404.
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		errmap.WriteHTTPError(w, fmt.Errorf("%s %s: %w", r.Method, r.URL.Path, domain.ErrNotFound))
	})

	if p.Setup != nil {
		if err := p.Setup(ctx, SetupDeps{Config: cfg, Logger: logger, Mux: mux}); err != nil {
			flushTelemetry(logger, metricsProvider, tracerProvider)
			return fmt.Errorf("setup %s: %w", p.Name, err)
		}
	}

	// Bind listener (use injected listener or create from config).
	if ln == nil {
		ln, err = Listen(ctx, p.PortFromConfig(cfg))
		if err != nil {
			flushTelemetry(logger, metricsProvider, tracerProvider)
			return err
		}
	}

	server := &http.Server{
		Handler:      observability.Instrument(mux, p.Name),
		ReadTimeout:  domain.HTTPReadTimeout,
		WriteTimeout: domain.HTTPWriteTimeout,
		IdleTimeout:  domain.HTTPIdleTimeout,
	}

	// --- Structured concurrency via errgroup ---
	g, ctx := errgroup.WithContext(ctx)

	// Goroutine 1: Serve HTTP
	g.Go(func() error {
		logger.Info("server is running",
			slog.Int("port", listenerPort(ln)),
			slog.String("addr", ln.Addr().String()),
			slog.String("environment", cfg.Environment),
		)
		if serveErr := server.Serve(ln); serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed) {
			return fmt.Errorf("serve: %w", serveErr)
		}
		return nil
	})

	// Goroutine 2: Shutdown trigger. Waits for context cancellation, then drains.
	// Shutdown order is explicit reverse of startup: HTTP server -> metrics -> tracer.
	g.Go(func() error {
		<-ctx.Done()
		logger.Info("received shutdown signal, starting graceful shutdown")

		// 1. Mark shutting down: health checks return 503
		shuttingDown.Store(true)

		// 2. Drain delay: let load balancer propagate endpoint removal
		time.Sleep(cfg.Shutdown.DrainDelay)

		// 3. Drain HTTP server
		httpCtx, httpCancel := context.WithTimeout(context.Background(), domain.ShutdownHTTPTimeout)
		defer httpCancel()
		if shutdownErr := server.Shutdown(httpCtx); shutdownErr != nil {
			logger.Error("HTTP server shutdown error", slog.String("error", shutdownErr.Error()))
		}

		// 4. Flush OTEL (reverse: metrics first, then tracer)
		flushTelemetry(logger, metricsProvider, tracerProvider)

		logger.Info("shutdown complete")
		return nil
	})

	return g.Wait()
}

// flushTelemetry shuts the metrics provider down before the tracer provider.
// Either may be nil.
func flushTelemetry(logger *slog.Logger, mp *observability.MetricsProvider, tp *observability.TracerProvider) {
	ctx, cancel := context.WithTimeout(context.Background(), domain.ShutdownOTELTimeout)
	defer cancel()

	if mp != nil {
		if err := mp.Shutdown(ctx); err != nil {
			logger.Error("failed to shutdown metrics", slog.String("error", err.Error()))
		}
	}
	if tp != nil {
		if err := tp.Shutdown(ctx); err != nil {
			logger.Error("failed to shutdown tracer", slog.String("error", err.Error()))
		}
	}
}

// listenerPort reports the bound TCP port, or 0 for non-TCP listeners.
func listenerPort(ln net.Listener) int {
	if addr, ok := ln.Addr().(*net.TCPAddr); ok {
		return addr.Port
	}
	return 0
}
