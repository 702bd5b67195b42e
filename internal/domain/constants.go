package domain

import "time"

// Service identity.
const (
	ServiceName    = "app3"
	ServiceVersion = "0.1.0"
)

// ServerMessage is the text returned by the root route.
const ServerMessage = "This is server 3"

// Listener defaults. These are compiled defaults that can be overridden via configuration.
const (
	DefaultHTTPPort = 3000
	MinPort         = 0 // 0 asks the OS for an ephemeral port
	MaxPort         = 65535

	HTTPReadTimeout  = 10 * time.Second
	HTTPWriteTimeout = 10 * time.Second
	HTTPIdleTimeout  = 60 * time.Second
)

// Graceful shutdown budget. Drain + HTTP + OTEL must fit inside GracefulShutdownTimeout.
const (
	GracefulShutdownTimeout = 30 * time.Second
	ShutdownDrainDelay      = 2 * time.Second  // Load balancer propagation window
	ShutdownHTTPTimeout     = 20 * time.Second // In-flight request drain
	ShutdownOTELTimeout     = 5 * time.Second  // Final metric/span flush
)

// RequestIDHeader carries the per-request correlation ID.
const RequestIDHeader = "X-Request-Id"
