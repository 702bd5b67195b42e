package observability

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/felixge/httpsnoop"
	"github.com/google/uuid"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/aelexs/app3/internal/domain"
)

type requestIDKey struct{}

// maxRequestIDLength bounds client-supplied request IDs echoed back in headers.
const maxRequestIDLength = 128

// Instrument wraps h with the per-request middleware every app3 listener uses:
// an OTel server span plus request metrics, a request ID, and a debug access
// log line. Span names are "<operation> <METHOD>", never the raw path, so
// unmatched URLs cannot grow span-name cardinality.
func Instrument(h http.Handler, operation string) http.Handler {
	return otelhttp.NewHandler(
		withRequestID(withAccessLog(h)),
		operation,
		otelhttp.WithSpanNameFormatter(spanName),
	)
}

// spanName names server spans by operation and method only.
func spanName(operation string, r *http.Request) string {
	return operation + " " + r.Method
}

// withRequestID propagates an inbound X-Request-Id or mints a new one, and
// echoes it on the response.
func withRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(domain.RequestIDHeader)
		if id == "" || len(id) > maxRequestIDLength {
			id = uuid.NewString()
		}
		w.Header().Set(domain.RequestIDHeader, id)
		next.ServeHTTP(w, r.WithContext(ContextWithRequestID(r.Context(), id)))
	})
}

// withAccessLog records method, path, status, and latency at debug level.
func withAccessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		m := httpsnoop.CaptureMetrics(next, w, r)

		logger := WithRequestID(r.Context(), LoggerFromContext(r.Context()))
		logger.LogAttrs(r.Context(), slog.LevelDebug, "http request",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Int("status", m.Code),
			slog.Int64("bytes", m.Written),
			slog.Duration("duration", m.Duration),
		)
	})
}

// ContextWithRequestID stores a request ID in ctx.
func ContextWithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// RequestIDFromContext returns the request ID stored in ctx, or "".
func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}
