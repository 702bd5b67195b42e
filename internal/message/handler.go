// Package message serves the static greeting returned at the service root.
package message

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/aelexs/app3/internal/domain"
	"github.com/aelexs/app3/internal/errmap"
	"github.com/aelexs/app3/internal/observability"
)

const instrumentationName = "github.com/aelexs/app3/internal/message"

// allowedMethods is advertised on 405 responses from the root route.
const allowedMethods = "GET, HEAD"

// Response is the JSON payload of the root route.
type Response struct {
	Message string `json:"message"`
}

// Handler serves a fixed Response. The body is encoded once at construction,
// so every request gets byte-identical output and the handler holds no
// mutable state.
type Handler struct {
	body   []byte
	served metric.Int64Counter
}

// NewHandler creates a Handler that answers with the given message text.
func NewHandler(text string) (*Handler, error) {
	body, err := json.Marshal(Response{Message: text})
	if err != nil {
		return nil, fmt.Errorf("encode message response: %w", err)
	}

	served, err := observability.Meter(instrumentationName).Int64Counter(
		"app3.message.served",
		metric.WithDescription("Root message responses written"),
		metric.WithUnit("{response}"),
	)
	if err != nil {
		return nil, fmt.Errorf("create served counter: %w", err)
	}

	return &Handler{body: body, served: served}, nil
}

// Register mounts the root route on mux. "/{$}" matches only the exact root
// path; other paths fall through to the mux's catch-all.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.Handle("/{$}", h)
}

// ServeHTTP answers GET and HEAD with the message payload and anything else
// with 405.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet, http.MethodHead:
	default:
		w.Header().Set("Allow", allowedMethods)
		errmap.WriteHTTPError(w, fmt.Errorf("%s /: %w", r.Method, domain.ErrMethodNotAllowed))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Length", strconv.Itoa(len(h.body)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(h.body)

	h.served.Add(r.Context(), 1, metric.WithAttributes(attribute.String("http.method", r.Method)))
}
