package errmap_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aelexs/app3/internal/domain"
	"github.com/aelexs/app3/internal/errmap"
)

func TestToHTTPError(t *testing.T) {
	tests := []struct {
		name           string
		err            error
		wantStatusCode int
		wantCode       string
	}{
		{"nil error", nil, http.StatusOK, ""},
		{"ErrNotFound", domain.ErrNotFound, http.StatusNotFound, "NOT_FOUND"},
		{"ErrMethodNotAllowed", domain.ErrMethodNotAllowed, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED"},
		{"ErrUnavailable", domain.ErrUnavailable, http.StatusServiceUnavailable, "UNAVAILABLE"},

		// Wrapped errors
		{"wrapped ErrNotFound", fmt.Errorf("GET /nope: %w", domain.ErrNotFound), http.StatusNotFound, "NOT_FOUND"},

		// Unknown and startup errors map to Internal
		{"unknown error", errors.New("unexpected"), http.StatusInternalServerError, "INTERNAL"},
		{"ErrListen", domain.ErrListen, http.StatusInternalServerError, "INTERNAL"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := errmap.ToHTTPError(tt.err)
			assert.Equal(t, tt.wantStatusCode, got.StatusCode, "expected status %d, got %d", tt.wantStatusCode, got.StatusCode)
			assert.Equal(t, tt.wantCode, got.Code, "expected code %q, got %q", tt.wantCode, got.Code)
		})
	}
}

func TestToHTTPError_DoesNotLeakWrappedDetail(t *testing.T) {
	got := errmap.ToHTTPError(fmt.Errorf("lookup /secret/path: %w", domain.ErrNotFound))

	assert.Equal(t, "route not found", got.Message)
	assert.NotContains(t, got.Message, "/secret/path")
}

func TestHTTPErrorImplementsError(t *testing.T) {
	httpErr := errmap.ToHTTPError(domain.ErrNotFound)
	var err error = httpErr
	assert.NotEmpty(t, err.Error())
}

func TestWriteHTTPError(t *testing.T) {
	rec := httptest.NewRecorder()

	errmap.WriteHTTPError(rec, domain.ErrNotFound)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, map[string]string{"code": "NOT_FOUND", "message": "route not found"}, body)
}

func TestWriteHTTPError_NilIsInternal(t *testing.T) {
	rec := httptest.NewRecorder()

	errmap.WriteHTTPError(rec, nil)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, map[string]string{"code": "INTERNAL", "message": "internal error"}, body)
}

func TestWriteHTTPError_Unavailable(t *testing.T) {
	rec := httptest.NewRecorder()

	errmap.WriteHTTPError(rec, domain.ErrUnavailable)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "UNAVAILABLE", body["code"])
}
