package main

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aelexs/app3/internal/config"
	"github.com/aelexs/app3/internal/server"
)

func TestSetupRegistersRootRoute(t *testing.T) {
	mux := http.NewServeMux()

	err := setup(context.Background(), server.SetupDeps{
		Config: &config.Config{},
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		Mux:    mux,
	})
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, `{"message":"This is server 3"}`, rec.Body.String())
}
