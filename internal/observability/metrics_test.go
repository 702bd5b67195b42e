package observability_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"

	"github.com/aelexs/app3/internal/observability"
)

func TestInitMetrics_MeterUsableUntilShutdown(t *testing.T) {
	prev := otel.GetMeterProvider()
	t.Cleanup(func() { otel.SetMeterProvider(prev) })

	mp, err := observability.InitMetrics(context.Background(), observability.MetricsConfig{
		ServiceName:    "app3",
		ServiceVersion: "0.1.0",
		Environment:    "test",
	})
	require.NoError(t, err)

	counter, err := observability.Meter("app3-test").Int64Counter("app3.test.count")
	require.NoError(t, err)
	counter.Add(context.Background(), 1)

	assert.NoError(t, mp.Shutdown(context.Background()))
}
