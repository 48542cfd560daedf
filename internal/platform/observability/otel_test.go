package observability_test

import (
	"testing"

	"fulfillment/internal/platform/observability"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	"go.uber.org/zap"
)

func TestInit(t *testing.T) {
	t.Run("should collect metrics recorded through the meter provider", func(t *testing.T) {
		ctx := t.Context()
		inst, shutdown, err := observability.Init(ctx, observability.Config{
			ServiceName: "fulfillment-test",
			Stdout:      true,
		}, zap.NewNop())
		require.NoError(t, err)
		t.Cleanup(func() { _ = shutdown(ctx) })

		counter, err := inst.MeterProvider.Meter("test").Int64Counter("orders.created")
		require.NoError(t, err)
		counter.Add(ctx, 3)

		var rm metricdata.ResourceMetrics
		require.NoError(t, inst.Reader.Collect(ctx, &rm))
		require.Len(t, rm.ScopeMetrics, 1)
		sum, ok := rm.ScopeMetrics[0].Metrics[0].Data.(metricdata.Sum[int64])
		require.True(t, ok)
		assert.Equal(t, int64(3), sum.DataPoints[0].Value)
	})
}
