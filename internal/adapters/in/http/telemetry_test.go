package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"fulfillment/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.uber.org/zap"
)

func TestTelemetry(t *testing.T) {
	newInstrumentedEcho := func(t *testing.T) (*echo.Echo, *tracetest.SpanRecorder, *sdkmetric.ManualReader) {
		t.Helper()
		recorder := tracetest.NewSpanRecorder()
		tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
		reader := sdkmetric.NewManualReader()
		mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))

		mw, err := Telemetry(tp, mp)
		require.NoError(t, err)

		e := echo.New()
		e.HTTPErrorHandler = ErrorHandler(zap.NewNop())
		e.Use(mw)
		e.GET("/api/v1/orders/:id", func(c echo.Context) error {
			return errs.NewObjectNotFoundError("order", c.Param("id"))
		})
		e.GET("/boom", func(echo.Context) error {
			return assert.AnError
		})
		return e, recorder, reader
	}

	t.Run("should name the span after the route and record the final status", func(t *testing.T) {
		e, recorder, reader := newInstrumentedEcho(t)

		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/orders/42", nil))

		assert.Equal(t, http.StatusNotFound, rec.Code)
		spans := recorder.Ended()
		require.Len(t, spans, 1)
		assert.Equal(t, "GET /api/v1/orders/:id", spans[0].Name())
		assert.Contains(t, spans[0].Attributes(), attribute.Int("http.response.status_code", http.StatusNotFound))
		assert.NotEqual(t, codes.Error, spans[0].Status().Code)

		var rm metricdata.ResourceMetrics
		require.NoError(t, reader.Collect(t.Context(), &rm))
		require.NotEmpty(t, rm.ScopeMetrics)
		var found bool
		for _, m := range rm.ScopeMetrics[0].Metrics {
			if m.Name != "http.server.requests" {
				continue
			}
			sum, ok := m.Data.(metricdata.Sum[int64])
			require.True(t, ok)
			require.Len(t, sum.DataPoints, 1)
			assert.Equal(t, int64(1), sum.DataPoints[0].Value)
			found = true
		}
		assert.True(t, found)
	})

	t.Run("should mark server errors on the span", func(t *testing.T) {
		e, recorder, _ := newInstrumentedEcho(t)

		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/boom", nil))

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		spans := recorder.Ended()
		require.Len(t, spans, 1)
		assert.Equal(t, codes.Error, spans[0].Status().Code)
	})
}
