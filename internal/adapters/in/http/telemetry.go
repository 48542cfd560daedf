package http

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

const instrumentationName = "fulfillment/internal/adapters/in/http"

// Telemetry opens a server span per request, continuing the caller's trace
// when one is propagated, and records request count and duration.
func Telemetry(tp trace.TracerProvider, mp metric.MeterProvider) (echo.MiddlewareFunc, error) {
	tracer := tp.Tracer(instrumentationName)
	meter := mp.Meter(instrumentationName)

	requests, err := meter.Int64Counter("http.server.requests",
		metric.WithDescription("Handled HTTP requests"))
	if err != nil {
		return nil, err
	}
	duration, err := meter.Float64Histogram("http.server.duration",
		metric.WithDescription("Time to handle an HTTP request"),
		metric.WithUnit("ms"))
	if err != nil {
		return nil, err
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			ctx := otel.GetTextMapPropagator().Extract(req.Context(), propagation.HeaderCarrier(req.Header))

			route := c.Path()
			if route == "" {
				route = req.URL.Path
			}
			ctx, span := tracer.Start(ctx, req.Method+" "+route,
				trace.WithSpanKind(trace.SpanKindServer),
				trace.WithAttributes(
					attribute.String("http.request.method", req.Method),
					attribute.String("http.route", route),
				))
			defer span.End()
			c.SetRequest(req.WithContext(ctx))

			started := time.Now()
			err := next(c)
			if err != nil {
				// Let echo render the error now so the recorded status is final.
				c.Error(err)
			}

			status := c.Response().Status
			span.SetAttributes(attribute.Int("http.response.status_code", status))
			if status >= http.StatusInternalServerError {
				span.SetStatus(codes.Error, http.StatusText(status))
			}
			if err != nil {
				span.RecordError(err)
			}

			attrs := metric.WithAttributes(
				attribute.String("http.request.method", req.Method),
				attribute.String("http.route", route),
				attribute.Int("http.response.status_code", status),
			)
			requests.Add(ctx, 1, attrs)
			duration.Record(ctx, float64(time.Since(started).Microseconds())/1000, attrs)
			return nil
		}
	}, nil
}
