package controller

import (
	"fmt"
	"net/http"
	"time"

	"moveout/pkg/metrics"

	"github.com/gorilla/mux"
	"go.opentelemetry.io/otel/attribute"
	otelmetric "go.opentelemetry.io/otel/metric"
)

// WithMetrics returns a middleware that records an HTTP request duration
// histogram through the provided meter provider. The route attribute uses the
// matched path template when available so IDs don't explode the cardinality.
func WithMetrics(mp otelmetric.MeterProvider) (mux.MiddlewareFunc, error) {
	meter := mp.Meter("moveout/http")
	duration, err := meter.Float64Histogram("http_request_duration_seconds",
		otelmetric.WithDescription("HTTP request latency in seconds."),
		otelmetric.WithExplicitBucketBoundaries(metrics.DefaultBuckets...))
	if err != nil {
		return nil, fmt.Errorf("could not create duration histogram: %w", err)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(rec, r)

			route := r.URL.Path
			if cur := mux.CurrentRoute(r); cur != nil {
				if tpl, err := cur.GetPathTemplate(); err == nil {
					route = tpl
				}
			}

			duration.Record(r.Context(), time.Since(start).Seconds(),
				otelmetric.WithAttributes(
					attribute.String("method", r.Method),
					attribute.String("route", route),
					attribute.Int("status", rec.status)))
		})
	}, nil
}
