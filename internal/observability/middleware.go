package observability

import (
	"net/http"
	"strconv"
	"time"

	"go.opentelemetry.io/otel/attribute"
	otelmetric "go.opentelemetry.io/otel/metric"
)

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (w *statusRecorder) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

// HTTPMetrics wraps next so every request is timed and counted, tagged with
// the matched route pattern and response status.
func HTTPMetrics(metrics *Metrics, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		route := r.Pattern
		if route == "" {
			route = "unmatched"
		}
		attrs := otelmetric.WithAttributes(
			attribute.String("route", route),
			attribute.String("status", strconv.Itoa(rec.status)),
		)
		metrics.HTTPRequestDuration.Record(r.Context(), float64(time.Since(start).Microseconds())/1000, attrs)
		metrics.HTTPRequestTotal.Add(r.Context(), 1, attrs)
	})
}
