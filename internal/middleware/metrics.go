package middleware

import (
	"net/http"
	"strconv"
	"time"

	chiMiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/atinyakov/radclients/internal/metrics"
)

// WithMetrics counts requests and observes their latency, labelled by the
// chi route pattern so that id_number values do not explode cardinality.
func WithMetrics(reg *metrics.Registry) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			route := routePattern(r)
			reg.APIRequests.WithLabelValues(r.Method, route, strconv.Itoa(status(ww))).Inc()
			reg.APILatency.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
		})
	}
}
