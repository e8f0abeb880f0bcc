package middleware

import (
	"net/http"
	"time"

	"github.com/atelierhq/storefront-backend/pkg/metrics"
)

// Metrics records request counts and latency per method and status.
func Metrics(m *metrics.HTTP) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rec := &statusRecorder{ResponseWriter: w}
			start := time.Now()

			next.ServeHTTP(rec, r)

			m.Observe(r.Method, rec.statusOrDefault(), time.Since(start).Seconds())
		})
	}
}
