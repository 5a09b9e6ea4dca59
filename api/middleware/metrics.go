package middleware

import (
	"net/http"
	"time"

	"github.com/angelmondragon/inventory-backend/pkg/metrics"
)

// Metrics records request counts and latency keyed by the matched chi route
// pattern so path ids do not explode label cardinality.
func Metrics(m *metrics.HTTPMetrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if m == nil {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			done := m.Begin()
			defer done()

			rec := &statusRecorder{ResponseWriter: w}
			start := time.Now()
			next.ServeHTTP(rec, r)

			m.Observe(r.Method, matchedPattern(r), rec.code(), time.Since(start))
		})
	}
}
