package middleware

import (
	"fmt"
	"net/http"
	"time"

	"go-media-api/internal/metrics"
)

func Metrics(m *metrics.Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			started := time.Now()
			wrapped := &responseWriter{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(wrapped, r)

			statusClass := fmt.Sprintf("%dxx", wrapped.status/100)
			m.HTTPDuration.WithLabelValues(r.Method, statusClass).
				Observe(time.Since(started).Seconds())
		})
	}
}
