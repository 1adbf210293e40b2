package middlewarectx

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var histogramResponseTime = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: "finance_aggregator",
		Subsystem: "http",
		Name:      "response_time_seconds",
		Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 2, 5},
	},
	[]string{"status"},
)

// MetricsMiddleware наблюдает длительность обработки запроса
// с разбивкой по HTTP-статусу ответа.
func MetricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()

		next.ServeHTTP(ww, r)

		histogramResponseTime.
			WithLabelValues(strconv.Itoa(ww.Status())).
			Observe(time.Since(start).Seconds())
	})
}
