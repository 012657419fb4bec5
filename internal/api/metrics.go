package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	itemsCreated = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bar_items_created_total",
		Help: "Number of items recorded, by type.",
	}, []string{"type"})

	batchesSettled = promauto.NewCounter(prometheus.CounterOpts{
		Name: "bar_batches_settled_total",
		Help: "Number of payment batches created.",
	})

	batchesReversed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "bar_batches_reversed_total",
		Help: "Number of payment batches reversed.",
	})

	requestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "bar_http_request_duration_seconds",
		Help:    "HTTP request latency.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "status"})
)

// requestMetrics records a latency sample per request.
func requestMetrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		requestDuration.
			WithLabelValues(r.Method, strconv.Itoa(ww.Status())).
			Observe(time.Since(start).Seconds())
	})
}
