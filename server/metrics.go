package server

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
)

// prometheus metrics
type metrics struct {
	operations    *prometheus.CounterVec
	httpDuration  *prometheus.HistogramVec
	totalRequests *prometheus.CounterVec
}

func newMetrics(reg prometheus.Registerer) *metrics {
	m := &metrics{
		operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "geofence",
			Name:      "operations_total",
			Help:      "The total number of geometry operations by outcome",
		}, []string{"operation", "outcome"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "geofence",
			Name:      "request_duration_seconds",
			Help:      "The duration of request",
			Buckets:   []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5},
		}, []string{"method", "route"}),
		totalRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "geofence",
			Name:      "requests_total",
			Help:      "The total number of requests",
		}, []string{"route", "method", "status"}),
	}
	reg.MustRegister(m.operations, m.httpDuration, m.totalRequests)
	return m
}

func (m *metrics) observe(operation string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "invalid"
	}
	m.operations.WithLabelValues(operation, outcome).Inc()
}

// middleware labels by route pattern so path parameters do not explode cardinality.
func (m *metrics) middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()

		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		m.httpDuration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
		m.totalRequests.WithLabelValues(route, r.Method, strconv.Itoa(status)).Inc()
	})
}
