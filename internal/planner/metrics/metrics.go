// Package metrics holds the Prometheus collectors for the planner service.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics is safe to use as a nil pointer; every recorder is then a no-op.
type Metrics struct {
	registry *prometheus.Registry

	otpDispatch     *prometheus.CounterVec
	generations     *prometheus.CounterVec
	generationTime  prometheus.Histogram
	historyWrites   *prometheus.CounterVec
	httpRequests    *prometheus.CounterVec
	httpDuration    *prometheus.HistogramVec
	housekeepingDel prometheus.Counter
}

// New builds a private registry with the process and Go collectors plus the
// planner's own series.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		otpDispatch: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "otp_dispatch_total",
			Help: "OTP delivery attempts by purpose and result.",
		}, []string{"purpose", "result"}),
		generations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "itinerary_generations_total",
			Help: "Itinerary generation attempts by result.",
		}, []string{"result"}),
		generationTime: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "itinerary_generation_seconds",
			Help:    "Latency of the model call.",
			Buckets: []float64{1, 2.5, 5, 10, 20, 40, 60},
		}),
		historyWrites: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "history_writes_total",
			Help: "History mutations by operation.",
		}, []string{"op"}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "HTTP requests by route and status code.",
		}, []string{"route", "code"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency by route.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route"}),
		housekeepingDel: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "housekeeping_otps_deleted_total",
			Help: "Expired OTP records removed by housekeeping.",
		}),
	}

	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.otpDispatch,
		m.generations,
		m.generationTime,
		m.historyWrites,
		m.httpRequests,
		m.httpDuration,
		m.housekeepingDel,
	)
	return m
}

// Handler exposes the registry for scraping.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry is exposed for tests.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

func (m *Metrics) OTPDispatched(purpose, result string) {
	if m == nil {
		return
	}
	m.otpDispatch.WithLabelValues(purpose, result).Inc()
}

func (m *Metrics) Generation(result string, took time.Duration) {
	if m == nil {
		return
	}
	m.generations.WithLabelValues(result).Inc()
	m.generationTime.Observe(took.Seconds())
}

func (m *Metrics) HistoryWrite(op string) {
	if m == nil {
		return
	}
	m.historyWrites.WithLabelValues(op).Inc()
}

func (m *Metrics) OTPsPurged(n int64) {
	if m == nil || n <= 0 {
		return
	}
	m.housekeepingDel.Add(float64(n))
}

// Middleware records request counts and latency keyed by the matched mux
// pattern, so path parameters do not explode label cardinality.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	if m == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(sw, r)

		route := r.Pattern
		if route == "" {
			route = "unmatched"
		}
		m.httpRequests.WithLabelValues(route, strconv.Itoa(sw.status)).Inc()
		m.httpDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
	})
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}
