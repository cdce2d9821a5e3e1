package metric

import (
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/prometheus/common/expfmt"
)

const namespace = "tankmate"

// Registry holds all client metrics.
type Registry struct {
	reg *prometheus.Registry

	// API metrics
	RequestsTotal   *prometheus.CounterVec   // method, route, code
	RequestDuration *prometheus.HistogramVec // method, route
	RetriesTotal    *prometheus.CounterVec   // route

	// Client-side behaviour
	CacheHits         prometheus.Counter
	CacheMisses       prometheus.Counter
	Unauthorized      prometheus.Counter
	RateLimitWaitTime prometheus.Histogram
}

// NewRegistry creates a registry with all client metrics registered.
func NewRegistry() *Registry {
	r := &Registry{
		reg: prometheus.NewRegistry(),
		RequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "api",
			Name:      "requests_total",
			Help:      "API requests by method, route and status code (0 = no response)",
		}, []string{"method", "route", "code"}),
		RequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "api",
			Name:      "request_duration_seconds",
			Help:      "API request latency",
			Buckets:   []float64{.05, .1, .25, .5, 1, 2.5, 5, 10},
		}, []string{"method", "route"}),
		RetriesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "api",
			Name:      "retries_total",
			Help:      "Query retries by route",
		}, []string{"route"}),
		CacheHits: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "cache",
			Name:      "hits_total",
			Help:      "Query cache hits",
		}),
		CacheMisses: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "cache",
			Name:      "misses_total",
			Help:      "Query cache misses",
		}),
		Unauthorized: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "session",
			Name:      "unauthorized_total",
			Help:      "401 responses that cleared the local session",
		}),
		RateLimitWaitTime: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "api",
			Name:      "rate_limit_wait_seconds",
			Help:      "Time spent waiting for the client rate limiter",
			Buckets:   prometheus.ExponentialBuckets(0.001, 4, 8),
		}),
	}

	r.reg.MustRegister(
		r.RequestsTotal,
		r.RequestDuration,
		r.RetriesTotal,
		r.CacheHits,
		r.CacheMisses,
		r.Unauthorized,
		r.RateLimitWaitTime,
	)
	return r
}

// Registerer exposes the underlying registry for additional collectors.
func (r *Registry) Registerer() prometheus.Registerer {
	return r.reg
}

// Gatherer exposes the underlying registry for reading.
func (r *Registry) Gatherer() prometheus.Gatherer {
	return r.reg
}

// ObserveRequest records one finished API request.
func (r *Registry) ObserveRequest(method, route string, status int, elapsed time.Duration) {
	r.RequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	r.RequestDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// Handler returns an HTTP handler serving the registry.
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{})
}

// WriteText writes all metrics in the Prometheus text format.
func (r *Registry) WriteText(w io.Writer) error {
	families, err := r.reg.Gather()
	if err != nil {
		return err
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return err
		}
	}
	return nil
}
