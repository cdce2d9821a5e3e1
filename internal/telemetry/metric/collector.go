package metric

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// SessionState reports whether a valid session is stored and how long it has left.
type SessionState func() (authenticated bool, remaining time.Duration)

// Collector exports the local session state at scrape time.
type Collector struct {
	state SessionState

	authenticated *prometheus.Desc
	remaining     *prometheus.Desc
}

// NewCollector creates a session collector.
func NewCollector(state SessionState) *Collector {
	return &Collector{
		state: state,
		authenticated: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "session", "authenticated"),
			"1 when a non-expired session token is stored",
			nil, nil,
		),
		remaining: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "session", "remaining_seconds"),
			"Seconds until the stored session token expires",
			nil, nil,
		),
	}
}

// Describe implements prometheus.Collector.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.authenticated
	ch <- c.remaining
}

// Collect implements prometheus.Collector.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	ok, left := c.state()
	var v float64
	if ok {
		v = 1
	}
	ch <- prometheus.MustNewConstMetric(c.authenticated, prometheus.GaugeValue, v)
	ch <- prometheus.MustNewConstMetric(c.remaining, prometheus.GaugeValue, left.Seconds())
}
