package web

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/julianstephens/leitstand/internal/calendar"
	"github.com/julianstephens/leitstand/internal/models"
	"github.com/julianstephens/leitstand/internal/trafficlight"
)

const metricsNamespace = "leitstand"

// Metrics holds the server's Prometheus collectors on a private registry
type Metrics struct {
	registry        *prometheus.Registry
	requests        *prometheus.CounterVec
	latency         *prometheus.HistogramVec
	recordsByLight  *prometheus.GaugeVec
	snapshotLoadedT prometheus.Gauge
}

// NewMetrics creates and registers the collectors
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by route and status code.",
		}, []string{"method", "route", "status"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route"}),
		recordsByLight: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "records",
			Help:      "Non-archived records by collection and traffic light.",
		}, []string{"collection", "light"}),
		snapshotLoadedT: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "snapshot_loaded_timestamp_seconds",
			Help:      "Unix time of the last successful snapshot reload.",
		}),
	}
	m.registry.MustRegister(
		m.requests,
		m.latency,
		m.recordsByLight,
		m.snapshotLoadedT,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Handler serves the registry in the Prometheus text format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry exposes the underlying registry for tests and extra collectors
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// ObserveSnapshot recomputes the records-by-light gauge
func (m *Metrics) ObserveSnapshot(s *models.Snapshot, today calendar.Day, loadedAt time.Time) {
	m.recordsByLight.Reset()
	active := s.Active()
	for _, c := range models.RecordCollections {
		counts := trafficlight.Counts(active, c, today)
		for _, l := range trafficlight.Lights() {
			m.recordsByLight.WithLabelValues(string(c), string(l)).Set(float64(counts[l]))
		}
	}
	if !loadedAt.IsZero() {
		m.snapshotLoadedT.Set(float64(loadedAt.Unix()))
	}
}

// middleware counts requests by the matched route template
func (m *Metrics) middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.requests.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
		m.latency.WithLabelValues(route).Observe(time.Since(start).Seconds())
	}
}
