package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Collector struct {
	registry *prometheus.Registry
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
	errors   prometheus.Counter
}

func NewCollector() *Collector {
	registry := prometheus.NewRegistry()
	c := &Collector{
		registry: registry,
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of HTTP requests.",
		}, []string{"method", "status"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "HTTP request duration in seconds.",
			Buckets: []float64{0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
		}, []string{"method"}),
		errors: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "api_errors_total",
			Help: "Total number of 5xx responses.",
		}),
	}
	registry.MustRegister(c.requests, c.duration, c.errors)
	return c
}

func (c *Collector) ObserveRequest(method string, status int, elapsed time.Duration) {
	c.requests.WithLabelValues(method, strconv.Itoa(status)).Inc()
	c.duration.WithLabelValues(method).Observe(elapsed.Seconds())
}

func (c *Collector) IncErrors() {
	c.errors.Inc()
}

func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}
