package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "octofit"

// Metrics holds the collectors for backend round trips and shell requests.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	Registry        *prometheus.Registry
	BackendRequests *prometheus.CounterVec
	BackendDuration *prometheus.HistogramVec
	ShellRequests   *prometheus.CounterVec
}

// New creates the collectors and registers them on a private registry.
func New() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		BackendRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "backend_requests_total",
			Help:      "Requests sent to the OctoFit backend.",
		}, []string{"method", "resource", "status"}),
		BackendDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "backend_request_duration_seconds",
			Help:      "Backend round trip latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "resource"}),
		ShellRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "shell_requests_total",
			Help:      "Requests served by the web shell.",
		}, []string{"route", "code"}),
	}

	m.Registry.MustRegister(m.BackendRequests, m.BackendDuration, m.ShellRequests)
	return m
}

// ObserveBackend records one backend round trip. A zero status means the
// request never got a response.
func (m *Metrics) ObserveBackend(method, resource string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	label := "error"
	if status > 0 {
		label = strconv.Itoa(status)
	}
	m.BackendRequests.WithLabelValues(method, resource, label).Inc()
	m.BackendDuration.WithLabelValues(method, resource).Observe(elapsed.Seconds())
}

// ObserveShell records one request served by the web shell.
func (m *Metrics) ObserveShell(route string, code int) {
	if m == nil {
		return
	}
	m.ShellRequests.WithLabelValues(route, strconv.Itoa(code)).Inc()
}

// Handler exposes the registry in the prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{})
}
