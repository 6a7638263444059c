package observability

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the site's prometheus collectors.
type Metrics struct {
	registry *prometheus.Registry

	LiveSessions   prometheus.Gauge
	LandingActions *prometheus.CounterVec
	MarketFetches  *prometheus.CounterVec
	HTTPRequests   *prometheus.CounterVec
}

// NewMetrics registers the collectors on a fresh registry together with the Go and
// process collectors.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	f := promauto.With(reg)
	return &Metrics{
		registry: reg,
		LiveSessions: f.NewGauge(prometheus.GaugeOpts{
			Name: "cultr_live_sessions",
			Help: "Open live websocket sessions.",
		}),
		LandingActions: f.NewCounterVec(prometheus.CounterOpts{
			Name: "cultr_landing_actions_total",
			Help: "Landing state transitions by action.",
		}, []string{"action"}),
		MarketFetches: f.NewCounterVec(prometheus.CounterOpts{
			Name: "cultr_market_fetch_total",
			Help: "Token quote lookups by result.",
		}, []string{"result"}),
		HTTPRequests: f.NewCounterVec(prometheus.CounterOpts{
			Name: "cultr_http_requests_total",
			Help: "HTTP requests by route pattern and status.",
		}, []string{"route", "status"}),
	}
}

// Handler serves the registry in the prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry exposes the underlying registry (tests).
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// ObserveAction counts one landing transition. Safe on a nil receiver.
func (m *Metrics) ObserveAction(action string) {
	if m == nil {
		return
	}
	m.LandingActions.WithLabelValues(action).Inc()
}

// ObserveMarket counts one quote lookup. Safe on a nil receiver.
func (m *Metrics) ObserveMarket(result string) {
	if m == nil {
		return
	}
	m.MarketFetches.WithLabelValues(result).Inc()
}

// ObserveRequest counts one HTTP request. Safe on a nil receiver.
func (m *Metrics) ObserveRequest(route string, status int) {
	if m == nil {
		return
	}
	if route == "" {
		route = "unmatched"
	}
	m.HTTPRequests.WithLabelValues(route, strconv.Itoa(status)).Inc()
}

// SessionOpened and SessionClosed track the live session gauge. Safe on a nil receiver.
func (m *Metrics) SessionOpened() {
	if m != nil {
		m.LiveSessions.Inc()
	}
}

func (m *Metrics) SessionClosed() {
	if m != nil {
		m.LiveSessions.Dec()
	}
}
