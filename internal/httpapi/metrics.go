package httpapi

import (
	"time"

	"MoneySmartz/internal/sim"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for hosted sessions.
type Metrics struct {
	// Sessions currently held in the store
	ActiveSessions prometheus.Gauge

	// Ticks by status: continued, paused, ended
	Ticks *prometheus.CounterVec

	// Resolved events by kind and chosen option
	Events *prometheus.CounterVec

	// Credit-score penalties by reason
	Penalties *prometheus.CounterVec

	// Request latency by route pattern
	RequestLatency *prometheus.HistogramVec
}

// NewMetrics registers every metric with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		ActiveSessions: f.NewGauge(prometheus.GaugeOpts{
			Name: "moneysmartz_active_sessions",
			Help: "Number of sessions currently hosted",
		}),

		Ticks: f.NewCounterVec(prometheus.CounterOpts{
			Name: "moneysmartz_ticks_total",
			Help: "Total monthly ticks processed by resulting status",
		}, []string{"status"}),

		Events: f.NewCounterVec(prometheus.CounterOpts{
			Name: "moneysmartz_events_resolved_total",
			Help: "Total events resolved by kind and option",
		}, []string{"kind", "option"}),

		Penalties: f.NewCounterVec(prometheus.CounterOpts{
			Name: "moneysmartz_penalties_total",
			Help: "Total credit-score penalties by reason",
		}, []string{"reason"}),

		RequestLatency: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "moneysmartz_http_request_duration_seconds",
			Help:    "Duration of HTTP requests by route and method",
			Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 1},
		}, []string{"route", "method"}),
	}
}

// ObserveTick records the outcome of one AdvanceMonth call.
func (m *Metrics) ObserveTick(res sim.TickResult) {
	if m == nil {
		return
	}
	m.Ticks.WithLabelValues(string(res.Status)).Inc()
	m.observePenalties(res.Report.Penalties...)
}

// ObserveResolution records a resolved event.
func (m *Metrics) ObserveResolution(r sim.Resolution) {
	if m == nil {
		return
	}
	m.Events.WithLabelValues(string(r.Event.Kind), string(r.Choice.Option)).Inc()
	if r.Penalty != nil {
		m.observePenalties(*r.Penalty)
	}
}

func (m *Metrics) observePenalties(ps ...sim.Penalty) {
	for _, p := range ps {
		m.Penalties.WithLabelValues(string(p.Reason)).Inc()
	}
}

// SetActiveSessions updates the hosted session gauge.
func (m *Metrics) SetActiveSessions(n int) {
	if m != nil {
		m.ActiveSessions.Set(float64(n))
	}
}

// ObserveRequest records the duration of one request.
func (m *Metrics) ObserveRequest(route, method string, d time.Duration) {
	if m != nil {
		m.RequestLatency.WithLabelValues(route, method).Observe(d.Seconds())
	}
}
