package live

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"example.com/scoreboard/internal/scoreboard"
)

// Metrics holds the board's Prometheus collectors. A nil *Metrics is valid
// and records nothing.
type Metrics struct {
	activeMatches prometheus.Gauge
	operations    *prometheus.CounterVec
	published     *prometheus.CounterVec
	subscribers   prometheus.Gauge
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		activeMatches: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: "scoreboard",
			Name:      "active_matches",
			Help:      "Number of matches currently in progress",
		}),

		operations: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "scoreboard",
			Name:      "operations_total",
			Help:      "Board operations by name and result code",
		}, []string{"op", "result"}),

		published: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "scoreboard",
			Name:      "events_published_total",
			Help:      "Match events handed to the publisher, by type and outcome",
		}, []string{"type", "outcome"}),

		subscribers: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: "scoreboard",
			Name:      "stream_subscribers",
			Help:      "Connected WebSocket summary subscribers",
		}),
	}
}

func (m *Metrics) setActive(n int) {
	if m == nil {
		return
	}
	m.activeMatches.Set(float64(n))
}

func (m *Metrics) observe(op string, err error) {
	if m == nil {
		return
	}
	m.operations.WithLabelValues(op, scoreboard.Code(err)).Inc()
}

func (m *Metrics) publishResult(t EventType, err error) {
	if m == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	m.published.WithLabelValues(string(t), outcome).Inc()
}

func (m *Metrics) subscriberDelta(d float64) {
	if m == nil {
		return
	}
	m.subscribers.Add(d)
}
