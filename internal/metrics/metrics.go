package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "chat"

// Metrics is safe to use as a nil pointer; every method is then a no-op.
type Metrics struct {
	Connections prometheus.Gauge
	Requests    *prometheus.CounterVec
	Delivered   prometheus.Counter
	Dropped     prometheus.Counter
	Kicked      prometheus.Counter
}

func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Connections: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "connections",
			Help:      "Open signal connections.",
		}),
		Requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "requests_total",
			Help:      "Client requests by type and result code.",
		}, []string{"type", "result"}),
		Delivered: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "frames_delivered_total",
			Help:      "Broadcast frames queued to a recipient.",
		}),
		Dropped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "frames_dropped_total",
			Help:      "Broadcast frames dropped because a recipient queue was full or closed.",
		}),
		Kicked: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "kicked_total",
			Help:      "Connections closed by the backpressure policy.",
		}),
	}
	reg.MustRegister(m.Connections, m.Requests, m.Delivered, m.Dropped, m.Kicked)
	return m
}

// RegisterState exposes registry sizes read on every scrape.
func RegisterState(reg prometheus.Registerer, identities, rooms func() int) {
	reg.MustRegister(
		prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "identities",
			Help:      "Registered display names.",
		}, func() float64 { return float64(identities()) }),
		prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "rooms",
			Help:      "Existing rooms.",
		}, func() float64 { return float64(rooms()) }),
	)
}

// ObserveRequest counts a request; an empty code means success.
func (m *Metrics) ObserveRequest(kind, code string) {
	if m == nil {
		return
	}
	if code == "" {
		code = "ok"
	}
	m.Requests.WithLabelValues(kind, code).Inc()
}

func (m *Metrics) ObserveDelivery(sent, dropped int) {
	if m == nil {
		return
	}
	m.Delivered.Add(float64(sent))
	m.Dropped.Add(float64(dropped))
}

func (m *Metrics) ConnOpened() {
	if m == nil {
		return
	}
	m.Connections.Inc()
}

func (m *Metrics) ConnClosed() {
	if m == nil {
		return
	}
	m.Connections.Dec()
}

func (m *Metrics) ObserveKick() {
	if m == nil {
		return
	}
	m.Kicked.Inc()
}
