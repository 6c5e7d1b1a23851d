package metrics

import "github.com/prometheus/client_golang/prometheus"

// BookingMetrics exposes counters for checkout, webhook and handoff flows.
type BookingMetrics struct {
	checkoutTotal  *prometheus.CounterVec
	webhookTotal   *prometheus.CounterVec
	statusTotal    *prometheus.CounterVec
	handoffTotal   *prometheus.CounterVec
	webhookLatency *prometheus.HistogramVec
}

func NewBookingMetrics(reg prometheus.Registerer) *BookingMetrics {
	m := &BookingMetrics{
		checkoutTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "digibook",
			Subsystem: "payments",
			Name:      "checkout_total",
			Help:      "Checkout creation attempts by gateway and outcome",
		}, []string{"gateway", "outcome"}),
		webhookTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "digibook",
			Subsystem: "payments",
			Name:      "webhook_total",
			Help:      "Inbound gateway webhooks by event type and outcome",
		}, []string{"gateway", "event_type", "outcome"}),
		statusTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "digibook",
			Subsystem: "bookings",
			Name:      "status_changes_total",
			Help:      "Booking status transitions by target status",
		}, []string{"status"}),
		handoffTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "digibook",
			Subsystem: "bookings",
			Name:      "handoff_total",
			Help:      "Bookings submitted over messaging by channel",
		}, []string{"channel"}),
		webhookLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "digibook",
			Subsystem: "payments",
			Name:      "webhook_latency_seconds",
			Help:      "Latency of webhook processing",
			Buckets:   prometheus.DefBuckets,
		}, []string{"gateway"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.checkoutTotal, m.webhookTotal, m.statusTotal, m.handoffTotal, m.webhookLatency)
	return m
}

func (m *BookingMetrics) ObserveCheckout(gateway, outcome string) {
	if m == nil {
		return
	}
	m.checkoutTotal.WithLabelValues(gateway, outcome).Inc()
}

func (m *BookingMetrics) ObserveWebhook(gateway, eventType, outcome string) {
	if m == nil {
		return
	}
	m.webhookTotal.WithLabelValues(gateway, eventType, outcome).Inc()
}

func (m *BookingMetrics) ObserveStatusChange(status string) {
	if m == nil {
		return
	}
	m.statusTotal.WithLabelValues(status).Inc()
}

func (m *BookingMetrics) ObserveHandoff(channel string) {
	if m == nil {
		return
	}
	m.handoffTotal.WithLabelValues(channel).Inc()
}

func (m *BookingMetrics) ObserveWebhookLatency(gateway string, seconds float64) {
	if m == nil {
		return
	}
	m.webhookLatency.WithLabelValues(gateway).Observe(seconds)
}
