package metrics

import "github.com/prometheus/client_golang/prometheus"

// BotMetrics exposes counters/histograms for the Lex code hooks.
type BotMetrics struct {
	dialogTotal      *prometheus.CounterVec
	fulfillmentTotal *prometheus.CounterVec
	handlerLatency   *prometheus.HistogramVec
}

func NewBotMetrics(reg prometheus.Registerer) *BotMetrics {
	m := &BotMetrics{
		dialogTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "hotelbot",
			Subsystem: "dialog",
			Name:      "turns_total",
			Help:      "Dialog-hook turns by intent and resulting action",
		}, []string{"intent", "action"}),
		fulfillmentTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "hotelbot",
			Subsystem: "fulfillment",
			Name:      "requests_total",
			Help:      "Fulfillment-hook requests by intent and state",
		}, []string{"intent", "state"}),
		handlerLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "hotelbot",
			Subsystem: "handler",
			Name:      "latency_seconds",
			Help:      "Latency of code-hook processing",
			Buckets:   prometheus.DefBuckets,
		}, []string{"handler"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.dialogTotal, m.fulfillmentTotal, m.handlerLatency)
	return m
}

func (m *BotMetrics) ObserveDialog(intent, action string) {
	if m == nil {
		return
	}
	m.dialogTotal.WithLabelValues(intent, action).Inc()
}

func (m *BotMetrics) ObserveFulfillment(intent, state string) {
	if m == nil {
		return
	}
	m.fulfillmentTotal.WithLabelValues(intent, state).Inc()
}

func (m *BotMetrics) ObserveLatency(handler string, seconds float64) {
	if m == nil {
		return
	}
	m.handlerLatency.WithLabelValues(handler).Observe(seconds)
}
