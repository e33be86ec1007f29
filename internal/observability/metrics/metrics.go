package metrics

import "github.com/prometheus/client_golang/prometheus"

// BotMetrics exposes counters/histograms for the webhook-to-reply flow.
type BotMetrics struct {
	inboundTotal    *prometheus.CounterVec
	normalizedTotal *prometheus.CounterVec
	outboundTotal   *prometheus.CounterVec
	degradedTotal   *prometheus.CounterVec
	nluFailures     *prometheus.CounterVec
	webhookLatency  *prometheus.HistogramVec
}

func NewBotMetrics(reg prometheus.Registerer) *BotMetrics {
	m := &BotMetrics{
		inboundTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "corretor",
			Subsystem: "messaging",
			Name:      "inbound_webhook_total",
			Help:      "Total inbound gateway webhooks",
		}, []string{"event_type", "status"}),
		normalizedTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "corretor",
			Subsystem: "messaging",
			Name:      "normalized_messages_total",
			Help:      "Total messages normalized into canonical form",
		}, []string{"kind"}),
		outboundTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "corretor",
			Subsystem: "messaging",
			Name:      "outbound_total",
			Help:      "Total outbound gateway sends",
		}, []string{"kind", "status"}),
		degradedTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "corretor",
			Subsystem: "messaging",
			Name:      "degraded_total",
			Help:      "Total rich messages degraded to plain text",
		}, []string{"kind"}),
		nluFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "corretor",
			Subsystem: "nlu",
			Name:      "failures_total",
			Help:      "Total NLU operations that fell back to defaults",
		}, []string{"operation"}),
		webhookLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "corretor",
			Subsystem: "messaging",
			Name:      "webhook_latency_seconds",
			Help:      "Latency of gateway webhook processing",
			Buckets:   prometheus.DefBuckets,
		}, []string{"event_type"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.inboundTotal, m.normalizedTotal, m.outboundTotal, m.degradedTotal, m.nluFailures, m.webhookLatency)
	return m
}

func (m *BotMetrics) ObserveInbound(eventType, status string) {
	if m == nil {
		return
	}
	m.inboundTotal.WithLabelValues(eventType, status).Inc()
}

func (m *BotMetrics) ObserveNormalized(kind string) {
	if m == nil {
		return
	}
	m.normalizedTotal.WithLabelValues(kind).Inc()
}

func (m *BotMetrics) ObserveOutbound(kind, status string) {
	if m == nil {
		return
	}
	m.outboundTotal.WithLabelValues(kind, status).Inc()
}

func (m *BotMetrics) ObserveDegraded(kind string) {
	if m == nil {
		return
	}
	m.degradedTotal.WithLabelValues(kind).Inc()
}

func (m *BotMetrics) ObserveNLUFailure(operation string) {
	if m == nil {
		return
	}
	m.nluFailures.WithLabelValues(operation).Inc()
}

func (m *BotMetrics) ObserveWebhookLatency(eventType string, seconds float64) {
	if m == nil {
		return
	}
	m.webhookLatency.WithLabelValues(eventType).Observe(seconds)
}
