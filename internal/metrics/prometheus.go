package metrics

import (
	"net/http"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "vault_cap_monitor"

// PrometheusRecorder implements Recorder using Prometheus collectors.
type PrometheusRecorder struct {
	cycleDuration *prom.HistogramVec
	cycles        *prom.CounterVec
	depositCap    prom.Gauge
	degradedReads *prom.CounterVec
	notifications *prom.CounterVec
}

// NewPrometheusRecorder constructs the collectors and registers them on reg.
func NewPrometheusRecorder(reg prom.Registerer) *PrometheusRecorder {
	pr := &PrometheusRecorder{
		cycleDuration: prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "cycle_duration_seconds",
			Help:      "Duration of sampling cycles",
			Buckets:   prom.DefBuckets,
		}, []string{"result"}),
		cycles: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "cycles_total",
			Help:      "Sampling cycles by outcome",
		}, []string{"result"}),
		depositCap: prom.NewGauge(prom.GaugeOpts{
			Namespace: namespace,
			Name:      "deposit_cap",
			Help:      "Most recently sampled deposit cap in whole tokens",
		}),
		degradedReads: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "degraded_reads_total",
			Help:      "Informational reads that returned no value",
		}, []string{"method"}),
		notifications: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "notifications_total",
			Help:      "Notification deliveries by channel and result",
		}, []string{"channel", "result"}),
	}
	reg.MustRegister(pr.cycleDuration, pr.cycles, pr.depositCap, pr.degradedReads, pr.notifications)
	return pr
}

// ObserveCycle counts the cycle and records its duration under its result label.
func (p *PrometheusRecorder) ObserveCycle(result CycleResult, d time.Duration) {
	p.cycles.WithLabelValues(string(result)).Inc()
	p.cycleDuration.WithLabelValues(string(result)).Observe(d.Seconds())
}

// SetDepositCap updates the deposit cap gauge.
func (p *PrometheusRecorder) SetDepositCap(value float64) { p.depositCap.Set(value) }

// IncDegradedRead counts an informational read that returned no value.
func (p *PrometheusRecorder) IncDegradedRead(method string) {
	p.degradedReads.WithLabelValues(method).Inc()
}

// IncNotification counts a delivery attempt by channel and result.
func (p *PrometheusRecorder) IncNotification(channel string, ok bool) {
	result := "success"
	if !ok {
		result = "failure"
	}
	p.notifications.WithLabelValues(channel, result).Inc()
}

// HTTPHandler serves the metrics gathered by reg.
func HTTPHandler(reg *prom.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{EnableOpenMetrics: true})
}
