package gateway

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics contadores del gateway. Un *Metrics nil es válido y no registra nada.
type Metrics struct {
	calls     *prometheus.CounterVec
	retries   *prometheus.CounterVec
	fallbacks *prometheus.CounterVec
	latency   *prometheus.HistogramVec
	breaker   *prometheus.GaugeVec
}

// NewMetrics registra las métricas en reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		calls: f.NewCounterVec(prometheus.CounterOpts{
			Name: "clientes_remote_calls_total",
			Help: "Llamadas a servicios remotos por servicio, operación y resultado.",
		}, []string{"service", "operation", "outcome"}),
		retries: f.NewCounterVec(prometheus.CounterOpts{
			Name: "clientes_remote_retries_total",
			Help: "Reintentos de llamadas remotas idempotentes.",
		}, []string{"service", "operation"}),
		fallbacks: f.NewCounterVec(prometheus.CounterOpts{
			Name: "clientes_remote_fallbacks_total",
			Help: "Llamadas remotas resueltas por el fallback como servicio no disponible.",
		}, []string{"service", "operation"}),
		latency: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "clientes_remote_call_duration_seconds",
			Help:    "Duración de las llamadas remotas incluyendo reintentos.",
			Buckets: []float64{.05, .1, .25, .5, 1, 2.5, 5, 10, 20},
		}, []string{"service", "operation"}),
		breaker: f.NewGaugeVec(prometheus.GaugeOpts{
			Name: "clientes_remote_breaker_state",
			Help: "Estado del circuit breaker: 0 cerrado, 1 semiabierto, 2 abierto.",
		}, []string{"service"}),
	}
}

func (m *Metrics) observe(service, op, outcome string, d time.Duration) {
	if m == nil {
		return
	}
	m.calls.WithLabelValues(service, op, outcome).Inc()
	m.latency.WithLabelValues(service, op).Observe(d.Seconds())
}

func (m *Metrics) retry(service, op string) {
	if m == nil {
		return
	}
	m.retries.WithLabelValues(service, op).Inc()
}

func (m *Metrics) fallback(service, op string) {
	if m == nil {
		return
	}
	m.fallbacks.WithLabelValues(service, op).Inc()
}

func (m *Metrics) breakerState(service string, state float64) {
	if m == nil {
		return
	}
	m.breaker.WithLabelValues(service).Set(state)
}
