package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/philiph/caddy-sso-attrs/internal/core/ports"
)

// PrometheusMetricsRecorder records metrics using Prometheus.
type PrometheusMetricsRecorder struct {
	requestsTotal *prometheus.CounterVec
	bindingsTotal *prometheus.CounterVec
}

// NewPrometheusMetricsRecorder creates a new Prometheus metrics recorder
// using the default Prometheus registry.
func NewPrometheusMetricsRecorder() *PrometheusMetricsRecorder {
	return NewPrometheusMetricsRecorderWithRegistry(prometheus.DefaultRegisterer)
}

// NewPrometheusMetricsRecorderWithRegistry creates a new Prometheus metrics recorder
// with a custom registry. Use this for testing.
//
// Collectors already registered on reg (a second handler instance, or a
// config reload) are reused instead of failing.
func NewPrometheusMetricsRecorderWithRegistry(reg prometheus.Registerer) *PrometheusMetricsRecorder {
	requestsTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "sso_attrs_requests_total",
		Help: "Total requests seen, by where the principal was found",
	}, []string{"principal_source"})

	bindingsTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "sso_attrs_bindings_evaluated_total",
		Help: "Total attribute bindings evaluated, by destination and result",
	}, []string{"destination", "result"})

	return &PrometheusMetricsRecorder{
		requestsTotal: registerCounterVec(reg, requestsTotal),
		bindingsTotal: registerCounterVec(reg, bindingsTotal),
	}
}

func registerCounterVec(reg prometheus.Registerer, c *prometheus.CounterVec) *prometheus.CounterVec {
	if err := reg.Register(c); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(*prometheus.CounterVec); ok {
				return existing
			}
		}
		panic(err)
	}
	return c
}

// RecordRequest records where the principal for a request came from.
func (p *PrometheusMetricsRecorder) RecordRequest(source string) {
	p.requestsTotal.WithLabelValues(source).Inc()
}

// RecordBinding records the outcome of evaluating one binding.
func (p *PrometheusMetricsRecorder) RecordBinding(destination string, present bool) {
	result := "absent"
	if present {
		result = "set"
	}
	p.bindingsTotal.WithLabelValues(destination, result).Inc()
}

// Ensure PrometheusMetricsRecorder implements ports.MetricsRecorder
var _ ports.MetricsRecorder = (*PrometheusMetricsRecorder)(nil)
