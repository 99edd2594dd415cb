//go:build unit

package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	io_prometheus_client "github.com/prometheus/client_model/go"

	"github.com/philiph/caddy-sso-attrs/internal/core/ports"
)

// TestNoopMetricsRecorder_Interface verifies the interface contract.
func TestNoopMetricsRecorder_Interface(t *testing.T) {
	var _ ports.MetricsRecorder = (*NoopMetricsRecorder)(nil)
}

// TestNoopMetricsRecorder_AllMethods verifies all methods don't panic.
func TestNoopMetricsRecorder_AllMethods(t *testing.T) {
	recorder := NewNoopMetricsRecorder()

	recorder.RecordRequest("request")
	recorder.RecordRequest("none")
	recorder.RecordBinding("REMOTE_USER", true)
	recorder.RecordBinding("REMOTE_USER", false)
}

// TestPrometheusMetricsRecorder_Interface verifies the interface contract.
func TestPrometheusMetricsRecorder_Interface(t *testing.T) {
	var _ ports.MetricsRecorder = (*PrometheusMetricsRecorder)(nil)
}

// TestPrometheusMetricsRecorder_RecordRequest verifies request recording by source.
func TestPrometheusMetricsRecorder_RecordRequest(t *testing.T) {
	registry := prometheus.NewRegistry()
	recorder := NewPrometheusMetricsRecorderWithRegistry(registry)

	recorder.RecordRequest("request")
	recorder.RecordRequest("session")
	recorder.RecordRequest("session")
	recorder.RecordRequest("none")

	testCases := []struct {
		source string
		want   float64
	}{
		{"request", 1},
		{"session", 2},
		{"none", 1},
	}
	for _, tc := range testCases {
		got := testutil.ToFloat64(recorder.requestsTotal.WithLabelValues(tc.source))
		if got != tc.want {
			t.Errorf("requests{principal_source=%q} = %v, want %v", tc.source, got, tc.want)
		}
	}
}

// TestPrometheusMetricsRecorder_RecordBinding verifies binding results by destination.
func TestPrometheusMetricsRecorder_RecordBinding(t *testing.T) {
	registry := prometheus.NewRegistry()
	recorder := NewPrometheusMetricsRecorderWithRegistry(registry)

	recorder.RecordBinding("UNIQUE_ID", true)
	recorder.RecordBinding("UNIQUE_ID", true)
	recorder.RecordBinding("UNIQUE_ID", false)
	recorder.RecordBinding("REMOTE_USER", true)

	metricFamilies, err := registry.Gather()
	if err != nil {
		t.Fatalf("failed to gather metrics: %v", err)
	}

	var bindingMetric *io_prometheus_client.MetricFamily
	for _, mf := range metricFamilies {
		if mf.GetName() == "sso_attrs_bindings_evaluated_total" {
			bindingMetric = mf
			break
		}
	}
	if bindingMetric == nil {
		t.Fatal("sso_attrs_bindings_evaluated_total metric not found")
	}

	if len(bindingMetric.GetMetric()) != 3 {
		t.Errorf("expected 3 metric entries, got %d", len(bindingMetric.GetMetric()))
	}

	for _, m := range bindingMetric.GetMetric() {
		var dest, result string
		for _, label := range m.GetLabel() {
			switch label.GetName() {
			case "destination":
				dest = label.GetValue()
			case "result":
				result = label.GetValue()
			}
		}

		value := m.GetCounter().GetValue()
		if dest == "UNIQUE_ID" && result == "set" && value != 2 {
			t.Errorf("UNIQUE_ID set count = %v, want 2", value)
		}
		if dest == "UNIQUE_ID" && result == "absent" && value != 1 {
			t.Errorf("UNIQUE_ID absent count = %v, want 1", value)
		}
		if dest == "REMOTE_USER" && result == "set" && value != 1 {
			t.Errorf("REMOTE_USER set count = %v, want 1", value)
		}
	}
}

// TestPrometheusMetricsRecorder_ReusesRegisteredCollectors verifies that a
// second recorder on the same registry shares counters instead of panicking.
func TestPrometheusMetricsRecorder_ReusesRegisteredCollectors(t *testing.T) {
	registry := prometheus.NewRegistry()
	first := NewPrometheusMetricsRecorderWithRegistry(registry)
	second := NewPrometheusMetricsRecorderWithRegistry(registry)

	first.RecordRequest("request")
	second.RecordRequest("request")

	got := testutil.ToFloat64(first.requestsTotal.WithLabelValues("request"))
	if got != 2 {
		t.Errorf("shared requests counter = %v, want 2", got)
	}
}
