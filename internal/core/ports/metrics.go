package ports

// MetricsRecorder is the port interface for recording metrics.
// Implementations are adapters (PrometheusMetricsRecorder for production,
// NoopMetricsRecorder for disabled/testing).
type MetricsRecorder interface {
	// RecordRequest records where the principal for a request came from.
	RecordRequest(source string)

	// RecordBinding records the outcome of evaluating one binding.
	RecordBinding(destination string, present bool)
}
