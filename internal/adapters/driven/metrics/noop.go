package metrics

import (
	"github.com/philiph/caddy-sso-attrs/internal/core/ports"
)

// NoopMetricsRecorder is a no-op implementation for when metrics are disabled.
// All methods are safe to call and do nothing.
type NoopMetricsRecorder struct{}

// NewNoopMetricsRecorder creates a new no-op metrics recorder.
func NewNoopMetricsRecorder() *NoopMetricsRecorder {
	return &NoopMetricsRecorder{}
}

// RecordRequest is a no-op.
func (n *NoopMetricsRecorder) RecordRequest(source string) {}

// RecordBinding is a no-op.
func (n *NoopMetricsRecorder) RecordBinding(destination string, present bool) {}

// Ensure NoopMetricsRecorder implements ports.MetricsRecorder
var _ ports.MetricsRecorder = (*NoopMetricsRecorder)(nil)
