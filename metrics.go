package caddyssoattrs

import (
	"github.com/philiph/caddy-sso-attrs/internal/adapters/driven/metrics"
	"github.com/philiph/caddy-sso-attrs/internal/core/ports"
)

// Re-export metrics types
type MetricsRecorder = ports.MetricsRecorder
type NoopMetricsRecorder = metrics.NoopMetricsRecorder
type PrometheusMetricsRecorder = metrics.PrometheusMetricsRecorder

var (
	NewNoopMetricsRecorder                   = metrics.NewNoopMetricsRecorder
	NewPrometheusMetricsRecorder             = metrics.NewPrometheusMetricsRecorder
	NewPrometheusMetricsRecorderWithRegistry = metrics.NewPrometheusMetricsRecorderWithRegistry
)
