package otel

import (
	"context"

	"github.com/emiliopalmerini/worktime/internal/ports"
)

// NoOpExporter is a metrics exporter that does nothing.
type NoOpExporter struct{}

// NewNoOpExporter creates a new no-op exporter for graceful degradation.
func NewNoOpExporter() *NoOpExporter {
	return &NoOpExporter{}
}

func (e *NoOpExporter) ExportSessionMetrics(ctx context.Context, m *ports.SessionMetrics) error {
	return nil
}

func (e *NoOpExporter) Close(ctx context.Context) error {
	return nil
}

// NewFromConfig returns an OTLP exporter when cfg is active, and the no-op
// exporter otherwise or when the exporter cannot be created.
func NewFromConfig(ctx context.Context, cfg Config) (ports.MetricsExporter, error) {
	if !cfg.Active() {
		return NewNoOpExporter(), nil
	}
	exp, err := NewExporter(ctx, cfg)
	if err != nil {
		return NewNoOpExporter(), err
	}
	return exp, nil
}
