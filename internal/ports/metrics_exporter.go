package ports

import (
	"context"
	"time"
)

// MetricsExporter exports session metrics to an external observability system.
type MetricsExporter interface {
	// ExportSessionMetrics exports metrics for a completed work session.
	ExportSessionMetrics(ctx context.Context, m *SessionMetrics) error
	// Close shuts down the exporter and flushes any pending metrics.
	Close(ctx context.Context) error
}

// SessionMetrics describes one completed work session.
type SessionMetrics struct {
	EntryID      string
	CategoryID   string
	CategoryName string

	Work       time.Duration
	Break      time.Duration
	BreakCount int
	// Overtime is the work beyond the daily norm; negative when short of it.
	Overtime time.Duration

	StartedAt time.Time
	EndedAt   time.Time
}
