package otel

import (
	"context"
	"testing"
	"time"

	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"

	"github.com/emiliopalmerini/worktime/internal/ports"
)

func TestConfig_Active(t *testing.T) {
	tests := []struct {
		cfg  Config
		want bool
	}{
		{Config{}, false},
		{Config{Enabled: true}, false},
		{Config{Endpoint: "localhost:4317"}, false},
		{Config{Enabled: true, Endpoint: "localhost:4317"}, true},
	}
	for _, tt := range tests {
		if got := tt.cfg.Active(); got != tt.want {
			t.Errorf("%+v.Active() = %v, want %v", tt.cfg, got, tt.want)
		}
	}
}

func TestNewFromConfig_DisabledIsNoOp(t *testing.T) {
	exp, err := NewFromConfig(context.Background(), Config{})
	if err != nil {
		t.Fatalf("NewFromConfig: %v", err)
	}
	if _, ok := exp.(*NoOpExporter); !ok {
		t.Errorf("exporter = %T, want *NoOpExporter", exp)
	}
}

func TestInstruments_Record(t *testing.T) {
	ctx := context.Background()
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	t.Cleanup(func() { _ = provider.Shutdown(ctx) })

	inst, err := newInstruments(provider.Meter("test"))
	if err != nil {
		t.Fatalf("newInstruments: %v", err)
	}

	inst.record(ctx, &ports.SessionMetrics{
		CategoryID:   "meeting",
		CategoryName: "Meetings",
		Work:         7*time.Hour + 30*time.Minute,
		Break:        30 * time.Minute,
		BreakCount:   1,
		Overtime:     -30 * time.Minute,
	})

	var rm metricdata.ResourceMetrics
	if err := reader.Collect(ctx, &rm); err != nil {
		t.Fatalf("Collect: %v", err)
	}

	found := map[string]bool{}
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			found[m.Name] = true
			if m.Name == "worktime_sessions_total" {
				sum, ok := m.Data.(metricdata.Sum[int64])
				if !ok || len(sum.DataPoints) != 1 || sum.DataPoints[0].Value != 1 {
					t.Errorf("sessions counter = %+v", m.Data)
				}
			}
			if m.Name == "worktime_work_seconds_total" {
				sum, ok := m.Data.(metricdata.Sum[float64])
				if !ok || len(sum.DataPoints) != 1 || sum.DataPoints[0].Value != 27000 {
					t.Errorf("work counter = %+v", m.Data)
				}
			}
		}
	}
	for _, name := range []string{
		"worktime_sessions_total",
		"worktime_work_seconds_total",
		"worktime_session_work_seconds",
		"worktime_session_break_seconds",
		"worktime_session_breaks",
		"worktime_session_overtime_seconds",
	} {
		if !found[name] {
			t.Errorf("metric %s not recorded", name)
		}
	}
}
