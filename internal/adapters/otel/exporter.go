package otel

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/emiliopalmerini/worktime/internal/ports"
)

const (
	serviceName    = "worktime"
	serviceVersion = "1.0.0"
)

// Exporter exports work session metrics to an OTEL Collector.
type Exporter struct {
	provider *sdkmetric.MeterProvider
	instruments
}

type instruments struct {
	sessionsTotal metric.Int64Counter
	workSeconds   metric.Float64Counter
	workHist      metric.Float64Histogram
	breakHist     metric.Float64Histogram
	breaksHist    metric.Int64Histogram
	overtimeHist  metric.Float64Histogram
}

// NewExporter creates a new OTEL metrics exporter.
func NewExporter(ctx context.Context, cfg Config) (*Exporter, error) {
	if !cfg.Active() {
		return nil, fmt.Errorf("OTEL exporter is disabled or endpoint not configured")
	}

	opts := []otlpmetricgrpc.Option{
		otlpmetricgrpc.WithEndpoint(cfg.Endpoint),
	}
	if cfg.Insecure {
		opts = append(opts,
			otlpmetricgrpc.WithDialOption(grpc.WithTransportCredentials(insecure.NewCredentials())),
			otlpmetricgrpc.WithInsecure(),
		)
	}

	exp, err := otlpmetricgrpc.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating OTLP exporter: %w", err)
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceName(serviceName),
			semconv.ServiceVersion(serviceVersion),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("creating resource: %w", err)
	}

	provider := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exp)),
		sdkmetric.WithResource(res),
	)
	otel.SetMeterProvider(provider)

	inst, err := newInstruments(provider.Meter(serviceName))
	if err != nil {
		_ = provider.Shutdown(ctx)
		return nil, err
	}

	return &Exporter{provider: provider, instruments: inst}, nil
}

func newInstruments(meter metric.Meter) (instruments, error) {
	var inst instruments
	var err error

	inst.sessionsTotal, err = meter.Int64Counter(
		"worktime_sessions_total",
		metric.WithDescription("Total number of completed work sessions"),
		metric.WithUnit("{session}"),
	)
	if err != nil {
		return inst, fmt.Errorf("creating sessions counter: %w", err)
	}

	inst.workSeconds, err = meter.Float64Counter(
		"worktime_work_seconds_total",
		metric.WithDescription("Total work time recorded"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return inst, fmt.Errorf("creating work counter: %w", err)
	}

	inst.workHist, err = meter.Float64Histogram(
		"worktime_session_work_seconds",
		metric.WithDescription("Work time per session"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return inst, fmt.Errorf("creating work histogram: %w", err)
	}

	inst.breakHist, err = meter.Float64Histogram(
		"worktime_session_break_seconds",
		metric.WithDescription("Break time per session"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return inst, fmt.Errorf("creating break histogram: %w", err)
	}

	inst.breaksHist, err = meter.Int64Histogram(
		"worktime_session_breaks",
		metric.WithDescription("Number of breaks per session"),
		metric.WithUnit("{break}"),
	)
	if err != nil {
		return inst, fmt.Errorf("creating breaks histogram: %w", err)
	}

	inst.overtimeHist, err = meter.Float64Histogram(
		"worktime_session_overtime_seconds",
		metric.WithDescription("Work beyond the daily norm per session, negative when short"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return inst, fmt.Errorf("creating overtime histogram: %w", err)
	}

	return inst, nil
}

// ExportSessionMetrics records one completed work session.
func (e *Exporter) ExportSessionMetrics(ctx context.Context, m *ports.SessionMetrics) error {
	e.record(ctx, m)
	return nil
}

func (i instruments) record(ctx context.Context, m *ports.SessionMetrics) {
	opt := metric.WithAttributes(
		attribute.String("category_id", m.CategoryID),
		attribute.String("category_name", m.CategoryName),
	)

	i.sessionsTotal.Add(ctx, 1, opt)
	i.workSeconds.Add(ctx, m.Work.Seconds(), opt)
	i.workHist.Record(ctx, m.Work.Seconds(), opt)
	i.breakHist.Record(ctx, m.Break.Seconds(), opt)
	i.breaksHist.Record(ctx, int64(m.BreakCount), opt)
	i.overtimeHist.Record(ctx, m.Overtime.Seconds(), opt)
}

// Close shuts down the exporter and flushes any pending metrics.
func (e *Exporter) Close(ctx context.Context) error {
	return e.provider.Shutdown(ctx)
}
