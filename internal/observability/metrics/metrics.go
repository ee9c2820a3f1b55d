package metrics

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// Config configures the metrics provider.
type Config struct {
	Enabled          bool
	ExporterEndpoint string
	ExporterProtocol string
	ServiceName      string
	Environment      string
}

// Metrics exposes application-level instruments.
type Metrics struct {
	allocationRuns   metric.Int64Counter
	billsCreated     metric.Int64Counter
	duplicateBills   metric.Int64Counter
	readingsIngested metric.Int64Counter
	runFailures      metric.Int64Counter
}

// NewProvider configures and registers the meter provider.
func NewProvider(lc fx.Lifecycle, cfg Config, log *zap.Logger) (metric.MeterProvider, error) {
	if !cfg.Enabled {
		provider := noop.NewMeterProvider()
		otel.SetMeterProvider(provider)
		return provider, nil
	}

	exporter, err := newExporter(cfg.ExporterProtocol, cfg.ExporterEndpoint)
	if err != nil {
		return nil, err
	}

	reader := sdkmetric.NewPeriodicReader(exporter, sdkmetric.WithInterval(10*time.Second))
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	otel.SetMeterProvider(provider)

	if lc != nil {
		lc.Append(fx.Hook{
			OnStop: func(ctx context.Context) error {
				if log != nil {
					log.Info("shutting down meter provider")
				}
				return provider.Shutdown(ctx)
			},
		})
	}

	if log != nil {
		log.Info("metrics initialized",
			zap.String("endpoint", cfg.ExporterEndpoint),
			zap.String("protocol", cfg.ExporterProtocol),
		)
	}

	return provider, nil
}

// New configures the domain metrics instruments.
func New(cfg Config, provider metric.MeterProvider) (*Metrics, error) {
	name := strings.TrimSpace(cfg.ServiceName)
	if name == "" {
		name = "voltra"
	}
	meter := provider.Meter(name)

	allocationRuns, err := meter.Int64Counter("voltra_allocation_runs_total")
	if err != nil {
		return nil, err
	}
	billsCreated, err := meter.Int64Counter("voltra_bills_created_total")
	if err != nil {
		return nil, err
	}
	duplicateBills, err := meter.Int64Counter("voltra_duplicate_bills_total")
	if err != nil {
		return nil, err
	}
	readingsIngested, err := meter.Int64Counter("voltra_readings_ingested_total")
	if err != nil {
		return nil, err
	}
	runFailures, err := meter.Int64Counter("voltra_allocation_run_failures_total")
	if err != nil {
		return nil, err
	}

	return &Metrics{
		allocationRuns:   allocationRuns,
		billsCreated:     billsCreated,
		duplicateBills:   duplicateBills,
		readingsIngested: readingsIngested,
		runFailures:      runFailures,
	}, nil
}

// RecordAllocationRun increments completed allocation run counts.
func (m *Metrics) RecordAllocationRun(ctx context.Context, feederCode string) {
	if m == nil {
		return
	}
	attrs := FilterAttributes(attribute.String("feeder_code", strings.TrimSpace(feederCode)))
	m.allocationRuns.Add(ctx, 1, metric.WithAttributes(attrs...))
}

// RecordBillsCreated increments bill insert counts.
func (m *Metrics) RecordBillsCreated(ctx context.Context, feederCode string, count int64) {
	if m == nil || count <= 0 {
		return
	}
	attrs := FilterAttributes(attribute.String("feeder_code", strings.TrimSpace(feederCode)))
	m.billsCreated.Add(ctx, count, metric.WithAttributes(attrs...))
}

// RecordDuplicateBills increments duplicate bill rejection counts.
func (m *Metrics) RecordDuplicateBills(ctx context.Context, feederCode string, count int64) {
	if m == nil || count <= 0 {
		return
	}
	attrs := FilterAttributes(attribute.String("feeder_code", strings.TrimSpace(feederCode)))
	m.duplicateBills.Add(ctx, count, metric.WithAttributes(attrs...))
}

// RecordReadingIngest increments energy reading ingest counts.
func (m *Metrics) RecordReadingIngest(ctx context.Context, feederCode string) {
	if m == nil {
		return
	}
	attrs := FilterAttributes(attribute.String("feeder_code", strings.TrimSpace(feederCode)))
	m.readingsIngested.Add(ctx, 1, metric.WithAttributes(attrs...))
}

// RecordRunFailure increments failed allocation run counts by reason.
func (m *Metrics) RecordRunFailure(ctx context.Context, feederCode, reason string) {
	if m == nil {
		return
	}
	attrs := FilterAttributes(
		attribute.String("feeder_code", strings.TrimSpace(feederCode)),
		attribute.String("reason", strings.TrimSpace(reason)),
	)
	m.runFailures.Add(ctx, 1, metric.WithAttributes(attrs...))
}

func newExporter(protocol, endpoint string) (sdkmetric.Exporter, error) {
	protocol = strings.ToLower(strings.TrimSpace(protocol))
	switch protocol {
	case "http", "http/protobuf":
		opts := []otlpmetrichttp.Option{}
		if endpoint != "" {
			opts = append(opts, otlpmetrichttp.WithEndpoint(endpoint))
		}
		return otlpmetrichttp.New(context.Background(), opts...)
	case "grpc", "grpc/protobuf", "":
		opts := []otlpmetricgrpc.Option{otlpmetricgrpc.WithInsecure()}
		if endpoint != "" {
			opts = append(opts, otlpmetricgrpc.WithEndpoint(endpoint))
		}
		return otlpmetricgrpc.New(context.Background(), opts...)
	default:
		return nil, fmt.Errorf("unsupported OTLP protocol %q", protocol)
	}
}

var allowedLabelKeys = map[attribute.Key]struct{}{
	"feeder_code": {},
	"endpoint":    {},
	"status_code": {},
	"reason":      {},
	"method":      {},
}

// FilterAttributes strips disallowed labels to keep metrics low-cardinality.
func FilterAttributes(attrs ...attribute.KeyValue) []attribute.KeyValue {
	filtered := make([]attribute.KeyValue, 0, len(attrs))
	for _, attr := range attrs {
		if _, ok := allowedLabelKeys[attr.Key]; !ok {
			continue
		}
		filtered = append(filtered, attr)
	}
	return filtered
}
