package observability

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	otelmetric "go.opentelemetry.io/otel/metric"

	"github.com/SebastienMelki/devinfo/internal/device"
)

// Metrics holds the instruments recorded by the device collector and the
// inspection server.
type Metrics struct {
	// Collector metrics
	SnapshotsCollected otelmetric.Int64Counter
	SnapshotDuration   otelmetric.Float64Histogram
	HostFallbacks      otelmetric.Int64Counter

	// HTTP metrics
	HTTPRequestDuration otelmetric.Float64Histogram
	HTTPRequestTotal    otelmetric.Int64Counter
}

var _ device.Recorder = (*Metrics)(nil)

// NewMetrics creates all instruments from meter.
func NewMetrics(meter otelmetric.Meter) (*Metrics, error) {
	var m Metrics
	var err error

	m.SnapshotsCollected, err = meter.Int64Counter(
		"device.snapshots.collected",
		otelmetric.WithDescription("Device metadata snapshots collected"),
	)
	if err != nil {
		return nil, err
	}

	m.SnapshotDuration, err = meter.Float64Histogram(
		"device.snapshot.duration",
		otelmetric.WithUnit("ms"),
		otelmetric.WithDescription("Time spent querying the host for one snapshot"),
	)
	if err != nil {
		return nil, err
	}

	m.HostFallbacks, err = meter.Int64Counter(
		"device.host.fallbacks",
		otelmetric.WithDescription("Host queries that fell back to a default value, by field"),
	)
	if err != nil {
		return nil, err
	}

	m.HTTPRequestDuration, err = meter.Float64Histogram(
		"http.request.duration",
		otelmetric.WithUnit("ms"),
		otelmetric.WithDescription("HTTP request duration in milliseconds"),
	)
	if err != nil {
		return nil, err
	}

	m.HTTPRequestTotal, err = meter.Int64Counter(
		"http.request.total",
		otelmetric.WithDescription("Total HTTP requests"),
	)
	if err != nil {
		return nil, err
	}

	return &m, nil
}

// RecordFallback implements device.Recorder.
func (m *Metrics) RecordFallback(field string) {
	m.HostFallbacks.Add(context.Background(), 1,
		otelmetric.WithAttributes(attribute.String("field", field)))
}

// RecordSnapshot implements device.Recorder.
func (m *Metrics) RecordSnapshot(elapsed time.Duration) {
	ctx := context.Background()
	m.SnapshotsCollected.Add(ctx, 1)
	m.SnapshotDuration.Record(ctx, float64(elapsed.Microseconds())/1000)
}
