// Package observability wires OpenTelemetry metric instruments to a
// Prometheus registry for the devinfo tools.
package observability

import (
	"context"
	"fmt"
	"net/http"

	promclient "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/prometheus"
	otelmetric "go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
)

// Module owns the MeterProvider and the Prometheus registry it exports to.
type Module struct {
	registry *promclient.Registry
	provider *sdkmetric.MeterProvider
	meter    otelmetric.Meter
}

// New creates a Module exporting to a private Prometheus registry and
// installs its MeterProvider as the global OTel provider. scope names the
// meter.
func New(scope string) (*Module, error) {
	registry := promclient.NewRegistry()

	exporter, err := prometheus.New(prometheus.WithRegisterer(registry))
	if err != nil {
		return nil, fmt.Errorf("create prometheus exporter: %w", err)
	}

	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(exporter))
	otel.SetMeterProvider(provider)

	return &Module{
		registry: registry,
		provider: provider,
		meter:    provider.Meter(scope),
	}, nil
}

// Shutdown flushes and stops the MeterProvider.
func (m *Module) Shutdown(ctx context.Context) error {
	return m.provider.Shutdown(ctx)
}

// MetricsHandler serves the registry in the Prometheus exposition format.
func (m *Module) MetricsHandler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Meter returns the meter for creating instruments.
func (m *Module) Meter() otelmetric.Meter {
	return m.meter
}

// Registry returns the Prometheus registry backing MetricsHandler.
func (m *Module) Registry() *promclient.Registry {
	return m.registry
}
