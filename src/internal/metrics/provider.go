package metrics

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/exporters/stdout/stdoutmetric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	sdkresource "go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.34.0"
)

const (
	ExporterNone   = "none"
	ExporterStdout = "stdout"
	ExporterOTLP   = "otlp"
)

type ProviderConfig struct {
	ServiceName  string
	Exporter     string
	OTLPEndpoint string
	Interval     time.Duration
	// Writer receives stdout exports; nil means os.Stdout.
	Writer io.Writer
}

// NewMeterProvider builds the SDK meter provider for cfg.Exporter. With
// "none" (or empty) the provider aggregates but never exports. The caller
// owns Shutdown, which flushes the last collection.
func NewMeterProvider(ctx context.Context, cfg ProviderConfig) (*sdkmetric.MeterProvider, error) {
	opts := []sdkmetric.Option{sdkmetric.WithResource(newResource(cfg.ServiceName))}

	var exporter sdkmetric.Exporter
	switch cfg.Exporter {
	case "", ExporterNone:
	case ExporterStdout:
		writer := cfg.Writer
		if writer == nil {
			writer = os.Stdout
		}
		exp, err := stdoutmetric.New(stdoutmetric.WithWriter(writer))
		if err != nil {
			return nil, fmt.Errorf("create stdout metric exporter: %w", err)
		}
		exporter = exp
	case ExporterOTLP:
		exp, err := otlpmetricgrpc.New(ctx,
			otlpmetricgrpc.WithEndpoint(cfg.OTLPEndpoint),
			otlpmetricgrpc.WithInsecure(),
		)
		if err != nil {
			return nil, fmt.Errorf("create otlp metric exporter: %w", err)
		}
		exporter = exp
	default:
		return nil, fmt.Errorf("unsupported metrics exporter %q", cfg.Exporter)
	}

	if exporter != nil {
		var readerOpts []sdkmetric.PeriodicReaderOption
		if cfg.Interval > 0 {
			readerOpts = append(readerOpts, sdkmetric.WithInterval(cfg.Interval))
		}
		opts = append(opts, sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter, readerOpts...)))
	}

	return sdkmetric.NewMeterProvider(opts...), nil
}

func newResource(serviceName string) *sdkresource.Resource {
	if serviceName == "" {
		serviceName = "ledger"
	}

	return sdkresource.NewWithAttributes(semconv.SchemaURL, semconv.ServiceName(serviceName))
}
