// Package telemetry configures OpenTelemetry tracing for the social API.
package telemetry

import (
	"context"
	"fmt"
	"io"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// ServiceName identifies this service in spans and logs.
const ServiceName = "social-api"

// Options controls tracer setup.
type Options struct {
	// Stdout exports spans as JSON to Writer.
	Stdout bool
	Writer io.Writer
	// Version is recorded as service.version.
	Version string
}

// Setup installs a global TracerProvider and returns its shutdown function.
// With Stdout disabled the global no-op provider is kept and shutdown does
// nothing.
func Setup(ctx context.Context, opts Options) (shutdown func(context.Context) error, err error) {
	if !opts.Stdout {
		return func(context.Context) error { return nil }, nil
	}

	tp, err := newProvider(opts)
	if err != nil {
		return nil, err
	}
	otel.SetTracerProvider(tp)
	return tp.Shutdown, nil
}

func newProvider(opts Options) (*sdktrace.TracerProvider, error) {
	exporterOpts := []stdouttrace.Option{}
	if opts.Writer != nil {
		exporterOpts = append(exporterOpts, stdouttrace.WithWriter(opts.Writer))
	}
	exporter, err := stdouttrace.New(exporterOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create trace exporter: %w", err)
	}

	res := resource.NewWithAttributes(
		"",
		attribute.String("service.name", ServiceName),
		attribute.String("service.version", opts.Version),
	)

	return sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
	), nil
}
