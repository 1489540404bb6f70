package apm

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/exporters/zipkin"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.10.0"

	"github.com/kdx-labs/mintdeck/internal/logger"
)

type ExporterKind string

const (
	OTLPGRPCExporter ExporterKind = "otlp-grpc"
	OTLPHTTPExporter ExporterKind = "otlp-http"
	ZipkinExporter   ExporterKind = "zipkin"
	ConsoleExporter  ExporterKind = "console"
	NoopExporter     ExporterKind = "noop"
)

type TraceProvider interface {
	Stop() error
}

type traceProvider struct {
	tp *sdktrace.TracerProvider
}

type TracerOptions struct {
	exporter    sdktrace.SpanExporter
	serviceName string
	kind        ExporterKind
	useNoop     bool
}

type TracerOption func(*TracerOptions) error

// WithServiceName sets the service.name resource attribute.
func WithServiceName(name string) TracerOption {
	return func(opts *TracerOptions) error {
		opts.serviceName = name
		return nil
	}
}

// WithExporter selects the span exporter. Unknown kinds fall back to the
// noop provider.
func WithExporter(kind ExporterKind, endpoint string, headers map[string]string, log logger.LoggerInterface) TracerOption {
	switch kind {
	case OTLPGRPCExporter:
		return useOTLPGRPC(endpoint, headers)
	case OTLPHTTPExporter:
		return useOTLPHTTP(endpoint, headers)
	case ZipkinExporter:
		return useZipkin(endpoint)
	case ConsoleExporter:
		return useConsole()
	}

	log.Warn(context.Background(), "unknown trace exporter, using noop provider", "kind", string(kind))

	return useNoop()
}

func useNoop() TracerOption {
	return func(opts *TracerOptions) error {
		opts.useNoop = true
		opts.kind = NoopExporter
		return nil
	}
}

func useConsole() TracerOption {
	return func(opts *TracerOptions) error {
		exp, err := stdouttrace.New(stdouttrace.WithPrettyPrint())
		if err != nil {
			return err
		}

		opts.exporter = exp
		opts.kind = ConsoleExporter
		return nil
	}
}

func useZipkin(endpoint string) TracerOption {
	return func(opts *TracerOptions) error {
		exp, err := zipkin.New(endpoint)
		if err != nil {
			return err
		}

		opts.exporter = exp
		opts.kind = ZipkinExporter
		return nil
	}
}

func useOTLPGRPC(endpoint string, headers map[string]string) TracerOption {
	return func(opts *TracerOptions) error {
		exp, err := otlptracegrpc.New(
			context.Background(),
			otlptracegrpc.WithEndpointURL(endpoint),
			otlptracegrpc.WithHeaders(headers),
		)
		if err != nil {
			return err
		}

		opts.exporter = exp
		opts.kind = OTLPGRPCExporter
		return nil
	}
}

func useOTLPHTTP(endpoint string, headers map[string]string) TracerOption {
	return func(opts *TracerOptions) error {
		exp, err := otlptracehttp.New(
			context.Background(),
			otlptracehttp.WithEndpointURL(endpoint),
			otlptracehttp.WithHeaders(headers),
		)
		if err != nil {
			return err
		}

		opts.exporter = exp
		opts.kind = OTLPHTTPExporter
		return nil
	}
}

// NewTraceProvider builds and installs the global tracer provider.
func NewTraceProvider(options ...TracerOption) (TraceProvider, error) {
	opts := &TracerOptions{}

	for _, opt := range options {
		if err := opt(opts); err != nil {
			return nil, err
		}
	}

	if opts.useNoop || opts.exporter == nil {
		return NewNoopTraceProvider(), nil
	}

	rsrc, _ := resource.Merge(
		resource.Default(),
		resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceNameKey.String(opts.serviceName),
			attribute.String("otel.exporter", string(opts.kind)),
		))

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
		sdktrace.WithBatcher(opts.exporter),
		sdktrace.WithResource(rsrc),
	)

	otel.SetTracerProvider(tp)

	otel.SetTextMapPropagator(
		propagation.NewCompositeTextMapPropagator(
			propagation.TraceContext{},
			propagation.Baggage{},
		))

	return &traceProvider{
		tp,
	}, nil
}

func (o *traceProvider) Stop() error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()

	return o.tp.Shutdown(ctx)
}
