package observability

import (
	"context"
	"io"
	"os"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"

	"github.com/ajitpratap0/colprof/pkg/colerrors"
)

// TracingConfig contains tracing configuration
type TracingConfig struct {
	ServiceName    string
	ServiceVersion string
	Environment    string
	SamplingRate   float64
	// Writer receives exported spans; defaults to stderr
	Writer      io.Writer
	PrettyPrint bool
}

// DefaultTracingConfig returns the configuration used by the CLI.
func DefaultTracingConfig() TracingConfig {
	return TracingConfig{
		ServiceName:    "colprof",
		ServiceVersion: "dev",
		Environment:    getEnv("COLPROF_ENV", "development"),
		SamplingRate:   1.0,
		Writer:         os.Stderr,
	}
}

// InitTracing installs a tracer provider exporting spans as JSON to
// config.Writer. Spans are batched and flushed by Shutdown.
func InitTracing(config TracingConfig) error {
	res, err := resource.New(context.Background(),
		resource.WithAttributes(
			semconv.ServiceNameKey.String(config.ServiceName),
			semconv.ServiceVersionKey.String(config.ServiceVersion),
			semconv.DeploymentEnvironmentKey.String(config.Environment),
		),
	)
	if err != nil {
		return colerrors.Wrap(err, colerrors.ErrorTypeInternal, "failed to create resource")
	}

	w := config.Writer
	if w == nil {
		w = os.Stderr
	}
	opts := []stdouttrace.Option{stdouttrace.WithWriter(w)}
	if config.PrettyPrint {
		opts = append(opts, stdouttrace.WithPrettyPrint())
	}
	exporter, err := stdouttrace.New(opts...)
	if err != nil {
		return colerrors.Wrap(err, colerrors.ErrorTypeInternal, "failed to create stdout exporter")
	}

	// Configure sampling
	var sampler sdktrace.Sampler
	if config.SamplingRate <= 0 {
		sampler = sdktrace.NeverSample()
	} else if config.SamplingRate >= 1.0 {
		sampler = sdktrace.AlwaysSample()
	} else {
		sampler = sdktrace.TraceIDRatioBased(config.SamplingRate)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sampler),
		sdktrace.WithBatcher(exporter),
	)

	otel.SetTracerProvider(tp)
	setTracer(tp.Tracer(config.ServiceName), tp)

	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// Shutdown flushes pending spans and stops the tracer provider installed
// by InitTracing. It is a no-op when tracing was never initialised.
func Shutdown(ctx context.Context) error {
	tp := takeProvider()
	if tp == nil {
		return nil
	}
	if err := tp.Shutdown(ctx); err != nil {
		return colerrors.Wrap(err, colerrors.ErrorTypeInternal, "failed to shutdown tracer")
	}
	return nil
}
