// Package observability provides tracing for colprof runs.
//
// Tracing is off by default: until InitTracing is called, Tracer returns
// the global no-op tracer and spans cost next to nothing. The pipeline
// opens a span around the model load and one per profiled column:
//
//	ctx, span := observability.StartSpan(ctx, "column.profile",
//	    attribute.String("column.name", name))
//	err := profile(ctx)
//	observability.EndSpan(span, err)
package observability

import (
	"context"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
)

const instrumentationName = "github.com/ajitpratap0/colprof"

var (
	mu       sync.RWMutex
	tracer   trace.Tracer
	provider *sdktrace.TracerProvider
)

func setTracer(t trace.Tracer, tp *sdktrace.TracerProvider) {
	mu.Lock()
	defer mu.Unlock()
	tracer = t
	provider = tp
}

func takeProvider() *sdktrace.TracerProvider {
	mu.Lock()
	defer mu.Unlock()
	tp := provider
	provider = nil
	tracer = nil
	return tp
}

// Tracer returns the tracer installed by InitTracing, or the global one.
func Tracer() trace.Tracer {
	mu.RLock()
	defer mu.RUnlock()
	if tracer != nil {
		return tracer
	}
	return otel.Tracer(instrumentationName)
}

// StartSpan starts a span with the given attributes.
func StartSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return Tracer().Start(ctx, name, trace.WithAttributes(attrs...))
}

// EndSpan records err on the span, if any, and ends it.
func EndSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}

// Trace runs fn inside a span named name.
func Trace(ctx context.Context, name string, fn func(ctx context.Context) error, attrs ...attribute.KeyValue) error {
	ctx, span := StartSpan(ctx, name, attrs...)
	err := fn(ctx)
	EndSpan(span, err)
	return err
}
