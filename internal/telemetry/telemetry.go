// Package telemetry configures OpenTelemetry tracing. Tracing is opt-in: with
// no OTLP endpoint configured, the global no-op provider stays in place and
// spans cost nothing.
package telemetry

import (
	"context"
	"errors"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"

	"github.com/nemogoc/pickup/internal/config"
	"github.com/nemogoc/pickup/internal/models"
)

const instrumentationName = "github.com/nemogoc/pickup"

// Setup installs a batching OTLP/HTTP tracer provider when cfg.Endpoint is set.
// The returned shutdown flushes pending spans and should be deferred.
func Setup(ctx context.Context, cfg config.OtelConfig) (shutdown func(context.Context) error, err error) {
	noop := func(context.Context) error { return nil }
	if cfg.Endpoint == "" {
		return noop, nil
	}

	exporter, err := otlptracehttp.New(ctx, otlptracehttp.WithEndpointURL(cfg.Endpoint))
	if err != nil {
		return noop, err
	}

	res, err := resource.New(ctx, resource.WithAttributes(semconv.ServiceName(cfg.ServiceName)))
	if err != nil {
		return noop, err
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.TraceContext{})

	return tp.Shutdown, nil
}

// Start opens a span on the global provider.
func Start(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return otel.Tracer(instrumentationName).Start(ctx, name, trace.WithAttributes(attrs...))
}

// End records err on span, if any, and ends it. Not-found and validation
// errors are expected outcomes and leave the span status unset.
func End(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		if !errors.Is(err, models.ErrNotFound) && !models.IsValidation(err) {
			span.SetStatus(codes.Error, err.Error())
		}
	}
	span.End()
}
