package otel

import (
	"context"
	"sync"

	callid "github.com/hanpama/typegraph/internal/callid"
	eventbus "github.com/hanpama/typegraph/internal/eventbus"
	events "github.com/hanpama/typegraph/internal/events"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.17.0"
	"go.opentelemetry.io/otel/trace"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

// Setup configures OpenTelemetry and attaches eventbus subscribers.
// If endpoint is empty, no telemetry is configured.
func Setup(endpoint, service string) (func(context.Context) error, error) {
	if endpoint == "" {
		return func(context.Context) error { return nil }, nil
	}
	exp, err := otlptracegrpc.New(context.Background(),
		otlptracegrpc.WithEndpoint(endpoint),
		otlptracegrpc.WithDialOption(grpc.WithTransportCredentials(insecure.NewCredentials())))
	if err != nil {
		return nil, err
	}
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exp),
		sdktrace.WithResource(resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceName(service),
		)),
	)
	otel.SetTracerProvider(tp)

	sub := &subscriber{tracer: otel.Tracer("typegraph")}
	sub.register()

	return tp.Shutdown, nil
}

type subscriber struct {
	tracer   trace.Tracer
	docSpans sync.Map // call id -> trace.Span
}

func (s *subscriber) register() {
	eventbus.Subscribe(func(ctx context.Context, e events.DocumentStart) {
		cid, _ := callid.FromContext(ctx)
		_, span := s.tracer.Start(ctx, "typegraph.document")
		span.SetAttributes(
			attribute.String("typegraph.document.name", e.Name),
			attribute.String("typegraph.document.kind", string(e.Kind)),
			attribute.Int("typegraph.document.definitions", e.Definitions),
			attribute.String("typegraph.call_id", cid.String()),
		)
		s.docSpans.Store(cid, span)
	})

	eventbus.Subscribe(func(ctx context.Context, e events.ExtensionApplied) {
		cid, _ := callid.FromContext(ctx)
		v, ok := s.docSpans.Load(cid)
		if !ok {
			return
		}
		v.(trace.Span).AddEvent("typegraph.extension", trace.WithAttributes(
			attribute.String("typegraph.type", e.TypeName),
			attribute.Int("typegraph.directives", e.Directives),
		))
	})

	eventbus.Subscribe(func(ctx context.Context, e events.DocumentFinish) {
		cid, _ := callid.FromContext(ctx)
		v, ok := s.docSpans.LoadAndDelete(cid)
		if !ok {
			return
		}
		span := v.(trace.Span)
		if e.Err != nil {
			span.RecordError(e.Err)
			span.SetStatus(codes.Error, e.Err.Error())
		}
		span.End()
	})
}
