package tracing

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// Span attribute keys.
const (
	AttrPlateKey   = "plate.key"
	AttrPlateID    = "plate.id"
	AttrOutcome    = "workflow.outcome"
	AttrDecision   = "gate.decision"
	AttrCollection = "store.collection"
)

// SpanPrefixRegistry prefixes every workflow span, e.g. "registry.register".
const SpanPrefixRegistry = "registry."

// Span events.
const (
	EventGateAsked        = "gate.asked"
	EventStoreMutation    = "store.mutation"
	EventCleanupFailed    = "cleanup.failed"
	EventPartialTransfer  = "transfer.partial"
	EventBlacklistMatched = "blacklist.matched"
)

// StartWorkflow opens the span for one workflow invocation. A nil tracer
// yields a non-recording span.
func StartWorkflow(ctx context.Context, tracer trace.Tracer, op string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	if tracer == nil {
		tracer = noop.NewTracerProvider().Tracer("noop")
	}
	return tracer.Start(ctx, SpanPrefixRegistry+op,
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(attrs...),
	)
}

// FinishWorkflow records the outcome and error on span and ends it.
func FinishWorkflow(span trace.Span, outcome string, err error) {
	span.SetAttributes(attribute.String(AttrOutcome, outcome))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}

// Mutation adds a store mutation event to the span in ctx.
func Mutation(ctx context.Context, collection, op string) {
	trace.SpanFromContext(ctx).AddEvent(EventStoreMutation, trace.WithAttributes(
		attribute.String(AttrCollection, collection),
		attribute.String("store.op", op),
	))
}
