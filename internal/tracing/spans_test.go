package tracing

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func newRecorder() (*tracetest.SpanRecorder, *sdktrace.TracerProvider) {
	recorder := tracetest.NewSpanRecorder()
	return recorder, sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
}

func attrValue(span sdktrace.ReadOnlySpan, key string) (attribute.Value, bool) {
	for _, kv := range span.Attributes() {
		if string(kv.Key) == key {
			return kv.Value, true
		}
	}
	return attribute.Value{}, false
}

func TestStartWorkflow_NamesAndTagsSpan(t *testing.T) {
	recorder, tp := newRecorder()

	ctx, span := StartWorkflow(context.Background(), tp.Tracer("test"), "transfer",
		attribute.String(AttrPlateKey, "34ABC123"),
		attribute.String(AttrPlateID, "p1"),
	)
	Mutation(ctx, "blacklist", "put")
	FinishWorkflow(span, "success", nil)

	ended := recorder.Ended()
	require.Len(t, ended, 1)
	got := ended[0]
	require.Equal(t, "registry.transfer", got.Name())
	require.Equal(t, codes.Ok, got.Status().Code)

	key, ok := attrValue(got, AttrPlateKey)
	require.True(t, ok)
	require.Equal(t, "34ABC123", key.AsString())
	outcome, ok := attrValue(got, AttrOutcome)
	require.True(t, ok)
	require.Equal(t, "success", outcome.AsString())

	require.Len(t, got.Events(), 1)
	require.Equal(t, EventStoreMutation, got.Events()[0].Name)
}

func TestFinishWorkflow_RecordsError(t *testing.T) {
	recorder, tp := newRecorder()

	_, span := StartWorkflow(context.Background(), tp.Tracer("test"), "register")
	FinishWorkflow(span, "partial", errors.New("database is locked"))

	got := recorder.Ended()[0]
	require.Equal(t, codes.Error, got.Status().Code)
	require.Equal(t, "database is locked", got.Status().Description)
	require.NotEmpty(t, got.Events(), "error should be recorded as an event")
}

func TestStartWorkflow_NilTracer(t *testing.T) {
	ctx, span := StartWorkflow(context.Background(), nil, "delete")
	require.NotNil(t, ctx)
	FinishWorkflow(span, "success", nil)
}
