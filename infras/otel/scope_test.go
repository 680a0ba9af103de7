package otel_test

import (
	"context"
	"errors"
	"hotel/infras/otel"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestScope_RecordsAttributesAndErrors(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))

	_, span := provider.Tracer("service").Start(context.Background(), "service.CreateBooking")
	scope := otel.NewScope(span)

	scope.SetAttributes(map[string]any{
		"room.id":   "room-1",
		"guests":    2,
		"nights":    int64(3),
		"price":     149.5,
		"available": true,
		"amenities": []string{"wifi", "tv"},
	})
	scope.AddEvent("room locked")
	scope.TraceIfError(nil)
	traceBooking(scope)
	scope.End()

	spans := recorder.Ended()
	require.Len(t, spans, 1)

	ended := spans[0]
	assert.Equal(t, "service.CreateBooking", ended.Name())
	assert.Equal(t, codes.Error, ended.Status().Code)
	assert.Equal(t, "Room is already booked for these dates", ended.Status().Description)
	assert.Contains(t, ended.Attributes(), attribute.String("room.id", "room-1"))
	assert.Contains(t, ended.Attributes(), attribute.Int("guests", 2))
	assert.Contains(t, ended.Attributes(), attribute.Int64("nights", 3))
	assert.Contains(t, ended.Attributes(), attribute.Float64("price", 149.5))
	assert.Contains(t, ended.Attributes(), attribute.Bool("available", true))
	assert.Contains(t, ended.Attributes(), attribute.StringSlice("amenities", []string{"wifi", "tv"}))

	events := ended.Events()
	require.NotEmpty(t, events)
	assert.Equal(t, "room locked", events[0].Name)
}

func traceBooking(scope otel.Scope) (err error) {
	defer scope.TraceIfError(&err)

	return errors.New("Room is already booked for these dates")
}

func TestScope_TraceIfErrorSkipsSuccess(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))

	_, span := provider.Tracer("service").Start(context.Background(), "service.GetRoom")
	scope := otel.NewScope(span)

	var err error
	scope.TraceIfError(&err)
	scope.End()

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, codes.Unset, spans[0].Status().Code)
	assert.Empty(t, spans[0].Events())
}
