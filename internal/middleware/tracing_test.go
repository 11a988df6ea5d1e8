package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"guildbook/internal/observability"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	oteltrace "go.opentelemetry.io/otel/trace"
)

// installTestTracer points the global tracer at an in-memory exporter so
// recorded spans can be inspected.
func installTestTracer(t *testing.T) *tracetest.InMemoryExporter {
	t.Helper()
	exporter := tracetest.NewInMemoryExporter()
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithSyncer(exporter),
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
	)

	prev := observability.Tracer
	observability.Tracer = tp.Tracer("guildbook-test")
	t.Cleanup(func() {
		observability.Tracer = prev
		_ = tp.Shutdown(context.Background())
	})
	return exporter
}

func spanAttributes(span tracetest.SpanStub) map[attribute.Key]attribute.Value {
	attrs := make(map[attribute.Key]attribute.Value, len(span.Attributes))
	for _, kv := range span.Attributes {
		attrs[kv.Key] = kv.Value
	}
	return attrs
}

func TestTracing_RecordsSpanPerRequest(t *testing.T) {
	exporter := installTestTracer(t)

	app := fiber.New()
	app.Use(Tracing())
	app.Get("/guides", func(c *fiber.Ctx) error {
		return c.SendStatus(http.StatusOK)
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/guides", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get("X-Trace-ID"))

	spans := exporter.GetSpans()
	require.Len(t, spans, 1)
	span := spans[0]
	assert.Equal(t, "GET /guides", span.Name)
	assert.Equal(t, oteltrace.SpanKindServer, span.SpanKind)

	attrs := spanAttributes(span)
	assert.Equal(t, "GET", attrs["http.method"].AsString())
	assert.Equal(t, "/guides", attrs["http.path"].AsString())
	assert.Equal(t, int64(http.StatusOK), attrs["http.status_code"].AsInt64())

	// The trace ID in the response header must match the recorded span.
	assert.Equal(t, span.SpanContext.TraceID().String(), resp.Header.Get("X-Trace-ID"))
}

func TestTracing_RecordsIdentityAfterAuth(t *testing.T) {
	exporter := installTestTracer(t)

	app := fiber.New()
	app.Use(Tracing())
	app.Get("/guides", func(c *fiber.Ctx) error {
		c.Locals(LocalIdentity, "Jaina")
		return c.SendStatus(http.StatusOK)
	})

	_, err := app.Test(httptest.NewRequest(http.MethodGet, "/guides", nil))
	require.NoError(t, err)

	spans := exporter.GetSpans()
	require.Len(t, spans, 1)
	attrs := spanAttributes(spans[0])
	assert.Equal(t, "Jaina", attrs["identity"].AsString())
}
