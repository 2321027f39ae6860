package client

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

// requestIDHeader carries the id logged for each Solr call.
const requestIDHeader = "X-Request-ID"

// startSpan opens the client span wrapping one Solr call.
func (c *Client) startSpan(ctx context.Context, r request) (context.Context, trace.Span) {
	ctx, span := c.tracer.Start(ctx, "solr."+r.handler, trace.WithSpanKind(trace.SpanKindClient))
	span.SetAttributes(
		attribute.String("solr.core", c.cfg.Core),
		attribute.String("solr.handler", r.handler),
		attribute.String("http.method", r.method),
	)

	return ctx, span
}

// injectHeaders writes the trace context and request id into h,
// returning the request id.
func injectHeaders(ctx context.Context, span trace.Span, h http.Header) string {
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(h))

	id := requestID(span)
	h.Set(requestIDHeader, id)

	return id
}

// requestID is the span's trace id, or a random uuid when the span
// carries no valid trace.
func requestID(span trace.Span) string {
	traceID := span.SpanContext().TraceID()
	if !traceID.IsValid() {
		return uuid.New().String()
	}

	return traceID.String()
}

func recordFailure(span trace.Span, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}
