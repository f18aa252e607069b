package otel

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/naandi/platform/internal/domain"
)

// TracingPublisher wraps a domain.EventPublisher with OpenTelemetry
// tracing, one span per fanout call.
type TracingPublisher struct {
	next   domain.EventPublisher
	tracer trace.Tracer
}

// Compile-time check: TracingPublisher implements domain.EventPublisher.
var _ domain.EventPublisher = (*TracingPublisher)(nil)

// NewTracingPublisher creates a tracing decorator around the given publisher.
func NewTracingPublisher(next domain.EventPublisher) *TracingPublisher {
	return &TracingPublisher{
		next:   next,
		tracer: otel.Tracer(tracerName),
	}
}

func (p *TracingPublisher) PublishToAdmins(ctx context.Context, event string, payload any) {
	ctx, span := p.tracer.Start(ctx, "EventPublisher.PublishToAdmins",
		trace.WithAttributes(attribute.String("event.name", event)),
	)
	defer span.End()

	p.next.PublishToAdmins(ctx, event, payload)
}

func (p *TracingPublisher) PublishToVendor(ctx context.Context, vendorID, event string, payload any) {
	ctx, span := p.tracer.Start(ctx, "EventPublisher.PublishToVendor",
		trace.WithAttributes(
			attribute.String("event.name", event),
			attribute.String("vendor.id", vendorID),
		),
	)
	defer span.End()

	p.next.PublishToVendor(ctx, vendorID, event, payload)
}

func (p *TracingPublisher) PublishGlobal(ctx context.Context, event string, payload any) {
	ctx, span := p.tracer.Start(ctx, "EventPublisher.PublishGlobal",
		trace.WithAttributes(attribute.String("event.name", event)),
	)
	defer span.End()

	p.next.PublishGlobal(ctx, event, payload)
}
