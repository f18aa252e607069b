package otel

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/naandi/platform/internal/domain"
)

const tracerName = "github.com/naandi/platform/internal/adapter/otel"

// TracingVendorRepository wraps a domain.VendorRepository with
// OpenTelemetry tracing. Each method creates a span with semantic
// attributes and records errors.
type TracingVendorRepository struct {
	next   domain.VendorRepository
	tracer trace.Tracer
}

// Compile-time check: TracingVendorRepository implements domain.VendorRepository.
var _ domain.VendorRepository = (*TracingVendorRepository)(nil)

// NewTracingVendorRepository creates a tracing decorator around the
// given repository.
func NewTracingVendorRepository(next domain.VendorRepository) *TracingVendorRepository {
	return &TracingVendorRepository{
		next:   next,
		tracer: otel.Tracer(tracerName),
	}
}

func (r *TracingVendorRepository) Create(ctx context.Context, vendor domain.Vendor) error {
	ctx, span := r.tracer.Start(ctx, "VendorRepository.Create",
		trace.WithAttributes(
			attribute.String("vendor.id", vendor.ID),
			attribute.String("vendor.status", string(vendor.Status)),
		),
	)
	defer span.End()

	err := r.next.Create(ctx, vendor)
	recordError(span, err)
	return err
}

func (r *TracingVendorRepository) GetByID(ctx context.Context, id string) (domain.Vendor, error) {
	ctx, span := r.tracer.Start(ctx, "VendorRepository.GetByID",
		trace.WithAttributes(attribute.String("vendor.id", id)),
	)
	defer span.End()

	vendor, err := r.next.GetByID(ctx, id)
	recordError(span, err)
	return vendor, err
}

func (r *TracingVendorRepository) GetByEmail(ctx context.Context, email string) (domain.Vendor, error) {
	ctx, span := r.tracer.Start(ctx, "VendorRepository.GetByEmail")
	defer span.End()

	vendor, err := r.next.GetByEmail(ctx, email)
	recordError(span, err)
	return vendor, err
}

func (r *TracingVendorRepository) GetByMobile(ctx context.Context, mobile string) (domain.Vendor, error) {
	ctx, span := r.tracer.Start(ctx, "VendorRepository.GetByMobile")
	defer span.End()

	vendor, err := r.next.GetByMobile(ctx, mobile)
	recordError(span, err)
	return vendor, err
}

func (r *TracingVendorRepository) List(ctx context.Context, filter domain.VendorFilter) ([]domain.Vendor, error) {
	ctx, span := r.tracer.Start(ctx, "VendorRepository.List")
	defer span.End()

	if filter.Status != nil {
		span.SetAttributes(attribute.String("filter.status", string(*filter.Status)))
	}

	vendors, err := r.next.List(ctx, filter)
	if err == nil {
		span.SetAttributes(attribute.Int("result.count", len(vendors)))
	}
	recordError(span, err)
	return vendors, err
}

func (r *TracingVendorRepository) Update(ctx context.Context, vendor domain.Vendor) error {
	ctx, span := r.tracer.Start(ctx, "VendorRepository.Update",
		trace.WithAttributes(
			attribute.String("vendor.id", vendor.ID),
			attribute.String("vendor.status", string(vendor.Status)),
		),
	)
	defer span.End()

	err := r.next.Update(ctx, vendor)
	recordError(span, err)
	return err
}

func (r *TracingVendorRepository) Delete(ctx context.Context, id string) error {
	ctx, span := r.tracer.Start(ctx, "VendorRepository.Delete",
		trace.WithAttributes(attribute.String("vendor.id", id)),
	)
	defer span.End()

	err := r.next.Delete(ctx, id)
	recordError(span, err)
	return err
}

func recordError(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
}
