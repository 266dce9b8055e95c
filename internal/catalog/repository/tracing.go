package repository

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/tair/storefront/internal/catalog/domain"
)

var tracer = otel.Tracer("catalog-repository")

// TracingProductRepository wraps a ProductRepository with spans
type TracingProductRepository struct {
	next domain.ProductRepository
}

// NewTracingProductRepository creates a new repository with tracing
func NewTracingProductRepository(next domain.ProductRepository) *TracingProductRepository {
	return &TracingProductRepository{next: next}
}

// FindAll with tracing
func (r *TracingProductRepository) FindAll(ctx context.Context) []*domain.Product {
	ctx, span := tracer.Start(ctx, "repository.FindAll")
	defer span.End()

	products := r.next.FindAll(ctx)
	span.SetAttributes(attribute.Int("catalog.result_count", len(products)))
	return products
}

// FindByID with tracing
func (r *TracingProductRepository) FindByID(ctx context.Context, id uint) (*domain.Product, error) {
	ctx, span := tracer.Start(ctx, "repository.FindByID",
		trace.WithAttributes(
			attribute.Int("product.id", int(id)),
		),
	)
	defer span.End()

	product, err := r.next.FindByID(ctx, id)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	span.SetAttributes(
		attribute.String("product.name", product.Name),
		attribute.String("product.category", string(product.Category)),
	)
	return product, nil
}

// Filter with tracing
func (r *TracingProductRepository) Filter(ctx context.Context, category domain.Category, query string) []*domain.Product {
	ctx, span := tracer.Start(ctx, "repository.Filter",
		trace.WithAttributes(
			attribute.String("catalog.category", string(category)),
			attribute.String("catalog.query", query),
		),
	)
	defer span.End()

	products := r.next.Filter(ctx, category, query)
	span.SetAttributes(attribute.Int("catalog.result_count", len(products)))
	return products
}

func (r *TracingProductRepository) Count() int {
	return r.next.Count()
}
