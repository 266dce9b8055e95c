package grpc

import (
	"context"
	"errors"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"github.com/tair/storefront/internal/catalog/domain"
	"github.com/tair/storefront/internal/catalog/usecase/query"
)

// CatalogServer implements the gRPC catalog read service
type CatalogServer struct {
	getProductHandler *query.GetProductHandler
	listHandler       *query.ListProductsHandler
}

var _ CatalogServiceServer = (*CatalogServer)(nil)

// NewCatalogServer creates a new gRPC catalog server (manual DI)
func NewCatalogServer(repo domain.ProductRepository) *CatalogServer {
	return NewCatalogServerWithDI(query.NewGetProductHandler(repo), query.NewListProductsHandler(repo))
}

// NewCatalogServerWithDI creates a new gRPC catalog server using dependency injection
func NewCatalogServerWithDI(getProductHandler *query.GetProductHandler, listHandler *query.ListProductsHandler) *CatalogServer {
	return &CatalogServer{
		getProductHandler: getProductHandler,
		listHandler:       listHandler,
	}
}

// GetProduct retrieves a product by ID
func (s *CatalogServer) GetProduct(ctx context.Context, req *wrapperspb.UInt32Value) (*structpb.Struct, error) {
	if req.GetValue() == 0 {
		return nil, status.Error(codes.InvalidArgument, "product id is required")
	}

	product, err := s.getProductHandler.Handle(ctx, query.GetProductQuery{ID: uint(req.GetValue())})
	if err != nil {
		if errors.Is(err, domain.ErrProductNotFound) {
			return nil, status.Errorf(codes.NotFound, "product not found: %v", err)
		}
		return nil, status.Errorf(codes.Internal, "failed to get product: %v", err)
	}

	return productToStruct(product), nil
}

// FilterProducts filters the catalog by category and search text
func (s *CatalogServer) FilterProducts(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	category, err := stringField(req, "category")
	if err != nil {
		return nil, err
	}
	search, err := stringField(req, "query")
	if err != nil {
		return nil, err
	}

	products := s.listHandler.Handle(ctx, query.ListProductsQuery{Category: category, Search: search})

	values := make([]*structpb.Value, len(products))
	for i, p := range products {
		values[i] = structpb.NewStructValue(productToStruct(p))
	}

	return &structpb.Struct{Fields: map[string]*structpb.Value{
		"products": structpb.NewListValue(&structpb.ListValue{Values: values}),
		"total":    structpb.NewNumberValue(float64(len(products))),
	}}, nil
}

// stringField reads an optional string field; other kinds are rejected
func stringField(req *structpb.Struct, name string) (string, error) {
	v, ok := req.GetFields()[name]
	if !ok {
		return "", nil
	}
	if _, isNull := v.GetKind().(*structpb.Value_NullValue); isNull {
		return "", nil
	}
	str, isString := v.GetKind().(*structpb.Value_StringValue)
	if !isString {
		return "", status.Errorf(codes.InvalidArgument, "%s must be a string", name)
	}
	return str.StringValue, nil
}

// productToStruct converts a domain product; prices travel as decimal strings
func productToStruct(p *domain.Product) *structpb.Struct {
	fields := map[string]*structpb.Value{
		"id":               structpb.NewNumberValue(float64(p.ID)),
		"name":             structpb.NewStringValue(p.Name),
		"category":         structpb.NewStringValue(string(p.Category)),
		"price":            structpb.NewStringValue(p.Price.StringFixed(2)),
		"description":      structpb.NewStringValue(p.Description),
		"image_url":        structpb.NewStringValue(p.ImageURL),
		"sizes":            stringList(p.Sizes),
		"colors":           stringList(p.Colors),
		"in_stock":         structpb.NewBoolValue(p.InStock),
		"featured":         structpb.NewBoolValue(p.Featured),
		"rating":           structpb.NewNumberValue(p.Rating),
		"reviews_count":    structpb.NewNumberValue(float64(p.ReviewsCount)),
		"discount_percent": structpb.NewNumberValue(float64(domain.DiscountPercent(p))),
	}
	if p.OriginalPrice != nil {
		fields["original_price"] = structpb.NewStringValue(p.OriginalPrice.StringFixed(2))
	}
	return &structpb.Struct{Fields: fields}
}

func stringList(items []string) *structpb.Value {
	values := make([]*structpb.Value, len(items))
	for i, item := range items {
		values[i] = structpb.NewStringValue(item)
	}
	return structpb.NewListValue(&structpb.ListValue{Values: values})
}
