package grpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// Wire names of the catalog read service. Messages are protobuf well-known
// types, so clients need no generated code:
//
//	GetProduct(google.protobuf.UInt32Value) returns (google.protobuf.Struct)
//	FilterProducts(google.protobuf.Struct{category, query}) returns (google.protobuf.Struct{products, total})
const (
	ServiceName              = "storefront.catalog.v1.CatalogService"
	GetProductFullMethod     = "/" + ServiceName + "/GetProduct"
	FilterProductsFullMethod = "/" + ServiceName + "/FilterProducts"
)

// CatalogServiceServer is the server API for the catalog read service
type CatalogServiceServer interface {
	GetProduct(context.Context, *wrapperspb.UInt32Value) (*structpb.Struct, error)
	FilterProducts(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

// CatalogServiceDesc describes the catalog read service for grpc.Server
var CatalogServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*CatalogServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "GetProduct", Handler: getProductHandler},
		{MethodName: "FilterProducts", Handler: filterProductsHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "storefront/catalog/v1/catalog.proto",
}

// RegisterCatalogServiceServer registers srv on s
func RegisterCatalogServiceServer(s grpc.ServiceRegistrar, srv CatalogServiceServer) {
	s.RegisterService(&CatalogServiceDesc, srv)
}

func getProductHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(wrapperspb.UInt32Value)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(CatalogServiceServer).GetProduct(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: GetProductFullMethod}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(CatalogServiceServer).GetProduct(ctx, req.(*wrapperspb.UInt32Value))
	}
	return interceptor(ctx, in, info, handler)
}

func filterProductsHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(CatalogServiceServer).FilterProducts(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: FilterProductsFullMethod}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(CatalogServiceServer).FilterProducts(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

// CatalogServiceClient calls the catalog read service over a connection
type CatalogServiceClient struct {
	cc grpc.ClientConnInterface
}

// NewCatalogServiceClient creates a client on an existing connection
func NewCatalogServiceClient(cc grpc.ClientConnInterface) *CatalogServiceClient {
	return &CatalogServiceClient{cc: cc}
}

// GetProduct fetches one product by id
func (c *CatalogServiceClient) GetProduct(ctx context.Context, id uint32, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, GetProductFullMethod, wrapperspb.UInt32(id), out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

// FilterProducts runs a category/search filter
func (c *CatalogServiceClient) FilterProducts(ctx context.Context, category, query string, opts ...grpc.CallOption) (*structpb.Struct, error) {
	in := &structpb.Struct{Fields: map[string]*structpb.Value{
		"category": structpb.NewStringValue(category),
		"query":    structpb.NewStringValue(query),
	}}
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, FilterProductsFullMethod, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
