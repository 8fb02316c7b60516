package api

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	"platform-adapter-service/internal/domain"
)

// ProductAdapterServiceName is the fully qualified gRPC service name.
const ProductAdapterServiceName = "adapter.v1.ProductAdapterService"

// ProductAdapterServer is the gRPC surface of the adapter. Requests and responses are
// google.protobuf.Struct documents carrying the same JSON shapes as the HTTP API:
//
//	Adapt:         {platform, product, resolve?} -> AdaptedProduct
//	Validate:      {platform, product}           -> ValidationResult
//	MatchCategory: {platform, source_category}   -> {category, confidence}
type ProductAdapterServer interface {
	Adapt(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
	Validate(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
	MatchCategory(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
}

type unaryCall func(srv ProductAdapterServer, ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)

func unaryHandler(method string, call unaryCall) func(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	return func(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
		in := new(structpb.Struct)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(ProductAdapterServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/" + ProductAdapterServiceName + "/" + method}
		handler := func(ctx context.Context, req interface{}) (interface{}, error) {
			return call(srv.(ProductAdapterServer), ctx, req.(*structpb.Struct))
		}
		return interceptor(ctx, in, info, handler)
	}
}

// ProductAdapterServiceDesc describes ProductAdapterServer for grpc.Server.RegisterService.
var ProductAdapterServiceDesc = grpc.ServiceDesc{
	ServiceName: ProductAdapterServiceName,
	HandlerType: (*ProductAdapterServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Adapt", Handler: unaryHandler("Adapt", ProductAdapterServer.Adapt)},
		{MethodName: "Validate", Handler: unaryHandler("Validate", ProductAdapterServer.Validate)},
		{MethodName: "MatchCategory", Handler: unaryHandler("MatchCategory", ProductAdapterServer.MatchCategory)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "adapter/v1/adapter.proto",
}

// RegisterProductAdapterServer registers srv on s.
func RegisterProductAdapterServer(s grpc.ServiceRegistrar, srv ProductAdapterServer) {
	s.RegisterService(&ProductAdapterServiceDesc, srv)
}

// GRPCHandler implements ProductAdapterServer.
type GRPCHandler struct {
	service *Service
	logger  *zap.Logger
}

// NewGRPCHandler creates a new GRPCHandler.
func NewGRPCHandler(service *Service, logger *zap.Logger) *GRPCHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GRPCHandler{service: service, logger: logger}
}

// --- Helpers ---

func mapServiceErrorToGrpcStatus(err error) error {
	if errors.Is(err, ErrUnknownPlatform) {
		return status.Error(codes.NotFound, err.Error())
	}
	return status.Errorf(codes.Internal, "request failed: %v", err)
}

func requiredString(req *structpb.Struct, field string) (string, error) {
	v, ok := req.GetFields()[field]
	if !ok {
		return "", status.Errorf(codes.InvalidArgument, "%s is required", field)
	}
	s, ok := v.GetKind().(*structpb.Value_StringValue)
	if !ok || s.StringValue == "" {
		return "", status.Errorf(codes.InvalidArgument, "%s must be a non-empty string", field)
	}
	return s.StringValue, nil
}

func productOf(req *structpb.Struct) (domain.Product, error) {
	v, ok := req.GetFields()["product"]
	if !ok || v.GetStructValue() == nil {
		return nil, status.Error(codes.InvalidArgument, "product must be an object")
	}
	return domain.Product(v.GetStructValue().AsMap()), nil
}

// toStruct converts a JSON-tagged response value into a Struct, so both transports
// expose identical field names.
func toStruct(v interface{}) (*structpb.Struct, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "failed to encode response: %v", err)
	}
	var m map[string]interface{}
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, status.Errorf(codes.Internal, "failed to encode response: %v", err)
	}
	out, err := structpb.NewStruct(m)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "failed to encode response: %v", err)
	}
	return out, nil
}

// --- Methods ---

func (h *GRPCHandler) Adapt(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	platformID, err := requiredString(req, "platform")
	if err != nil {
		return nil, err
	}
	product, err := productOf(req)
	if err != nil {
		return nil, err
	}
	a, err := h.service.Adapter(platformID)
	if err != nil {
		return nil, mapServiceErrorToGrpcStatus(err)
	}

	var result *domain.AdaptedProduct
	if req.GetFields()["resolve"].GetBoolValue() {
		result = a.AdaptAsync(ctx, product)
	} else {
		result = a.Adapt(product)
	}
	return toStruct(result)
}

func (h *GRPCHandler) Validate(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	platformID, err := requiredString(req, "platform")
	if err != nil {
		return nil, err
	}
	product, err := productOf(req)
	if err != nil {
		return nil, err
	}
	a, err := h.service.Adapter(platformID)
	if err != nil {
		return nil, mapServiceErrorToGrpcStatus(err)
	}
	return toStruct(a.Validate(product))
}

func (h *GRPCHandler) MatchCategory(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	platformID, err := requiredString(req, "platform")
	if err != nil {
		return nil, err
	}
	source, err := requiredString(req, "source_category")
	if err != nil {
		return nil, err
	}
	match, err := h.service.MatchCategory(platformID, source)
	if err != nil {
		return nil, mapServiceErrorToGrpcStatus(err)
	}
	return toStruct(match)
}

// --- Interceptors ---

// UserIDUnaryInterceptor copies the x-user-id metadata entry into the request context.
func UserIDUnaryInterceptor(ctx context.Context, req interface{}, _ *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
	if md, ok := metadata.FromIncomingContext(ctx); ok {
		if ids := md.Get("x-user-id"); len(ids) > 0 && ids[0] != "" {
			ctx = domain.ContextWithUserID(ctx, ids[0])
		}
	}
	return handler(ctx, req)
}

// LoggingUnaryInterceptor logs every unary call with its status code and duration.
func LoggingUnaryInterceptor(logger *zap.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
		start := time.Now()
		resp, err := handler(ctx, req)
		fields := []zap.Field{
			zap.String("method", info.FullMethod),
			zap.String("code", status.Code(err).String()),
			zap.Duration("duration", time.Since(start)),
		}
		if err != nil {
			logger.Warn("gRPC request failed", append(fields, zap.Error(err))...)
		} else {
			logger.Debug("gRPC request served", fields...)
		}
		return resp, err
	}
}
