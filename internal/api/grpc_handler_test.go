package api

import (
	"context"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
	"google.golang.org/protobuf/types/known/structpb"

	"platform-adapter-service/internal/adapter"
)

func newTestGRPCClient(t *testing.T) *grpc.ClientConn {
	t.Helper()
	lis := bufconn.Listen(1 << 20)

	s := grpc.NewServer(grpc.ChainUnaryInterceptor(UserIDUnaryInterceptor, LoggingUnaryInterceptor(zap.NewNop())))
	RegisterProductAdapterServer(s, NewGRPCHandler(NewService(nil, adapter.Deps{}), nil))
	go func() { _ = s.Serve(lis) }()
	t.Cleanup(s.Stop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func invoke(t *testing.T, conn *grpc.ClientConn, method string, req map[string]interface{}) (*structpb.Struct, error) {
	t.Helper()
	in, err := structpb.NewStruct(req)
	require.NoError(t, err)
	out := new(structpb.Struct)
	err = conn.Invoke(context.Background(), "/"+ProductAdapterServiceName+"/"+method, in, out)
	return out, err
}

func TestGRPCHandler_Adapt(t *testing.T) {
	conn := newTestGRPCClient(t)

	out, err := invoke(t, conn, "Adapt", map[string]interface{}{
		"platform": "etsy",
		"product": map[string]interface{}{
			"name":        "A very short title",
			"description": "xxxxx",
			"price":       -5,
			"currency":    "XYZ",
		},
	})
	require.NoError(t, err)

	result := out.AsMap()
	assert.Equal(t, false, result["is_valid"])
	adapted, ok := result["adapted"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "EUR", adapted["currency"])
	assert.NotEmpty(t, result["errors"])
}

func TestGRPCHandler_AdaptResolve(t *testing.T) {
	conn := newTestGRPCClient(t)

	out, err := invoke(t, conn, "Adapt", map[string]interface{}{
		"platform": "Amazon",
		"resolve":  true,
		"product":  amazonProduct(),
	})
	require.NoError(t, err)

	result := out.AsMap()
	assert.Equal(t, true, result["is_valid"], "errors: %v", result["errors"])
	adapted := result["adapted"].(map[string]interface{})
	assert.Equal(t, "Electronics", adapted["browse_node"])
}

func TestGRPCHandler_Validate(t *testing.T) {
	conn := newTestGRPCClient(t)

	out, err := invoke(t, conn, "Validate", map[string]interface{}{
		"platform": "etsy",
		"product":  map[string]interface{}{"name": "Mug"},
	})
	require.NoError(t, err)
	assert.Equal(t, false, out.AsMap()["is_valid"])
}

func TestGRPCHandler_MatchCategory(t *testing.T) {
	conn := newTestGRPCClient(t)

	out, err := invoke(t, conn, "MatchCategory", map[string]interface{}{
		"platform":        "amazon",
		"source_category": "Electronics",
	})
	require.NoError(t, err)
	assert.Equal(t, "Electronics", out.AsMap()["category"])
	assert.Equal(t, 1.0, out.AsMap()["confidence"])
}

func TestGRPCHandler_Errors(t *testing.T) {
	conn := newTestGRPCClient(t)

	tests := []struct {
		name   string
		method string
		req    map[string]interface{}
		code   codes.Code
	}{
		{"missing platform", "Adapt", map[string]interface{}{"product": map[string]interface{}{}}, codes.InvalidArgument},
		{"product not an object", "Validate", map[string]interface{}{"platform": "etsy", "product": "mug"}, codes.InvalidArgument},
		{"unknown platform", "Adapt", map[string]interface{}{"platform": "myspace", "product": map[string]interface{}{}}, codes.NotFound},
		{"missing source category", "MatchCategory", map[string]interface{}{"platform": "amazon"}, codes.InvalidArgument},
		{"unknown platform match", "MatchCategory", map[string]interface{}{"platform": "myspace", "source_category": "Books"}, codes.NotFound},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := invoke(t, conn, tc.method, tc.req)
			require.Error(t, err)
			assert.Equal(t, tc.code, status.Code(err))
		})
	}
}
