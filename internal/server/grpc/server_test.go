package grpc

import (
	"context"
	"net"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/test/bufconn"

	"github.com/sentiric/sentiric-numbering-service/internal/config"
)

func TestHealthLifecycle(t *testing.T) {
	srv, hs, err := NewServer(config.TLSConfig{}, zerolog.Nop())
	require.NoError(t, err)

	lis := bufconn.Listen(1 << 20)
	go func() { _ = srv.Serve(lis) }()
	t.Cleanup(srv.Stop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	client := healthpb.NewHealthClient(conn)
	ctx := context.Background()

	resp, err := client.Check(ctx, &healthpb.HealthCheckRequest{Service: ServiceName})
	require.NoError(t, err)
	assert.Equal(t, healthpb.HealthCheckResponse_NOT_SERVING, resp.GetStatus())

	SetServing(hs, true)
	resp, err = client.Check(ctx, &healthpb.HealthCheckRequest{})
	require.NoError(t, err)
	assert.Equal(t, healthpb.HealthCheckResponse_SERVING, resp.GetStatus())
}

func TestNewServerTLSErrors(t *testing.T) {
	_, _, err := NewServer(config.TLSConfig{
		CertPath: "/yok/cert.pem",
		KeyPath:  "/yok/key.pem",
		CaPath:   "/yok/ca.pem",
	}, zerolog.Nop())
	assert.Error(t, err)
}

func TestUnaryTraceInterceptor(t *testing.T) {
	intercept := UnaryTraceInterceptor(zerolog.Nop())
	info := &grpc.UnaryServerInfo{FullMethod: "/test/Method"}

	var seen string
	handler := func(ctx context.Context, _ any) (any, error) {
		seen = TraceID(ctx)
		return "ok", nil
	}

	ctx := metadata.NewIncomingContext(context.Background(), metadata.Pairs("x-trace-id", "abc-123"))
	resp, err := intercept(ctx, nil, info, handler)
	require.NoError(t, err)
	assert.Equal(t, "ok", resp)
	assert.Equal(t, "abc-123", seen)

	_, err = intercept(context.Background(), nil, info, handler)
	require.NoError(t, err)
	assert.Equal(t, "unknown", seen)
}
