package grpc_test

import (
	"context"
	"errors"
	"net"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/test/bufconn"

	hpgrpc "github.com/hpfoods/hpfoods-api/pkg/grpc"
)

func start(t *testing.T) (*hpgrpc.Server, grpc_health_v1.HealthClient) {
	t.Helper()
	lis := bufconn.Listen(1 << 20)
	srv := hpgrpc.New()
	go srv.Serve(lis)
	t.Cleanup(srv.Stop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return srv, grpc_health_v1.NewHealthClient(conn)
}

func status(c grpc_health_v1.HealthClient) grpc_health_v1.HealthCheckResponse_ServingStatus {
	resp, err := c.Check(context.Background(), &grpc_health_v1.HealthCheckRequest{})
	if err != nil {
		return grpc_health_v1.HealthCheckResponse_UNKNOWN
	}
	return resp.GetStatus()
}

func TestHealthStartsNotServing(t *testing.T) {
	srv, client := start(t)
	assert.Equal(t, grpc_health_v1.HealthCheckResponse_NOT_SERVING, status(client))

	srv.SetServing("", true)
	assert.Equal(t, grpc_health_v1.HealthCheckResponse_SERVING, status(client))
}

func TestWatchFollowsProbe(t *testing.T) {
	srv, client := start(t)

	var healthy atomic.Bool
	healthy.Store(true)
	probe := func(context.Context) error {
		if healthy.Load() {
			return nil
		}
		return errors.New("database down")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go srv.Watch(ctx, 20*time.Millisecond, probe)

	require.Eventually(t, func() bool {
		return status(client) == grpc_health_v1.HealthCheckResponse_SERVING
	}, time.Second, 10*time.Millisecond)

	healthy.Store(false)
	assert.Eventually(t, func() bool {
		return status(client) == grpc_health_v1.HealthCheckResponse_NOT_SERVING
	}, time.Second, 10*time.Millisecond)
}
