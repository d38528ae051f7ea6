package grpc

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/Harshinireddy05/DayntTech/internal/logging"
	"github.com/Harshinireddy05/DayntTech/internal/server/auth"
	"github.com/Harshinireddy05/DayntTech/internal/server/password"
	"github.com/Harshinireddy05/DayntTech/internal/server/repositories/memory"
	"github.com/Harshinireddy05/DayntTech/internal/server/services"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/test/bufconn"
)

var testNow = time.Date(2024, time.June, 15, 12, 0, 0, 0, time.UTC)

func newTestServer(t *testing.T) *GRPCServer {
	t.Helper()
	store := memory.New()
	cost := 4
	users := services.NewUserService(store, password.NewBcryptHasher(&cost), auth.NewIssuer("grpc-secret", time.Hour), logging.Nop())
	people := services.NewPeopleService(store, logging.Nop(), true).WithClock(func() time.Time { return testNow })
	return NewGRPCServer("127.0.0.1:0", logging.Nop(), users, people)
}

// dialTestServer serves s over an in-memory listener and returns a client.
func dialTestServer(t *testing.T, s *GRPCServer) *Client {
	t.Helper()
	lis := bufconn.Listen(1 << 20)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Serve(ctx, lis) }()

	cc, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = cc.Close()
		cancel()
		<-done
	})
	return NewClient(cc)
}

func TestRun_StopsOnContextCancel(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- srv.Run(ctx)
	}()

	select {
	case err := <-done:
		t.Fatalf("server exited too early: %v", err)
	case <-time.After(150 * time.Millisecond):
	}

	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("server did not stop within timeout after context cancel")
	}
}

func TestRun_ReturnsErrorOnBadAddress(t *testing.T) {
	t.Parallel()

	srv := NewGRPCServer("127.0.0.1:99999", logging.Nop(), nil, nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	require.Error(t, srv.Run(ctx))
}
