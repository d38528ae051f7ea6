package server

import (
	"bytes"
	"context"
	"errors"
	"net"
	"testing"
	"time"

	"github.com/Harshinireddy05/DayntTech/internal/logging"
	"github.com/Harshinireddy05/DayntTech/internal/server/config"
	"github.com/Harshinireddy05/DayntTech/internal/server/repositories"
	"github.com/Harshinireddy05/DayntTech/internal/server/repositories/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type closeCountingStore struct {
	*memory.Store
	closed int
}

func (s *closeCountingStore) Close() error {
	s.closed++
	return nil
}

type failingCloseStore struct {
	*memory.Store
	err error
}

func (s *failingCloseStore) Close() error { return s.err }

func testConfig() *config.Config {
	c := &config.Config{}
	c.LoadDefaults()
	c.HTTPAddr = "127.0.0.1:0"
	c.GRPCAddr = "127.0.0.1:0"
	c.PasswordHasher = "bcrypt"
	return c
}

func withStore(t *testing.T, s repositories.Store, err error) {
	t.Helper()
	orig := openStore
	openStore = func(context.Context, *config.Config, logging.Logger) (repositories.Store, error) {
		return s, err
	}
	t.Cleanup(func() { openStore = orig })
}

func TestNewApp_GeneratesSecretWhenEmpty(t *testing.T) {
	withStore(t, memory.New(), nil)
	var logs bytes.Buffer

	app, err := NewApp(context.Background(), testConfig(), &logs)
	require.NoError(t, err)
	assert.NotNil(t, app.userService)
	assert.NotNil(t, app.peopleService)
	assert.Contains(t, logs.String(), "no secret key configured")
}

func TestNewApp_Errors(t *testing.T) {
	t.Run("unknown hasher", func(t *testing.T) {
		withStore(t, memory.New(), nil)
		c := testConfig()
		c.PasswordHasher = "md5"
		_, err := NewApp(context.Background(), c, &bytes.Buffer{})
		require.Error(t, err)
	})

	t.Run("storage", func(t *testing.T) {
		boom := errors.New("boom")
		withStore(t, nil, boom)
		_, err := NewApp(context.Background(), testConfig(), &bytes.Buffer{})
		require.ErrorIs(t, err, boom)
	})
}

func TestApp_RunStopsOnCancelAndClosesStore(t *testing.T) {
	store := &closeCountingStore{Store: memory.New()}
	withStore(t, store, nil)

	c := testConfig()
	c.SecretKey = "s"
	app, err := NewApp(context.Background(), c, &bytes.Buffer{})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- app.Run(ctx) }()

	time.Sleep(100 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(15 * time.Second):
		t.Fatal("app did not stop")
	}
	assert.Equal(t, 1, store.closed)
}

func TestApp_RunStopsWhenAServerFails(t *testing.T) {
	withStore(t, memory.New(), nil)

	c := testConfig()
	c.SecretKey = "s"
	c.GRPCAddr = "127.0.0.1:99999"
	app, err := NewApp(context.Background(), c, &bytes.Buffer{})
	require.NoError(t, err)

	done := make(chan error, 1)
	go func() { done <- app.Run(context.Background()) }()

	select {
	case err := <-done:
		require.Error(t, err)
		assert.Contains(t, err.Error(), "grpc server")
	case <-time.After(15 * time.Second):
		t.Fatal("app did not stop after a server failed")
	}
}

func TestApp_RunReturnsErrorWhenHTTPPortIsTaken(t *testing.T) {
	lis, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	t.Cleanup(func() { lis.Close() })

	store := &closeCountingStore{Store: memory.New()}
	withStore(t, store, nil)

	c := testConfig()
	c.SecretKey = "s"
	c.HTTPAddr = lis.Addr().String()
	app, err := NewApp(context.Background(), c, &bytes.Buffer{})
	require.NoError(t, err)

	done := make(chan error, 1)
	go func() { done <- app.Run(context.Background()) }()

	select {
	case err := <-done:
		require.Error(t, err)
		assert.Contains(t, err.Error(), "http server")
	case <-time.After(15 * time.Second):
		t.Fatal("app did not stop after the http server failed")
	}
	assert.Equal(t, 1, store.closed)
}

func TestApp_RunJoinsCloseError(t *testing.T) {
	boom := errors.New("close failed")
	withStore(t, &failingCloseStore{Store: memory.New(), err: boom}, nil)

	c := testConfig()
	c.SecretKey = "s"
	app, err := NewApp(context.Background(), c, &bytes.Buffer{})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, app.Run(ctx), boom)
}
