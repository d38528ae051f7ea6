package grpc

import (
	"context"
	"errors"
	"testing"

	"github.com/Harshinireddy05/DayntTech/internal/common"
	"github.com/Harshinireddy05/DayntTech/internal/logging"
	"github.com/Harshinireddy05/DayntTech/internal/server/auth"
	"github.com/Harshinireddy05/DayntTech/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

type stubAuth struct {
	session models.Session
	err     error
	token   string
}

func (s *stubAuth) Signup(context.Context, string, string) error          { return nil }
func (s *stubAuth) Login(context.Context, string, string) (string, error) { return "", nil }
func (s *stubAuth) Logout(context.Context, models.Session)                {}
func (s *stubAuth) Authenticate(token string) (models.Session, error) {
	s.token = token
	return s.session, s.err
}

func callInterceptor(t *testing.T, s *GRPCServer, ctx context.Context, method string) (models.Session, bool, error) {
	t.Helper()
	var got models.Session
	called := false
	_, err := s.accessTokenInterceptor(ctx, nil, &grpc.UnaryServerInfo{FullMethod: method},
		func(ctx context.Context, req any) (any, error) {
			called = true
			got = auth.SessionFrom(ctx)
			return nil, nil
		})
	return got, called, err
}

func TestAccessTokenInterceptor_PublicMethodPassesThrough(t *testing.T) {
	s := NewGRPCServer("", logging.Nop(), &stubAuth{err: errors.New("must not be called")}, nil)

	_, called, err := callInterceptor(t, s, context.Background(), MethodLogin)
	require.NoError(t, err)
	assert.True(t, called)
}

func TestAccessTokenInterceptor_MissingToken(t *testing.T) {
	s := NewGRPCServer("", logging.Nop(), &stubAuth{}, nil)

	_, called, err := callInterceptor(t, s, context.Background(), MethodListPeople)
	assert.False(t, called)
	assert.Equal(t, codes.Unauthenticated, status.Code(err))
	assert.Equal(t, "missing token", status.Convert(err).Message())
}

func TestAccessTokenInterceptor_InvalidToken(t *testing.T) {
	s := NewGRPCServer("", logging.Nop(), &stubAuth{err: common.ErrInvalidToken}, nil)
	ctx := metadata.NewIncomingContext(context.Background(), metadata.Pairs(common.AccessTokenHeaderName, "bad"))

	_, called, err := callInterceptor(t, s, ctx, MethodAddPerson)
	assert.False(t, called)
	assert.Equal(t, codes.Unauthenticated, status.Code(err))
	assert.Equal(t, "invalid token", status.Convert(err).Message())
}

func TestAccessTokenInterceptor_AttachesSession(t *testing.T) {
	stub := &stubAuth{session: models.Session{ID: "s1", Authenticated: true, Email: "a@x.com"}}
	s := NewGRPCServer("", logging.Nop(), stub, nil)
	ctx := metadata.NewIncomingContext(context.Background(), metadata.Pairs(common.AccessTokenHeaderName, "tok"))

	got, called, err := callInterceptor(t, s, ctx, MethodDeletePerson)
	require.NoError(t, err)
	assert.True(t, called)
	assert.Equal(t, "tok", stub.token)
	assert.Equal(t, "a@x.com", got.Email)
}
