package grpc

import (
	"context"
	"time"

	"github.com/Harshinireddy05/DayntTech/internal/common"
	"github.com/Harshinireddy05/DayntTech/internal/server/auth"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

// protectedMethods need a valid access_token.
var protectedMethods = map[string]bool{
	MethodLogout:       true,
	MethodListPeople:   true,
	MethodAddPerson:    true,
	MethodUpdatePerson: true,
	MethodDeletePerson: true,
}

func (s *GRPCServer) accessTokenInterceptor(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	if !protectedMethods[info.FullMethod] {
		return handler(ctx, req)
	}

	var accessToken string
	if md, ok := metadata.FromIncomingContext(ctx); ok {
		values := md.Get(common.AccessTokenHeaderName)
		if len(values) > 0 {
			accessToken = values[0]
		}
	}
	if len(accessToken) == 0 {
		return nil, status.Error(codes.Unauthenticated, "missing token")
	}

	sess, err := s.users.Authenticate(accessToken)
	if err != nil || !sess.Authenticated {
		return nil, status.Error(codes.Unauthenticated, "invalid token")
	}

	return handler(auth.WithSession(ctx, sess), req)
}

func (s *GRPCServer) loggingInterceptor(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	start := time.Now()
	resp, err := handler(ctx, req)
	s.logger.Info(ctx, "rpc",
		"method", info.FullMethod,
		"code", status.Code(err).String(),
		"duration", time.Since(start),
	)
	return resp, err
}
