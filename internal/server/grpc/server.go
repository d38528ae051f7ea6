// Package grpc exposes the PeopleHub operations as a gRPC service for
// programmatic clients. Messages are plain Go structs carried by a JSON
// codec.
package grpc

import (
	"context"
	"net"
	"time"

	"github.com/Harshinireddy05/DayntTech/internal/logging"
	"github.com/Harshinireddy05/DayntTech/internal/server/models"
	"github.com/Harshinireddy05/DayntTech/internal/server/services"
	"google.golang.org/grpc"
)

// UserAuth is the account surface the service needs.
type UserAuth interface {
	Signup(ctx context.Context, email, password string) error
	Login(ctx context.Context, email, password string) (string, error)
	Authenticate(token string) (models.Session, error)
	Logout(ctx context.Context, sess models.Session)
}

// PeopleManager is the collection surface the service needs.
type PeopleManager interface {
	Rows(ctx context.Context, email string) ([]services.Row, error)
	Add(ctx context.Context, email string, in models.PersonInput) (models.Person, error)
	Update(ctx context.Context, email string, id int64, in models.PersonInput) (models.Person, error)
	Delete(ctx context.Context, email string, id int64) (bool, error)
	Now() time.Time
}

type GRPCServer struct {
	address string
	users   UserAuth
	people  PeopleManager
	logger  logging.Logger
}

func NewGRPCServer(a string, l logging.Logger, us UserAuth, ps PeopleManager) *GRPCServer {
	return &GRPCServer{
		address: a,
		logger:  l.With("module", "grpc_server"),
		users:   us,
		people:  ps,
	}
}

// NewServer returns a grpc.Server with the service and interceptors
// registered.
func (s *GRPCServer) NewServer() *grpc.Server {
	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(s.loggingInterceptor, s.accessTokenInterceptor))
	RegisterPeopleHubServer(srv, s)
	return srv
}

func (s *GRPCServer) Run(ctx context.Context) error {
	// announces address
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}
	return s.Serve(ctx, listen)
}

// Serve is Run on an existing listener.
func (s *GRPCServer) Serve(ctx context.Context, listen net.Listener) error {
	srv := s.NewServer()

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping gRPC server...")
		srv.GracefulStop()
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", listen.Addr().String())

	// starts accepting incoming connections
	if err := srv.Serve(listen); err != nil {
		return err
	}
	return nil
}
