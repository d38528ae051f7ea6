package grpc

import (
	"context"
	"errors"
	"strings"

	"github.com/Harshinireddy05/DayntTech/internal/common"
	"github.com/Harshinireddy05/DayntTech/internal/server/auth"
	"github.com/Harshinireddy05/DayntTech/internal/server/models"
	"github.com/Harshinireddy05/DayntTech/internal/server/services"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func (s *GRPCServer) Signup(ctx context.Context, req *SignupRequest) (*SignupResponse, error) {
	if err := s.users.Signup(ctx, req.Email, req.Password); err != nil {
		return nil, toStatus(err)
	}
	return &SignupResponse{Email: models.NormalizeEmail(req.Email)}, nil
}

func (s *GRPCServer) Login(ctx context.Context, req *LoginRequest) (*LoginResponse, error) {
	token, err := s.users.Login(ctx, req.Email, req.Password)
	if err != nil {
		return nil, toStatus(err)
	}
	return &LoginResponse{AccessToken: token}, nil
}

// Logout revokes the caller's access token.
func (s *GRPCServer) Logout(ctx context.Context, req *LogoutRequest) (*LogoutResponse, error) {
	s.users.Logout(ctx, auth.SessionFrom(ctx))
	return &LogoutResponse{}, nil
}

func (s *GRPCServer) ListPeople(ctx context.Context, req *ListPeopleRequest) (*ListPeopleResponse, error) {
	rows, err := s.people.Rows(ctx, auth.SessionFrom(ctx).Email)
	if err != nil {
		return nil, toStatus(err)
	}
	out := make([]Person, 0, len(rows))
	for _, r := range rows {
		out = append(out, Person{ID: r.ID, Name: r.Name, DateOfBirth: r.DateOfBirth.String(), Age: r.Age})
	}
	return &ListPeopleResponse{People: out}, nil
}

func (s *GRPCServer) AddPerson(ctx context.Context, req *AddPersonRequest) (*AddPersonResponse, error) {
	p, err := s.people.Add(ctx, auth.SessionFrom(ctx).Email, models.PersonInput{Name: req.Name, DateOfBirth: req.DateOfBirth})
	if err != nil {
		return nil, toStatus(err)
	}
	return &AddPersonResponse{Person: s.toMessage(p)}, nil
}

func (s *GRPCServer) UpdatePerson(ctx context.Context, req *UpdatePersonRequest) (*UpdatePersonResponse, error) {
	p, err := s.people.Update(ctx, auth.SessionFrom(ctx).Email, req.ID, models.PersonInput{Name: req.Name, DateOfBirth: req.DateOfBirth})
	if err != nil {
		return nil, toStatus(err)
	}
	return &UpdatePersonResponse{Person: s.toMessage(p)}, nil
}

func (s *GRPCServer) DeletePerson(ctx context.Context, req *DeletePersonRequest) (*DeletePersonResponse, error) {
	deleted, err := s.people.Delete(ctx, auth.SessionFrom(ctx).Email, req.ID)
	if err != nil {
		return nil, toStatus(err)
	}
	return &DeletePersonResponse{Deleted: deleted}, nil
}

func (s *GRPCServer) Ping(ctx context.Context, req *PingRequest) (*PingResponse, error) {
	return &PingResponse{Status: "OK"}, nil
}

func (s *GRPCServer) toMessage(p models.Person) Person {
	return Person{ID: p.ID, Name: p.Name, DateOfBirth: p.DateOfBirth.String(), Age: p.Age(s.people.Now())}
}

// toStatus maps service errors to gRPC codes. Authentication failures carry
// no detail.
func toStatus(err error) error {
	switch {
	case errors.Is(err, common.ErrorValidation):
		return status.Error(codes.InvalidArgument, strings.TrimPrefix(err.Error(), common.ErrorValidation.Error()+": "))
	case errors.Is(err, common.ErrorAlreadyExists):
		return status.Error(codes.AlreadyExists, "email already registered")
	case errors.Is(err, common.ErrorInvalidCredentials),
		errors.Is(err, common.ErrorUnauthorized),
		errors.Is(err, common.ErrInvalidToken),
		errors.Is(err, common.ErrTokenExpired):
		return status.Error(codes.Unauthenticated, "invalid credentials")
	case errors.Is(err, common.ErrorNotFound):
		return status.Error(codes.NotFound, "person not found")
	default:
		return status.Error(codes.Internal, "internal error")
	}
}

var _ PeopleHubServer = (*GRPCServer)(nil)

// compile-time check that the services satisfy the server's dependencies
var (
	_ UserAuth      = (*services.UserService)(nil)
	_ PeopleManager = (*services.PeopleService)(nil)
)
