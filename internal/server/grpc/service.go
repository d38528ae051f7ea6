package grpc

import (
	"context"

	"google.golang.org/grpc"
)

const serviceName = "peoplehub.v1.PeopleHub"

// Full method names, as seen by interceptors.
const (
	MethodSignup       = "/" + serviceName + "/Signup"
	MethodLogin        = "/" + serviceName + "/Login"
	MethodLogout       = "/" + serviceName + "/Logout"
	MethodListPeople   = "/" + serviceName + "/ListPeople"
	MethodAddPerson    = "/" + serviceName + "/AddPerson"
	MethodUpdatePerson = "/" + serviceName + "/UpdatePerson"
	MethodDeletePerson = "/" + serviceName + "/DeletePerson"
	MethodPing         = "/" + serviceName + "/Ping"
)

// PeopleHubServer is the server API of the PeopleHub service.
type PeopleHubServer interface {
	Signup(context.Context, *SignupRequest) (*SignupResponse, error)
	Login(context.Context, *LoginRequest) (*LoginResponse, error)
	Logout(context.Context, *LogoutRequest) (*LogoutResponse, error)
	ListPeople(context.Context, *ListPeopleRequest) (*ListPeopleResponse, error)
	AddPerson(context.Context, *AddPersonRequest) (*AddPersonResponse, error)
	UpdatePerson(context.Context, *UpdatePersonRequest) (*UpdatePersonResponse, error)
	DeletePerson(context.Context, *DeletePersonRequest) (*DeletePersonResponse, error)
	Ping(context.Context, *PingRequest) (*PingResponse, error)
}

// unaryHandler adapts a typed server method to grpc.MethodHandler.
func unaryHandler[Req, Resp any](fullMethod string, call func(PeopleHubServer, context.Context, *Req) (*Resp, error)) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(PeopleHubServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(PeopleHubServer), ctx, req.(*Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}

// ServiceDesc describes the PeopleHub service for grpc.Server.RegisterService.
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: serviceName,
	HandlerType: (*PeopleHubServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Signup", Handler: unaryHandler(MethodSignup, PeopleHubServer.Signup)},
		{MethodName: "Login", Handler: unaryHandler(MethodLogin, PeopleHubServer.Login)},
		{MethodName: "Logout", Handler: unaryHandler(MethodLogout, PeopleHubServer.Logout)},
		{MethodName: "ListPeople", Handler: unaryHandler(MethodListPeople, PeopleHubServer.ListPeople)},
		{MethodName: "AddPerson", Handler: unaryHandler(MethodAddPerson, PeopleHubServer.AddPerson)},
		{MethodName: "UpdatePerson", Handler: unaryHandler(MethodUpdatePerson, PeopleHubServer.UpdatePerson)},
		{MethodName: "DeletePerson", Handler: unaryHandler(MethodDeletePerson, PeopleHubServer.DeletePerson)},
		{MethodName: "Ping", Handler: unaryHandler(MethodPing, PeopleHubServer.Ping)},
	},
	Streams: []grpc.StreamDesc{},
}

// RegisterPeopleHubServer registers srv on s.
func RegisterPeopleHubServer(s grpc.ServiceRegistrar, srv PeopleHubServer) {
	s.RegisterService(&ServiceDesc, srv)
}
