package grpc

import (
	"context"

	"github.com/Harshinireddy05/DayntTech/internal/common"
	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"
)

// Client calls the PeopleHub service over a connection. Calls use the JSON
// codec; people calls need a context from WithAccessToken.
type Client struct {
	cc grpc.ClientConnInterface
}

func NewClient(cc grpc.ClientConnInterface) *Client {
	return &Client{cc: cc}
}

// WithAccessToken attaches a session token for the people methods.
func WithAccessToken(ctx context.Context, token string) context.Context {
	return metadata.AppendToOutgoingContext(ctx, common.AccessTokenHeaderName, token)
}

func invoke[Resp any](ctx context.Context, cc grpc.ClientConnInterface, method string, in any, opts []grpc.CallOption) (*Resp, error) {
	out := new(Resp)
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(codecName)}, opts...)
	if err := cc.Invoke(ctx, method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Signup(ctx context.Context, in *SignupRequest, opts ...grpc.CallOption) (*SignupResponse, error) {
	return invoke[SignupResponse](ctx, c.cc, MethodSignup, in, opts)
}

func (c *Client) Login(ctx context.Context, in *LoginRequest, opts ...grpc.CallOption) (*LoginResponse, error) {
	return invoke[LoginResponse](ctx, c.cc, MethodLogin, in, opts)
}

func (c *Client) Logout(ctx context.Context, in *LogoutRequest, opts ...grpc.CallOption) (*LogoutResponse, error) {
	return invoke[LogoutResponse](ctx, c.cc, MethodLogout, in, opts)
}

func (c *Client) ListPeople(ctx context.Context, in *ListPeopleRequest, opts ...grpc.CallOption) (*ListPeopleResponse, error) {
	return invoke[ListPeopleResponse](ctx, c.cc, MethodListPeople, in, opts)
}

func (c *Client) AddPerson(ctx context.Context, in *AddPersonRequest, opts ...grpc.CallOption) (*AddPersonResponse, error) {
	return invoke[AddPersonResponse](ctx, c.cc, MethodAddPerson, in, opts)
}

func (c *Client) UpdatePerson(ctx context.Context, in *UpdatePersonRequest, opts ...grpc.CallOption) (*UpdatePersonResponse, error) {
	return invoke[UpdatePersonResponse](ctx, c.cc, MethodUpdatePerson, in, opts)
}

func (c *Client) DeletePerson(ctx context.Context, in *DeletePersonRequest, opts ...grpc.CallOption) (*DeletePersonResponse, error) {
	return invoke[DeletePersonResponse](ctx, c.cc, MethodDeletePerson, in, opts)
}

func (c *Client) Ping(ctx context.Context, in *PingRequest, opts ...grpc.CallOption) (*PingResponse, error) {
	return invoke[PingResponse](ctx, c.cc, MethodPing, in, opts)
}
