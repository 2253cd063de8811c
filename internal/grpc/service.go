package grpcserver

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// UserAdminServiceName is the fully-qualified name of the maintainer API.
// Messages are protobuf well-known types, so no generated code is needed.
const UserAdminServiceName = "blog.admin.v1.UserAdmin"

const (
	ListUsersMethod   = "/" + UserAdminServiceName + "/ListUsers"
	ToggleAdminMethod = "/" + UserAdminServiceName + "/ToggleAdmin"
	RemoveUserMethod  = "/" + UserAdminServiceName + "/RemoveUser"
)

// UserAdminServer is the server API for the UserAdmin service.
type UserAdminServer interface {
	// ListUsers returns {"users": [{"id","name","email","role"}, ...]}.
	ListUsers(context.Context, *emptypb.Empty) (*structpb.Struct, error)
	// ToggleAdmin flips the user with the given id between user and admin
	// and returns the updated user.
	ToggleAdmin(context.Context, *wrapperspb.Int64Value) (*structpb.Struct, error)
	// RemoveUser deletes the user with the given id and everything they wrote.
	RemoveUser(context.Context, *wrapperspb.Int64Value) (*emptypb.Empty, error)
}

// RegisterUserAdminServer registers srv on s.
func RegisterUserAdminServer(s grpc.ServiceRegistrar, srv UserAdminServer) {
	s.RegisterService(&userAdminServiceDesc, srv)
}

var userAdminServiceDesc = grpc.ServiceDesc{
	ServiceName: UserAdminServiceName,
	HandlerType: (*UserAdminServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "ListUsers", Handler: listUsersHandler},
		{MethodName: "ToggleAdmin", Handler: toggleAdminHandler},
		{MethodName: "RemoveUser", Handler: removeUserHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "blog/admin/v1/user_admin.proto",
}

func listUsersHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(emptypb.Empty)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(UserAdminServer).ListUsers(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: ListUsersMethod}
	return interceptor(ctx, in, info, func(ctx context.Context, req any) (any, error) {
		return srv.(UserAdminServer).ListUsers(ctx, req.(*emptypb.Empty))
	})
}

func toggleAdminHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(wrapperspb.Int64Value)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(UserAdminServer).ToggleAdmin(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: ToggleAdminMethod}
	return interceptor(ctx, in, info, func(ctx context.Context, req any) (any, error) {
		return srv.(UserAdminServer).ToggleAdmin(ctx, req.(*wrapperspb.Int64Value))
	})
}

func removeUserHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(wrapperspb.Int64Value)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(UserAdminServer).RemoveUser(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: RemoveUserMethod}
	return interceptor(ctx, in, info, func(ctx context.Context, req any) (any, error) {
		return srv.(UserAdminServer).RemoveUser(ctx, req.(*wrapperspb.Int64Value))
	})
}

// UserAdminClient calls the UserAdmin service.
type UserAdminClient struct {
	cc grpc.ClientConnInterface
}

// NewUserAdminClient returns a client using cc.
func NewUserAdminClient(cc grpc.ClientConnInterface) *UserAdminClient {
	return &UserAdminClient{cc: cc}
}

func (c *UserAdminClient) ListUsers(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, ListUsersMethod, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *UserAdminClient) ToggleAdmin(ctx context.Context, in *wrapperspb.Int64Value, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, ToggleAdminMethod, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *UserAdminClient) RemoveUser(ctx context.Context, in *wrapperspb.Int64Value, opts ...grpc.CallOption) (*emptypb.Empty, error) {
	out := new(emptypb.Empty)
	if err := c.cc.Invoke(ctx, RemoveUserMethod, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
