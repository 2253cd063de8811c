package grpcserver

import (
	"context"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"multiUserBlog/internal/auth"
	"multiUserBlog/internal/blog"
	"multiUserBlog/models"
)

// AdminServer implements the UserAdmin service on top of the blog service.
type AdminServer struct {
	Blog *blog.Service
}

var _ UserAdminServer = (*AdminServer)(nil)

// Authentication happens in the interceptor; every method re-checks the role.

func (s *AdminServer) ListUsers(ctx context.Context, _ *emptypb.Empty) (*structpb.Struct, error) {
	id, err := auth.RequireRole(ctx, models.RoleMaintainer)
	if err != nil {
		return nil, err
	}
	users, err := s.Blog.ListUsers(ctx, id)
	if err != nil {
		return nil, auth.StatusFromError(err)
	}
	list := make([]any, 0, len(users))
	for i := range users {
		list = append(list, userFields(&users[i]))
	}
	out, err := structpb.NewStruct(map[string]any{"users": list})
	if err != nil {
		return nil, status.Errorf(codes.Internal, "encode users: %v", err)
	}
	return out, nil
}

func (s *AdminServer) ToggleAdmin(ctx context.Context, req *wrapperspb.Int64Value) (*structpb.Struct, error) {
	id, err := auth.RequireRole(ctx, models.RoleMaintainer)
	if err != nil {
		return nil, err
	}
	if req.GetValue() <= 0 {
		return nil, status.Error(codes.InvalidArgument, "user id is required")
	}
	u, err := s.Blog.ToggleAdmin(ctx, id, req.GetValue())
	if err != nil {
		return nil, auth.StatusFromError(err)
	}
	out, err := structpb.NewStruct(userFields(u))
	if err != nil {
		return nil, status.Errorf(codes.Internal, "encode user: %v", err)
	}
	return out, nil
}

func (s *AdminServer) RemoveUser(ctx context.Context, req *wrapperspb.Int64Value) (*emptypb.Empty, error) {
	id, err := auth.RequireRole(ctx, models.RoleMaintainer)
	if err != nil {
		return nil, err
	}
	if req.GetValue() <= 0 {
		return nil, status.Error(codes.InvalidArgument, "user id is required")
	}
	if err := s.Blog.RemoveUser(ctx, id, req.GetValue()); err != nil {
		return nil, auth.StatusFromError(err)
	}
	return &emptypb.Empty{}, nil
}

// userFields is the wire shape of a user. The password hash is never sent.
func userFields(u *models.User) map[string]any {
	return map[string]any{
		"id":    u.ID,
		"name":  u.Name,
		"email": u.Email,
		"role":  string(u.Role),
	}
}
