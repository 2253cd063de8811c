package auth

import (
	"context"
	"errors"
	"strings"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"multiUserBlog/internal/apperr"
	"multiUserBlog/models"
)

// Resolver turns a session token into the identity of a live user.
type Resolver interface {
	ResolveSession(ctx context.Context, token string) (*Identity, error)
}

// BearerFromMD extracts a Bearer token from incoming gRPC metadata.
func BearerFromMD(ctx context.Context) (string, error) {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return "", errors.New("missing metadata")
	}
	vals := md.Get("authorization")
	if len(vals) == 0 {
		return "", errors.New("missing authorization")
	}
	parts := strings.SplitN(vals[0], " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", errors.New("invalid authorization header")
	}
	tok := strings.TrimSpace(parts[1])
	if tok == "" {
		return "", errors.New("empty bearer token")
	}
	return tok, nil
}

// NewUnaryAuthInterceptor returns a gRPC unary interceptor that resolves the
// Bearer session token from incoming metadata and injects the Identity into
// the context. Methods listed in allowUnauthenticated bypass authentication
// (e.g., health checks).
func NewUnaryAuthInterceptor(resolver Resolver, allowUnauthenticated ...string) grpc.UnaryServerInterceptor {
	allow := make(map[string]struct{}, len(allowUnauthenticated))
	for _, m := range allowUnauthenticated {
		allow[strings.TrimSpace(m)] = struct{}{}
	}
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		if _, ok := allow[info.FullMethod]; ok {
			return handler(ctx, req)
		}
		tok, err := BearerFromMD(ctx)
		if err != nil {
			return nil, status.Errorf(codes.Unauthenticated, "auth error: %v", err)
		}
		id, err := resolver.ResolveSession(ctx, tok)
		if err != nil {
			return nil, status.Errorf(codes.Unauthenticated, "auth error: %v", err)
		}
		if id == nil {
			return nil, status.Error(codes.Unauthenticated, "auth error: unknown user")
		}
		return handler(WithIdentity(ctx, id), req)
	}
}

// RequireRole ensures the context carries an identity of at least min,
// reporting failures as gRPC statuses.
func RequireRole(ctx context.Context, min models.Role) (*Identity, error) {
	id := FromContext(ctx)
	if id == nil {
		return nil, status.Error(codes.Unauthenticated, "missing identity")
	}
	if err := Require(id, min); err != nil {
		return nil, status.Errorf(codes.PermissionDenied, "only %s can perform this action", min)
	}
	return id, nil
}

// StatusFromError converts an application error into a gRPC status error.
func StatusFromError(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := status.FromError(err); ok {
		return err
	}
	return status.Error(apperr.CodeOf(err).GRPCCode(), apperr.MessageOf(err))
}
