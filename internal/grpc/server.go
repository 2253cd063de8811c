package grpcserver

import (
	"context"
	"net"

	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"multiUserBlog/internal/auth"
	"multiUserBlog/internal/blog"
	"multiUserBlog/internal/config"
)

const healthCheckMethod = "/grpc.health.v1.Health/Check"

// NewServer builds a gRPC server exposing the UserAdmin service and the
// standard health service. Calls other than health checks must carry a
// session token as "authorization: Bearer <token>".
func NewServer(svc *blog.Service) (*grpc.Server, *health.Server) {
	srv := grpc.NewServer(
		grpc.StatsHandler(otelgrpc.NewServerHandler()),
		grpc.UnaryInterceptor(auth.NewUnaryAuthInterceptor(svc, healthCheckMethod)),
	)
	RegisterUserAdminServer(srv, &AdminServer{Blog: svc})

	hs := health.NewServer()
	healthpb.RegisterHealthServer(srv, hs)
	hs.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
	hs.SetServingStatus(UserAdminServiceName, healthpb.HealthCheckResponse_SERVING)
	return srv, hs
}

// StartGRPC starts the gRPC server on the configured address and returns a shutdown function.
func StartGRPC(cfg *config.Config, svc *blog.Service) (func(context.Context) error, error) {
	if cfg == nil {
		panic("config is required")
	}

	addr := cfg.GRPC.Address
	if addr == "" {
		addr = ":50051"
	}

	lis, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, err
	}

	srv, hs := NewServer(svc)
	go func() { _ = srv.Serve(lis) }()

	return func(ctx context.Context) error {
		hs.Shutdown()
		done := make(chan struct{})
		go func() { srv.GracefulStop(); close(done) }()
		select {
		case <-done:
			return nil
		case <-ctx.Done():
			srv.Stop()
			return ctx.Err()
		}
	}, nil
}
