package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"multiUserBlog/internal/auth"
	"multiUserBlog/internal/blog"
	"multiUserBlog/internal/config"
	"multiUserBlog/internal/db"
	grpcserver "multiUserBlog/internal/grpc"
	"multiUserBlog/internal/media"
	"multiUserBlog/internal/telemetry"
	"multiUserBlog/internal/web"
	"multiUserBlog/repository"
)

func main() {
	// Load configuration
	cfg, err := config.LoadWithDefaults()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	log.Printf("Configuration loaded: %v", cfg)
	if cfg.Auth.SecretKey == config.DevSecretKey {
		log.Printf("WARNING: SECRET_KEY not set, using the development key")
	}

	shutdownTracing, err := telemetry.Setup(context.Background(), cfg.Telemetry, "multi-user-blog")
	if err != nil {
		log.Fatalf("setup telemetry: %v", err)
	}

	// Open DB
	d, err := db.Open(cfg.Database.Driver, cfg.Database.DSN)
	if err != nil {
		log.Fatalf("open db: %v", err)
	}
	defer func() {
		if err := db.Close(d); err != nil {
			log.Printf("close db: %v", err)
		}
	}()

	svc := blog.NewService(blog.Deps{
		Users:    repository.NewUserRepository(d),
		Posts:    repository.NewPostRepository(d),
		Comments: repository.NewCommentRepository(d),
		Images:   media.NewStore(cfg.Uploads.Dir, cfg.Uploads.URLPrefix),
		Sessions: auth.NewSessionManager(cfg.Auth.SecretKey, cfg.Auth.SessionTTL),
	})

	// Start HTTP
	site := web.New(svc, web.Options{
		SecureCookies:  cfg.Auth.CookieSecure,
		CORSOrigins:    cfg.HTTP.CORSOrigins,
		UploadDir:      cfg.Uploads.Dir,
		UploadURL:      cfg.Uploads.URLPrefix,
		MaxUploadBytes: cfg.Uploads.MaxBytes,
	})
	stopHTTP, err := site.Start(cfg.HTTP.Address)
	if err != nil {
		log.Fatalf("start http: %v", err)
	}
	log.Printf("HTTP server listening on %s", cfg.HTTP.Address)

	// Start gRPC
	stopGRPC := func(context.Context) error { return nil }
	if cfg.GRPC.Address != "" {
		stopGRPC, err = grpcserver.StartGRPC(cfg, svc)
		if err != nil {
			log.Fatalf("start grpc: %v", err)
		}
		log.Printf("gRPC server listening on %s", cfg.GRPC.Address)
	} else {
		log.Printf("gRPC maintainer API disabled")
	}

	// Wait for signal
	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
	<-sigc

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := stopHTTP(ctx); err != nil {
		log.Printf("http shutdown error: %v", err)
	}
	if err := stopGRPC(ctx); err != nil {
		log.Printf("grpc shutdown error: %v", err)
	}
	if err := shutdownTracing(ctx); err != nil {
		log.Printf("telemetry shutdown error: %v", err)
	}
}
