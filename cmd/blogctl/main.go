// Command blogctl runs maintenance tasks against the blog database.
//
//	blogctl create-maintainer [-name N] [-email E] [-password P]
//	blogctl issue-token -user-id ID
//	blogctl migrate-down
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/term"

	"multiUserBlog/internal/auth"
	"multiUserBlog/internal/blog"
	"multiUserBlog/internal/config"
	"multiUserBlog/internal/db"
	"multiUserBlog/internal/media"
	"multiUserBlog/internal/tools/blogctl"
	"multiUserBlog/repository"
)

func main() {
	log.SetFlags(0)
	cfg, err := blogctl.ParseConfig(flag.NewFlagSet("blogctl", flag.ExitOnError), os.Args[1:])
	if err != nil {
		log.Fatalf("Error: %v", err)
	}
	if fd := int(os.Stdin.Fd()); term.IsTerminal(fd) {
		cfg.ReadPassword = func() (string, error) {
			b, err := term.ReadPassword(fd)
			return string(b), err
		}
	}
	if err := run(cfg); err != nil {
		log.Fatalf("Error: %v", err)
	}
}

func run(cfg blogctl.Config) error {
	load := config.LoadWithDefaults
	if cfg.NeedsSecret() {
		load = config.Load
	}
	appCfg, err := load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	d, err := db.Open(appCfg.Database.Driver, appCfg.Database.DSN)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer func() { _ = db.Close(d) }()

	svc := blog.NewService(blog.Deps{
		Users:    repository.NewUserRepository(d),
		Posts:    repository.NewPostRepository(d),
		Comments: repository.NewCommentRepository(d),
		Images:   media.NewStore(appCfg.Uploads.Dir, appCfg.Uploads.URLPrefix),
		Sessions: auth.NewSessionManager(appCfg.Auth.SecretKey, appCfg.Auth.SessionTTL),
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, cfg.Timeout)
	defer cancel()

	return blogctl.Run(ctx, cfg, blogctl.App{DB: d, Blog: svc}, os.Stdin, os.Stdout)
}
