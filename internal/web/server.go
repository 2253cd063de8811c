// Package web serves the blog over HTTP with gin: server-rendered pages, the
// session cookie and the rich-text editor upload endpoint.
package web

import (
	"context"
	"errors"
	"html/template"
	"log"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"multiUserBlog/internal/blog"
)

// Options configure the HTTP surface.
type Options struct {
	SecureCookies  bool
	CORSOrigins    []string
	UploadDir      string
	UploadURL      string // public prefix of UploadDir, e.g. /static/assets/img
	MaxUploadBytes int64
	Logger         *log.Logger
}

// Server holds the router and its dependencies.
type Server struct {
	svc    *blog.Service
	opts   Options
	engine *gin.Engine
	logger *log.Logger
}

// New builds the router.
func New(svc *blog.Service, opts Options) *Server {
	if svc == nil {
		panic("web: service is required")
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	if opts.MaxUploadBytes <= 0 {
		opts.MaxUploadBytes = 8 << 20
	}
	s := &Server{svc: svc, opts: opts, logger: opts.Logger}

	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery(), tracing())
	if len(opts.CORSOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     opts.CORSOrigins,
			AllowMethods:     []string{"GET", "POST"},
			AllowHeaders:     []string{"Content-Type"},
			AllowCredentials: true,
		}))
	}
	r.SetHTMLTemplate(template.Must(parseTemplates()))
	r.Use(s.identity())
	s.routes(r)
	s.engine = r
	return s
}

func (s *Server) routes(r *gin.Engine) {
	r.GET("/", s.index)
	r.GET("/register", s.registerForm)
	r.POST("/register", s.register)
	r.GET("/login", s.loginForm)
	r.POST("/login", s.login)
	r.GET("/logout", s.logout)

	r.GET("/post/:id", s.showPost)
	r.POST("/post/:id", s.comment)

	r.GET("/new-post", s.newPostForm)
	r.POST("/new-post", s.limitBody(), s.createPost)
	r.GET("/edit-post/:id", s.editPostForm)
	r.POST("/edit-post/:id", s.limitBody(), s.editPost)
	r.GET("/delete/:id/:isPost", s.deleteItem)

	r.GET("/manage-users", s.manageUsers)
	r.GET("/toggle-admin/:id", s.toggleAdmin)
	r.GET("/remove-user/:id", s.removeUser)

	r.POST("/upload", s.limitBody(), s.upload)

	r.GET("/about", s.static("about.html"))
	r.GET("/contact", s.static("contact.html"))

	if s.opts.UploadDir != "" && strings.HasPrefix(s.opts.UploadURL, "/") {
		r.Static(strings.TrimRight(s.opts.UploadURL, "/"), s.opts.UploadDir)
	}
	r.NoRoute(func(c *gin.Context) {
		s.renderError(c, http.StatusNotFound, "Page not found.")
	})
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler { return s.engine }

// Start listens on addr and serves in the background. The returned function
// shuts the server down gracefully.
func (s *Server) Start(addr string) (func(context.Context) error, error) {
	if addr == "" {
		addr = ":5000"
	}
	lis, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, err
	}
	srv := &http.Server{
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		if err := srv.Serve(lis); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Printf("http serve: %v", err)
		}
	}()
	return srv.Shutdown, nil
}
