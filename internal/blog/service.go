// Package blog implements the application operations: accounts and sessions,
// posts and comments, and maintainer user management. Every operation that
// needs a role takes the acting identity explicitly and checks it first.
package blog

import (
	"log"
	"time"

	"multiUserBlog/internal/auth"
	"multiUserBlog/internal/media"
	"multiUserBlog/repository"
)

// Service bundles the stores the operations work against.
type Service struct {
	users    repository.UserRepositoryI
	posts    repository.PostRepositoryI
	comments repository.CommentRepositoryI
	images   *media.Store
	sessions *auth.SessionManager
	now      func() time.Time
	logger   *log.Logger
}

// Deps are the collaborators of a Service. Now and Logger are optional.
type Deps struct {
	Users    repository.UserRepositoryI
	Posts    repository.PostRepositoryI
	Comments repository.CommentRepositoryI
	Images   *media.Store
	Sessions *auth.SessionManager
	Now      func() time.Time
	Logger   *log.Logger
}

// NewService wires a Service. It panics when a required dependency is missing.
func NewService(d Deps) *Service {
	if d.Users == nil || d.Posts == nil || d.Comments == nil || d.Images == nil || d.Sessions == nil {
		panic("blog: missing dependency")
	}
	if d.Now == nil {
		d.Now = time.Now
	}
	if d.Logger == nil {
		d.Logger = log.Default()
	}
	return &Service{
		users:    d.Users,
		posts:    d.Posts,
		comments: d.Comments,
		images:   d.Images,
		sessions: d.Sessions,
		now:      d.Now,
		logger:   d.Logger,
	}
}
