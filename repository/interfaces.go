package repository

import (
	"context"

	"multiUserBlog/models"
)

// UserRepositoryI defines operations on User entities.
type UserRepositoryI interface {
	Create(ctx context.Context, u *models.User) (*models.User, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	List(ctx context.Context) ([]models.User, error)
	UpdateRole(ctx context.Context, id int64, role models.Role) error
	UpdatePassword(ctx context.Context, id int64, hash string) error
	Delete(ctx context.Context, id int64) (bool, error)
}

// PostRepositoryI defines operations on Post entities.
type PostRepositoryI interface {
	Create(ctx context.Context, p *models.Post) (*models.Post, error)
	GetByID(ctx context.Context, id int64) (*models.Post, error)
	List(ctx context.Context) ([]models.Post, error)
	TitleTaken(ctx context.Context, title string, excludeID int64) (bool, error)
	Update(ctx context.Context, p *models.Post) error
	Delete(ctx context.Context, id int64) (bool, error)
}

// CommentRepositoryI defines operations on Comment entities.
type CommentRepositoryI interface {
	Create(ctx context.Context, c *models.Comment) (*models.Comment, error)
	GetByID(ctx context.Context, id int64) (*models.Comment, error)
	ListByPost(ctx context.Context, postID int64) ([]models.Comment, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

var (
	_ UserRepositoryI    = (*UserRepository)(nil)
	_ PostRepositoryI    = (*PostRepository)(nil)
	_ CommentRepositoryI = (*CommentRepository)(nil)
)
