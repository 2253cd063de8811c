package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"multiUserBlog/models"
)

type CommentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) *CommentRepository {
	return &CommentRepository{db: db}
}

const commentColumns = "c.id, c.text, c.author_id, c.post_id, u.name AS author_name, u.email AS author_email"

func (r *CommentRepository) withAuthor(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Table("comments AS c").
		Select(commentColumns).
		Joins("JOIN users u ON u.id = c.author_id")
}

func (r *CommentRepository) Create(ctx context.Context, c *models.Comment) (*models.Comment, error) {
	if c == nil {
		return nil, errors.New("comment is nil")
	}
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	if err := r.db.WithContext(ctx).Create(c).Error; err != nil {
		return nil, err
	}
	return c, nil
}

func (r *CommentRepository) GetByID(ctx context.Context, id int64) (*models.Comment, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var out []models.Comment
	if err := r.withAuthor(ctx).Where("c.id = ?", id).Limit(1).Scan(&out).Error; err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, nil
	}
	return &out[0], nil
}

// ListByPost returns the comments of a post, oldest first.
func (r *CommentRepository) ListByPost(ctx context.Context, postID int64) ([]models.Comment, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var out []models.Comment
	if err := r.withAuthor(ctx).Where("c.post_id = ?", postID).Order("c.id").Scan(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// Delete removes one comment and reports whether it existed.
func (r *CommentRepository) Delete(ctx context.Context, id int64) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Comment{})
	return res.RowsAffected > 0, res.Error
}
