package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"multiUserBlog/models"
)

type PostRepository struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) *PostRepository {
	return &PostRepository{db: db}
}

const postColumns = "p.id, p.title, p.subtitle, p.date, p.body, p.img_url, p.author_id, u.name AS author_name"

func (r *PostRepository) withAuthor(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Table("blog_posts AS p").
		Select(postColumns).
		Joins("JOIN users u ON u.id = p.author_id")
}

// Create inserts a new post. Returns ErrDuplicate when the title is taken.
func (r *PostRepository) Create(ctx context.Context, p *models.Post) (*models.Post, error) {
	if p == nil {
		return nil, errors.New("post is nil")
	}
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	if err := r.db.WithContext(ctx).Create(p).Error; err != nil {
		return nil, translate(err)
	}
	return p, nil
}

// GetByID returns the post with its author's name, or nil when it does not exist.
func (r *PostRepository) GetByID(ctx context.Context, id int64) (*models.Post, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var out []models.Post
	if err := r.withAuthor(ctx).Where("p.id = ?", id).Limit(1).Scan(&out).Error; err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, nil
	}
	return &out[0], nil
}

// List returns every post in creation order.
func (r *PostRepository) List(ctx context.Context) ([]models.Post, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var out []models.Post
	if err := r.withAuthor(ctx).Order("p.id").Scan(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// TitleTaken reports whether another post (id != excludeID) uses title.
func (r *PostRepository) TitleTaken(ctx context.Context, title string, excludeID int64) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var n int64
	err := r.db.WithContext(ctx).Model(&models.Post{}).
		Where("title = ? AND id <> ?", title, excludeID).
		Count(&n).Error
	return n > 0, err
}

// Update writes the editable fields of p. Author and date are never changed.
func (r *PostRepository) Update(ctx context.Context, p *models.Post) error {
	if p == nil {
		return errors.New("post is nil")
	}
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	err := r.db.WithContext(ctx).Model(&models.Post{}).Where("id = ?", p.ID).Updates(map[string]any{
		"title":    p.Title,
		"subtitle": p.Subtitle,
		"body":     p.Body,
		"img_url":  p.ImgURL,
	}).Error
	return translate(err)
}

// Delete removes a post and its comments. It reports whether the post existed.
func (r *PostRepository) Delete(ctx context.Context, id int64) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var deleted bool
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		res := tx.Where("id = ?", id).Delete(&models.Post{})
		if res.Error != nil {
			return res.Error
		}
		deleted = res.RowsAffected > 0
		return nil
	})
	return deleted, err
}
