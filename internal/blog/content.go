package blog

import (
	"context"
	"errors"
	"strings"

	"multiUserBlog/internal/apperr"
	"multiUserBlog/internal/auth"
	"multiUserBlog/internal/media"
	"multiUserBlog/models"
	"multiUserBlog/repository"
)

// PostInput is the create/edit post form. Image is nil when no image was
// supplied.
type PostInput struct {
	Title    string
	Subtitle string
	Body     string
	Image    media.Source
}

func (in PostInput) validate() error {
	return validate(
		field{name: "title", value: in.Title, max: maxTitleLen},
		field{name: "subtitle", value: in.Subtitle, max: maxSubtitleLen},
		field{name: "body", value: in.Body},
	)
}

// PostView is a post together with its comments.
type PostView struct {
	Post     *models.Post
	Comments []models.Comment
}

// ListPosts returns every post, oldest first.
func (s *Service) ListPosts(ctx context.Context) ([]models.Post, error) {
	posts, err := s.posts.List(ctx)
	if err != nil {
		return nil, apperr.Wrap(apperr.CodeInternal, "list posts", err)
	}
	return posts, nil
}

// GetPost returns a post and its comments.
func (s *Service) GetPost(ctx context.Context, id int64) (*PostView, error) {
	p, err := s.loadPost(ctx, id)
	if err != nil {
		return nil, err
	}
	cs, err := s.comments.ListByPost(ctx, id)
	if err != nil {
		return nil, apperr.Wrap(apperr.CodeInternal, "list comments", err)
	}
	return &PostView{Post: p, Comments: cs}, nil
}

func (s *Service) loadPost(ctx context.Context, id int64) (*models.Post, error) {
	p, err := s.posts.GetByID(ctx, id)
	if err != nil {
		return nil, apperr.Wrap(apperr.CodeInternal, "load post", err)
	}
	if p == nil {
		return nil, ErrPostNotFound
	}
	return p, nil
}

// CreatePost publishes a new post authored by actor. The date is stamped now.
func (s *Service) CreatePost(ctx context.Context, actor *auth.Identity, in PostInput) (*models.Post, error) {
	if err := auth.Require(actor, models.RoleAdmin); err != nil {
		return nil, err
	}
	in.Title = strings.TrimSpace(in.Title)
	in.Subtitle = strings.TrimSpace(in.Subtitle)
	if err := in.validate(); err != nil {
		return nil, err
	}
	if err := s.checkTitle(ctx, in.Title, 0); err != nil {
		return nil, err
	}
	img, err := s.images.Resolve(in.Image)
	if err != nil {
		return nil, err
	}

	p, err := s.posts.Create(ctx, &models.Post{
		Title:    in.Title,
		Subtitle: in.Subtitle,
		Date:     s.now().Format(models.DateLayout),
		Body:     in.Body,
		ImgURL:   img,
		AuthorID: actor.UserID,
	})
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrTitleTaken
		}
		return nil, apperr.Wrap(apperr.CodeInternal, "create post", err)
	}
	p.AuthorName = actor.Name
	s.logger.Printf("blog: user id=%d created post id=%d", actor.UserID, p.ID)
	return p, nil
}

// EditPost replaces the title, subtitle and body of a post. The image is
// replaced only when in.Image resolves to a value. Author and date are kept.
func (s *Service) EditPost(ctx context.Context, actor *auth.Identity, id int64, in PostInput) (*models.Post, error) {
	if err := auth.Require(actor, models.RoleAdmin); err != nil {
		return nil, err
	}
	p, err := s.loadPost(ctx, id)
	if err != nil {
		return nil, err
	}
	in.Title = strings.TrimSpace(in.Title)
	in.Subtitle = strings.TrimSpace(in.Subtitle)
	if err := in.validate(); err != nil {
		return nil, err
	}
	if err := s.checkTitle(ctx, in.Title, id); err != nil {
		return nil, err
	}
	img, err := s.images.Resolve(in.Image)
	if err != nil {
		return nil, err
	}

	p.Title = in.Title
	p.Subtitle = in.Subtitle
	p.Body = in.Body
	if img != nil {
		p.ImgURL = img
	}
	if err := s.posts.Update(ctx, p); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrTitleTaken
		}
		return nil, apperr.Wrap(apperr.CodeInternal, "update post", err)
	}
	return p, nil
}

func (s *Service) checkTitle(ctx context.Context, title string, excludeID int64) error {
	taken, err := s.posts.TitleTaken(ctx, title, excludeID)
	if err != nil {
		return apperr.Wrap(apperr.CodeInternal, "check title", err)
	}
	if taken {
		return ErrTitleTaken
	}
	return nil
}

// DeletePost removes a post and its comments.
func (s *Service) DeletePost(ctx context.Context, actor *auth.Identity, id int64) error {
	if err := auth.Require(actor, models.RoleAdmin); err != nil {
		return err
	}
	ok, err := s.posts.Delete(ctx, id)
	if err != nil {
		return apperr.Wrap(apperr.CodeInternal, "delete post", err)
	}
	if !ok {
		return ErrPostNotFound
	}
	s.logger.Printf("blog: user id=%d deleted post id=%d", actor.UserID, id)
	return nil
}

// AddComment attaches a comment by actor to an existing post. Anonymous
// callers get ErrLoginRequired.
func (s *Service) AddComment(ctx context.Context, actor *auth.Identity, postID int64, text string) (*models.Comment, error) {
	if _, err := s.loadPost(ctx, postID); err != nil {
		return nil, err
	}
	if actor == nil {
		return nil, ErrLoginRequired
	}
	if err := auth.Require(actor, models.RoleUser); err != nil {
		return nil, err
	}
	if err := validate(field{name: "comment_text", value: text}); err != nil {
		return nil, err
	}
	c, err := s.comments.Create(ctx, &models.Comment{Text: text, AuthorID: actor.UserID, PostID: postID})
	if err != nil {
		return nil, apperr.Wrap(apperr.CodeInternal, "create comment", err)
	}
	c.AuthorName = actor.Name
	c.AuthorEmail = actor.Email
	return c, nil
}

// DeleteComment removes one comment and returns the id of the post it was on.
func (s *Service) DeleteComment(ctx context.Context, actor *auth.Identity, id int64) (int64, error) {
	if err := auth.Require(actor, models.RoleAdmin); err != nil {
		return 0, err
	}
	c, err := s.comments.GetByID(ctx, id)
	if err != nil {
		return 0, apperr.Wrap(apperr.CodeInternal, "load comment", err)
	}
	if c == nil {
		return 0, ErrCommentNotFound
	}
	ok, err := s.comments.Delete(ctx, id)
	if err != nil {
		return 0, apperr.Wrap(apperr.CodeInternal, "delete comment", err)
	}
	if !ok {
		return 0, ErrCommentNotFound
	}
	return c.PostID, nil
}

// UploadImage stores an image sent by the rich-text editor and returns its
// public URL.
func (s *Service) UploadImage(_ context.Context, f media.FileSource) (string, error) {
	return s.images.Save(f)
}
