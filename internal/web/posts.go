package web

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"multiUserBlog/internal/apperr"
	"multiUserBlog/internal/auth"
	"multiUserBlog/internal/blog"
	"multiUserBlog/internal/media"
	"multiUserBlog/models"
)

var errTooLarge = apperr.Invalid("image", "Image is too large.")

// postForm holds the values echoed back into make-post.html. CurrentImage
// is only shown; the image-url input starts empty on edit so an uploaded
// file is not shadowed by the stored URL.
type postForm struct {
	Title        string
	Subtitle     string
	Body         string
	ImageURL     string
	CurrentImage string
}

// pathID parses an integer route parameter. Non-numeric ids are treated as
// missing resources.
func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	return id, err == nil && id > 0
}

func actor(c *gin.Context) *auth.Identity {
	return auth.FromContext(c.Request.Context())
}

func (s *Server) index(c *gin.Context) {
	posts, err := s.svc.ListPosts(c.Request.Context())
	if err != nil {
		s.fail(c, err)
		return
	}
	s.render(c, http.StatusOK, "index.html", gin.H{"Posts": posts})
}

func (s *Server) showPost(c *gin.Context) {
	s.renderPost(c, http.StatusOK, "")
}

func (s *Server) renderPost(c *gin.Context, status int, formErr string) {
	id, ok := pathID(c, "id")
	if !ok {
		s.fail(c, blog.ErrPostNotFound)
		return
	}
	view, err := s.svc.GetPost(c.Request.Context(), id)
	if err != nil {
		s.fail(c, err)
		return
	}
	s.render(c, status, "post.html", gin.H{
		"Title":    view.Post.Title,
		"Post":     view.Post,
		"Comments": view.Comments,
		"Error":    formErr,
	})
}

func (s *Server) comment(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		s.fail(c, blog.ErrPostNotFound)
		return
	}
	_, err := s.svc.AddComment(c.Request.Context(), actor(c), id, c.PostForm("comment_text"))
	switch {
	case err == nil:
		c.Redirect(http.StatusFound, fmt.Sprintf("/post/%d", id))
	case errors.Is(err, blog.ErrLoginRequired):
		s.flash(c, apperr.MessageOf(err))
		c.Redirect(http.StatusFound, "/login")
	case apperr.IsCode(err, apperr.CodeValidation):
		s.renderPost(c, http.StatusBadRequest, apperr.MessageOf(err))
	default:
		s.fail(c, err)
	}
}

func (s *Server) newPostForm(c *gin.Context) {
	if err := auth.Require(actor(c), models.RoleAdmin); err != nil {
		s.fail(c, err)
		return
	}
	s.renderPostForm(c, http.StatusOK, "/new-post", false, postForm{}, "")
}

func (s *Server) createPost(c *gin.Context) {
	if err := auth.Require(actor(c), models.RoleAdmin); err != nil {
		s.fail(c, err)
		return
	}
	form, in, err := readPostForm(c)
	if err == nil {
		_, err = s.svc.CreatePost(c.Request.Context(), actor(c), in)
	}
	if err != nil {
		s.formError(c, "/new-post", false, form, err)
		return
	}
	c.Redirect(http.StatusFound, "/")
}

func (s *Server) editPostForm(c *gin.Context) {
	if err := auth.Require(actor(c), models.RoleAdmin); err != nil {
		s.fail(c, err)
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		s.fail(c, blog.ErrPostNotFound)
		return
	}
	view, err := s.svc.GetPost(c.Request.Context(), id)
	if err != nil {
		s.fail(c, err)
		return
	}
	p := view.Post
	form := postForm{Title: p.Title, Subtitle: p.Subtitle, Body: p.Body, CurrentImage: p.Image()}
	s.renderPostForm(c, http.StatusOK, fmt.Sprintf("/edit-post/%d", id), true, form, "")
}

func (s *Server) editPost(c *gin.Context) {
	if err := auth.Require(actor(c), models.RoleAdmin); err != nil {
		s.fail(c, err)
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		s.fail(c, blog.ErrPostNotFound)
		return
	}
	action := fmt.Sprintf("/edit-post/%d", id)
	form, in, err := readPostForm(c)
	if err == nil {
		_, err = s.svc.EditPost(c.Request.Context(), actor(c), id, in)
	}
	if err != nil {
		s.formError(c, action, true, form, err)
		return
	}
	c.Redirect(http.StatusFound, fmt.Sprintf("/post/%d", id))
}

// formError re-displays the post form for submitter mistakes and falls back
// to an error page otherwise.
func (s *Server) formError(c *gin.Context, action string, isEdit bool, form postForm, err error) {
	switch apperr.CodeOf(err) {
	case apperr.CodeValidation, apperr.CodeConflict, apperr.CodeUnsupportedMediaType:
		s.renderPostForm(c, apperr.CodeOf(err).HTTPStatus(), action, isEdit, form, apperr.MessageOf(err))
	default:
		s.fail(c, err)
	}
}

func (s *Server) renderPostForm(c *gin.Context, status int, action string, isEdit bool, form postForm, msg string) {
	title := "New Post"
	if isEdit {
		title = "Edit Post"
	}
	s.render(c, status, "make-post.html", gin.H{
		"Title":  title,
		"Action": action,
		"IsEdit": isEdit,
		"Form":   form,
		"Error":  msg,
	})
}

// readPostForm reads the post fields and the image source. A non-empty
// image URL takes precedence over an uploaded file.
func readPostForm(c *gin.Context) (postForm, blog.PostInput, error) {
	form := postForm{
		Title:    c.PostForm("title"),
		Subtitle: c.PostForm("subtitle"),
		Body:     c.PostForm("body"),
		ImageURL: c.PostForm("image-url"),
	}
	if tooLarge(c.Request.ParseMultipartForm(32 << 20)) {
		return form, blog.PostInput{}, errTooLarge
	}
	in := blog.PostInput{Title: form.Title, Subtitle: form.Subtitle, Body: form.Body}

	if u := strings.TrimSpace(form.ImageURL); u != "" {
		in.Image = media.URLSource{URL: u}
		return form, in, nil
	}
	fh, err := c.FormFile("image")
	switch {
	case err == nil:
		src, err := readUpload(fh)
		if err != nil {
			return form, in, err
		}
		in.Image = src
	case errors.Is(err, http.ErrMissingFile), errors.Is(err, http.ErrNotMultipart):
	case tooLarge(err):
		return form, in, errTooLarge
	default:
		return form, in, apperr.Wrap(apperr.CodeValidation, "Could not read the uploaded image.", err)
	}
	return form, in, nil
}

func readUpload(fh *multipart.FileHeader) (media.FileSource, error) {
	f, err := fh.Open()
	if err != nil {
		return media.FileSource{}, apperr.Wrap(apperr.CodeInternal, "open upload", err)
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return media.FileSource{}, apperr.Wrap(apperr.CodeInternal, "read upload", err)
	}
	return media.FileSource{Filename: fh.Filename, Data: data}, nil
}

func tooLarge(err error) bool {
	var mbe *http.MaxBytesError
	return errors.As(err, &mbe)
}

// deleteItem removes a post (isPost != 0) or a comment (isPost == 0).
func (s *Server) deleteItem(c *gin.Context) {
	id, ok := pathID(c, "id")
	isPost, err := strconv.Atoi(c.Param("isPost"))
	if !ok || err != nil {
		s.renderError(c, http.StatusNotFound, "Page not found.")
		return
	}
	ctx := c.Request.Context()
	if isPost != 0 {
		if err := s.svc.DeletePost(ctx, actor(c), id); err != nil {
			s.fail(c, err)
			return
		}
		c.Redirect(http.StatusFound, "/")
		return
	}
	postID, err := s.svc.DeleteComment(ctx, actor(c), id)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.Redirect(http.StatusFound, fmt.Sprintf("/post/%d", postID))
}
