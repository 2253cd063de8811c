package web

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"multiUserBlog/internal/apperr"
	"multiUserBlog/internal/blog"
)

func (s *Server) registerForm(c *gin.Context) {
	s.render(c, http.StatusOK, "register.html", gin.H{"Name": "", "Email": "", "Error": ""})
}

func (s *Server) register(c *gin.Context) {
	in := blog.RegisterInput{
		Name:     c.PostForm("name"),
		Email:    c.PostForm("email"),
		Password: c.PostForm("password"),
	}
	sess, err := s.svc.Register(c.Request.Context(), in)
	switch {
	case err == nil:
		s.setSession(c, sess.Token, cookieAge(sess.Expires))
		c.Redirect(http.StatusFound, "/")
	case errors.Is(err, blog.ErrEmailTaken):
		s.flash(c, apperr.MessageOf(err))
		c.Redirect(http.StatusFound, "/login")
	case apperr.IsCode(err, apperr.CodeValidation):
		s.render(c, http.StatusBadRequest, "register.html", gin.H{"Name": in.Name, "Email": in.Email, "Error": apperr.MessageOf(err)})
	default:
		s.fail(c, err)
	}
}

func (s *Server) loginForm(c *gin.Context) {
	s.render(c, http.StatusOK, "login.html", gin.H{"Email": "", "Error": ""})
}

func (s *Server) login(c *gin.Context) {
	email := c.PostForm("email")
	sess, err := s.svc.Login(c.Request.Context(), email, c.PostForm("password"))
	switch {
	case err == nil:
		s.setSession(c, sess.Token, cookieAge(sess.Expires))
		c.Redirect(http.StatusFound, "/")
	case apperr.IsCode(err, apperr.CodeUnauthenticated):
		s.flash(c, apperr.MessageOf(err))
		c.Redirect(http.StatusFound, "/login")
	case apperr.IsCode(err, apperr.CodeValidation):
		s.render(c, http.StatusBadRequest, "login.html", gin.H{"Email": email, "Error": apperr.MessageOf(err)})
	default:
		s.fail(c, err)
	}
}

func (s *Server) logout(c *gin.Context) {
	s.clearSession(c)
	c.Redirect(http.StatusFound, "/")
}

func cookieAge(exp time.Time) int {
	if d := time.Until(exp); d > 0 {
		return int(d.Seconds())
	}
	return 0
}
