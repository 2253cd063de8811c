package web

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"multiUserBlog/internal/blog"
)

func (s *Server) manageUsers(c *gin.Context) {
	users, err := s.svc.ListUsers(c.Request.Context(), actor(c))
	if err != nil {
		s.fail(c, err)
		return
	}
	s.render(c, http.StatusOK, "manage-users.html", gin.H{"Title": "Manage Users", "Users": users})
}

func (s *Server) toggleAdmin(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		s.fail(c, blog.ErrUserNotFound)
		return
	}
	if _, err := s.svc.ToggleAdmin(c.Request.Context(), actor(c), id); err != nil {
		s.fail(c, err)
		return
	}
	c.Redirect(http.StatusFound, "/manage-users")
}

func (s *Server) removeUser(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		s.fail(c, blog.ErrUserNotFound)
		return
	}
	if err := s.svc.RemoveUser(c.Request.Context(), actor(c), id); err != nil {
		s.fail(c, err)
		return
	}
	c.Redirect(http.StatusFound, "/manage-users")
}
