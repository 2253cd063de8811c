package web

import (
	"crypto/md5"
	"embed"
	"encoding/hex"
	"html/template"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"multiUserBlog/internal/apperr"
	"multiUserBlog/internal/auth"
	"multiUserBlog/models"
)

//go:embed templates/*.html
var templateFS embed.FS

func parseTemplates() (*template.Template, error) {
	return template.New("").Funcs(template.FuncMap{
		"gravatar": gravatar,
		"safeHTML": func(s string) template.HTML { return template.HTML(s) },
		"atLeast": func(id *auth.Identity, role string) bool {
			return id.Is(models.Role(role))
		},
	}).ParseFS(templateFS, "templates/*.html")
}

// gravatar returns the avatar URL for email: 100px, rating g, retro default.
func gravatar(email string) string {
	sum := md5.Sum([]byte(strings.ToLower(strings.TrimSpace(email))))
	return "https://www.gravatar.com/avatar/" + hex.EncodeToString(sum[:]) + "?s=100&d=retro&r=g"
}

// render executes a page template with the fields every page needs.
func (s *Server) render(c *gin.Context, status int, name string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	data["CurrentUser"] = auth.FromContext(c.Request.Context())
	data["Flashes"] = s.takeFlashes(c)
	data["Year"] = time.Now().Year()
	c.HTML(status, name, data)
}

func (s *Server) renderError(c *gin.Context, status int, msg string) {
	s.render(c, status, "error.html", gin.H{
		"Status":  status,
		"Title":   http.StatusText(status),
		"Message": msg,
	})
}

// fail renders err as an error page with the status of its code.
func (s *Server) fail(c *gin.Context, err error) {
	code := apperr.CodeOf(err)
	if code == apperr.CodeInternal {
		s.logger.Printf("web: %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
	}
	s.renderError(c, code.HTTPStatus(), apperr.MessageOf(err))
}

func (s *Server) static(name string) gin.HandlerFunc {
	return func(c *gin.Context) {
		s.render(c, http.StatusOK, name, nil)
	}
}
