package web

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"multiUserBlog/internal/auth"
)

const sessionCookie = "session"

// identity resolves the session cookie and stores the identity in the
// request context. Invalid or stale cookies are cleared and the request
// continues anonymously. Lookup failures leave the cookie in place.
func (s *Server) identity() gin.HandlerFunc {
	return func(c *gin.Context) {
		tok, err := c.Cookie(sessionCookie)
		if err != nil || tok == "" {
			c.Next()
			return
		}
		id, err := s.svc.ResolveSession(c.Request.Context(), tok)
		if err != nil && !errors.Is(err, auth.ErrInvalidSession) {
			// store failure, not a bad token
			s.logger.Printf("web: resolve session: %v", err)
			c.Next()
			return
		}
		if id == nil {
			s.clearSession(c)
			c.Next()
			return
		}
		c.Request = c.Request.WithContext(auth.WithIdentity(c.Request.Context(), id))
		c.Next()
	}
}

func (s *Server) setSession(c *gin.Context, token string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(sessionCookie, token, maxAge, "/", "", s.opts.SecureCookies, true)
}

func (s *Server) clearSession(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(sessionCookie, "", -1, "/", "", s.opts.SecureCookies, true)
}

// limitBody caps request bodies that may carry image uploads.
func (s *Server) limitBody() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, s.opts.MaxUploadBytes)
		c.Next()
	}
}

// tracing opens a server span per request on the global tracer provider.
// Without telemetry configured the provider is a no-op.
func tracing() gin.HandlerFunc {
	tracer := otel.Tracer("multiUserBlog/internal/web")
	return func(c *gin.Context) {
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		ctx, span := tracer.Start(c.Request.Context(), c.Request.Method+" "+route,
			trace.WithSpanKind(trace.SpanKindServer),
			trace.WithAttributes(
				attribute.String("http.request.method", c.Request.Method),
				attribute.String("http.route", route),
			))
		defer span.End()
		c.Request = c.Request.WithContext(ctx)
		c.Next()

		status := c.Writer.Status()
		span.SetAttributes(attribute.Int("http.response.status_code", status))
		if status >= http.StatusInternalServerError {
			span.SetStatus(codes.Error, http.StatusText(status))
		}
	}
}
