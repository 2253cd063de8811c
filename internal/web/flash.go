package web

import (
	"encoding/base64"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const flashCookie = "flash"

// flash queues a message for the next rendered page.
func (s *Server) flash(c *gin.Context, msg string) {
	var msgs []string
	if prev, err := c.Cookie(flashCookie); err == nil {
		msgs = decodeFlashes(prev)
	}
	msgs = append(msgs, msg)
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(flashCookie, encodeFlashes(msgs), 300, "/", "", s.opts.SecureCookies, true)
}

// takeFlashes returns the queued messages and clears them.
func (s *Server) takeFlashes(c *gin.Context) []string {
	v, err := c.Cookie(flashCookie)
	if err != nil || v == "" {
		return nil
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(flashCookie, "", -1, "/", "", s.opts.SecureCookies, true)
	return decodeFlashes(v)
}

func encodeFlashes(msgs []string) string {
	parts := make([]string, len(msgs))
	for i, m := range msgs {
		parts[i] = base64.RawURLEncoding.EncodeToString([]byte(m))
	}
	return strings.Join(parts, ".")
}

func decodeFlashes(v string) []string {
	var out []string
	for _, p := range strings.Split(v, ".") {
		b, err := base64.RawURLEncoding.DecodeString(p)
		if err != nil || len(b) == 0 {
			continue
		}
		out = append(out, string(b))
	}
	return out
}
