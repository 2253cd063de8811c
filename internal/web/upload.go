package web

import (
	"fmt"
	"html/template"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"multiUserBlog/internal/apperr"
	"multiUserBlog/internal/media"
)

// uploadError is the JSON body the editor expects on failure.
func uploadError(c *gin.Context, msg string) {
	c.JSON(http.StatusOK, gin.H{"uploaded": 0, "error": gin.H{"message": msg}})
}

// upload receives an image from the rich-text editor's file browser (form
// field "upload") and answers with the editor's callback script.
func (s *Server) upload(c *gin.Context) {
	fh, err := c.FormFile("upload")
	if err != nil {
		switch {
		case tooLarge(err) || tooLarge(c.Request.ParseMultipartForm(32<<20)):
			uploadError(c, "File too large")
		case c.Request.MultipartForm != nil && len(c.Request.MultipartForm.Value["upload"]) > 0:
			// a file input submitted without a selection arrives as a plain value
			uploadError(c, media.ErrNoFile.Message)
		default:
			uploadError(c, "No file part")
		}
		return
	}
	if fh.Filename == "" {
		uploadError(c, media.ErrNoFile.Message)
		return
	}
	src, err := readUpload(fh)
	if err != nil {
		s.logger.Printf("web: read upload: %v", err)
		uploadError(c, "Upload failed")
		return
	}
	url, err := s.svc.UploadImage(c.Request.Context(), src)
	if err != nil {
		if apperr.CodeOf(err) != apperr.CodeInternal {
			uploadError(c, apperr.MessageOf(err))
			return
		}
		s.logger.Printf("web: save upload: %v", err)
		uploadError(c, "Upload failed")
		return
	}

	script := fmt.Sprintf("<script>window.parent.CKEDITOR.tools.callFunction(%s, '%s', '');</script>",
		funcNum(c.Query("CKEditorFuncNum")), template.JSEscapeString(url))
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(script))
}

// funcNum keeps only the digits of the editor's callback number.
func funcNum(v string) string {
	var b strings.Builder
	for _, r := range v {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return "0"
	}
	return b.String()
}
