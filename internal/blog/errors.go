package blog

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"multiUserBlog/internal/apperr"
)

// Errors surfaced to callers. Messages are shown to the submitter as-is.
var (
	ErrEmailTaken       = apperr.New(apperr.CodeConflict, "You've already signed up with that email, log in instead!")
	ErrNoSuchEmail      = apperr.New(apperr.CodeUnauthenticated, "That email does not exist, please try again.")
	ErrBadPassword      = apperr.New(apperr.CodeUnauthenticated, "Password incorrect, please try again.")
	ErrLoginRequired    = apperr.New(apperr.CodeUnauthenticated, "You need to login or register to comment.")
	ErrTitleTaken       = apperr.New(apperr.CodeConflict, "A post with that title already exists.")
	ErrPostNotFound     = apperr.New(apperr.CodeNotFound, "post not found")
	ErrCommentNotFound  = apperr.New(apperr.CodeNotFound, "comment not found")
	ErrUserNotFound     = apperr.New(apperr.CodeNotFound, "user not found")
	ErrMaintainerToggle = apperr.New(apperr.CodeForbidden, "maintainer role cannot be toggled")
)

const (
	maxNameLen     = 500
	maxEmailLen    = 100
	maxTitleLen    = 250
	maxSubtitleLen = 250
)

// field is one form value under validation.
type field struct {
	name  string
	value string
	max   int // 0 = unbounded
}

// validate returns the first missing or oversized field.
func validate(fields ...field) error {
	for _, f := range fields {
		if strings.TrimSpace(f.value) == "" {
			return apperr.Invalid(f.name, "This field is required.")
		}
		if f.max > 0 && utf8.RuneCountInString(f.value) > f.max {
			return apperr.Invalid(f.name, fmt.Sprintf("Field cannot be longer than %d characters.", f.max))
		}
	}
	return nil
}
