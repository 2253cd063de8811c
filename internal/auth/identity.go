package auth

import (
	"context"

	"multiUserBlog/internal/apperr"
	"multiUserBlog/models"
)

// Identity is the authenticated user bound to the current request.
type Identity struct {
	UserID int64
	Name   string
	Email  string
	Role   models.Role
}

// IdentityOf builds the identity for a loaded user row.
func IdentityOf(u *models.User) *Identity {
	if u == nil {
		return nil
	}
	return &Identity{UserID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role}
}

// Is reports whether the identity has at least role r. A nil identity has no role.
func (id *Identity) Is(r models.Role) bool {
	return id != nil && id.Role.AtLeast(r)
}

var ErrForbidden = apperr.New(apperr.CodeForbidden, "you do not have permission to do that")

// Require gates an operation on a minimum role. It fails with a Forbidden
// error when there is no identity or the identity ranks below min.
func Require(id *Identity, min models.Role) error {
	if id == nil {
		return ErrForbidden
	}
	if !id.Role.AtLeast(min) {
		return ErrForbidden
	}
	return nil
}

type identityKey struct{}

// WithIdentity stores the identity in context.
func WithIdentity(ctx context.Context, id *Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, id)
}

// FromContext retrieves the identity from context (nil for anonymous requests).
func FromContext(ctx context.Context) *Identity {
	id, _ := ctx.Value(identityKey{}).(*Identity)
	return id
}
