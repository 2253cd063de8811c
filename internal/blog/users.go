package blog

import (
	"context"

	"multiUserBlog/internal/apperr"
	"multiUserBlog/internal/auth"
	"multiUserBlog/models"
)

// ListUsers returns all accounts.
func (s *Service) ListUsers(ctx context.Context, actor *auth.Identity) ([]models.User, error) {
	if err := auth.Require(actor, models.RoleMaintainer); err != nil {
		return nil, err
	}
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, apperr.Wrap(apperr.CodeInternal, "list users", err)
	}
	return users, nil
}

// ToggleAdmin flips a user between the user and admin roles. Maintainers
// are refused.
func (s *Service) ToggleAdmin(ctx context.Context, actor *auth.Identity, userID int64) (*models.User, error) {
	if err := auth.Require(actor, models.RoleMaintainer); err != nil {
		return nil, err
	}
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, apperr.Wrap(apperr.CodeInternal, "load user", err)
	}
	if u == nil {
		return nil, ErrUserNotFound
	}

	var next models.Role
	switch u.Role {
	case models.RoleAdmin:
		next = models.RoleUser
	case models.RoleUser:
		next = models.RoleAdmin
	case models.RoleMaintainer:
		return nil, ErrMaintainerToggle
	default:
		// rows with a corrupt role are repaired to the lowest rank
		next = models.RoleUser
	}
	if err := s.users.UpdateRole(ctx, u.ID, next); err != nil {
		return nil, apperr.Wrap(apperr.CodeInternal, "update role", err)
	}
	s.logger.Printf("blog: maintainer id=%d set role of user id=%d to %s", actor.UserID, u.ID, next)
	u.Role = next
	return u, nil
}

// RemoveUser deletes an account with all its posts and comments.
func (s *Service) RemoveUser(ctx context.Context, actor *auth.Identity, userID int64) error {
	if err := auth.Require(actor, models.RoleMaintainer); err != nil {
		return err
	}
	ok, err := s.users.Delete(ctx, userID)
	if err != nil {
		return apperr.Wrap(apperr.CodeInternal, "remove user", err)
	}
	if !ok {
		return ErrUserNotFound
	}
	s.logger.Printf("blog: maintainer id=%d removed user id=%d", actor.UserID, userID)
	return nil
}
