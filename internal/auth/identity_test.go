package auth

import (
	"context"
	"testing"

	"multiUserBlog/internal/apperr"
	"multiUserBlog/models"
)

func TestRequire_RoleHierarchy(t *testing.T) {
	roles := []models.Role{models.RoleUser, models.RoleAdmin, models.RoleMaintainer}
	for i, have := range roles {
		for j, need := range roles {
			err := Require(&Identity{UserID: 1, Role: have}, need)
			if i < j && !apperr.IsCode(err, apperr.CodeForbidden) {
				t.Errorf("%s gated at %s: expected Forbidden, got %v", have, need, err)
			}
			if i >= j && err != nil {
				t.Errorf("%s gated at %s: unexpected %v", have, need, err)
			}
		}
	}
}

func TestRequire_AnonymousAndUnknownRole(t *testing.T) {
	if err := Require(nil, models.RoleUser); !apperr.IsCode(err, apperr.CodeForbidden) {
		t.Fatalf("anonymous must be Forbidden, got %v", err)
	}
	if err := Require(&Identity{UserID: 1, Role: "superuser"}, models.RoleUser); !apperr.IsCode(err, apperr.CodeForbidden) {
		t.Fatalf("unknown role must fail every check, got %v", err)
	}
}

func TestIdentityContext(t *testing.T) {
	if FromContext(context.Background()) != nil {
		t.Fatalf("expected no identity")
	}
	id := IdentityOf(&models.User{ID: 3, Name: "alice", Role: models.RoleAdmin})
	ctx := WithIdentity(context.Background(), id)
	if got := FromContext(ctx); got == nil || got.UserID != 3 || !got.Is(models.RoleAdmin) || got.Is(models.RoleMaintainer) {
		t.Fatalf("identity round trip: %+v", got)
	}
	if IdentityOf(nil) != nil {
		t.Fatalf("IdentityOf(nil) should be nil")
	}
}
