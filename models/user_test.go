package models

import "testing"

func TestRoleRankOrder(t *testing.T) {
	if !(RoleUser.Rank() < RoleAdmin.Rank() && RoleAdmin.Rank() < RoleMaintainer.Rank()) {
		t.Fatalf("unexpected order: user=%d admin=%d maintainer=%d", RoleUser.Rank(), RoleAdmin.Rank(), RoleMaintainer.Rank())
	}
	if Role("root").Rank() != -1 || Role("").Rank() != -1 {
		t.Fatalf("unknown roles must rank -1")
	}
}

func TestRoleAtLeast(t *testing.T) {
	roles := []Role{RoleUser, RoleAdmin, RoleMaintainer}
	for i, have := range roles {
		for j, need := range roles {
			if got, want := have.AtLeast(need), i >= j; got != want {
				t.Errorf("%s.AtLeast(%s) = %v, want %v", have, need, got, want)
			}
		}
	}
	if Role("ADMIN").AtLeast(RoleUser) {
		t.Fatalf("role comparison must not be case-insensitive")
	}
	if RoleMaintainer.AtLeast(Role("superuser")) {
		t.Fatalf("unknown required role must never be satisfied")
	}
}

func TestPostImage(t *testing.T) {
	var p *Post
	if p.Image() != "" {
		t.Fatalf("nil post image")
	}
	u := "https://example.com/a.png"
	p = &Post{ImgURL: &u}
	if p.Image() != u {
		t.Fatalf("image = %q", p.Image())
	}
}
