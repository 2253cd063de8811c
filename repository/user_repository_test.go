package repository

import (
	"context"
	"errors"
	"testing"

	"multiUserBlog/internal/testutil"
	"multiUserBlog/models"
)

func TestUserRepository_CRUDAndQueries(t *testing.T) {
	d := testutil.OpenInMemoryDB(t)
	repo := NewUserRepository(d)
	ctx := context.Background()

	// Create
	u, err := repo.Create(ctx, &models.User{Name: "Alice", Email: "alice@example.com", Password: "hash"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if u.ID == 0 || u.Role != models.RoleUser {
		t.Fatalf("unexpected created user: %+v", u)
	}

	// GetByID
	g, err := repo.GetByID(ctx, u.ID)
	if err != nil || g == nil || g.Email != "alice@example.com" {
		t.Fatalf("get by id: %v %+v", err, g)
	}

	// GetByEmail
	g2, err := repo.GetByEmail(ctx, "alice@example.com")
	if err != nil || g2 == nil || g2.ID != u.ID {
		t.Fatalf("get by email: %v %+v", err, g2)
	}
	missing, err := repo.GetByEmail(ctx, "nobody@example.com")
	if err != nil || missing != nil {
		t.Fatalf("expected nil for unknown email: %v %+v", err, missing)
	}

	// List
	list, err := repo.List(ctx)
	if err != nil || len(list) != 1 {
		t.Fatalf("list: %v len=%d", err, len(list))
	}

	// UpdateRole
	if err := repo.UpdateRole(ctx, u.ID, models.RoleAdmin); err != nil {
		t.Fatalf("update role: %v", err)
	}
	g3, _ := repo.GetByID(ctx, u.ID)
	if g3.Role != models.RoleAdmin {
		t.Fatalf("role not updated: %+v", g3)
	}

	// UpdatePassword
	if err := repo.UpdatePassword(ctx, u.ID, "new-hash"); err != nil {
		t.Fatalf("update password: %v", err)
	}
	g4, _ := repo.GetByID(ctx, u.ID)
	if g4.Password != "new-hash" {
		t.Fatalf("password not updated")
	}

	// Delete
	deleted, err := repo.Delete(ctx, u.ID)
	if err != nil || !deleted {
		t.Fatalf("delete: %v deleted=%v", err, deleted)
	}
	gone, err := repo.GetByID(ctx, u.ID)
	if err != nil || gone != nil {
		t.Fatalf("expected user deleted, got: %+v err=%v", gone, err)
	}
	deleted, err = repo.Delete(ctx, u.ID)
	if err != nil || deleted {
		t.Fatalf("second delete: %v deleted=%v", err, deleted)
	}
}

func TestUserRepository_DuplicateEmail(t *testing.T) {
	d := testutil.OpenInMemoryDB(t)
	repo := NewUserRepository(d)
	ctx := context.Background()

	if _, err := repo.Create(ctx, &models.User{Name: "A", Email: "dup@example.com", Password: "h"}); err != nil {
		t.Fatalf("create: %v", err)
	}
	_, err := repo.Create(ctx, &models.User{Name: "B", Email: "dup@example.com", Password: "h"})
	if !errors.Is(err, ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate, got %v", err)
	}
	list, _ := repo.List(ctx)
	if len(list) != 1 {
		t.Fatalf("second insert must not create a row, have %d", len(list))
	}
}

func TestUserRepository_DeleteCascades(t *testing.T) {
	d := testutil.OpenInMemoryDB(t)
	users := NewUserRepository(d)
	posts := NewPostRepository(d)
	comments := NewCommentRepository(d)
	ctx := context.Background()

	author := testutil.SeedUser(t, d, "Author", "author@example.com", "pw", models.RoleAdmin)
	reader := testutil.SeedUser(t, d, "Reader", "reader@example.com", "pw", models.RoleUser)

	own, err := posts.Create(ctx, &models.Post{Title: "Mine", Subtitle: "s", Date: "March 03, 2024", Body: "b", AuthorID: author.ID})
	if err != nil {
		t.Fatalf("create post: %v", err)
	}
	other, err := posts.Create(ctx, &models.Post{Title: "Theirs", Subtitle: "s", Date: "March 03, 2024", Body: "b", AuthorID: reader.ID})
	if err != nil {
		t.Fatalf("create post: %v", err)
	}
	// reader comments on author's post; author comments on reader's post
	if _, err := comments.Create(ctx, &models.Comment{Text: "nice", AuthorID: reader.ID, PostID: own.ID}); err != nil {
		t.Fatalf("comment: %v", err)
	}
	if _, err := comments.Create(ctx, &models.Comment{Text: "thanks", AuthorID: author.ID, PostID: other.ID}); err != nil {
		t.Fatalf("comment: %v", err)
	}
	keep, err := comments.Create(ctx, &models.Comment{Text: "self", AuthorID: reader.ID, PostID: other.ID})
	if err != nil {
		t.Fatalf("comment: %v", err)
	}

	if _, err := users.Delete(ctx, author.ID); err != nil {
		t.Fatalf("delete author: %v", err)
	}

	var orphanPosts, orphanComments int64
	d.Table("blog_posts").Where("author_id NOT IN (SELECT id FROM users)").Count(&orphanPosts)
	d.Table("comments").Where("author_id NOT IN (SELECT id FROM users) OR post_id NOT IN (SELECT id FROM blog_posts)").Count(&orphanComments)
	if orphanPosts != 0 || orphanComments != 0 {
		t.Fatalf("orphans remain: posts=%d comments=%d", orphanPosts, orphanComments)
	}
	if p, _ := posts.GetByID(ctx, own.ID); p != nil {
		t.Fatalf("author's post survived")
	}
	left, err := comments.ListByPost(ctx, other.ID)
	if err != nil || len(left) != 1 || left[0].ID != keep.ID {
		t.Fatalf("expected only reader's own comment to remain: %v %+v", err, left)
	}
}
