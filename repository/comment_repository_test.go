package repository

import (
	"context"
	"testing"

	"multiUserBlog/internal/testutil"
	"multiUserBlog/models"
)

func TestCommentRepository_CRUD(t *testing.T) {
	d := testutil.OpenInMemoryDB(t)
	posts := NewPostRepository(d)
	repo := NewCommentRepository(d)
	ctx := context.Background()
	author := testutil.SeedUser(t, d, "Ada", "Ada@Example.com", "pw", models.RoleAdmin)
	reader := testutil.SeedUser(t, d, "Bob", "bob@example.com", "pw", models.RoleUser)
	p, _ := posts.Create(ctx, &models.Post{Title: "T", Subtitle: "s", Date: "d", Body: "b", AuthorID: author.ID})

	first, err := repo.Create(ctx, &models.Comment{Text: "first", AuthorID: reader.ID, PostID: p.ID})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := repo.Create(ctx, &models.Comment{Text: "second", AuthorID: author.ID, PostID: p.ID}); err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := repo.GetByID(ctx, first.ID)
	if err != nil || got == nil || got.AuthorName != "Bob" || got.AuthorEmail != "bob@example.com" || got.PostID != p.ID {
		t.Fatalf("get: %v %+v", err, got)
	}

	list, err := repo.ListByPost(ctx, p.ID)
	if err != nil || len(list) != 2 || list[0].Text != "first" || list[1].AuthorName != "Ada" {
		t.Fatalf("list: %v %+v", err, list)
	}

	deleted, err := repo.Delete(ctx, first.ID)
	if err != nil || !deleted {
		t.Fatalf("delete: %v %v", deleted, err)
	}
	if gone, _ := repo.GetByID(ctx, first.ID); gone != nil {
		t.Fatalf("comment still present")
	}
}

func TestCommentRepository_RequiresLivePost(t *testing.T) {
	d := testutil.OpenInMemoryDB(t)
	repo := NewCommentRepository(d)
	reader := testutil.SeedUser(t, d, "Bob", "bob@example.com", "pw", models.RoleUser)

	if _, err := repo.Create(context.Background(), &models.Comment{Text: "x", AuthorID: reader.ID, PostID: 404}); err == nil {
		t.Fatalf("expected foreign key failure for missing post")
	}
}
