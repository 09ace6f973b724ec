package repository

import (
	"context"
	"errors"
	"testing"

	"blogApp/models"
)

func TestBlogRepository_CreateGetUpdateDelete(t *testing.T) {
	d := openDB(t)
	repo := NewBlogRepository(d)
	ctx := context.Background()
	owner := mustUser(t, d, "john@example.com", "John Doe")

	year := 2020
	b, err := repo.Create(ctx, &models.Blog{
		BlogFields: models.BlogFields{Author: "John Doe", Title: "Advanced React patterns", URL: "http://example.com/3", Likes: 15, Year: &year},
		UserID:     owner.ID,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if b.ID == 0 || b.UserID != owner.ID || b.CreatedAt.IsZero() {
		t.Fatalf("unexpected created blog: %+v", b)
	}

	g, err := repo.GetByID(ctx, b.ID)
	if err != nil || g == nil || g.Year == nil || *g.Year != 2020 || g.Likes != 15 {
		t.Fatalf("get by id: %v %+v", err, g)
	}

	up, err := repo.UpdateLikes(ctx, b.ID, 42)
	if err != nil || up == nil || up.Likes != 42 || up.Title != b.Title {
		t.Fatalf("update likes: %v %+v", err, up)
	}
	if m, err := repo.UpdateLikes(ctx, 9999, 1); err != nil || m != nil {
		t.Fatalf("update missing: %v %+v", err, m)
	}

	other := mustUser(t, d, "jane@example.com", "Jane Smith")
	ok, err := repo.DeleteOwned(ctx, b.ID, other.ID)
	if err != nil || ok {
		t.Fatalf("non-owner delete must not remove: ok=%v err=%v", ok, err)
	}
	ok, err = repo.DeleteOwned(ctx, b.ID, owner.ID)
	if err != nil || !ok {
		t.Fatalf("owner delete: ok=%v err=%v", ok, err)
	}
	if gone, err := repo.GetByID(ctx, b.ID); err != nil || gone != nil {
		t.Fatalf("expected blog gone: %v %+v", err, gone)
	}
}

func TestBlogRepository_CreateUnknownOwner(t *testing.T) {
	d := openDB(t)
	_, err := NewBlogRepository(d).Create(context.Background(), &models.Blog{
		BlogFields: models.BlogFields{Title: "Orphan", URL: "http://example.com/x"},
		UserID:     9999,
	})
	if !errors.Is(err, ErrForeignKey) {
		t.Fatalf("expected ErrForeignKey, got %v", err)
	}
}

func TestBlogRepository_ListOrderAndSearch(t *testing.T) {
	d := openDB(t)
	repo := NewBlogRepository(d)
	ctx := context.Background()
	john := mustUser(t, d, "john@example.com", "John Doe")
	jane := mustUser(t, d, "jane@example.com", "Jane Smith")

	mustBlog(t, d, john.ID, "John Doe", "First blog post about React", 5)
	mustBlog(t, d, jane.ID, "Jane Smith", "Learning Node.js and Express", 10)
	mustBlog(t, d, john.ID, "John Doe", "Advanced React patterns", 15)
	mustBlog(t, d, jane.ID, "Bob Johnson", "Database design principles", 8)

	all, err := repo.List(ctx, "")
	if err != nil || len(all) != 4 {
		t.Fatalf("list: %v len=%d", err, len(all))
	}
	wantLikes := []int{15, 10, 8, 5}
	for i, l := range all {
		if l.Likes != wantLikes[i] {
			t.Fatalf("position %d: likes=%d want %d", i, l.Likes, wantLikes[i])
		}
	}
	if all[0].User.Name != "John Doe" || all[2].User.Name != "Jane Smith" {
		t.Fatalf("creator names not joined: %+v", all)
	}

	cases := []struct {
		search string
		want   int
	}{
		{"react", 2},
		{"REACT", 2},
		{"bob", 1},
		{"john", 3},
		{"nothing-matches", 0},
		{"%", 0},
		{"_", 0},
	}
	for _, tc := range cases {
		got, err := repo.List(ctx, tc.search)
		if err != nil {
			t.Fatalf("search %q: %v", tc.search, err)
		}
		if len(got) != tc.want {
			t.Fatalf("search %q: got %d want %d", tc.search, len(got), tc.want)
		}
	}
}

func TestBlogRepository_SearchFoldsNonASCII(t *testing.T) {
	d := openDB(t)
	repo := NewBlogRepository(d)
	u := mustUser(t, d, "u@example.com", "U")
	mustBlog(t, d, u.ID, "Jürgen Müller", "Ärger mit Umlauten", 1)

	for _, q := range []string{"ärger", "ÄRGER", "MÜLLER"} {
		got, err := repo.List(context.Background(), q)
		if err != nil || len(got) != 1 {
			t.Fatalf("search %q: err=%v len=%d", q, err, len(got))
		}
	}
}

func TestEscapeLike(t *testing.T) {
	if got := escapeLike(`50%_off\`); got != `50\%\_off\\` {
		t.Fatalf("escapeLike: %q", got)
	}
}
