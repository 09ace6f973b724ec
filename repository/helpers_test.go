package repository

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"blogApp/internal/db"
	"blogApp/models"
)

func openDB(t *testing.T) *sql.DB {
	t.Helper()
	d, err := db.Open(filepath.Join(t.TempDir(), "repo.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = d.Close() })
	return d
}

func mustUser(t *testing.T, d *sql.DB, username, name string) *models.User {
	t.Helper()
	u, err := NewUserRepository(d).Create(context.Background(), &models.User{Username: username, Name: name})
	if err != nil {
		t.Fatalf("create user %s: %v", username, err)
	}
	return u
}

func mustBlog(t *testing.T, d *sql.DB, owner int64, author, title string, likes int) *models.Blog {
	t.Helper()
	b, err := NewBlogRepository(d).Create(context.Background(), &models.Blog{
		BlogFields: models.BlogFields{Author: author, Title: title, URL: "http://example.com/" + title, Likes: likes},
		UserID:     owner,
	})
	if err != nil {
		t.Fatalf("create blog %q: %v", title, err)
	}
	return b
}
