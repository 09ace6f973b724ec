// Package seed loads a small demo dataset of well-known authors and their posts.
package seed

import (
	"context"
	"database/sql"
	"fmt"

	"blogApp/internal/auth"
	"blogApp/models"
	"blogApp/repository"
)

type demoUser struct {
	username, name string
}

type demoBlog struct {
	owner, author, title, url string
	likes                     int
}

var users = []demoUser{
	{"dan@overreacted.io", "Dan Abramov"},
	{"martin@martinfowler.com", "Martin Fowler"},
	{"kent@kentcdodds.com", "Kent C. Dodds"},
}

var blogs = []demoBlog{
	{"dan@overreacted.io", "Dan Abramov", "Goodbye, Clean Code", "https://overreacted.io/goodbye-clean-code/", 10},
	{"martin@martinfowler.com", "Martin Fowler", "Is High Quality Software Worth the Cost?", "https://martinfowler.com/articles/is-quality-worth-cost.html", 5},
	{"dan@overreacted.io", "Dan Abramov", "A Complete Guide to useEffect", "https://overreacted.io/a-complete-guide-to-useeffect/", 15},
	{"kent@kentcdodds.com", "Kent C. Dodds", "Application State Management with React", "https://kentcdodds.com/blog/application-state-management-with-react", 8},
	{"martin@martinfowler.com", "Martin Fowler", "Technical Debt", "https://martinfowler.com/bliki/TechnicalDebt.html", 12},
}

// Result reports what Run inserted.
type Result struct {
	Users int
	Blogs int
}

// Run wipes users (and, by cascade, their blogs, reading lists and sessions) and inserts
// the demo data. When password is non-empty every demo user gets it, so they can log in.
func Run(ctx context.Context, d *sql.DB, password string) (Result, error) {
	if _, err := d.ExecContext(ctx, `DELETE FROM users`); err != nil {
		return Result{}, fmt.Errorf("clear users: %w", err)
	}

	var hash string
	if password != "" {
		h, err := auth.HashPassword(password)
		if err != nil {
			return Result{}, err
		}
		hash = h
	}

	userRepo := repository.NewUserRepository(d)
	blogRepo := repository.NewBlogRepository(d)
	ids := make(map[string]int64, len(users))
	var res Result

	for _, u := range users {
		created, err := userRepo.Create(ctx, &models.User{Username: u.username, Name: u.name, PasswordHash: hash})
		if err != nil {
			return res, fmt.Errorf("create user %s: %w", u.username, err)
		}
		ids[u.username] = created.ID
		res.Users++
	}
	for _, b := range blogs {
		_, err := blogRepo.Create(ctx, &models.Blog{
			BlogFields: models.BlogFields{Author: b.author, Title: b.title, URL: b.url, Likes: b.likes},
			UserID:     ids[b.owner],
		})
		if err != nil {
			return res, fmt.Errorf("create blog %q: %w", b.title, err)
		}
		res.Blogs++
	}
	return res, nil
}
