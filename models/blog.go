package models

import "time"

const (
	// MinBlogYear is the earliest year a blog may be dated.
	MinBlogYear = 1991
)

// BlogFields holds the columns of a blog that are safe to expose without the owner reference.
type BlogFields struct {
	ID        int64     `db:"id" json:"id"`
	Author    string    `db:"author" json:"author"`
	Title     string    `db:"title" json:"title"`
	URL       string    `db:"url" json:"url"`
	Likes     int       `db:"likes" json:"likes"`
	Year      *int      `db:"year" json:"year"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

// Blog is a full blog record, owned by the user that created it.
// It maps to the `blogs` table in SQLite.
type Blog struct {
	BlogFields
	UserID int64 `db:"user_id" json:"userId"`
}

// Creator is the part of a user embedded in blog listings.
type Creator struct {
	Name string `json:"name"`
}

// BlogListing is a blog as returned by the list endpoint: no owner id, creator name embedded.
type BlogListing struct {
	BlogFields
	User Creator `json:"User"`
}
