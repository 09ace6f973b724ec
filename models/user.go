package models

import "time"

// User represents an account that authors blogs and keeps a reading list.
// It maps to the `users` table in SQLite.
type User struct {
	ID           int64     `db:"id" json:"id"`
	Username     string    `db:"username" json:"username"`
	Name         string    `db:"name" json:"name"`
	Disabled     bool      `db:"disabled" json:"disabled"`
	PasswordHash string    `db:"password_hash" json:"-"`
	CreatedAt    time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt    time.Time `db:"updated_at" json:"updatedAt"`
}

// HasPassword reports whether the user can log in with a password.
func (u *User) HasPassword() bool {
	return u != nil && u.PasswordHash != ""
}

// UserDetail is a user together with the blogs they created and their reading list.
type UserDetail struct {
	User
	Blogs    []BlogFields `json:"blogs"`
	Readings []Reading    `json:"readings"`
}
