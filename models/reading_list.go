package models

// ReadingList is the join row between a user and a blog they want to read.
// The read flag belongs to the relationship, not to either side.
type ReadingList struct {
	ID     int64 `db:"id" json:"id"`
	UserID int64 `db:"user_id" json:"userId"`
	BlogID int64 `db:"blog_id" json:"blogId"`
	Read   bool  `db:"read" json:"read"`
}

// ReadingRef is the relationship part of a reading, as nested under a user.
type ReadingRef struct {
	ID   int64 `json:"id"`
	Read bool  `json:"read"`
}

// Reading is a blog on a user's reading list together with its join row.
type Reading struct {
	BlogFields
	ReadingList ReadingRef `json:"readinglist"`
}
