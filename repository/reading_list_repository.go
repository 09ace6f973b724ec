package repository

import (
	"context"
	"database/sql"
	"errors"

	"blogApp/models"
)

type ReadingListRepository struct {
	db *sql.DB
}

func NewReadingListRepository(db *sql.DB) *ReadingListRepository {
	return &ReadingListRepository{db: db}
}

// Create adds blogID to the user's reading list as unread.
// An unknown user or blog yields ErrForeignKey and a repeated pair yields ErrDuplicate.
func (r *ReadingListRepository) Create(ctx context.Context, userID, blogID int64) (*models.ReadingList, error) {
	ctx, cancel := context.WithTimeout(ctx, rowTimeout)
	defer cancel()

	res, err := r.db.ExecContext(ctx, `INSERT INTO reading_lists (user_id, blog_id, read) VALUES (?,?,0)`, userID, blogID)
	if err != nil {
		return nil, translate(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return &models.ReadingList{ID: id, UserID: userID, BlogID: blogID}, nil
}

func (r *ReadingListRepository) GetByID(ctx context.Context, id int64) (*models.ReadingList, error) {
	ctx, cancel := context.WithTimeout(ctx, rowTimeout)
	defer cancel()

	var rl models.ReadingList
	err := r.db.QueryRowContext(ctx, `SELECT id, user_id, blog_id, read FROM reading_lists WHERE id = ?`, id).
		Scan(&rl.ID, &rl.UserID, &rl.BlogID, &rl.Read)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &rl, nil
}

// SetReadOwned updates the read flag only when userID owns the entry.
// Returns (nil, nil) when the entry is missing or belongs to someone else.
func (r *ReadingListRepository) SetReadOwned(ctx context.Context, id, userID int64, read bool) (*models.ReadingList, error) {
	ctx, cancel := context.WithTimeout(ctx, rowTimeout)
	defer cancel()

	res, err := r.db.ExecContext(ctx, `UPDATE reading_lists SET read = ? WHERE id = ? AND user_id = ?`, read, id, userID)
	if err != nil {
		return nil, err
	}
	if n, err := res.RowsAffected(); err != nil {
		return nil, err
	} else if n == 0 {
		return nil, nil
	}
	return r.GetByID(ctx, id)
}
