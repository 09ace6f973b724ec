package repository

import (
	"context"

	"blogApp/models"
)

// ListDetails returns every user with their created blogs and reading list.
func (r *UserRepository) ListDetails(ctx context.Context) ([]models.UserDetail, error) {
	users, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(ctx, listTimeout)
	defer cancel()

	blogs, err := r.blogsByOwner(ctx, nil)
	if err != nil {
		return nil, err
	}
	readings, err := r.readingsByUser(ctx, nil, nil)
	if err != nil {
		return nil, err
	}
	out := make([]models.UserDetail, 0, len(users))
	for _, u := range users {
		out = append(out, models.UserDetail{
			User:     u,
			Blogs:    orEmpty(blogs[u.ID]),
			Readings: orEmpty(readings[u.ID]),
		})
	}
	return out, nil
}

// GetDetail returns one user with blogs and readings. When read is non-nil only
// readings whose flag matches are included. Returns (nil, nil) for an unknown id.
func (r *UserRepository) GetDetail(ctx context.Context, id int64, read *bool) (*models.UserDetail, error) {
	u, err := r.GetByID(ctx, id)
	if err != nil || u == nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(ctx, listTimeout)
	defer cancel()

	blogs, err := r.blogsByOwner(ctx, &id)
	if err != nil {
		return nil, err
	}
	readings, err := r.readingsByUser(ctx, &id, read)
	if err != nil {
		return nil, err
	}
	return &models.UserDetail{
		User:     *u,
		Blogs:    orEmpty(blogs[id]),
		Readings: orEmpty(readings[id]),
	}, nil
}

func (r *UserRepository) blogsByOwner(ctx context.Context, userID *int64) (map[int64][]models.BlogFields, error) {
	query := `SELECT ` + blogColumns + `, user_id FROM blogs`
	var args []any
	if userID != nil {
		query += ` WHERE user_id = ?`
		args = append(args, *userID)
	}
	query += ` ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[int64][]models.BlogFields)
	for rows.Next() {
		var owner int64
		f, err := scanBlogFields(rows, &owner)
		if err != nil {
			return nil, err
		}
		out[owner] = append(out[owner], f)
	}
	return out, rows.Err()
}

func (r *UserRepository) readingsByUser(ctx context.Context, userID *int64, read *bool) (map[int64][]models.Reading, error) {
	query := `
SELECT b.id, b.author, b.title, b.url, b.likes, b.year, b.created_at, b.updated_at, rl.id, rl.read, rl.user_id
FROM reading_lists rl
JOIN blogs b ON b.id = rl.blog_id
WHERE 1 = 1`
	var args []any
	if userID != nil {
		query += ` AND rl.user_id = ?`
		args = append(args, *userID)
	}
	if read != nil {
		query += ` AND rl.read = ?`
		args = append(args, *read)
	}
	query += ` ORDER BY rl.id`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[int64][]models.Reading)
	for rows.Next() {
		var rd models.Reading
		var owner int64
		f, err := scanBlogFields(rows, &rd.ReadingList.ID, &rd.ReadingList.Read, &owner)
		if err != nil {
			return nil, err
		}
		rd.BlogFields = f
		out[owner] = append(out[owner], rd)
	}
	return out, rows.Err()
}

func orEmpty[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
