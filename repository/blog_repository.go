package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"blogApp/models"
)

const blogColumns = `id, author, title, url, likes, year, created_at, updated_at`

type BlogRepository struct {
	db *sql.DB
}

func NewBlogRepository(db *sql.DB) *BlogRepository {
	return &BlogRepository{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

// scanBlogFields reads the columns in blogColumns order plus any trailing destinations.
func scanBlogFields(row scanner, extra ...any) (models.BlogFields, error) {
	var f models.BlogFields
	var year sql.NullInt64
	dest := append([]any{&f.ID, &f.Author, &f.Title, &f.URL, &f.Likes, &year, &f.CreatedAt, &f.UpdatedAt}, extra...)
	if err := row.Scan(dest...); err != nil {
		return f, err
	}
	if year.Valid {
		y := int(year.Int64)
		f.Year = &y
	}
	return f, nil
}

// Create inserts a blog owned by b.UserID. An unknown owner yields ErrForeignKey.
func (r *BlogRepository) Create(ctx context.Context, b *models.Blog) (*models.Blog, error) {
	if b == nil {
		return nil, errors.New("blog is nil")
	}
	ctx, cancel := context.WithTimeout(ctx, rowTimeout)
	defer cancel()

	var year sql.NullInt64
	if b.Year != nil {
		year = sql.NullInt64{Int64: int64(*b.Year), Valid: true}
	}
	ts := now()
	res, err := r.db.ExecContext(ctx, `INSERT INTO blogs (author, title, url, likes, year, user_id, created_at, updated_at) VALUES (?,?,?,?,?,?,?,?)`,
		b.Author, b.Title, b.URL, b.Likes, year, b.UserID, ts, ts)
	if err != nil {
		return nil, translate(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	out := *b
	out.ID = id
	out.CreatedAt = ts
	out.UpdatedAt = ts
	return &out, nil
}

func (r *BlogRepository) GetByID(ctx context.Context, id int64) (*models.Blog, error) {
	ctx, cancel := context.WithTimeout(ctx, rowTimeout)
	defer cancel()

	var b models.Blog
	f, err := scanBlogFields(r.db.QueryRowContext(ctx, `SELECT `+blogColumns+`, user_id FROM blogs WHERE id = ?`, id), &b.UserID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	b.BlogFields = f
	return &b, nil
}

// List returns blogs with their creator's name ordered by likes descending.
// A non-empty search keeps only blogs whose title or author contains it, ignoring case.
func (r *BlogRepository) List(ctx context.Context, search string) ([]models.BlogListing, error) {
	ctx, cancel := context.WithTimeout(ctx, listTimeout)
	defer cancel()

	query := `
SELECT b.id, b.author, b.title, b.url, b.likes, b.year, b.created_at, b.updated_at, u.name
FROM blogs b
JOIN users u ON u.id = b.user_id`
	var args []any
	if search != "" {
		pattern := "%" + escapeLike(search) + "%"
		query += `
WHERE unicode_lower(b.title) LIKE unicode_lower(?) ESCAPE '\'
   OR unicode_lower(b.author) LIKE unicode_lower(?) ESCAPE '\'`
		args = append(args, pattern, pattern)
	}
	query += `
ORDER BY b.likes DESC, b.id ASC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.BlogListing{}
	for rows.Next() {
		var l models.BlogListing
		f, err := scanBlogFields(rows, &l.User.Name)
		if err != nil {
			return nil, err
		}
		l.BlogFields = f
		out = append(out, l)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// UpdateLikes overwrites the like count. Returns (nil, nil) for an unknown id.
func (r *BlogRepository) UpdateLikes(ctx context.Context, id int64, likes int) (*models.Blog, error) {
	ctx, cancel := context.WithTimeout(ctx, rowTimeout)
	defer cancel()

	res, err := r.db.ExecContext(ctx, `UPDATE blogs SET likes = ?, updated_at = ? WHERE id = ?`, likes, now(), id)
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

// DeleteOwned removes the blog only when userID owns it.
// The check and the delete are one statement so a concurrent request cannot slip between them.
func (r *BlogRepository) DeleteOwned(ctx context.Context, id, userID int64) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, rowTimeout)
	defer cancel()

	res, err := r.db.ExecContext(ctx, `DELETE FROM blogs WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
