package repository

import (
	"context"
	"database/sql"
	"errors"

	"blogApp/models"
)

type SessionRepository struct {
	db *sql.DB
}

func NewSessionRepository(db *sql.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

// Create records a session for the token. Reusing a token yields ErrDuplicate.
func (r *SessionRepository) Create(ctx context.Context, userID int64, token string) (*models.Session, error) {
	ctx, cancel := context.WithTimeout(ctx, rowTimeout)
	defer cancel()

	ts := now()
	res, err := r.db.ExecContext(ctx, `INSERT INTO sessions (user_id, token, created_at) VALUES (?,?,?)`, userID, token, ts)
	if err != nil {
		return nil, translate(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return &models.Session{ID: id, UserID: userID, Token: token, CreatedAt: ts}, nil
}

func (r *SessionRepository) GetByToken(ctx context.Context, token string) (*models.Session, error) {
	ctx, cancel := context.WithTimeout(ctx, rowTimeout)
	defer cancel()

	var s models.Session
	err := r.db.QueryRowContext(ctx, `SELECT id, user_id, token, created_at FROM sessions WHERE token = ?`, token).
		Scan(&s.ID, &s.UserID, &s.Token, &s.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}

// DeleteByToken reports whether a session was removed.
func (r *SessionRepository) DeleteByToken(ctx context.Context, token string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, rowTimeout)
	defer cancel()

	res, err := r.db.ExecContext(ctx, `DELETE FROM sessions WHERE token = ?`, token)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// DeleteByUserID revokes every session of the user and returns how many were removed.
func (r *SessionRepository) DeleteByUserID(ctx context.Context, userID int64) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, rowTimeout)
	defer cancel()

	res, err := r.db.ExecContext(ctx, `DELETE FROM sessions WHERE user_id = ?`, userID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
