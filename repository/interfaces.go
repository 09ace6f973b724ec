package repository

import (
	"context"

	"blogApp/models"
)

// UserRepositoryI defines operations on User entities.
type UserRepositoryI interface {
	Create(ctx context.Context, u *models.User) (*models.User, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	List(ctx context.Context) ([]models.User, error)
	Rename(ctx context.Context, id int64, username string) (*models.User, error)
	SetDisabled(ctx context.Context, username string, disabled bool) (*models.User, error)
	ListDetails(ctx context.Context) ([]models.UserDetail, error)
	GetDetail(ctx context.Context, id int64, read *bool) (*models.UserDetail, error)
}

// BlogRepositoryI defines operations on Blog entities.
type BlogRepositoryI interface {
	Create(ctx context.Context, b *models.Blog) (*models.Blog, error)
	GetByID(ctx context.Context, id int64) (*models.Blog, error)
	List(ctx context.Context, search string) ([]models.BlogListing, error)
	UpdateLikes(ctx context.Context, id int64, likes int) (*models.Blog, error)
	DeleteOwned(ctx context.Context, id, userID int64) (bool, error)
}

// SessionRepositoryI defines operations on Session entities.
type SessionRepositoryI interface {
	Create(ctx context.Context, userID int64, token string) (*models.Session, error)
	GetByToken(ctx context.Context, token string) (*models.Session, error)
	DeleteByToken(ctx context.Context, token string) (bool, error)
	DeleteByUserID(ctx context.Context, userID int64) (int64, error)
}

// ReadingListRepositoryI defines operations on ReadingList entities.
type ReadingListRepositoryI interface {
	Create(ctx context.Context, userID, blogID int64) (*models.ReadingList, error)
	GetByID(ctx context.Context, id int64) (*models.ReadingList, error)
	SetReadOwned(ctx context.Context, id, userID int64, read bool) (*models.ReadingList, error)
}

var (
	_ UserRepositoryI        = (*UserRepository)(nil)
	_ BlogRepositoryI        = (*BlogRepository)(nil)
	_ SessionRepositoryI     = (*SessionRepository)(nil)
	_ ReadingListRepositoryI = (*ReadingListRepository)(nil)
)
