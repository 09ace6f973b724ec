package auth

import (
	"context"
	"strings"

	domainerrors "blogApp/internal/errors"
	"blogApp/models"
)

// SessionFinder looks up persisted sessions by their exact token.
type SessionFinder interface {
	GetByToken(ctx context.Context, token string) (*models.Session, error)
}

// UserFinder loads users by id.
type UserFinder interface {
	GetByID(ctx context.Context, id int64) (*models.User, error)
}

// Authenticator validates bearer tokens against the session table and the user's state.
type Authenticator struct {
	secret   []byte
	sessions SessionFinder
	users    UserFinder
}

func NewAuthenticator(secret string, sessions SessionFinder, users UserFinder) *Authenticator {
	return &Authenticator{secret: []byte(secret), sessions: sessions, users: users}
}

// Authenticate checks an Authorization header value. The checks run in order and the first
// failure wins: header shape, token signature, session row, user existence, disabled flag.
// Store failures come back as INTERNAL errors wrapping the cause.
func (a *Authenticator) Authenticate(ctx context.Context, header string) (*Principal, error) {
	token, ok := bearerToken(header)
	if !ok {
		return nil, domainerrors.ErrTokenMissing
	}
	claims, err := parseJWT(token, a.secret)
	if err != nil {
		return nil, domainerrors.ErrTokenInvalid.WithCause(err)
	}

	s, err := a.sessions.GetByToken(ctx, token)
	if err != nil {
		return nil, domainerrors.Internal(err)
	}
	if s == nil {
		return nil, domainerrors.ErrSessionInvalid
	}

	u, err := a.users.GetByID(ctx, claims.ID)
	if err != nil {
		return nil, domainerrors.Internal(err)
	}
	if u == nil {
		return nil, domainerrors.ErrUserNotFound
	}
	if u.Disabled {
		return nil, domainerrors.ErrAccountDisabled
	}
	return &Principal{UserID: u.ID, Username: u.Username, Token: token}, nil
}

// bearerToken extracts the token from "Bearer <token>", matching the scheme case-insensitively.
func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	return strings.TrimSpace(token), true
}
