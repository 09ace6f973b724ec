package testutil

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"blogApp/internal/db"
	"blogApp/models"
	"blogApp/repository"
)

// OpenTestDB opens a fresh migrated SQLite database in a per-test temp directory.
// The database is closed via t.Cleanup.
func OpenTestDB(t *testing.T) *sql.DB {
	t.Helper()
	d, err := db.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { _ = d.Close() })
	return d
}

// GenerateJWTHS256 returns a signed token carrying the session claims used by the app.
// A zero ttl leaves out exp, a negative ttl yields an already expired token.
func GenerateJWTHS256(t *testing.T, secret string, id int64, username string, ttl time.Duration) string {
	t.Helper()
	claims := jwt.MapClaims{
		"id":       id,
		"username": username,
		"iat":      time.Now().Unix(),
		"jti":      uuid.NewString(),
	}
	if ttl != 0 {
		claims["exp"] = time.Now().Add(ttl).Unix()
	}
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return s
}

// CreateUser inserts a user without a password.
func CreateUser(t *testing.T, d *sql.DB, username, name string) *models.User {
	t.Helper()
	u, err := repository.NewUserRepository(d).Create(context.Background(), &models.User{Username: username, Name: name})
	if err != nil {
		t.Fatalf("create user %s: %v", username, err)
	}
	return u
}

// LoginToken signs a token for u and persists its session, as the login endpoint would.
func LoginToken(t *testing.T, d *sql.DB, secret string, u *models.User) string {
	t.Helper()
	tok := GenerateJWTHS256(t, secret, u.ID, u.Username, time.Hour)
	if _, err := repository.NewSessionRepository(d).Create(context.Background(), u.ID, tok); err != nil {
		t.Fatalf("create session: %v", err)
	}
	return tok
}

// BearerHeader formats an Authorization header value.
func BearerHeader(token string) string {
	return "Bearer " + token
}
