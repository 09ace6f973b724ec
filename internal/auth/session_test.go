package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainerrors "blogApp/internal/errors"
	"blogApp/internal/testutil"
	"blogApp/models"
	"blogApp/repository"
)

func TestAuthenticator_Steps(t *testing.T) {
	d := testutil.OpenTestDB(t)
	users := repository.NewUserRepository(d)
	sessions := repository.NewSessionRepository(d)
	a := NewAuthenticator(testSecret, sessions, users)
	ctx := context.Background()

	john := testutil.CreateUser(t, d, "john@example.com", "John Doe")
	good := testutil.LoginToken(t, d, testSecret, john)
	unsaved := testutil.GenerateJWTHS256(t, testSecret, john.ID, john.Username, time.Hour)
	expired := testutil.GenerateJWTHS256(t, testSecret, john.ID, john.Username, -time.Minute)
	ghost := testutil.GenerateJWTHS256(t, testSecret, 9999, "ghost", time.Hour)
	_, err := sessions.Create(ctx, 9999, ghost)
	require.ErrorIs(t, err, repository.ErrForeignKey)

	tests := []struct {
		name   string
		header string
		want   *domainerrors.Error
	}{
		{"empty header", "", domainerrors.ErrTokenMissing},
		{"wrong scheme", "Basic " + good, domainerrors.ErrTokenMissing},
		{"scheme only", "Bearer", domainerrors.ErrTokenMissing},
		{"garbage token", "Bearer abc", domainerrors.ErrTokenInvalid},
		{"expired token", "Bearer " + expired, domainerrors.ErrTokenInvalid},
		{"wrong secret", "Bearer " + testutil.GenerateJWTHS256(t, "other", john.ID, john.Username, time.Hour), domainerrors.ErrTokenInvalid},
		{"no session row", "Bearer " + unsaved, domainerrors.ErrSessionInvalid},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := a.Authenticate(ctx, tt.header)
			assert.Nil(t, p)
			assert.ErrorIs(t, err, tt.want)
		})
	}

	p, err := a.Authenticate(ctx, "bearer "+good)
	require.NoError(t, err)
	assert.Equal(t, john.ID, p.UserID)
	assert.Equal(t, "john@example.com", p.Username)
	assert.Equal(t, good, p.Token)
}

func TestAuthenticator_DisabledAndDeletedUsers(t *testing.T) {
	d := testutil.OpenTestDB(t)
	users := repository.NewUserRepository(d)
	a := NewAuthenticator(testSecret, repository.NewSessionRepository(d), users)
	ctx := context.Background()

	jane := testutil.CreateUser(t, d, "jane@example.com", "Jane Smith")
	tok := testutil.LoginToken(t, d, testSecret, jane)

	_, err := users.SetDisabled(ctx, jane.Username, true)
	require.NoError(t, err)
	_, err = a.Authenticate(ctx, testutil.BearerHeader(tok))
	assert.ErrorIs(t, err, domainerrors.ErrAccountDisabled)

	_, err = users.SetDisabled(ctx, jane.Username, false)
	require.NoError(t, err)
	_, err = a.Authenticate(ctx, testutil.BearerHeader(tok))
	assert.NoError(t, err)
}

type fakeSessions struct{ err error }

func (f fakeSessions) GetByToken(context.Context, string) (*models.Session, error) {
	return nil, f.err
}

type fakeUsers struct{ u *models.User }

func (f fakeUsers) GetByID(context.Context, int64) (*models.User, error) { return f.u, nil }

func TestAuthenticator_StoreFailureIsInternal(t *testing.T) {
	a := NewAuthenticator(testSecret, fakeSessions{err: errors.New("db down")}, fakeUsers{})
	tok := testutil.GenerateJWTHS256(t, testSecret, 1, "a", time.Hour)
	_, err := a.Authenticate(context.Background(), testutil.BearerHeader(tok))
	assert.ErrorIs(t, err, domainerrors.ErrInternal)
}

func TestAuthenticator_UserGoneAfterSessionCheck(t *testing.T) {
	a := NewAuthenticator(testSecret, sessionAlways{}, fakeUsers{})
	tok := testutil.GenerateJWTHS256(t, testSecret, 1, "a", time.Hour)
	_, err := a.Authenticate(context.Background(), testutil.BearerHeader(tok))
	assert.ErrorIs(t, err, domainerrors.ErrUserNotFound)
}

type sessionAlways struct{}

func (sessionAlways) GetByToken(_ context.Context, token string) (*models.Session, error) {
	return &models.Session{ID: 1, UserID: 1, Token: token}, nil
}

func TestCheckPassword(t *testing.T) {
	h, err := HashPassword("secret")
	require.NoError(t, err)

	ok, err := CheckPassword(h, "secret")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = CheckPassword(h, "nope")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = CheckPassword("", "secret")
	require.NoError(t, err)
	assert.False(t, ok)
}
