package api

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"io"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"blogApp/internal/logger"
	"blogApp/internal/testutil"
	"blogApp/models"
	"blogApp/repository"
)

const testSecret = "test-secret"

type testServer struct {
	t   *testing.T
	srv *Server
	db  *sql.DB
}

func setupTestServer(t *testing.T) *testServer {
	t.Helper()
	return setupTestServerWith(t, Options{LoginPerMinute: 600, LoginBurst: 100})
}

func setupTestServerWith(t *testing.T, opts Options) *testServer {
	t.Helper()
	d := testutil.OpenTestDB(t)
	opts.JWTSecret = testSecret
	if opts.TokenTTL == 0 {
		opts.TokenTTL = time.Hour
	}
	srv := NewServer(d, opts, logger.Discard())
	t.Cleanup(srv.Close)
	return &testServer{t: t, srv: srv, db: d}
}

// do sends a request through the router. body may be nil, a string (sent verbatim) or any JSON value.
func (ts *testServer) do(method, path string, body any, token string) *httptest.ResponseRecorder {
	ts.t.Helper()
	var rdr io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		rdr = bytes.NewBufferString(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(ts.t, err)
		rdr = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, rdr)
	if rdr != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", testutil.BearerHeader(token))
	}
	rec := httptest.NewRecorder()
	ts.srv.ServeHTTP(rec, req)
	return rec
}

func (ts *testServer) user(username, name string) *models.User {
	return testutil.CreateUser(ts.t, ts.db, username, name)
}

func (ts *testServer) token(u *models.User) string {
	return testutil.LoginToken(ts.t, ts.db, testSecret, u)
}

func (ts *testServer) blog(owner *models.User, author, title, url string, likes int) *models.Blog {
	ts.t.Helper()
	b, err := repository.NewBlogRepository(ts.db).Create(context.Background(), &models.Blog{
		BlogFields: models.BlogFields{Author: author, Title: title, URL: url, Likes: likes},
		UserID:     owner.ID,
	})
	require.NoError(ts.t, err)
	return b
}

func (ts *testServer) countBlogs() int {
	ts.t.Helper()
	var n int
	require.NoError(ts.t, ts.db.QueryRow(`SELECT COUNT(*) FROM blogs`).Scan(&n))
	return n
}

type fixture struct {
	john, jane *models.User
	blogs      []*models.Blog
}

// seedFixture inserts two users and four blogs with likes 5, 10, 15 and 8.
func (ts *testServer) seedFixture() fixture {
	john := ts.user("john@example.com", "John Doe")
	jane := ts.user("jane@example.com", "Jane Smith")
	return fixture{
		john: john,
		jane: jane,
		blogs: []*models.Blog{
			ts.blog(john, "John Doe", "First blog post about React", "http://example.com/1", 5),
			ts.blog(jane, "Jane Smith", "Learning Node.js and Express", "http://example.com/2", 10),
			ts.blog(john, "John Doe", "Advanced React patterns", "http://example.com/3", 15),
			ts.blog(jane, "Bob Johnson", "Database design principles", "http://example.com/4", 8),
		},
	}
}

type errorBody struct {
	Error   string            `json:"error"`
	Code    string            `json:"code"`
	Details map[string]string `json:"details"`
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), "body: %s", rec.Body.String())
	return v
}

func requireError(t *testing.T, rec *httptest.ResponseRecorder, status int, code string) errorBody {
	t.Helper()
	require.Equal(t, status, rec.Code, "body: %s", rec.Body.String())
	body := decode[errorBody](t, rec)
	require.Equal(t, code, body.Code)
	require.NotEmpty(t, body.Error)
	return body
}

func urlFor(base string, id int64) string {
	return base + "/" + strconv.FormatInt(id, 10)
}
