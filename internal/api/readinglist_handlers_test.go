package api

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"blogApp/repository"
)

func TestAddReading(t *testing.T) {
	ts := setupTestServer(t)
	fx := ts.seedFixture()
	tok := ts.token(fx.john)

	requireError(t, ts.do(http.MethodPost, "/api/readinglists", map[string]any{"blogId": fx.blogs[1].ID}, ""), http.StatusUnauthorized, "TOKEN_MISSING")

	rec := ts.do(http.MethodPost, "/api/readinglists", map[string]any{"blogId": fx.blogs[1].ID}, tok)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	entry := decode[map[string]any](t, rec)
	assert.Equal(t, float64(fx.john.ID), entry["userId"])
	assert.Equal(t, float64(fx.blogs[1].ID), entry["blogId"])
	assert.Equal(t, false, entry["read"])

	requireError(t, ts.do(http.MethodPost, "/api/readinglists", map[string]any{"blogId": fx.blogs[1].ID}, tok), http.StatusBadRequest, "CONFLICT")
	requireError(t, ts.do(http.MethodPost, "/api/readinglists", map[string]any{"blogId": 9999}, tok), http.StatusBadRequest, "BAD_REQUEST")
	requireError(t, ts.do(http.MethodPost, "/api/readinglists", map[string]any{}, tok), http.StatusBadRequest, "BAD_REQUEST")
}

func TestMarkRead(t *testing.T) {
	ts := setupTestServer(t)
	fx := ts.seedFixture()
	entry, err := repository.NewReadingListRepository(ts.db).Create(context.Background(), fx.john.ID, fx.blogs[1].ID)
	require.NoError(t, err)
	u := urlFor("/api/readinglists", entry.ID)
	johnTok, janeTok := ts.token(fx.john), ts.token(fx.jane)

	body := requireError(t, ts.do(http.MethodPut, u, map[string]any{"read": true}, janeTok), http.StatusForbidden, "FORBIDDEN")
	assert.Equal(t, "not authorized", body.Error)
	got, _ := repository.NewReadingListRepository(ts.db).GetByID(context.Background(), entry.ID)
	assert.False(t, got.Read)

	rec := ts.do(http.MethodPut, u, map[string]any{"read": true}, johnTok)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, true, decode[map[string]any](t, rec)["read"])

	requireError(t, ts.do(http.MethodPut, u, map[string]any{}, johnTok), http.StatusBadRequest, "BAD_REQUEST")
	requireError(t, ts.do(http.MethodPut, "/api/readinglists/9999", map[string]any{"read": true}, johnTok), http.StatusNotFound, "NOT_FOUND")
	requireError(t, ts.do(http.MethodPut, "/api/readinglists/abc", map[string]any{"read": true}, johnTok), http.StatusBadRequest, "BAD_REQUEST")
	requireError(t, ts.do(http.MethodPut, u, map[string]any{"read": true}, ""), http.StatusUnauthorized, "TOKEN_MISSING")
}

// Deleting a blog while someone marks it read must leave no dangling or half-updated rows.
func TestConcurrentDeleteAndMarkRead(t *testing.T) {
	ts := setupTestServer(t)
	fx := ts.seedFixture()
	johnTok, janeTok := ts.token(fx.john), ts.token(fx.jane)
	readings := repository.NewReadingListRepository(ts.db)
	blogs := repository.NewBlogRepository(ts.db)
	ctx := context.Background()

	for i := 0; i < 20; i++ {
		b := ts.blog(fx.john, "John Doe", fmt.Sprintf("race %d", i), "http://example.com/race", 0)
		entry, err := readings.Create(ctx, fx.jane.ID, b.ID)
		require.NoError(t, err)

		var wg sync.WaitGroup
		var delCode, markCode int
		wg.Add(2)
		go func() {
			defer wg.Done()
			delCode = ts.do(http.MethodDelete, urlFor("/api/blogs", b.ID), nil, johnTok).Code
		}()
		go func() {
			defer wg.Done()
			markCode = ts.do(http.MethodPut, urlFor("/api/readinglists", entry.ID), map[string]any{"read": true}, janeTok).Code
		}()
		wg.Wait()

		assert.Equal(t, http.StatusNoContent, delCode)
		assert.Contains(t, []int{http.StatusOK, http.StatusNotFound}, markCode)

		gone, err := blogs.GetByID(ctx, b.ID)
		require.NoError(t, err)
		assert.Nil(t, gone)
		left, err := readings.GetByID(ctx, entry.ID)
		require.NoError(t, err)
		assert.Nil(t, left, "reading entry must cascade with its blog")
	}

	rows, err := ts.db.Query(`PRAGMA foreign_key_check`)
	require.NoError(t, err)
	defer rows.Close()
	assert.False(t, rows.Next(), "foreign key violations found")
}

func TestConcurrentDeletesOfSameBlog(t *testing.T) {
	ts := setupTestServer(t)
	fx := ts.seedFixture()
	tok := ts.token(fx.john)
	u := urlFor("/api/blogs", fx.blogs[2].ID)

	codes := make([]int, 4)
	var wg sync.WaitGroup
	for i := range codes {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			codes[i] = ts.do(http.MethodDelete, u, nil, tok).Code
		}(i)
	}
	wg.Wait()

	ok := 0
	for _, c := range codes {
		if c == http.StatusNoContent {
			ok++
		} else {
			assert.Equal(t, http.StatusNotFound, c)
		}
	}
	assert.Equal(t, 1, ok)
	assert.Equal(t, 3, ts.countBlogs())
}
