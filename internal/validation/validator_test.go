package validation

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainerrors "blogApp/internal/errors"
)

type blogRequest struct {
	Title string `json:"title" validate:"required"`
	URL   string `json:"url" validate:"required"`
	Likes *int   `json:"likes,omitempty" validate:"omitempty,gte=0"`
	Year  *int   `json:"year" validate:"omitempty,blogyear"`
}

type userRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"omitempty,min=3"`
}

func intPtr(i int) *int { return &i }

func fixedClock() time.Time { return time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC) }

func TestValidator_ValidateSuccess(t *testing.T) {
	v := newWithClock(fixedClock)
	assert.NoError(t, v.Validate(blogRequest{Title: "t", URL: "http://example.com", Likes: intPtr(0), Year: intPtr(2025)}))
	assert.NoError(t, v.Validate(blogRequest{Title: "t", URL: "u"}))
	assert.NoError(t, v.Validate(userRequest{Username: "a@example.com"}))
}

func TestValidator_ValidateErrors(t *testing.T) {
	v := newWithClock(fixedClock)

	tests := []struct {
		name    string
		req     any
		field   string
		message string
	}{
		{"missing title", blogRequest{URL: "u"}, "title", "is required"},
		{"missing url", blogRequest{Title: "t"}, "url", "is required"},
		{"negative likes", blogRequest{Title: "t", URL: "u", Likes: intPtr(-1)}, "likes", "must be greater than or equal to 0"},
		{"year too early", blogRequest{Title: "t", URL: "u", Year: intPtr(1990)}, "year", "must be at least 1991"},
		{"year in future", blogRequest{Title: "t", URL: "u", Year: intPtr(2026)}, "year", "cannot be greater than 2025"},
		{"short password", userRequest{Username: "a", Password: "ab"}, "password", "must be at least 3 characters"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(tt.req)
			require.Error(t, err)

			var domainErr *domainerrors.Error
			require.ErrorAs(t, err, &domainErr)
			assert.Equal(t, http.StatusBadRequest, domainErr.HTTPStatus())
			assert.Equal(t, domainerrors.CodeBadRequest, domainErr.Code)

			fields, ok := domainErr.Details.(map[string]string)
			require.True(t, ok, "details should be a field map")
			assert.Equal(t, tt.message, fields[tt.field])
		})
	}
}

func TestValidator_BoundaryYears(t *testing.T) {
	v := newWithClock(fixedClock)
	assert.NoError(t, v.Validate(blogRequest{Title: "t", URL: "u", Year: intPtr(1991)}))
	assert.NoError(t, v.Validate(blogRequest{Title: "t", URL: "u", Year: intPtr(2025)}))
}
