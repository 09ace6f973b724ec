package api

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"blogApp/internal/auth"
	domainerrors "blogApp/internal/errors"
	"blogApp/models"
	"blogApp/repository"
)

type createUserRequest struct {
	Username string `json:"username" validate:"required"`
	Name     string `json:"name" validate:"required"`
	Password string `json:"password" validate:"omitempty,min=3"`
}

type renameUserRequest struct {
	Username string `json:"username" validate:"required"`
}

func (s *Server) handleListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := s.users.ListDetails(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, users)
}

func (s *Server) handleGetUser(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	u, err := s.users.GetDetail(r.Context(), id, readFilter(r))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if u == nil {
		s.writeError(w, r, domainerrors.NotFound("user not found"))
		return
	}
	writeJSON(w, http.StatusOK, u)
}

// readFilter parses the optional ?read= query parameter. "true" selects read
// entries and any other value selects unread ones.
func readFilter(r *http.Request) *bool {
	q := r.URL.Query()
	if !q.Has("read") {
		return nil
	}
	v := q.Get("read") == "true"
	return &v
}

func (s *Server) handleCreateUser(w http.ResponseWriter, r *http.Request) {
	var req createUserRequest
	if err := s.decodeAndValidate(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	u := &models.User{Username: req.Username, Name: req.Name}
	if req.Password != "" {
		hash, err := auth.HashPassword(req.Password)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		u.PasswordHash = hash
	}

	created, err := s.users.Create(r.Context(), u)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			err = domainerrors.Conflict("username must be unique")
		}
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, models.UserDetail{
		User:     *created,
		Blogs:    []models.BlogFields{},
		Readings: []models.Reading{},
	})
}

func (s *Server) handleRenameUser(w http.ResponseWriter, r *http.Request) {
	var req renameUserRequest
	if err := s.decodeAndValidate(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	current, err := s.users.GetByUsername(r.Context(), chi.URLParam(r, "username"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if current == nil {
		s.writeError(w, r, domainerrors.NotFound("user not found"))
		return
	}

	u, err := s.users.Rename(r.Context(), current.ID, req.Username)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			err = domainerrors.Conflict("username must be unique")
		}
		s.writeError(w, r, err)
		return
	}
	if u == nil {
		s.writeError(w, r, domainerrors.NotFound("user not found"))
		return
	}
	writeJSON(w, http.StatusOK, u)
}
