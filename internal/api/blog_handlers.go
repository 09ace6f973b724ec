package api

import (
	"errors"
	"net/http"

	domainerrors "blogApp/internal/errors"
	"blogApp/models"
	"blogApp/repository"
)

// createBlogRequest is the body of POST /api/blogs. A client-supplied userId is ignored.
type createBlogRequest struct {
	Author string `json:"author"`
	Title  string `json:"title" validate:"required"`
	URL    string `json:"url" validate:"required"`
	Likes  *int   `json:"likes" validate:"omitempty,gte=0"`
	Year   *int   `json:"year" validate:"omitempty,blogyear"`
}

type updateLikesRequest struct {
	Likes *int `json:"likes" validate:"required,gte=0"`
}

func (s *Server) handleListBlogs(w http.ResponseWriter, r *http.Request) {
	blogs, err := s.blogs.List(r.Context(), r.URL.Query().Get("search"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, blogs)
}

func (s *Server) handleGetBlog(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	b, err := s.blogs.GetByID(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if b == nil {
		s.writeError(w, r, domainerrors.NotFound("blog not found"))
		return
	}
	writeJSON(w, http.StatusOK, b)
}

func (s *Server) handleCreateBlog(w http.ResponseWriter, r *http.Request) {
	var req createBlogRequest
	if err := s.decodeAndValidate(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	blog := &models.Blog{
		BlogFields: models.BlogFields{
			Author: req.Author,
			Title:  req.Title,
			URL:    req.URL,
			Year:   req.Year,
		},
		UserID: principal(r).UserID,
	}
	if req.Likes != nil {
		blog.Likes = *req.Likes
	}

	created, err := s.blogs.Create(r.Context(), blog)
	if err != nil {
		if errors.Is(err, repository.ErrForeignKey) {
			err = domainerrors.ErrUserNotFound
		}
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, created)
}

// handleUpdateLikes overwrites the like count. Any authenticated or anonymous caller may do so.
func (s *Server) handleUpdateLikes(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	var req updateLikesRequest
	if err := s.decodeAndValidate(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	b, err := s.blogs.UpdateLikes(r.Context(), id, *req.Likes)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if b == nil {
		s.writeError(w, r, domainerrors.NotFound("blog not found"))
		return
	}
	writeJSON(w, http.StatusOK, b)
}

func (s *Server) handleDeleteBlog(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	p := principal(r)

	b, err := s.blogs.GetByID(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if b == nil {
		s.writeError(w, r, domainerrors.NotFound("blog not found"))
		return
	}
	if b.UserID != p.UserID {
		s.writeError(w, r, domainerrors.Forbidden("only the creator can delete this blog"))
		return
	}

	deleted, err := s.blogs.DeleteOwned(r.Context(), id, p.UserID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if !deleted {
		// Removed by a concurrent request between the lookup and the delete.
		s.writeError(w, r, domainerrors.NotFound("blog not found"))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
