package api

import (
	"errors"
	"net/http"

	domainerrors "blogApp/internal/errors"
	"blogApp/repository"
)

type addReadingRequest struct {
	BlogID int64 `json:"blogId" validate:"required,gt=0"`
}

type markReadRequest struct {
	Read *bool `json:"read" validate:"required"`
}

func (s *Server) handleAddReading(w http.ResponseWriter, r *http.Request) {
	var req addReadingRequest
	if err := s.decodeAndValidate(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	entry, err := s.readings.Create(r.Context(), principal(r).UserID, req.BlogID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrForeignKey):
			err = domainerrors.BadRequest("blog not found")
		case errors.Is(err, repository.ErrDuplicate):
			err = domainerrors.Conflict("blog is already in the reading list")
		}
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, entry)
}

func (s *Server) handleMarkRead(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	var req markReadRequest
	if err := s.decodeAndValidate(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	p := principal(r)

	entry, err := s.readings.GetByID(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if entry == nil {
		s.writeError(w, r, domainerrors.NotFound("reading list entry not found"))
		return
	}
	if entry.UserID != p.UserID {
		s.writeError(w, r, domainerrors.Forbidden("not authorized"))
		return
	}

	updated, err := s.readings.SetReadOwned(r.Context(), id, p.UserID, *req.Read)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if updated == nil {
		s.writeError(w, r, domainerrors.NotFound("reading list entry not found"))
		return
	}
	writeJSON(w, http.StatusOK, updated)
}
