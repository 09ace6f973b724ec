package api

import (
	"net"
	"net/http"

	"blogApp/internal/auth"
	domainerrors "blogApp/internal/errors"
)

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse is returned by POST /api/login.
type LoginResponse struct {
	Token    string `json:"token"`
	Username string `json:"username"`
	Name     string `json:"name"`
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if !s.loginLimiter.Allow(clientIP(r)) {
		s.writeError(w, r, domainerrors.ErrRateLimited)
		return
	}
	var req loginRequest
	if err := s.decodeAndValidate(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	u, err := s.users.GetByUsername(r.Context(), req.Username)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if u == nil || !u.HasPassword() {
		s.writeError(w, r, domainerrors.ErrInvalidCredentials)
		return
	}
	ok, err := auth.CheckPassword(u.PasswordHash, req.Password)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if !ok {
		s.writeError(w, r, domainerrors.ErrInvalidCredentials)
		return
	}
	if u.Disabled {
		s.writeError(w, r, domainerrors.ErrAccountDisabled)
		return
	}

	token, err := s.issuer.Issue(u.ID, u.Username)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if _, err := s.sessions.Create(r.Context(), u.ID, token); err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, LoginResponse{Token: token, Username: u.Username, Name: u.Name})
}

// handleLogout revokes the session behind the presented token.
func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if _, err := s.sessions.DeleteByToken(r.Context(), principal(r).Token); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// clientIP keys the login limiter. RemoteAddr carries proxy header values only
// when RealIP is installed.
func clientIP(r *http.Request) string {
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}
