package httpapi

import (
	"errors"
	"net/http"
	"time"

	"inkwell/internal/auth"
)

// errMissingRefreshCookie is returned when /auth/refresh is called without
// the refresh cookie. It maps to 401 like every other session failure.
var errMissingRefreshCookie = errors.New("refresh cookie missing")

type registerRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type userResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

type authResponse struct {
	User        userResponse `json:"user"`
	AccessToken string       `json:"accessToken"`
}

func toUserResponse(u *auth.User) userResponse {
	return userResponse{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Role:      string(u.Role),
		CreatedAt: u.CreatedAt,
	}
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(r.Context(), w, err)
		return
	}
	if err := validateRegister(req); err != nil {
		s.writeError(r.Context(), w, err)
		return
	}

	session, err := s.engine.Register(r.Context(), auth.RegisterInput{
		Email:    req.Email,
		Name:     req.Name,
		Password: req.Password,
	})
	s.metrics.observe("register", err)
	if err != nil {
		s.writeError(r.Context(), w, err)
		return
	}

	setRefreshCookie(w, session.RefreshToken, s.engine.RefreshTTL(), s.engine.ProductionMode())
	s.writeJSON(w, http.StatusCreated, authResponse{
		User:        toUserResponse(session.User),
		AccessToken: session.AccessToken,
	})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(r.Context(), w, err)
		return
	}
	if err := validateLogin(req); err != nil {
		s.writeError(r.Context(), w, err)
		return
	}

	ctx := withClientIP(r)
	session, err := s.engine.Login(ctx, req.Email, req.Password)
	s.metrics.observe("login", err)
	if err != nil {
		s.writeError(ctx, w, err)
		return
	}

	setRefreshCookie(w, session.RefreshToken, s.engine.RefreshTTL(), s.engine.ProductionMode())
	s.writeJSON(w, http.StatusOK, authResponse{
		User:        toUserResponse(session.User),
		AccessToken: session.AccessToken,
	})
}

// handleRefresh rotates the session. The presented cookie must both be a
// valid refresh token and match the hash stored for the user; either
// failure clears nothing and returns 401.
func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	token, ok := refreshTokenFromRequest(r)
	if !ok {
		s.metrics.observe("refresh", errMissingRefreshCookie)
		s.writeError(r.Context(), w, errMissingRefreshCookie)
		return
	}

	claims, err := s.engine.Tokens().ParseRefresh(token)
	if err != nil {
		s.metrics.observe("refresh", err)
		s.writeError(r.Context(), w, err)
		return
	}

	session, err := s.engine.Refresh(r.Context(), claims.UserID(), token)
	s.metrics.observe("refresh", err)
	if err != nil {
		s.writeError(r.Context(), w, err)
		return
	}

	setRefreshCookie(w, session.RefreshToken, s.engine.RefreshTTL(), s.engine.ProductionMode())
	s.writeJSON(w, http.StatusOK, authResponse{
		User:        toUserResponse(session.User),
		AccessToken: session.AccessToken,
	})
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsFromContext(r.Context())
	if !ok {
		s.writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "unauthorized"})
		return
	}

	err := s.engine.Logout(r.Context(), claims.UserID())
	s.metrics.observe("logout", err)
	if err != nil {
		s.writeError(r.Context(), w, err)
		return
	}

	clearRefreshCookie(w, s.engine.ProductionMode())
	s.writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}
