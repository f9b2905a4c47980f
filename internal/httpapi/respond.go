package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"inkwell/internal/auth"
	"inkwell/internal/auth/jwt"
	"inkwell/internal/posts"
)

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps domain errors onto HTTP statuses. Authentication failures
// all collapse to 401 with a generic body; internals are never echoed back.
func (s *Server) writeError(ctx context.Context, w http.ResponseWriter, err error) {
	var verr validationError
	switch {
	case errors.As(err, &verr):
		s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: verr.Error()})
	case errors.Is(err, auth.ErrDuplicateEmail):
		s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "email already in use"})
	case errors.Is(err, auth.ErrInvalidCredentials),
		errors.Is(err, auth.ErrNoSession),
		errors.Is(err, auth.ErrTokenMismatch),
		errors.Is(err, errMissingRefreshCookie),
		errors.Is(err, jwt.ErrTokenInvalid),
		errors.Is(err, jwt.ErrTokenExpired):
		s.writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "unauthorized"})
	case errors.Is(err, auth.ErrLoginRateLimited):
		s.writeJSON(w, http.StatusTooManyRequests, errorResponse{Error: "too many attempts"})
	case errors.Is(err, posts.ErrNotFound):
		s.writeJSON(w, http.StatusNotFound, errorResponse{Error: "post not found"})
	case errors.Is(err, posts.ErrNotAllowed):
		s.writeJSON(w, http.StatusForbidden, errorResponse{Error: "not allowed"})
	case errors.Is(err, auth.ErrUserNotFound):
		s.writeJSON(w, http.StatusNotFound, errorResponse{Error: "user not found"})
	default:
		s.logger.Error(ctx, "request failed", "error", err)
		s.writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
	}
}

func decodeJSON(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return validationError("invalid request body")
	}
	return nil
}
