package httpapi

import (
	"errors"
	"net/http"

	"inkwell/internal/auth"
)

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsFromContext(r.Context())
	if !ok {
		s.writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "unauthorized"})
		return
	}

	user, err := s.users.FindUserByID(r.Context(), claims.UserID())
	if err != nil {
		// A valid token for a deleted account is still not a session.
		if errors.Is(err, auth.ErrUserNotFound) {
			s.writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "unauthorized"})
			return
		}
		s.writeError(r.Context(), w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, toUserResponse(user))
}
