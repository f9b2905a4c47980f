package httpapi

import (
	"context"
	"net"
	"net/http"
	"strings"

	"inkwell/internal/auth"
	"inkwell/internal/auth/jwt"
)

type claimsContextKey struct{}

// claimsFromContext returns the verified access-token claims stored by
// requireAccess.
func claimsFromContext(ctx context.Context) (*jwt.Claims, bool) {
	claims, ok := ctx.Value(claimsContextKey{}).(*jwt.Claims)
	return claims, ok
}

// requireAccess verifies the Authorization bearer token and passes the
// claims to the handler through the request context. Handlers behind it
// receive an already-authenticated identity and never parse tokens
// themselves.
func (s *Server) requireAccess(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := bearerToken(r.Header.Get("Authorization"))
		if token == "" {
			s.writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "unauthorized"})
			return
		}
		claims, err := s.engine.Tokens().ParseAccess(token)
		if err != nil {
			s.writeError(r.Context(), w, err)
			return
		}
		ctx := context.WithValue(r.Context(), claimsContextKey{}, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func bearerToken(header string) string {
	const prefix = "Bearer "
	if len(header) > len(prefix) && strings.EqualFold(header[:len(prefix)], prefix) {
		return header[len(prefix):]
	}
	return ""
}

// withClientIP tags the request context with the caller address for the
// login limiter.
func withClientIP(r *http.Request) context.Context {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}
	return auth.WithClientIP(r.Context(), host)
}
