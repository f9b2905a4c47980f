package httpapi

import (
	"net/http"
	"net/url"
	"strings"
	"time"
)

const refreshCookieName = "refresh_token"

// refreshTokenFromRequest extracts the refresh token from the Cookie header.
// The header is parsed directly (semicolon-delimited pairs, URL-decoded
// values) so an otherwise malformed header does not hide the one entry we
// care about. Absence is not an error; the caller surfaces it as an
// authentication failure.
func refreshTokenFromRequest(r *http.Request) (string, bool) {
	header := r.Header.Get("Cookie")
	if header == "" {
		return "", false
	}
	for _, part := range strings.Split(header, ";") {
		name, value, ok := strings.Cut(part, "=")
		if !ok || strings.TrimSpace(name) != refreshCookieName {
			continue
		}
		decoded, err := url.QueryUnescape(strings.TrimSpace(value))
		if err != nil || decoded == "" {
			return "", false
		}
		return decoded, true
	}
	return "", false
}

// setRefreshCookie issues the refresh cookie: http-only so scripts cannot
// read it, SameSite=Lax to keep top-level navigation working while blocking
// cross-site subrequests, Secure only in production so local development
// over plain HTTP still works.
func setRefreshCookie(w http.ResponseWriter, token string, ttl time.Duration, production bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     refreshCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		Secure:   production,
		SameSite: http.SameSiteLaxMode,
	})
}

// clearRefreshCookie expires the refresh cookie immediately.
func clearRefreshCookie(w http.ResponseWriter, production bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     refreshCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   production,
		SameSite: http.SameSiteLaxMode,
	})
}
