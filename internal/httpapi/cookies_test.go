package httpapi

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestRefreshTokenFromRequest(t *testing.T) {
	cases := []struct {
		name   string
		header string
		want   string
		ok     bool
	}{
		{"no header", "", "", false},
		{"single cookie", "refresh_token=abc.def.ghi", "abc.def.ghi", true},
		{"among others", "theme=dark; refresh_token=tok123; lang=en", "tok123", true},
		{"leading space", " refresh_token=tok123", "tok123", true},
		{"url encoded", "refresh_token=a%2Bb", "a+b", true},
		{"empty value", "refresh_token=", "", false},
		{"other cookies only", "theme=dark; lang=en", "", false},
		{"prefix name does not match", "refresh_token_v2=tok123", "", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodPost, "/api/auth/refresh", nil)
			if tc.header != "" {
				r.Header.Set("Cookie", tc.header)
			}
			got, ok := refreshTokenFromRequest(r)
			if ok != tc.ok {
				t.Fatalf("ok = %v, want %v", ok, tc.ok)
			}
			if got != tc.want {
				t.Fatalf("token = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestSetRefreshCookieAttributes(t *testing.T) {
	w := httptest.NewRecorder()
	setRefreshCookie(w, "tok123", 24*time.Hour, true)

	res := w.Result()
	cookies := res.Cookies()
	if len(cookies) != 1 {
		t.Fatalf("expected 1 cookie, got %d", len(cookies))
	}
	c := cookies[0]
	if c.Name != refreshCookieName || c.Value != "tok123" {
		t.Fatalf("unexpected cookie %q=%q", c.Name, c.Value)
	}
	if !c.HttpOnly {
		t.Fatal("cookie must be HttpOnly")
	}
	if !c.Secure {
		t.Fatal("cookie must be Secure in production mode")
	}
	if c.Path != "/" {
		t.Fatalf("path = %q, want /", c.Path)
	}
	if c.SameSite != http.SameSiteLaxMode {
		t.Fatalf("samesite = %v, want Lax", c.SameSite)
	}
	if c.MaxAge != int((24 * time.Hour).Seconds()) {
		t.Fatalf("max-age = %d", c.MaxAge)
	}
}

func TestSetRefreshCookieDevelopmentNotSecure(t *testing.T) {
	w := httptest.NewRecorder()
	setRefreshCookie(w, "tok123", time.Hour, false)

	if c := w.Result().Cookies()[0]; c.Secure {
		t.Fatal("cookie must not be Secure outside production")
	}
}

func TestClearRefreshCookie(t *testing.T) {
	w := httptest.NewRecorder()
	clearRefreshCookie(w, false)

	header := w.Header().Get("Set-Cookie")
	if !strings.HasPrefix(header, refreshCookieName+"=") {
		t.Fatalf("unexpected Set-Cookie header %q", header)
	}
	c := w.Result().Cookies()[0]
	if c.Value != "" || c.MaxAge >= 0 {
		t.Fatalf("cookie not cleared: value=%q max-age=%d", c.Value, c.MaxAge)
	}
}
