package jwt

import (
	"errors"
	"testing"
	"time"
)

func testConfig() Config {
	return Config{
		AccessSecret:  []byte("access-secret-0123456789-0123456789"),
		RefreshSecret: []byte("refresh-secret-0123456789-012345678"),
		AccessTTL:     time.Minute,
		RefreshTTL:    time.Hour,
		Issuer:        "inkwell",
	}
}

func newTestManager(t *testing.T, cfg Config) *Manager {
	t.Helper()
	m, err := New(cfg)
	if err != nil {
		t.Fatalf("New error: %v", err)
	}
	return m
}

func TestAccessRoundTrip(t *testing.T) {
	m := newTestManager(t, testConfig())

	token, err := m.IssueAccess("user-1", "alice@example.com", "USER")
	if err != nil {
		t.Fatalf("IssueAccess error: %v", err)
	}

	claims, err := m.ParseAccess(token)
	if err != nil {
		t.Fatalf("ParseAccess error: %v", err)
	}
	if claims.UserID() != "user-1" {
		t.Fatalf("sub = %q, want user-1", claims.UserID())
	}
	if claims.Email != "alice@example.com" || claims.Role != "USER" {
		t.Fatalf("unexpected payload: %+v", claims)
	}
	if claims.ExpiresAt == nil || claims.IssuedAt == nil {
		t.Fatal("expected exp and iat claims to be set")
	}
}

func TestRefreshRoundTrip(t *testing.T) {
	m := newTestManager(t, testConfig())

	token, err := m.IssueRefresh("user-1", "alice@example.com", "USER")
	if err != nil {
		t.Fatalf("IssueRefresh error: %v", err)
	}
	if _, err := m.ParseRefresh(token); err != nil {
		t.Fatalf("ParseRefresh error: %v", err)
	}
}

func TestTokenClassesAreNotInterchangeable(t *testing.T) {
	m := newTestManager(t, testConfig())

	access, err := m.IssueAccess("user-1", "a@b.c", "USER")
	if err != nil {
		t.Fatalf("IssueAccess error: %v", err)
	}
	refresh, err := m.IssueRefresh("user-1", "a@b.c", "USER")
	if err != nil {
		t.Fatalf("IssueRefresh error: %v", err)
	}

	if _, err := m.ParseRefresh(access); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("ParseRefresh(access) = %v, want ErrTokenInvalid", err)
	}
	if _, err := m.ParseAccess(refresh); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("ParseAccess(refresh) = %v, want ErrTokenInvalid", err)
	}
}

func TestExpiredToken(t *testing.T) {
	m := newTestManager(t, testConfig())

	token, err := m.sign("user-1", "a@b.c", "USER", m.cfg.AccessSecret, -time.Second)
	if err != nil {
		t.Fatalf("sign error: %v", err)
	}
	if _, err := m.ParseAccess(token); !errors.Is(err, ErrTokenExpired) {
		t.Fatalf("ParseAccess = %v, want ErrTokenExpired", err)
	}
}

func TestWrongSecret(t *testing.T) {
	m := newTestManager(t, testConfig())

	other := testConfig()
	other.AccessSecret = []byte("another-access-secret-0123456789-01")
	m2 := newTestManager(t, other)

	token, err := m.IssueAccess("user-1", "a@b.c", "USER")
	if err != nil {
		t.Fatalf("IssueAccess error: %v", err)
	}
	if _, err := m2.ParseAccess(token); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("ParseAccess = %v, want ErrTokenInvalid", err)
	}
}

func TestTamperedToken(t *testing.T) {
	m := newTestManager(t, testConfig())

	token, err := m.IssueAccess("user-1", "a@b.c", "USER")
	if err != nil {
		t.Fatalf("IssueAccess error: %v", err)
	}
	tampered := token[:len(token)-2] + "xx"
	if _, err := m.ParseAccess(tampered); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("ParseAccess = %v, want ErrTokenInvalid", err)
	}
}

func TestNewRejectsBadConfig(t *testing.T) {
	cfg := testConfig()
	cfg.AccessSecret = []byte("short")
	if _, err := New(cfg); err == nil {
		t.Fatal("expected short access secret to be rejected")
	}

	cfg = testConfig()
	cfg.RefreshSecret = cfg.AccessSecret
	if _, err := New(cfg); err == nil {
		t.Fatal("expected identical secrets to be rejected")
	}

	cfg = testConfig()
	cfg.RefreshTTL = 0
	if _, err := New(cfg); err == nil {
		t.Fatal("expected zero refresh TTL to be rejected")
	}
}

func TestParseRejectsAlgNone(t *testing.T) {
	m := newTestManager(t, testConfig())

	// header {"alg":"none","typ":"JWT"} with an arbitrary payload
	unsigned := "eyJhbGciOiJub25lIiwidHlwIjoiSldUIn0.eyJzdWIiOiJ1c2VyLTEifQ."
	if _, err := m.ParseAccess(unsigned); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("ParseAccess = %v, want ErrTokenInvalid", err)
	}
}
