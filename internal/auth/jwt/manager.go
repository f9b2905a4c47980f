// Package jwt issues and verifies the two token classes used by the auth
// engine: short-lived access tokens and long-lived refresh tokens. Both are
// HS256-signed and self-contained; they embed the same identity payload but
// are signed with independent secrets so that compromise of one class does
// not compromise the other.
package jwt

import (
	"crypto/subtle"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const minSecretBytes = 32

var (
	// ErrTokenInvalid covers bad signatures, wrong-class secrets, and
	// malformed tokens.
	ErrTokenInvalid = errors.New("invalid token")
	// ErrTokenExpired is returned when the exp claim has passed.
	ErrTokenExpired = errors.New("token expired")
)

// Config carries the independent secret/TTL pair per token class.
type Config struct {
	AccessSecret  []byte
	RefreshSecret []byte
	AccessTTL     time.Duration
	RefreshTTL    time.Duration
	Issuer        string
}

// Claims is the identity payload embedded in both token classes. The user id
// travels in the registered sub claim.
type Claims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

// UserID returns the sub claim.
func (c *Claims) UserID() string { return c.Subject }

// Manager signs and parses tokens. Safe for concurrent use after New.
type Manager struct {
	cfg Config
}

// New validates cfg and returns a Manager. Secrets must be at least 32 bytes
// and must differ from each other.
func New(cfg Config) (*Manager, error) {
	if len(cfg.AccessSecret) < minSecretBytes {
		return nil, errors.New("jwt: access secret must be >= 32 bytes")
	}
	if len(cfg.RefreshSecret) < minSecretBytes {
		return nil, errors.New("jwt: refresh secret must be >= 32 bytes")
	}
	if len(cfg.AccessSecret) == len(cfg.RefreshSecret) &&
		subtle.ConstantTimeCompare(cfg.AccessSecret, cfg.RefreshSecret) == 1 {
		return nil, errors.New("jwt: access and refresh secrets must differ")
	}
	if cfg.AccessTTL <= 0 || cfg.RefreshTTL <= 0 {
		return nil, errors.New("jwt: token TTLs must be > 0")
	}
	return &Manager{cfg: cfg}, nil
}

// IssueAccess mints an access token for the given identity.
func (m *Manager) IssueAccess(userID, email, role string) (string, error) {
	return m.sign(userID, email, role, m.cfg.AccessSecret, m.cfg.AccessTTL)
}

// IssueRefresh mints a refresh token for the given identity.
func (m *Manager) IssueRefresh(userID, email, role string) (string, error) {
	return m.sign(userID, email, role, m.cfg.RefreshSecret, m.cfg.RefreshTTL)
}

// ParseAccess verifies token against the access secret and returns its claims.
func (m *Manager) ParseAccess(token string) (*Claims, error) {
	return m.parse(token, m.cfg.AccessSecret)
}

// ParseRefresh verifies token against the refresh secret and returns its claims.
func (m *Manager) ParseRefresh(token string) (*Claims, error) {
	return m.parse(token, m.cfg.RefreshSecret)
}

func (m *Manager) sign(userID, email, role string, secret []byte, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		Email: email,
		Role:  role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			Issuer:    m.cfg.Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

func (m *Manager) parse(token string, secret []byte) (*Claims, error) {
	options := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	}
	if m.cfg.Issuer != "" {
		options = append(options, jwt.WithIssuer(m.cfg.Issuer))
	}

	parsed, err := jwt.ParseWithClaims(token, &Claims{}, func(*jwt.Token) (interface{}, error) {
		return secret, nil
	}, options...)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid || claims.Subject == "" {
		return nil, ErrTokenInvalid
	}
	return claims, nil
}
