package auth

import (
	"context"
	"time"
)

// Role is the coarse authorization level carried in token claims.
type Role string

const (
	// RoleUser is the default role assigned at registration.
	RoleUser Role = "USER"
	// RoleAdmin may modify or delete any post.
	RoleAdmin Role = "ADMIN"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool { return r == RoleUser || r == RoleAdmin }

// User is the account record the engine operates on. RefreshHash is the
// argon2id hash of the currently valid refresh token; nil means no active
// session.
type User struct {
	ID           string
	Email        string
	Name         string
	PasswordHash string
	Role         Role
	RefreshHash  *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// UserStore is the persistence collaborator the engine depends on.
// Implementations return ErrDuplicateEmail from CreateUser on an email
// collision, ErrUserNotFound on lookup misses, and wrap any transport
// failure with ErrStoreUnavailable.
type UserStore interface {
	CreateUser(ctx context.Context, u *User) (*User, error)
	FindUserByEmail(ctx context.Context, email string) (*User, error)
	FindUserByID(ctx context.Context, id string) (*User, error)
	UpdateRefreshHash(ctx context.Context, userID string, hash *string) error
}

// RegisterInput is the validated registration request.
type RegisterInput struct {
	Email    string
	Name     string
	Password string
}

// Session is the result of a successful register, login, or refresh: the
// user identity plus a freshly minted token pair. The refresh token's hash
// has already been persisted when a Session is returned.
type Session struct {
	User         *User
	AccessToken  string
	RefreshToken string
}
