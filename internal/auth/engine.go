package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"inkwell/internal/auth/jwt"
	"inkwell/internal/auth/password"
	"inkwell/internal/auth/rate"
	"inkwell/internal/logging"
)

// Engine orchestrates the session lifecycle. Build one via [Builder] and
// share it; all methods are safe for concurrent use.
//
// Concurrent refreshes for the same user race benignly: the store's
// last-write-wins on the refresh hash means at most one of the issued pairs
// stays valid, and the losing client re-authenticates on its next refresh.
type Engine struct {
	config  Config
	store   UserStore
	hasher  *password.Hasher
	tokens  *jwt.Manager
	limiter *rate.Limiter
	logger  logging.Logger
}

// Tokens exposes the token issuer for transport-level verification
// (bearer guard, refresh cookie check).
func (e *Engine) Tokens() *jwt.Manager {
	return e.tokens
}

// ProductionMode reports whether refresh cookies must be marked Secure.
func (e *Engine) ProductionMode() bool { return e.config.ProductionMode }

// RefreshTTL is the lifetime of issued refresh tokens, also used as the
// refresh cookie Max-Age.
func (e *Engine) RefreshTTL() time.Duration { return e.config.RefreshTTL }

// Register creates a new account and starts a session for it. The duplicate
// check runs before hashing, so a taken email is reported regardless of the
// password supplied.
func (e *Engine) Register(ctx context.Context, in RegisterInput) (*Session, error) {
	if e == nil || e.store == nil {
		return nil, ErrEngineNotReady
	}

	if _, err := e.store.FindUserByEmail(ctx, in.Email); err == nil {
		return nil, ErrDuplicateEmail
	} else if !errors.Is(err, ErrUserNotFound) {
		return nil, err
	}

	hash, err := e.hasher.Hash(in.Password)
	if err != nil {
		return nil, fmt.Errorf("auth: hashing password: %w", err)
	}

	user, err := e.store.CreateUser(ctx, &User{
		Email:        in.Email,
		Name:         in.Name,
		PasswordHash: hash,
		Role:         RoleUser,
	})
	if err != nil {
		// A concurrent registration can still lose the race on the unique
		// index; surface it the same way as the pre-check.
		if errors.Is(err, ErrDuplicateEmail) {
			return nil, ErrDuplicateEmail
		}
		return nil, err
	}

	e.logger.Info(ctx, "user registered", "user_id", user.ID)
	return e.issueSession(ctx, user)
}

// Login verifies credentials and starts a session, overwriting any previous
// refresh hash. Unknown email and wrong password produce the identical
// ErrInvalidCredentials.
func (e *Engine) Login(ctx context.Context, email, plaintext string) (*Session, error) {
	if e == nil || e.store == nil {
		return nil, ErrEngineNotReady
	}

	ip := clientIPFromContext(ctx)
	if e.limiter != nil {
		if err := e.limiter.CheckLogin(ctx, email, ip); err != nil {
			if errors.Is(err, rate.ErrLimited) {
				return nil, ErrLoginRateLimited
			}
			return nil, fmt.Errorf("auth: login throttle check: %w", err)
		}
	}

	user, err := e.store.FindUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, e.loginFailure(ctx, email, ip)
		}
		return nil, err
	}

	ok, err := e.hasher.Verify(plaintext, user.PasswordHash)
	if err != nil {
		// Malformed stored hash. Unrecoverable for this request.
		e.logger.Error(ctx, "stored password hash unreadable", "user_id", user.ID)
		return nil, fmt.Errorf("auth: verifying password: %w", err)
	}
	if !ok {
		return nil, e.loginFailure(ctx, email, ip)
	}

	if e.limiter != nil {
		if err := e.limiter.Reset(ctx, email, ip); err != nil {
			e.logger.Warn(ctx, "login limiter reset failed", "error", err)
		}
	}
	return e.issueSession(ctx, user)
}

// Refresh rotates the token pair. The presented token must already have
// passed signature and expiry verification against the refresh secret, and
// its sub claim must equal userID; this method checks it against the single
// stored hash. On success the presented token becomes permanently unusable.
func (e *Engine) Refresh(ctx context.Context, userID, presented string) (*Session, error) {
	if e == nil || e.store == nil {
		return nil, ErrEngineNotReady
	}

	user, err := e.store.FindUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, ErrNoSession
		}
		return nil, err
	}
	if user.RefreshHash == nil {
		return nil, ErrNoSession
	}

	ok, err := e.hasher.Verify(presented, *user.RefreshHash)
	if err != nil {
		e.logger.Error(ctx, "stored refresh hash unreadable", "user_id", user.ID)
		return nil, fmt.Errorf("auth: verifying refresh token: %w", err)
	}
	if !ok {
		e.logger.Warn(ctx, "refresh token mismatch", "user_id", user.ID)
		return nil, ErrTokenMismatch
	}

	return e.issueSession(ctx, user)
}

// Logout clears the stored refresh hash, invalidating every outstanding
// refresh token for the user. Idempotent: logging out without an active
// session succeeds silently.
func (e *Engine) Logout(ctx context.Context, userID string) error {
	if e == nil || e.store == nil {
		return ErrEngineNotReady
	}
	if err := e.store.UpdateRefreshHash(ctx, userID, nil); err != nil {
		return err
	}
	e.logger.Info(ctx, "user logged out", "user_id", userID)
	return nil
}

// issueSession mints a token pair and persists the hash of the new refresh
// token, superseding whatever hash was stored before (rotation).
func (e *Engine) issueSession(ctx context.Context, user *User) (*Session, error) {
	access, err := e.tokens.IssueAccess(user.ID, user.Email, string(user.Role))
	if err != nil {
		return nil, fmt.Errorf("auth: issuing access token: %w", err)
	}
	refresh, err := e.tokens.IssueRefresh(user.ID, user.Email, string(user.Role))
	if err != nil {
		return nil, fmt.Errorf("auth: issuing refresh token: %w", err)
	}

	hash, err := e.hasher.Hash(refresh)
	if err != nil {
		return nil, fmt.Errorf("auth: hashing refresh token: %w", err)
	}
	if err := e.store.UpdateRefreshHash(ctx, user.ID, &hash); err != nil {
		return nil, err
	}

	return &Session{User: user, AccessToken: access, RefreshToken: refresh}, nil
}

func (e *Engine) loginFailure(ctx context.Context, email, ip string) error {
	if e.limiter != nil {
		if err := e.limiter.RecordFailure(ctx, email, ip); err != nil {
			if errors.Is(err, rate.ErrLimited) {
				return ErrLoginRateLimited
			}
			e.logger.Warn(ctx, "login limiter update failed", "error", err)
		}
	}
	return ErrInvalidCredentials
}
