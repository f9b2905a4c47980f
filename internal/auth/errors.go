package auth

import "errors"

var (
	// ErrDuplicateEmail is returned by Register when the email is taken.
	// Registration deliberately reveals address existence; login does not.
	ErrDuplicateEmail = errors.New("email already in use")
	// ErrInvalidCredentials is returned by Login for both unknown email and
	// wrong password, with no distinguishing signal.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrNoSession is returned by Refresh when the user has no stored
	// refresh hash (logged out or never logged in).
	ErrNoSession = errors.New("no session")
	// ErrTokenMismatch is returned by Refresh when the presented refresh
	// token does not match the stored hash. Covers replayed tokens that
	// were superseded by rotation.
	ErrTokenMismatch = errors.New("token mismatch")
	// ErrLoginRateLimited is returned when the failed-login budget for the
	// identifier or client IP is exhausted.
	ErrLoginRateLimited = errors.New("login rate limited")
	// ErrStoreUnavailable is the generic persistence failure. Store
	// implementations wrap their transport errors with it.
	ErrStoreUnavailable = errors.New("store unavailable")
	// ErrUserNotFound is the store-level miss for lookups by email or id.
	ErrUserNotFound = errors.New("user not found")
	// ErrEngineNotReady is returned when the Engine is used before Build
	// wired its dependencies.
	ErrEngineNotReady = errors.New("engine not initialized")
)
