// Package auth implements the session state machine for the blog backend:
// registration, login, refresh-token rotation, and logout.
//
// The Engine is the public surface. It is assembled once at process start
// through [Builder] and is safe for concurrent use afterwards. Session
// validity is tracked in exactly one place: the argon2id hash of the
// currently valid refresh token stored on the user record. There is no
// in-memory session table; access tokens are self-verifying and refresh
// tokens are checked against that single stored hash.
//
// # What this package must NOT do
//
//   - Touch HTTP types. Cookie handling and status mapping live in
//     internal/httpapi.
//   - Talk to a concrete database. Persistence goes through [UserStore].
//   - Keep more than one valid refresh token per user. Every successful
//     login or refresh overwrites the stored hash; logout clears it.
package auth
