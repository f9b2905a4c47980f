// Package logging defines the small logging interface shared by the server
// components, with a log/slog implementation as the default backend.
package logging

import "context"

// Logger is the logging contract consumed by the auth engine and the HTTP
// layer. Implementations must be safe for concurrent use.
type Logger interface {
	Debug(ctx context.Context, msg string, args ...any)
	Info(ctx context.Context, msg string, args ...any)
	Warn(ctx context.Context, msg string, args ...any)
	Error(ctx context.Context, msg string, args ...any)
	With(args ...any) Logger
}
