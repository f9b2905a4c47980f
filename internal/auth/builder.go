package auth

import (
	"errors"

	"github.com/redis/go-redis/v9"

	"inkwell/internal/auth/jwt"
	"inkwell/internal/auth/password"
	"inkwell/internal/auth/rate"
	"inkwell/internal/logging"
)

// Builder assembles an Engine. Construction is allocation-only; no I/O
// happens before the first Engine call.
type Builder struct {
	config Config
	store  UserStore
	redis  redis.UniversalClient
	logger logging.Logger
}

// New starts a Builder with DefaultConfig.
func New() *Builder {
	return &Builder{config: DefaultConfig()}
}

// WithConfig replaces the engine configuration.
func (b *Builder) WithConfig(cfg Config) *Builder {
	b.config = cfg
	return b
}

// WithStore sets the persistence collaborator. Required.
func (b *Builder) WithStore(s UserStore) *Builder {
	b.store = s
	return b
}

// WithRedis enables login rate limiting backed by the given client.
// Without it the engine runs unthrottled.
func (b *Builder) WithRedis(client redis.UniversalClient) *Builder {
	b.redis = client
	return b
}

// WithLogger sets the engine logger. Defaults to a discard logger.
func (b *Builder) WithLogger(l logging.Logger) *Builder {
	b.logger = l
	return b
}

// Build validates the configuration and wires the engine components.
func (b *Builder) Build() (*Engine, error) {
	if b.store == nil {
		return nil, errors.New("auth: user store is required")
	}
	if err := b.config.Validate(); err != nil {
		return nil, err
	}

	hasher, err := password.New(b.config.Password)
	if err != nil {
		return nil, err
	}

	tokens, err := jwt.New(jwt.Config{
		AccessSecret:  b.config.AccessSecret,
		RefreshSecret: b.config.RefreshSecret,
		AccessTTL:     b.config.AccessTTL,
		RefreshTTL:    b.config.RefreshTTL,
		Issuer:        b.config.Issuer,
	})
	if err != nil {
		return nil, err
	}

	var limiter *rate.Limiter
	if b.redis != nil {
		limiter, err = rate.New(b.redis, b.config.Rate)
		if err != nil {
			return nil, err
		}
	}

	logger := b.logger
	if logger == nil {
		logger = logging.Discard()
	}

	return &Engine{
		config:  b.config,
		store:   b.store,
		hasher:  hasher,
		tokens:  tokens,
		limiter: limiter,
		logger:  logger,
	}, nil
}
