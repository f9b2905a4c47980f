// Package rate implements the Redis-backed fixed-window counters that
// throttle repeated login failures, per identifier and optionally per
// client IP. Counters use INCR with an expiry set on the first hit.
package rate

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

var (
	// ErrLimited is returned when the attempt budget is exhausted.
	ErrLimited = errors.New("rate limited")
	// ErrRedisUnavailable wraps transport failures talking to Redis.
	ErrRedisUnavailable = errors.New("redis unavailable")
)

// Config tunes the login limiter.
type Config struct {
	MaxAttempts int
	Window      time.Duration
	PerIP       bool
}

// DefaultConfig matches the upstream policy of five attempts per minute.
func DefaultConfig() Config {
	return Config{MaxAttempts: 5, Window: time.Minute, PerIP: true}
}

// Limiter counts failed login attempts in Redis.
type Limiter struct {
	rdb redis.UniversalClient
	cfg Config
}

// New returns a Limiter backed by the given client.
func New(rdb redis.UniversalClient, cfg Config) (*Limiter, error) {
	if cfg.MaxAttempts < 1 {
		return nil, errors.New("rate: MaxAttempts must be >= 1")
	}
	if cfg.Window <= 0 {
		return nil, errors.New("rate: Window must be > 0")
	}
	return &Limiter{rdb: rdb, cfg: cfg}, nil
}

func emailKey(email string) string { return "lim:login:u:" + email }
func ipKey(ip string) string       { return "lim:login:ip:" + ip }

// CheckLogin reports whether the identifier+IP pair still has attempt
// budget. It does not consume an attempt.
func (l *Limiter) CheckLogin(ctx context.Context, email, ip string) error {
	if err := l.check(ctx, emailKey(email)); err != nil {
		return err
	}
	if l.cfg.PerIP && ip != "" {
		return l.check(ctx, ipKey(ip))
	}
	return nil
}

// RecordFailure consumes one attempt for the identifier+IP pair. It returns
// ErrLimited when this failure exhausts the budget.
func (l *Limiter) RecordFailure(ctx context.Context, email, ip string) error {
	count, err := l.increment(ctx, emailKey(email))
	if err != nil {
		return err
	}
	if count > int64(l.cfg.MaxAttempts) {
		return ErrLimited
	}
	if l.cfg.PerIP && ip != "" {
		count, err = l.increment(ctx, ipKey(ip))
		if err != nil {
			return err
		}
		if count > int64(l.cfg.MaxAttempts) {
			return ErrLimited
		}
	}
	return nil
}

// Reset clears the counters after a successful login.
func (l *Limiter) Reset(ctx context.Context, email, ip string) error {
	keys := []string{emailKey(email)}
	if l.cfg.PerIP && ip != "" {
		keys = append(keys, ipKey(ip))
	}
	if err := l.rdb.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}
	return nil
}

func (l *Limiter) check(ctx context.Context, key string) error {
	count, err := l.rdb.Get(ctx, key).Int64()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil
		}
		return fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}
	if count >= int64(l.cfg.MaxAttempts) {
		return ErrLimited
	}
	return nil
}

func (l *Limiter) increment(ctx context.Context, key string) (int64, error) {
	count, err := l.rdb.Incr(ctx, key).Result()
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}
	if count == 1 {
		if err := l.rdb.Expire(ctx, key, l.cfg.Window).Err(); err != nil {
			return 0, fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
		}
	}
	return count, nil
}
