package services

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const attemptKeyPrefix = "auth_attempt:"

// DefaultMaxAttempts is the login attempt threshold per identifier.
const DefaultMaxAttempts = 5

const (
	// attemptTTL is the lifetime of the attempt counter, refreshed on
	// every increment.
	attemptTTL = 5 * time.Minute

	// lockoutDuration is the retry window advertised to a blocked
	// caller. It is informational only: the counter expires on its own
	// schedule (attemptTTL after the last increment), so the actual
	// unblock happens earlier than the advertised resetAt.
	lockoutDuration = 15 * time.Minute
)

type RateLimitResult struct {
	Allowed  bool
	Attempts int
	ResetAt  *time.Time
}

// LoginRateLimiter counts login attempts per identifier in redis with
// TTL decay, gating brute-force credential guessing.
type LoginRateLimiter struct {
	rdb *redis.Client
}

func NewLoginRateLimiter(rdb *redis.Client) *LoginRateLimiter {
	return &LoginRateLimiter{rdb: rdb}
}

func (l *LoginRateLimiter) key(identifier string) string {
	return attemptKeyPrefix + identifier
}

// CheckAndIncrement reads the counter and, while under the threshold,
// increments it with a fresh TTL. At or above the threshold it refuses
// without touching the stored value, so repeated blocked attempts do
// not extend the counter's window.
func (l *LoginRateLimiter) CheckAndIncrement(ctx context.Context, identifier string, maxAttempts int) (RateLimitResult, error) {
	val, err := l.rdb.Get(ctx, l.key(identifier)).Result()
	if err != nil && err != redis.Nil {
		return RateLimitResult{}, fmt.Errorf("reading attempt counter: %w", err)
	}

	attempts := 0
	if err != redis.Nil {
		if attempts, err = strconv.Atoi(val); err != nil {
			return RateLimitResult{}, fmt.Errorf("parsing attempt counter: %w", err)
		}
	}

	if attempts >= maxAttempts {
		resetAt := time.Now().Add(lockoutDuration)
		return RateLimitResult{Allowed: false, Attempts: attempts, ResetAt: &resetAt}, nil
	}

	attempts++
	if err := l.rdb.Set(ctx, l.key(identifier), strconv.Itoa(attempts), attemptTTL).Err(); err != nil {
		return RateLimitResult{}, fmt.Errorf("writing attempt counter: %w", err)
	}

	return RateLimitResult{Allowed: true, Attempts: attempts}, nil
}

// Reset deletes the counter outright, used after a successful login.
// Resetting an absent counter is not an error.
func (l *LoginRateLimiter) Reset(ctx context.Context, identifier string) error {
	if err := l.rdb.Del(ctx, l.key(identifier)).Err(); err != nil {
		return fmt.Errorf("deleting attempt counter: %w", err)
	}
	return nil
}
