// Package ratelimit provides a Redis-backed sliding window rate limiter
// applied in front of the HTTP API.
package ratelimit

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// Config holds rate limiting configuration.
type Config struct {
	// RequestsPerWindow is the maximum number of requests allowed in the window.
	RequestsPerWindow int
	// WindowSize is the duration of the sliding window.
	WindowSize time.Duration
}

// DefaultConfig allows 100 requests per minute per client.
func DefaultConfig() Config {
	return Config{
		RequestsPerWindow: 100,
		WindowSize:        time.Minute,
	}
}

// Result represents the outcome of a rate limit check.
type Result struct {
	Allowed    bool
	Remaining  int
	ResetAt    time.Time
	RetryAfter time.Duration
}

// SlidingWindowLimiter implements a sliding window rate limiter using Redis.
// A sorted set tracks request timestamps; the count of entries within the
// window decides admission.
type SlidingWindowLimiter struct {
	client *redis.Client
	config Config
	prefix string
}

// NewSlidingWindowLimiter creates a new sliding window rate limiter.
func NewSlidingWindowLimiter(client *redis.Client, config Config, prefix string) *SlidingWindowLimiter {
	return &SlidingWindowLimiter{
		client: client,
		config: config,
		prefix: prefix,
	}
}

// allowScript runs the window maintenance and admission check atomically.
var allowScript = redis.NewScript(`
	local key = KEYS[1]
	local counter_key = KEYS[2]
	local now = tonumber(ARGV[1])
	local window_start = tonumber(ARGV[2])
	local limit = tonumber(ARGV[3])
	local window_size_ms = tonumber(ARGV[4])

	redis.call('ZREMRANGEBYSCORE', key, '-inf', window_start)

	local count = redis.call('ZCARD', key)

	if count < limit then
		local counter = redis.call('INCR', counter_key)
		redis.call('ZADD', key, now, tostring(now) .. '-' .. tostring(counter))
		redis.call('PEXPIRE', key, window_size_ms)
		redis.call('PEXPIRE', counter_key, window_size_ms)
		return {1, limit - count - 1, 0}
	end

	local oldest = redis.call('ZRANGE', key, 0, 0, 'WITHSCORES')
	local retry_after = 0
	if #oldest >= 2 then
		retry_after = tonumber(oldest[2]) + window_size_ms - now
	end
	return {0, 0, retry_after}
`)

// Allow checks if a request identified by key is admitted under the limit.
func (l *SlidingWindowLimiter) Allow(ctx context.Context, key string) (*Result, error) {
	now := time.Now()
	windowStart := now.Add(-l.config.WindowSize)
	redisKey := l.prefix + key

	values, err := allowScript.Run(ctx, l.client,
		[]string{redisKey, redisKey + ":counter"},
		strconv.FormatInt(now.UnixMilli(), 10),
		strconv.FormatInt(windowStart.UnixMilli(), 10),
		strconv.Itoa(l.config.RequestsPerWindow),
		strconv.FormatInt(l.config.WindowSize.Milliseconds(), 10),
	).Int64Slice()
	if err != nil {
		return nil, fmt.Errorf("rate limit script failed: %w", err)
	}
	if len(values) != 3 {
		return nil, fmt.Errorf("rate limit script returned %d values", len(values))
	}

	result := &Result{
		Allowed:   values[0] == 1,
		Remaining: int(values[1]),
		ResetAt:   now.Add(l.config.WindowSize),
	}
	if !result.Allowed {
		result.RetryAfter = time.Duration(values[2]) * time.Millisecond
	}
	return result, nil
}
