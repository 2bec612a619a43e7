package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

// testClient returns a Redis client or skips the test when Redis is not
// reachable.
func testClient(t *testing.T) *redis.Client {
	t.Helper()

	client := redis.NewClient(&redis.Options{
		Addr: "localhost:6379",
	})
	if err := client.Ping(context.Background()).Err(); err != nil {
		client.Close()
		t.Skip("Redis not available, skipping integration test")
	}
	t.Cleanup(func() { client.Close() })
	return client
}

func TestSlidingWindowLimiter_Allow(t *testing.T) {
	client := testClient(t)
	ctx := context.Background()

	testPrefix := "test:ratelimit:"
	t.Cleanup(func() {
		client.Del(ctx, testPrefix+"test-key", testPrefix+"test-key:counter")
	})

	limiter := NewSlidingWindowLimiter(client, Config{
		RequestsPerWindow: 5,
		WindowSize:        time.Minute,
	}, testPrefix)

	// The first 5 requests are admitted.
	for i := 0; i < 5; i++ {
		result, err := limiter.Allow(ctx, "test-key")
		if err != nil {
			t.Fatalf("Allow() error = %v", err)
		}
		if !result.Allowed {
			t.Errorf("request %d should be allowed", i+1)
		}
		if result.Remaining != 5-i-1 {
			t.Errorf("request %d: remaining = %d, want %d", i+1, result.Remaining, 5-i-1)
		}
	}

	// The 6th is denied with a positive retry hint.
	result, err := limiter.Allow(ctx, "test-key")
	if err != nil {
		t.Fatalf("Allow() error = %v", err)
	}
	if result.Allowed {
		t.Error("6th request should be denied")
	}
	if result.Remaining != 0 {
		t.Errorf("remaining = %d, want 0", result.Remaining)
	}
	if result.RetryAfter <= 0 {
		t.Error("RetryAfter should be positive")
	}
}

func TestSlidingWindowLimiter_SeparateKeys(t *testing.T) {
	client := testClient(t)
	ctx := context.Background()

	testPrefix := "test:ratelimit:sep:"
	t.Cleanup(func() {
		client.Del(ctx,
			testPrefix+"key-a", testPrefix+"key-a:counter",
			testPrefix+"key-b", testPrefix+"key-b:counter",
		)
	})

	limiter := NewSlidingWindowLimiter(client, Config{
		RequestsPerWindow: 1,
		WindowSize:        time.Minute,
	}, testPrefix)

	if result, err := limiter.Allow(ctx, "key-a"); err != nil || !result.Allowed {
		t.Fatalf("key-a first request: allowed=%v err=%v", result != nil && result.Allowed, err)
	}
	if result, err := limiter.Allow(ctx, "key-a"); err != nil || result.Allowed {
		t.Fatalf("key-a second request should be denied: err=%v", err)
	}

	// key-b has its own window.
	if result, err := limiter.Allow(ctx, "key-b"); err != nil || !result.Allowed {
		t.Fatalf("key-b first request: allowed=%v err=%v", result != nil && result.Allowed, err)
	}
}

func TestSlidingWindowLimiter_WindowSlides(t *testing.T) {
	client := testClient(t)
	ctx := context.Background()

	testPrefix := "test:ratelimit:slide:"
	t.Cleanup(func() {
		client.Del(ctx, testPrefix+"key", testPrefix+"key:counter")
	})

	limiter := NewSlidingWindowLimiter(client, Config{
		RequestsPerWindow: 1,
		WindowSize:        500 * time.Millisecond,
	}, testPrefix)

	if result, err := limiter.Allow(ctx, "key"); err != nil || !result.Allowed {
		t.Fatalf("first request: allowed=%v err=%v", result != nil && result.Allowed, err)
	}
	if result, err := limiter.Allow(ctx, "key"); err != nil || result.Allowed {
		t.Fatalf("second request should be denied: err=%v", err)
	}

	time.Sleep(600 * time.Millisecond)

	if result, err := limiter.Allow(ctx, "key"); err != nil || !result.Allowed {
		t.Fatalf("request after the window slid should be allowed: err=%v", err)
	}
}
