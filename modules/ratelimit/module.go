package ratelimit

import (
	"context"
	"fmt"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/go-monolith/mono"
	"github.com/redis/go-redis/v9"
)

// Module provides the rate limiter as a mono module. It is only registered
// when a Redis address is configured; without it the API runs unlimited.
type Module struct {
	client    *redis.Client
	limiter   *SlidingWindowLimiter
	config    Config
	redisAddr string
}

// Compile-time interface checks.
var _ mono.Module = (*Module)(nil)
var _ mono.HealthCheckableModule = (*Module)(nil)

// NewModule creates a new rate limiting module.
func NewModule(redisAddr string) *Module {
	return &Module{
		redisAddr: redisAddr,
		config:    DefaultConfig(),
	}
}

// Name returns the module name.
func (m *Module) Name() string {
	return "rate-limiter"
}

// Start connects to Redis and builds the limiter.
func (m *Module) Start(ctx context.Context) error {
	m.client = redis.NewClient(&redis.Options{
		Addr: m.redisAddr,
	})

	if err := m.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("failed to connect to Redis: %w", err)
	}

	m.limiter = NewSlidingWindowLimiter(m.client, m.config, "ratelimit:ip:")

	log.Printf("[rate-limiter] Connected to Redis at %s", m.redisAddr)
	return nil
}

// Stop closes the Redis client.
func (m *Module) Stop(_ context.Context) error {
	if m.client != nil {
		return m.client.Close()
	}
	log.Println("[rate-limiter] Module stopped")
	return nil
}

// Health returns the health status of the module.
func (m *Module) Health(ctx context.Context) mono.HealthStatus {
	if m.client == nil {
		return mono.HealthStatus{
			Healthy: false,
			Message: "redis client not initialized",
		}
	}
	if err := m.client.Ping(ctx).Err(); err != nil {
		return mono.HealthStatus{
			Healthy: false,
			Message: fmt.Sprintf("redis ping failed: %v", err),
		}
	}
	return mono.HealthStatus{
		Healthy: true,
		Message: "operational",
		Details: map[string]any{
			"redis": m.redisAddr,
		},
	}
}

// Middleware returns the fiber handler enforcing the IP limit.
func (m *Module) Middleware() fiber.Handler {
	return IPRateLimit(m.limiter, m.config.RequestsPerWindow)
}
