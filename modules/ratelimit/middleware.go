package ratelimit

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
)

// IPRateLimit returns middleware that limits requests by client IP.
// On limiter errors the request is allowed through; an unreachable Redis
// must not take the API down with it.
func IPRateLimit(limiter *SlidingWindowLimiter, limit int) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ip := c.IP()
		if ip == "" {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"message": "Unable to determine client IP address",
			})
		}

		result, err := limiter.Allow(c.Context(), ip)
		if err != nil {
			c.Set("X-RateLimit-Error", err.Error())
			return c.Next()
		}

		c.Set("X-RateLimit-Limit", strconv.Itoa(limit))
		c.Set("X-RateLimit-Remaining", strconv.Itoa(result.Remaining))
		c.Set("X-RateLimit-Reset", strconv.FormatInt(result.ResetAt.Unix(), 10))

		if !result.Allowed {
			c.Set("Retry-After", strconv.Itoa(int(result.RetryAfter.Seconds())+1))
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"message": "Rate limit exceeded. Please try again later.",
			})
		}

		return c.Next()
	}
}
