package middleware

import (
	"log/slog"

	"tribewave/internal/ratelimit"

	"github.com/gofiber/fiber/v2"
)

// RateLimit returns a Fiber middleware enforcing the limiter on the named
// resource, keyed by visitor ID when present, otherwise by remote IP. The
// limiter failing is treated as fail-open.
func RateLimit(limiter ratelimit.Limiter, resource string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if limiter == nil {
			return c.Next()
		}

		id := "ip:" + c.IP()
		if vid, _ := c.Locals("visitorID").(string); vid != "" {
			id = "visitor:" + vid
		}

		allowed, err := limiter.Allow(c.UserContext(), resource, id)
		if err != nil {
			slog.Warn("rate limit check failed", "resource", resource, "err", err)
			return c.Next()
		}
		if !allowed {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "rate limit exceeded",
			})
		}
		return c.Next()
	}
}
