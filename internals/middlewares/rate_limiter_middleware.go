package middlewares

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	"swimclub_backend/internals/configs"
	helper "swimclub_backend/internals/helpers"
)

// HeaderDeskID names the scanning desk. Desks behind the pool's single NAT
// address each get their own bucket.
const HeaderDeskID = "X-Desk-ID"

const maxDeskIDLen = 32

// DeskKey is the limiter bucket: client IP, plus the desk id when sent.
func DeskKey(c *fiber.Ctx) string {
	desk := strings.TrimSpace(c.Get(HeaderDeskID))
	if desk == "" {
		return c.IP()
	}
	if len(desk) > maxDeskIDLen {
		desk = desk[:maxDeskIDLen]
	}
	return c.IP() + "|" + desk
}

// GlobalRateLimiter caps requests per desk over RateLimitWindow. /health is
// exempt so load balancer health checks never eat a desk's budget.
func GlobalRateLimiter(cfg *configs.AppConfig) fiber.Handler {
	return limiter.New(limiter.Config{
		Max:          cfg.RateLimitMax,
		Expiration:   cfg.RateLimitWindow,
		Next:         func(c *fiber.Ctx) bool { return c.Path() == "/health" },
		KeyGenerator: DeskKey,
		LimitReached: func(c *fiber.Ctx) error {
			return helper.JsonError(c, fiber.StatusTooManyRequests, "❌ Too many requests from this desk. Please try again later.")
		},
	})
}

// LoginRateLimiter is the stricter per-IP limit for staff login.
func LoginRateLimiter(cfg *configs.AppConfig) fiber.Handler {
	return limiter.New(limiter.Config{
		Max:        cfg.LoginRateLimitMax,
		Expiration: cfg.LoginRateLimitWindow,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return helper.JsonError(c, fiber.StatusTooManyRequests,
				"❌ Too many login attempts. Try again in "+cfg.LoginRateLimitWindow.Round(time.Second).String()+".")
		},
	})
}
