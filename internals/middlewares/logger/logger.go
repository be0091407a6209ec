package logger

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"

	"swimclub_backend/internals/configs"
)

// AccessFormat carries the request id and scanning desk so a scan can be
// followed from the desk through to the service log.
const AccessFormat = "[${time}] ${locals:requestid} ${ip} desk=${reqHeader:X-Desk-ID} - ${method} ${path} - ${status} - ${latency}\n"

// LoggerMiddleware writes one access line per request, in club time.
func LoggerMiddleware(cfg *configs.AppConfig) fiber.Handler {
	tz := cfg.ClubTimezone
	if tz == "" {
		tz = configs.DefaultClubTimezone
	}
	return logger.New(logger.Config{
		TimeFormat: "2006-01-02 15:04:05",
		TimeZone:   tz,
		Format:     AccessFormat,
		Next:       func(c *fiber.Ctx) bool { return c.Path() == "/health" },
	})
}
