package middlewares

import (
	"log"
	"runtime/debug"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

// RecoveryMiddleware turns a panic into a 500 and logs it under the
// request id. The stack is only printed outside production.
func RecoveryMiddleware(appEnv string) fiber.Handler {
	withStack := appEnv != "production"
	return recover.New(recover.Config{
		EnableStackTrace: true,
		StackTraceHandler: func(c *fiber.Ctx, e interface{}) {
			log.Printf("[PANIC] %v %s %s: %v", c.Locals("requestid"), c.Method(), c.Path(), e)
			if withStack {
				log.Printf("%s", debug.Stack())
			}
		},
	})
}
