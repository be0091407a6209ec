// file: internals/features/users/auth/route/auth_route.go
package route

import (
	"github.com/gofiber/fiber/v2"

	"swimclub_backend/internals/features/users/auth/controller"
)

// AuthRoutes mounts staff login behind loginLimit.
func AuthRoutes(app *fiber.App, ctl *controller.AuthController, loginLimit fiber.Handler) {
	baseAuth := app.Group("/api/auth")
	baseAuth.Post("/login", loginLimit, ctl.Login)
}
