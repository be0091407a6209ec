package details

import (
	"github.com/gofiber/fiber/v2"

	"swimclub_backend/internals/bootstrap"
	"swimclub_backend/internals/configs"
	authController "swimclub_backend/internals/features/users/auth/controller"
	authRoute "swimclub_backend/internals/features/users/auth/route"
	rateLimiter "swimclub_backend/internals/middlewares"
)

func AuthRoutes(app *fiber.App, cfg *configs.AppConfig, svc *bootstrap.Services) {
	authRoute.AuthRoutes(app, authController.NewAuthController(svc.Auth), rateLimiter.LoginRateLimiter(cfg))
}
