package middlewares

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/etag"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"swimclub_backend/internals/configs"
	"swimclub_backend/internals/middlewares/logger"
)

func SetupMiddlewares(app *fiber.App, cfg *configs.AppConfig) {
	app.Use(RecoveryMiddleware(cfg.AppEnv))
	app.Use(compress.New(compress.Config{Level: compress.LevelDefault}))
	app.Use(etag.New())
	app.Use(requestid.New())
	app.Use(RequestContext(cfg.RequestTimeout))
	app.Use(logger.LoggerMiddleware(cfg))
	app.Use(CorsMiddleware(configs.GetEnv("CORS_ALLOW_ORIGINS")))
	app.Use(GlobalRateLimiter(cfg))
}
