// file: internals/route/index.go
package routes

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"swimclub_backend/internals/bootstrap"
	"swimclub_backend/internals/configs"
	"swimclub_backend/internals/constants"
	authMiddleware "swimclub_backend/internals/middlewares/auth"
	routeDetails "swimclub_backend/internals/route/details"
)

var startTime time.Time

func SetupRoutes(app *fiber.App, db *gorm.DB, cfg *configs.AppConfig, svc *bootstrap.Services) {
	startTime = time.Now()

	BaseRoutes(app, db, cfg)

	// ===================== AUTH =====================
	log.Println("[INFO] Setting up AuthRoutes...")
	routeDetails.AuthRoutes(app, cfg, svc)

	// ===================== STAFF (coach/admin) =====================
	log.Println("[INFO] Setting up STAFF group (Auth + RoleCheck)...")
	staff := app.Group("/api",
		authMiddleware.AuthJWT(authMiddleware.AuthJWTOpts{
			Secret:              cfg.JWTSecret,
			AllowCookieFallback: true,
		}),
		authMiddleware.OnlyRoles(constants.RoleErrorStaff("attendance"), constants.StaffRoles...),
	)

	log.Println("[INFO] Mounting School routes...")
	routeDetails.SchoolStaffRoutes(staff, svc)

	log.Println("[INFO] Mounting Finance routes...")
	routeDetails.FinanceStaffRoutes(staff, svc)
}
