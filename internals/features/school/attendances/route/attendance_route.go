package route

import (
	"github.com/gofiber/fiber/v2"

	"swimclub_backend/internals/features/school/attendances/controller"
)

// AttendanceRoutes mounts under a group already guarded by staff auth.
func AttendanceRoutes(r fiber.Router, ctl *controller.AttendanceController) {
	g := r.Group("/attendance")
	g.Post("/scan", ctl.Scan)
	g.Post("/absent", ctl.MarkAbsent)
	g.Post("/undo-checkin", ctl.UndoCheckIn)
	g.Post("/undo-checkout", ctl.UndoCheckOut)
	g.Get("/learners/:learner_id", ctl.History)
}
