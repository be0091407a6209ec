package details

import (
	"github.com/gofiber/fiber/v2"

	"swimclub_backend/internals/bootstrap"
	attendanceController "swimclub_backend/internals/features/school/attendances/controller"
	attendanceRoute "swimclub_backend/internals/features/school/attendances/route"
)

// SchoolStaffRoutes mounts front-desk attendance endpoints on a staff-only group.
func SchoolStaffRoutes(r fiber.Router, svc *bootstrap.Services) {
	attendanceRoute.AttendanceRoutes(r, attendanceController.NewAttendanceController(svc.Attendance))
}
