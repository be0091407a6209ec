// file: internals/features/school/attendances/controller/attendance_controller.go
package controller

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/datatypes"

	"swimclub_backend/internals/features/school/attendances/dto"
	"swimclub_backend/internals/features/school/attendances/model"
	"swimclub_backend/internals/features/school/attendances/service"
	helper "swimclub_backend/internals/helpers"
	"swimclub_backend/internals/helpers/apperr"
	"swimclub_backend/internals/helpers/dbtime"
	"swimclub_backend/internals/helpers/qrcode"
)

// Recorder is the part of the attendance service the handlers use.
type Recorder interface {
	Execute(ctx context.Context, cmd service.Command) (*service.Outcome, error)
	History(ctx context.Context, learnerID uuid.UUID, from, to datatypes.Date) ([]model.AttendanceRecord, error)
	Today() datatypes.Date
}

type AttendanceController struct {
	Svc Recorder
}

func NewAttendanceController(svc Recorder) *AttendanceController {
	return &AttendanceController{Svc: svc}
}

/* ===================== SCAN ===================== */
// POST /api/attendance/scan
func (ctl *AttendanceController) Scan(c *fiber.Ctx) error {
	var req dto.ScanRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid payload")
	}
	if err := helper.Validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	learnerID, err := learnerFromScan(req)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	mode, err := service.ParseMode(req.Mode)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	date, err := optionalDate(req.Date)
	if err != nil {
		return helper.JsonFromError(c, err)
	}

	return ctl.run(c, service.Command{LearnerID: learnerID, Mode: mode, Date: date})
}

/* ===================== STAFF CORRECTIONS ===================== */

// POST /api/attendance/absent
func (ctl *AttendanceController) MarkAbsent(c *fiber.Ctx) error {
	return ctl.correction(c, service.ModeMarkAbsent)
}

// POST /api/attendance/undo-checkin
func (ctl *AttendanceController) UndoCheckIn(c *fiber.Ctx) error {
	return ctl.correction(c, service.ModeUndoCheckIn)
}

// POST /api/attendance/undo-checkout
func (ctl *AttendanceController) UndoCheckOut(c *fiber.Ctx) error {
	return ctl.correction(c, service.ModeUndoCheckOut)
}

func (ctl *AttendanceController) correction(c *fiber.Ctx, mode service.Mode) error {
	var req dto.CorrectionRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid payload")
	}
	if err := helper.Validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}
	date, err := optionalDate(req.Date)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return ctl.run(c, service.Command{LearnerID: uuid.MustParse(req.LearnerID), Mode: mode, Date: date})
}

func (ctl *AttendanceController) run(c *fiber.Ctx, cmd service.Command) error {
	out, err := ctl.Svc.Execute(c.UserContext(), cmd)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonOK(c, out.Message, dto.ActionResponse{
		Action:  string(out.Action),
		State:   out.State.String(),
		Status:  string(out.Status),
		Warning: out.Warning,
		Record:  dto.FromModel(out.Record),
	})
}

/* ===================== HISTORY ===================== */
// GET /api/attendance/learners/:learner_id?month=YYYY-MM
func (ctl *AttendanceController) History(c *fiber.Ctx) error {
	learnerID, err := uuid.Parse(strings.TrimSpace(c.Params("learner_id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "learner_id must be a UUID")
	}

	var from, to datatypes.Date
	if m := strings.TrimSpace(c.Query("month")); m != "" {
		if from, to, err = dbtime.ParseMonth(m); err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
		}
	} else {
		from, to = dbtime.MonthBounds(ctl.Svc.Today())
	}

	rows, err := ctl.Svc.History(c.UserContext(), learnerID, from, to)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonList(c, "attendance history", dto.FromModels(rows), len(rows))
}

/* ===================== helpers ===================== */

func learnerFromScan(req dto.ScanRequest) (uuid.UUID, error) {
	if s := strings.TrimSpace(req.LearnerID); s != "" {
		id, err := uuid.Parse(s)
		if err != nil {
			return uuid.Nil, apperr.New(apperr.KindInvalidInput, "learner_id must be a UUID")
		}
		return id, nil
	}
	id, err := qrcode.LearnerID(req.QR)
	if err != nil {
		return uuid.Nil, apperr.Wrap(apperr.KindInvalidInput, err, "QR code is not a learner card")
	}
	return id, nil
}

func optionalDate(s string) (*datatypes.Date, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	d, err := dbtime.ParseDate(s)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInvalidInput, err, err.Error())
	}
	return &d, nil
}
