// file: internals/features/finance/invoices/controller/billing_controller.go
package controller

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/datatypes"

	"swimclub_backend/internals/features/finance/invoices/dto"
	"swimclub_backend/internals/features/finance/invoices/model"
	"swimclub_backend/internals/features/finance/invoices/service"
	helper "swimclub_backend/internals/helpers"
	"swimclub_backend/internals/helpers/dbtime"
)

type GateChecker interface {
	ForLearner(ctx context.Context, learnerID uuid.UUID, date *datatypes.Date) (service.Decision, error)
}

type Reconciler interface {
	Sync(ctx context.Context, invoiceID uuid.UUID) (*model.Invoice, error)
}

type BillingController struct {
	Gate      GateChecker
	Reconcile Reconciler
}

func NewBillingController(gate GateChecker, rec Reconciler) *BillingController {
	return &BillingController{Gate: gate, Reconcile: rec}
}

// GET /api/billing/learners/:learner_id/gate?date=YYYY-MM-DD
func (ctl *BillingController) GateForLearner(c *fiber.Ctx) error {
	learnerID, err := uuid.Parse(strings.TrimSpace(c.Params("learner_id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "learner_id must be a UUID")
	}

	var date *datatypes.Date
	if q := strings.TrimSpace(c.Query("date")); q != "" {
		d, err := dbtime.ParseDate(q)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
		}
		date = &d
	}

	d, err := ctl.Gate.ForLearner(c.UserContext(), learnerID, date)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	msg := "attendance allowed"
	if d.Blocked {
		msg = d.Reason
	}
	return helper.JsonOK(c, msg, d)
}

// POST /api/billing/invoices/:invoice_id/sync
func (ctl *BillingController) SyncInvoice(c *fiber.Ctx) error {
	invoiceID, err := uuid.Parse(strings.TrimSpace(c.Params("invoice_id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invoice_id must be a UUID")
	}
	inv, err := ctl.Reconcile.Sync(c.UserContext(), invoiceID)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonOK(c, "invoice synced", dto.FromModel(inv))
}
