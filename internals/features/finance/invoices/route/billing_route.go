package route

import (
	"github.com/gofiber/fiber/v2"

	"swimclub_backend/internals/features/finance/invoices/controller"
)

func BillingRoutes(r fiber.Router, ctl *controller.BillingController) {
	g := r.Group("/billing")
	g.Get("/learners/:learner_id/gate", ctl.GateForLearner)
	g.Post("/invoices/:invoice_id/sync", ctl.SyncInvoice)
}
