package details

import (
	"github.com/gofiber/fiber/v2"

	"swimclub_backend/internals/bootstrap"
	invoiceController "swimclub_backend/internals/features/finance/invoices/controller"
	invoiceRoute "swimclub_backend/internals/features/finance/invoices/route"
)

func FinanceStaffRoutes(r fiber.Router, svc *bootstrap.Services) {
	invoiceRoute.BillingRoutes(r, invoiceController.NewBillingController(svc.Gate, svc.Reconcile))
}
