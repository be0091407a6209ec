package service

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"swimclub_backend/internals/features/finance/invoices/model"
	"swimclub_backend/internals/helpers/apperr"
)

type GatewayStatus struct {
	OrderID     string
	Status      string // settlement, capture, pending, expire, cancel, deny, ...
	FraudStatus string // accept, challenge, deny; set for card captures
	GrossAmount float64
}

type PaymentGateway interface {
	TransactionStatus(ctx context.Context, orderID string) (GatewayStatus, error)
}

type InvoiceStore interface {
	FindInvoice(ctx context.Context, id uuid.UUID) (*model.Invoice, error)
	UpdatePayment(ctx context.Context, id uuid.UUID, paid float64, status model.InvoiceStatus, paidAt *time.Time) error
}

// ReconcileService pulls the gateway status of an invoice's order and
// records the payment so the billing gate sees it.
type ReconcileService struct {
	Invoices InvoiceStore
	Gateway  PaymentGateway
	Now      func() time.Time
}

func NewReconcileService(invoices InvoiceStore, gw PaymentGateway) *ReconcileService {
	return &ReconcileService{Invoices: invoices, Gateway: gw, Now: time.Now}
}

func (s *ReconcileService) Sync(ctx context.Context, invoiceID uuid.UUID) (*model.Invoice, error) {
	if s.Gateway == nil {
		return nil, apperr.New(apperr.KindGatewayUnavailable, "payment gateway is not configured")
	}

	inv, err := s.Invoices.FindInvoice(ctx, invoiceID)
	if err != nil {
		return nil, apperr.FromStore(err, "billing store unavailable")
	}
	if inv == nil {
		return nil, apperr.New(apperr.KindNotFound, "invoice %s not found", invoiceID)
	}
	if inv.InvoiceExternalRef == nil || strings.TrimSpace(*inv.InvoiceExternalRef) == "" {
		return nil, apperr.New(apperr.KindInvalidInput, "invoice has no payment order")
	}
	if inv.InvoiceStatus == model.InvoiceStatusPaid || inv.InvoiceStatus == model.InvoiceStatusCancelled {
		return inv, nil
	}

	st, err := s.Gateway.TransactionStatus(ctx, *inv.InvoiceExternalRef)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindGatewayUnavailable, err, "payment gateway unavailable")
	}

	paid, status, ok := applyGatewayStatus(*inv, st)
	if !ok {
		log.Printf("[INFO] invoice %s: gateway status %q fraud=%q gross=%.2f, nothing to record", invoiceID, st.Status, st.FraudStatus, st.GrossAmount)
		return inv, nil
	}

	var paidAt *time.Time
	if status == model.InvoiceStatusPaid {
		now := s.Now().UTC()
		paidAt = &now
	}
	err = apperr.Retry(ctx, apperr.DefaultRetry, func(ctx context.Context) error {
		return s.Invoices.UpdatePayment(ctx, inv.InvoiceID, paid, status, paidAt)
	})
	if err != nil {
		return nil, apperr.FromStore(err, "billing store unavailable")
	}

	log.Printf("✅ invoice %s reconciled: %s -> %s (paid %.2f)", invoiceID, inv.InvoiceStatus, status, paid)
	inv.InvoicePaidTotal = paid
	inv.InvoiceStatus = status
	inv.InvoicePaidAt = paidAt
	return inv, nil
}

// applyGatewayStatus returns the new paid total and status, ok=false when
// the gateway status does not change the invoice. A capture only counts
// once fraud screening accepted it, and a non-positive gross amount is
// never read as a payment.
func applyGatewayStatus(inv model.Invoice, st GatewayStatus) (float64, model.InvoiceStatus, bool) {
	switch strings.ToLower(st.Status) {
	case "capture":
		if strings.ToLower(st.FraudStatus) != "accept" {
			return 0, "", false
		}
	case "settlement":
	default:
		return 0, "", false
	}

	paid := st.GrossAmount
	if paid <= 0 || paid <= inv.InvoicePaidTotal {
		return 0, "", false
	}
	if paid >= inv.InvoiceTotal {
		return inv.InvoiceTotal, model.InvoiceStatusPaid, true
	}
	return paid, model.InvoiceStatusPartial, true
}
