package dto

import (
	"time"

	"github.com/google/uuid"

	"swimclub_backend/internals/features/finance/invoices/model"
	"swimclub_backend/internals/helpers/dbtime"
)

type InvoiceResponse struct {
	InvoiceID          uuid.UUID  `json:"invoice_id"`
	InvoiceOwnerID     uuid.UUID  `json:"invoice_owner_id"`
	InvoiceTotal       float64    `json:"invoice_total"`
	InvoicePaidTotal   float64    `json:"invoice_paid_total"`
	InvoiceIssueDate   string     `json:"invoice_issue_date"`
	InvoiceStatus      string     `json:"invoice_status"`
	InvoiceState       string     `json:"invoice_state"`
	InvoiceExternalRef *string    `json:"invoice_external_ref,omitempty"`
	InvoicePaidAt      *time.Time `json:"invoice_paid_at,omitempty"`
}

func FromModel(m *model.Invoice) InvoiceResponse {
	return InvoiceResponse{
		InvoiceID:          m.InvoiceID,
		InvoiceOwnerID:     m.InvoiceOwnerID,
		InvoiceTotal:       m.InvoiceTotal,
		InvoicePaidTotal:   m.InvoicePaidTotal,
		InvoiceIssueDate:   dbtime.FormatDate(m.InvoiceIssueDate),
		InvoiceStatus:      string(m.InvoiceStatus),
		InvoiceState:       m.State().String(),
		InvoiceExternalRef: m.InvoiceExternalRef,
		InvoicePaidAt:      m.InvoicePaidAt,
	}
}
