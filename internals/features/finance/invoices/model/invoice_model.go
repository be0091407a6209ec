// file: internals/features/finance/invoices/model/invoice_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

/* ==============================
   ENUM: invoice status (DB)
============================== */

type InvoiceStatus string

const (
	InvoiceStatusPending   InvoiceStatus = "pending"
	InvoiceStatusPartial   InvoiceStatus = "partial"
	InvoiceStatusPaid      InvoiceStatus = "paid"
	InvoiceStatusCancelled InvoiceStatus = "cancelled"
)

/* ==============================================
   MODEL: invoices (billing owner = guardian or learner)
============================================== */

type Invoice struct {
	InvoiceID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:invoice_id" json:"invoice_id"`

	InvoiceOwnerID uuid.UUID `gorm:"type:uuid;not null;index:idx_invoice_owner_issue,priority:1;column:invoice_owner_id" json:"invoice_owner_id"`

	InvoiceTotal     float64        `gorm:"type:numeric(12,2);not null;check:invoice_total>=0;column:invoice_total" json:"invoice_total"`
	InvoicePaidTotal float64        `gorm:"type:numeric(12,2);not null;default:0;check:invoice_paid_total>=0;column:invoice_paid_total" json:"invoice_paid_total"`
	InvoiceIssueDate datatypes.Date `gorm:"type:date;not null;index:idx_invoice_owner_issue,priority:2;column:invoice_issue_date" json:"invoice_issue_date"`
	InvoiceStatus    InvoiceStatus  `gorm:"type:varchar(20);not null;default:'pending';index;column:invoice_status" json:"invoice_status"`

	// Payment gateway order id
	InvoiceExternalRef *string    `gorm:"type:varchar(80);uniqueIndex;column:invoice_external_ref" json:"invoice_external_ref,omitempty"`
	InvoicePaidAt      *time.Time `gorm:"type:timestamptz;column:invoice_paid_at" json:"invoice_paid_at,omitempty"`
	InvoiceNote        *string    `gorm:"type:text;column:invoice_note" json:"invoice_note,omitempty"`

	InvoiceCreatedAt time.Time `gorm:"type:timestamptz;not null;default:now();column:invoice_created_at" json:"invoice_created_at"`
	InvoiceUpdatedAt time.Time `gorm:"type:timestamptz;not null;default:now();column:invoice_updated_at" json:"invoice_updated_at"`
}

func (Invoice) TableName() string { return "invoices" }

/* ==============================================
   InvoiceState: what the billing gate sees
============================================== */

type InvoiceState int

const (
	InvoiceStateSettled InvoiceState = iota
	InvoiceStateUnpaid
	InvoiceStatePartial
	InvoiceStateVoid
	InvoiceStateUnknown
)

func (s InvoiceState) String() string {
	switch s {
	case InvoiceStateSettled:
		return "settled"
	case InvoiceStateUnpaid:
		return "unpaid"
	case InvoiceStatePartial:
		return "partial"
	case InvoiceStateVoid:
		return "void"
	case InvoiceStateUnknown:
		return "unknown"
	}
	return "unknown"
}

// State classifies the invoice. A pending invoice that already received
// money counts as partial. A status outside the enum is Unknown, never
// Settled.
func (inv Invoice) State() InvoiceState {
	switch inv.InvoiceStatus {
	case InvoiceStatusPending:
		if inv.InvoicePaidTotal > 0 {
			return InvoiceStatePartial
		}
		return InvoiceStateUnpaid
	case InvoiceStatusPartial:
		return InvoiceStatePartial
	case InvoiceStatusPaid:
		return InvoiceStateSettled
	case InvoiceStatusCancelled:
		return InvoiceStateVoid
	}
	return InvoiceStateUnknown
}
