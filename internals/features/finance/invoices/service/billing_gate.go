// file: internals/features/finance/invoices/service/billing_gate.go
package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"swimclub_backend/internals/features/finance/invoices/model"
	"swimclub_backend/internals/helpers/apperr"
	"swimclub_backend/internals/helpers/dbtime"
)

type InvoiceLister interface {
	IssuedBetween(ctx context.Context, ownerID uuid.UUID, from, to datatypes.Date) ([]model.Invoice, error)
}

type GateConfig struct {
	FromDay       int // enforcement starts on this day of month
	StrictFromDay int // partial invoices block from this day
	Location      *time.Location
}

func DefaultGateConfig(loc *time.Location) GateConfig {
	return GateConfig{FromDay: 8, StrictFromDay: 16, Location: loc}
}

type Decision struct {
	OwnerID  uuid.UUID `json:"owner_id"`
	Date     string    `json:"date"`
	Day      int       `json:"day"`
	Enforced bool      `json:"enforced"`
	Blocked  bool      `json:"blocked"`
	Unpaid   int       `json:"unpaid"`
	Partial  int       `json:"partial"`
	Unknown  int       `json:"unknown,omitempty"`
	Reason   string    `json:"reason,omitempty"`
}

// Err turns a blocking decision into PaymentRequired.
func (d Decision) Err() error {
	if !d.Blocked {
		return nil
	}
	return apperr.New(apperr.KindPaymentRequired, "%s", d.Reason)
}

type BillingGate struct {
	Invoices InvoiceLister
	Cfg      GateConfig
}

func NewBillingGate(invoices InvoiceLister, cfg GateConfig) *BillingGate {
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	return &BillingGate{Invoices: invoices, Cfg: cfg}
}

// Check decides whether ownerID may record attendance at now. Invoices are
// those issued in the calendar month of now (club timezone).
func (g *BillingGate) Check(ctx context.Context, ownerID uuid.UUID, now time.Time) (Decision, error) {
	today := dbtime.DateIn(now, g.Cfg.Location)
	d := Decision{OwnerID: ownerID, Date: dbtime.FormatDate(today), Day: time.Time(today).Day()}
	if d.Day < g.Cfg.FromDay {
		return d, nil
	}

	from, to := dbtime.MonthBounds(today)
	var rows []model.Invoice
	err := apperr.Retry(ctx, apperr.DefaultRetry, func(ctx context.Context) error {
		var e error
		rows, e = g.Invoices.IssuedBetween(ctx, ownerID, from, to)
		return e
	})
	if err != nil {
		return d, apperr.FromStore(err, "billing store unavailable")
	}
	return Evaluate(d, rows, g.Cfg), nil
}

// Evaluate applies the day-of-month thresholds to the month's invoices.
// An invoice with an unrecognised status blocks like an unpaid one.
func Evaluate(d Decision, invoices []model.Invoice, cfg GateConfig) Decision {
	d.Enforced = d.Day >= cfg.FromDay
	d.Unpaid, d.Partial, d.Unknown = 0, 0, 0
	for _, inv := range invoices {
		switch inv.State() {
		case model.InvoiceStateUnpaid:
			d.Unpaid++
		case model.InvoiceStatePartial:
			d.Partial++
		case model.InvoiceStateUnknown:
			d.Unknown++
			log.Printf("[WARN] invoice %s: unrecognised status %q, treating as unpaid", inv.InvoiceID, inv.InvoiceStatus)
		case model.InvoiceStateSettled, model.InvoiceStateVoid:
		}
	}
	if !d.Enforced {
		return d
	}

	strict := d.Day >= cfg.StrictFromDay
	switch {
	case d.Unpaid > 0:
		d.Blocked = true
		d.Reason = fmt.Sprintf("Payment required: %d unpaid invoice(s) this month. Please settle at the front desk.", d.Unpaid)
	case d.Unknown > 0:
		d.Blocked = true
		d.Reason = fmt.Sprintf("Payment required: %d invoice(s) this month could not be verified. Please see the front desk.", d.Unknown)
	case strict && d.Partial > 0:
		d.Blocked = true
		d.Reason = fmt.Sprintf("Payment required: %d invoice(s) this month are only partially paid. Please settle the balance.", d.Partial)
	}
	return d
}
