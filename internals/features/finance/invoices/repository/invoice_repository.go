package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"swimclub_backend/internals/features/finance/invoices/model"
	"swimclub_backend/internals/helpers/dbtime"
)

type InvoiceRepository struct {
	DB *gorm.DB
}

func NewInvoiceRepository(db *gorm.DB) *InvoiceRepository {
	return &InvoiceRepository{DB: db}
}

// IssuedBetween lists the owner's invoices with from <= issue_date < to.
func (r *InvoiceRepository) IssuedBetween(ctx context.Context, ownerID uuid.UUID, from, to datatypes.Date) ([]model.Invoice, error) {
	var rows []model.Invoice
	err := r.DB.WithContext(ctx).
		Where("invoice_owner_id = ?", ownerID).
		Where("invoice_issue_date >= ?::date AND invoice_issue_date < ?::date", dbtime.FormatDate(from), dbtime.FormatDate(to)).
		Order("invoice_issue_date ASC").
		Find(&rows).Error
	return rows, err
}

// FindInvoice returns nil, nil when the invoice does not exist.
func (r *InvoiceRepository) FindInvoice(ctx context.Context, id uuid.UUID) (*model.Invoice, error) {
	var inv model.Invoice
	err := r.DB.WithContext(ctx).Where("invoice_id = ?", id).Take(&inv).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &inv, nil
}

func (r *InvoiceRepository) UpdatePayment(ctx context.Context, id uuid.UUID, paid float64, status model.InvoiceStatus, paidAt *time.Time) error {
	return r.DB.WithContext(ctx).
		Model(&model.Invoice{}).
		Where("invoice_id = ?", id).
		Updates(map[string]any{
			"invoice_paid_total": paid,
			"invoice_status":     status,
			"invoice_paid_at":    paidAt,
			"invoice_updated_at": time.Now().UTC(),
		}).Error
}
