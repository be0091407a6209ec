package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"swimclub_backend/internals/features/finance/invoices/model"
	"swimclub_backend/internals/helpers/apperr"
)

type memInvoiceStore struct {
	rows    map[uuid.UUID]*model.Invoice
	updates int
}

func (m *memInvoiceStore) FindInvoice(_ context.Context, id uuid.UUID) (*model.Invoice, error) {
	inv, ok := m.rows[id]
	if !ok {
		return nil, nil
	}
	cp := *inv
	return &cp, nil
}

func (m *memInvoiceStore) UpdatePayment(_ context.Context, id uuid.UUID, paid float64, status model.InvoiceStatus, paidAt *time.Time) error {
	m.updates++
	inv := m.rows[id]
	inv.InvoicePaidTotal = paid
	inv.InvoiceStatus = status
	inv.InvoicePaidAt = paidAt
	return nil
}

type stubGateway struct {
	status GatewayStatus
	err    error
}

func (s stubGateway) TransactionStatus(context.Context, string) (GatewayStatus, error) {
	return s.status, s.err
}

func newPendingInvoice() *model.Invoice {
	ref := "SWIM-2024-03-0001"
	return &model.Invoice{
		InvoiceID:          uuid.New(),
		InvoiceOwnerID:     uuid.New(),
		InvoiceTotal:       150,
		InvoiceStatus:      model.InvoiceStatusPending,
		InvoiceExternalRef: &ref,
	}
}

func TestReconcileSettlementMarksPaid(t *testing.T) {
	inv := newPendingInvoice()
	store := &memInvoiceStore{rows: map[uuid.UUID]*model.Invoice{inv.InvoiceID: inv}}
	svc := NewReconcileService(store, stubGateway{status: GatewayStatus{Status: "settlement", GrossAmount: 150}})

	got, err := svc.Sync(context.Background(), inv.InvoiceID)
	require.NoError(t, err)
	assert.Equal(t, model.InvoiceStatusPaid, got.InvoiceStatus)
	assert.Equal(t, 150.0, got.InvoicePaidTotal)
	require.NotNil(t, got.InvoicePaidAt)
	assert.Equal(t, model.InvoiceStateSettled, store.rows[inv.InvoiceID].State())
}

func TestReconcilePartialCapture(t *testing.T) {
	inv := newPendingInvoice()
	store := &memInvoiceStore{rows: map[uuid.UUID]*model.Invoice{inv.InvoiceID: inv}}
	svc := NewReconcileService(store, stubGateway{status: GatewayStatus{Status: "capture", FraudStatus: "accept", GrossAmount: 50}})

	got, err := svc.Sync(context.Background(), inv.InvoiceID)
	require.NoError(t, err)
	assert.Equal(t, model.InvoiceStatusPartial, got.InvoiceStatus)
	assert.Equal(t, 50.0, got.InvoicePaidTotal)
	assert.Nil(t, got.InvoicePaidAt)
}

func TestReconcileIgnoresNonFinalStatuses(t *testing.T) {
	for _, st := range []string{"pending", "expire", "cancel", "deny"} {
		inv := newPendingInvoice()
		store := &memInvoiceStore{rows: map[uuid.UUID]*model.Invoice{inv.InvoiceID: inv}}
		svc := NewReconcileService(store, stubGateway{status: GatewayStatus{Status: st}})

		got, err := svc.Sync(context.Background(), inv.InvoiceID)
		require.NoError(t, err, st)
		assert.Equal(t, model.InvoiceStatusPending, got.InvoiceStatus, st)
		assert.Equal(t, 0, store.updates, st)
	}
}

func TestReconcileErrors(t *testing.T) {
	inv := newPendingInvoice()
	store := &memInvoiceStore{rows: map[uuid.UUID]*model.Invoice{inv.InvoiceID: inv}}

	_, err := NewReconcileService(store, nil).Sync(context.Background(), inv.InvoiceID)
	assert.True(t, errors.Is(err, apperr.ErrGatewayUnavailable))

	svc := NewReconcileService(store, stubGateway{err: errors.New("401 unauthorized")})
	_, err = svc.Sync(context.Background(), inv.InvoiceID)
	assert.True(t, errors.Is(err, apperr.ErrGatewayUnavailable))

	_, err = svc.Sync(context.Background(), uuid.New())
	assert.True(t, errors.Is(err, apperr.ErrNotFound))

	inv.InvoiceExternalRef = nil
	_, err = svc.Sync(context.Background(), inv.InvoiceID)
	assert.True(t, errors.Is(err, apperr.ErrInvalidInput))
}

func TestReconcileNeverSettlesWithoutAmountOrAcceptedCapture(t *testing.T) {
	cases := map[string]GatewayStatus{
		"settlement without gross":  {Status: "settlement", GrossAmount: 0},
		"settlement negative gross": {Status: "settlement", GrossAmount: -10},
		"capture under challenge":   {Status: "capture", FraudStatus: "challenge", GrossAmount: 150},
		"capture denied by fraud":   {Status: "capture", FraudStatus: "deny", GrossAmount: 150},
		"capture without fraud":     {Status: "capture", GrossAmount: 150},
	}
	for name, st := range cases {
		t.Run(name, func(t *testing.T) {
			inv := newPendingInvoice()
			store := &memInvoiceStore{rows: map[uuid.UUID]*model.Invoice{inv.InvoiceID: inv}}
			svc := NewReconcileService(store, stubGateway{status: st})

			got, err := svc.Sync(context.Background(), inv.InvoiceID)
			require.NoError(t, err)
			assert.Equal(t, model.InvoiceStatusPending, got.InvoiceStatus)
			assert.Equal(t, 0, store.updates)
			assert.Equal(t, model.InvoiceStateUnpaid, store.rows[inv.InvoiceID].State())
		})
	}
}

func TestApplyGatewayStatus(t *testing.T) {
	inv := model.Invoice{InvoiceTotal: 100, InvoiceStatus: model.InvoiceStatusPending}

	_, _, ok := applyGatewayStatus(inv, GatewayStatus{Status: "settlement", GrossAmount: 0})
	assert.False(t, ok)

	paid, status, ok := applyGatewayStatus(inv, GatewayStatus{Status: "capture", FraudStatus: "accept", GrossAmount: 100})
	require.True(t, ok)
	assert.Equal(t, 100.0, paid)
	assert.Equal(t, model.InvoiceStatusPaid, status)

	inv.InvoicePaidTotal = 40
	_, _, ok = applyGatewayStatus(inv, GatewayStatus{Status: "settlement", GrossAmount: 40})
	assert.False(t, ok, "same amount already recorded")
}

func TestParseGrossAmount(t *testing.T) {
	v, err := parseGrossAmount(" 150000.00 ")
	require.NoError(t, err)
	assert.Equal(t, 150000.0, v)

	for _, bad := range []string{"", "  ", "abc", "NaN", "-1", "1e400"} {
		_, err := parseGrossAmount(bad)
		assert.Error(t, err, bad)
	}
}
