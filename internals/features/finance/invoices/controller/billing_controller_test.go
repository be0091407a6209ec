package controller

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"swimclub_backend/internals/features/finance/invoices/model"
	"swimclub_backend/internals/features/finance/invoices/service"
	"swimclub_backend/internals/helpers/apperr"
	"swimclub_backend/internals/helpers/dbtime"
)

type stubGate struct {
	decision service.Decision
	err      error
	date     *datatypes.Date
}

func (s *stubGate) ForLearner(_ context.Context, _ uuid.UUID, date *datatypes.Date) (service.Decision, error) {
	s.date = date
	return s.decision, s.err
}

type stubReconciler struct {
	inv *model.Invoice
	err error
}

func (s stubReconciler) Sync(context.Context, uuid.UUID) (*model.Invoice, error) { return s.inv, s.err }

func newApp(g GateChecker, r Reconciler) *fiber.App {
	app := fiber.New()
	ctl := NewBillingController(g, r)
	app.Get("/learners/:learner_id/gate", ctl.GateForLearner)
	app.Post("/invoices/:invoice_id/sync", ctl.SyncInvoice)
	return app
}

func TestGateForLearner(t *testing.T) {
	gate := &stubGate{decision: service.Decision{Day: 20, Enforced: true, Blocked: true, Partial: 1, Reason: "Payment required: partial"}}
	app := newApp(gate, stubReconciler{})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/learners/"+uuid.NewString()+"/gate?date=2024-03-20", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "Payment required: partial", body["message"])
	assert.Equal(t, true, body["data"].(map[string]any)["blocked"])
	require.NotNil(t, gate.date)
	assert.Equal(t, "2024-03-20", dbtime.FormatDate(*gate.date))

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/learners/"+uuid.NewString()+"/gate?date=tomorrow", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestGateForUnknownLearner(t *testing.T) {
	app := newApp(&stubGate{err: apperr.New(apperr.KindLearnerNotFound, "learner not found")}, stubReconciler{})
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/learners/"+uuid.NewString()+"/gate", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestSyncInvoice(t *testing.T) {
	inv := &model.Invoice{InvoiceID: uuid.New(), InvoiceTotal: 100, InvoicePaidTotal: 100, InvoiceStatus: model.InvoiceStatusPaid}
	app := newApp(&stubGate{}, stubReconciler{inv: inv})

	resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/invoices/"+inv.InvoiceID.String()+"/sync", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "settled", body["data"].(map[string]any)["invoice_state"])

	app = newApp(&stubGate{}, stubReconciler{err: apperr.New(apperr.KindGatewayUnavailable, "gateway down")})
	resp, err = app.Test(httptest.NewRequest(http.MethodPost, "/invoices/"+inv.InvoiceID.String()+"/sync", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
}
