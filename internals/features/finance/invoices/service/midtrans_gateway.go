package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	midtrans "github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/coreapi"

	"swimclub_backend/internals/helpers/apperr"
)

// MidtransGateway reads transaction status through the Midtrans core API.
type MidtransGateway struct {
	client coreapi.Client
}

func NewMidtransGateway(serverKey string, production bool) *MidtransGateway {
	env := midtrans.Sandbox
	if production {
		env = midtrans.Production
	}
	g := &MidtransGateway{}
	g.client.New(serverKey, env)
	return g
}

func (g *MidtransGateway) TransactionStatus(ctx context.Context, orderID string) (GatewayStatus, error) {
	if err := ctx.Err(); err != nil {
		return GatewayStatus{}, err
	}
	resp, merr := g.client.CheckTransaction(orderID)
	if merr != nil {
		return GatewayStatus{}, fmt.Errorf("midtrans check %s: %s", orderID, merr.Message)
	}
	gross, err := parseGrossAmount(resp.GrossAmount)
	if err != nil {
		return GatewayStatus{}, apperr.Wrap(apperr.KindGatewayUnavailable, err, fmt.Sprintf("midtrans order %s: unreadable gross amount", orderID))
	}
	return GatewayStatus{
		OrderID:     resp.OrderID,
		Status:      resp.TransactionStatus,
		FraudStatus: resp.FraudStatus,
		GrossAmount: gross,
	}, nil
}

// parseGrossAmount reads Midtrans' decimal string ("150000.00").
func parseGrossAmount(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, errors.New("gross_amount is empty")
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("gross_amount %q: %w", s, err)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0, fmt.Errorf("gross_amount %q out of range", s)
	}
	return v, nil
}
