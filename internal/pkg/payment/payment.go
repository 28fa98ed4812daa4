package payment

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	MethodCashOnDelivery = "cod"
)

// ChargeParams describes a checkout payment request.
type ChargeParams struct {
	UserID      uint
	OrderNumber string
	Amount      decimal.Decimal
	Method      string
}

// Charge is the gateway's answer: success plus a reference to store on
// the order, or failure.
type Charge struct {
	Reference string
	Succeeded bool
}

// Provider is the payment gateway boundary. Checkout treats it as a
// black box returning success/failure plus a payment reference.
type Provider interface {
	Charge(ctx context.Context, params ChargeParams) (*Charge, error)
}

// codProvider settles payment at the doorstep; the charge always
// succeeds and the reference only tags the collection entry.
type codProvider struct{}

// NewProvider resolves a payment method to its provider.
func NewProvider(method string) (Provider, error) {
	switch strings.ToLower(strings.TrimSpace(method)) {
	case "", MethodCashOnDelivery:
		return &codProvider{}, nil
	}
	return nil, fmt.Errorf("unsupported payment method %q", method)
}

func (p *codProvider) Charge(ctx context.Context, params ChargeParams) (*Charge, error) {
	if params.Amount.IsNegative() {
		return nil, fmt.Errorf("charge amount must not be negative")
	}
	return &Charge{
		Reference: "COD-" + uuid.New().String(),
		Succeeded: true,
	}, nil
}
