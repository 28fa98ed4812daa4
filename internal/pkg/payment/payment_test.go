package payment

import (
	"context"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProviderResolvesCashOnDelivery(t *testing.T) {
	for _, method := range []string{"", "cod", "COD", " Cod "} {
		provider, err := NewProvider(method)
		require.NoError(t, err, "method %q", method)
		assert.NotNil(t, provider)
	}
}

func TestNewProviderRejectsUnknownMethod(t *testing.T) {
	provider, err := NewProvider("card")
	assert.Error(t, err)
	assert.Nil(t, provider)
}

func TestCashOnDeliveryCharge(t *testing.T) {
	provider, err := NewProvider(MethodCashOnDelivery)
	require.NoError(t, err)

	charge, err := provider.Charge(context.Background(), ChargeParams{
		UserID:      1,
		OrderNumber: "ORD-2026-00001",
		Amount:      decimal.NewFromInt(236),
		Method:      MethodCashOnDelivery,
	})
	require.NoError(t, err)
	assert.True(t, charge.Succeeded)
	assert.True(t, strings.HasPrefix(charge.Reference, "COD-"))
}

func TestChargeRejectsNegativeAmount(t *testing.T) {
	provider, err := NewProvider(MethodCashOnDelivery)
	require.NoError(t, err)

	charge, err := provider.Charge(context.Background(), ChargeParams{
		Amount: decimal.NewFromInt(-1),
	})
	assert.Error(t, err)
	assert.Nil(t, charge)
}
