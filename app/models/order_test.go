package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderLegalTransitions(t *testing.T) {
	tests := []struct {
		from string
		to   string
	}{
		{OrderStatusPending, OrderStatusConfirmed},
		{OrderStatusPending, OrderStatusCancelled},
		{OrderStatusConfirmed, OrderStatusOutForDelivery},
		{OrderStatusConfirmed, OrderStatusCancelled},
		{OrderStatusOutForDelivery, OrderStatusDelivered},
	}

	for _, tt := range tests {
		order := &Order{Status: tt.from}
		assert.NoError(t, order.TransitionTo(tt.to, time.Now()), "%s -> %s", tt.from, tt.to)
		assert.Equal(t, tt.to, order.Status)
	}
}

func TestOrderIllegalTransitions(t *testing.T) {
	tests := []struct {
		from string
		to   string
	}{
		{OrderStatusPending, OrderStatusOutForDelivery},
		{OrderStatusPending, OrderStatusDelivered},
		{OrderStatusConfirmed, OrderStatusDelivered},
		{OrderStatusOutForDelivery, OrderStatusCancelled},
		{OrderStatusDelivered, OrderStatusCancelled},
		{OrderStatusDelivered, OrderStatusPending},
		{OrderStatusCancelled, OrderStatusConfirmed},
	}

	for _, tt := range tests {
		order := &Order{Status: tt.from}
		err := order.TransitionTo(tt.to, time.Now())
		assert.ErrorIs(t, err, ErrInvalidTransition, "%s -> %s must be rejected", tt.from, tt.to)
		assert.Equal(t, tt.from, order.Status)
	}
}

func TestOrderDeliveredAtSetOnce(t *testing.T) {
	order := &Order{Status: OrderStatusOutForDelivery}
	deliveredAt := time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)

	require.NoError(t, order.TransitionTo(OrderStatusDelivered, deliveredAt))
	require.NotNil(t, order.DeliveredAt)
	assert.True(t, order.DeliveredAt.Equal(deliveredAt))

	// A later illegal transition attempt must not touch the timestamp.
	_ = order.TransitionTo(OrderStatusCancelled, deliveredAt.Add(time.Hour))
	assert.True(t, order.DeliveredAt.Equal(deliveredAt))
}

func TestOrderTerminalStates(t *testing.T) {
	assert.True(t, (&Order{Status: OrderStatusDelivered}).IsTerminal())
	assert.True(t, (&Order{Status: OrderStatusCancelled}).IsTerminal())
	assert.False(t, (&Order{Status: OrderStatusPending}).IsTerminal())
	assert.False(t, (&Order{Status: OrderStatusOutForDelivery}).IsTerminal())
}

func TestFormatOrderNumber(t *testing.T) {
	assert.Equal(t, "ORD-2024-00001", FormatOrderNumber(2024, 1))
	assert.Equal(t, "ORD-2024-00042", FormatOrderNumber(2024, 42))
	assert.Equal(t, "ORD-2026-12345", FormatOrderNumber(2026, 12345))
}
