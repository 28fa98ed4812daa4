package generation

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/padhisneha/vedida-ecommerce-sub000/app/models"
)

func TestMaterializeCreatesOrder(t *testing.T) {
	orders := newFakeOrderStore()
	products := newFakeProductStore(milkProduct(1))
	mat := NewMaterializer(orders, products)
	sub := dailySubscription(7, 42, 1, "2024-01-01")

	outcome := mat.Materialize(context.Background(), &sub, date("2024-01-05"))

	require.Equal(t, OutcomeCreated, outcome.Kind, "reason=%s err=%v", outcome.Reason, outcome.Err)
	assert.Equal(t, "ORD-2024-00001", outcome.OrderNumber)

	stored, err := orders.FindBySubscriptionAndDate(7, date("2024-01-05"))
	require.NoError(t, err)
	assert.Equal(t, models.OrderTypeSubscription, stored.Type)
	assert.Equal(t, models.OrderStatusPending, stored.Status)
	assert.Equal(t, uint(42), stored.UserID)
	require.NotNil(t, stored.SubscriptionID)
	assert.Equal(t, uint(7), *stored.SubscriptionID)
	assert.Equal(t, "12 Dairy Lane", stored.DeliveryAddress.Line1)

	// 2 x 100 excl. tax at 9% + 9% = 236 payable.
	assert.True(t, stored.Subtotal.Equal(decimal.NewFromInt(200)), "subtotal = %s", stored.Subtotal)
	assert.True(t, stored.CGST.Equal(decimal.NewFromInt(18)))
	assert.True(t, stored.SGST.Equal(decimal.NewFromInt(18)))
	assert.True(t, stored.TotalAmount.Equal(decimal.NewFromInt(236)), "total = %s", stored.TotalAmount)

	require.Len(t, stored.Items, 1)
	item := stored.Items[0]
	assert.Equal(t, uint(1), item.ProductID)
	assert.Equal(t, 2, item.Quantity)
	assert.True(t, item.UnitPrice.Equal(decimal.RequireFromString("118")))
	assert.True(t, item.PriceExcludingTax.Equal(decimal.NewFromInt(100)))
}

func TestMaterializeIsIdempotent(t *testing.T) {
	orders := newFakeOrderStore()
	products := newFakeProductStore(milkProduct(1))
	mat := NewMaterializer(orders, products)
	sub := dailySubscription(7, 42, 1, "2024-01-01")

	first := mat.Materialize(context.Background(), &sub, date("2024-01-05"))
	require.Equal(t, OutcomeCreated, first.Kind)

	second := mat.Materialize(context.Background(), &sub, date("2024-01-05"))
	assert.Equal(t, OutcomeAlreadyExists, second.Kind)
	assert.Equal(t, first.OrderID, second.OrderID)
	assert.Equal(t, 1, orders.count(), "second call must not write")
}

func TestMaterializeSnapshotsPriceAtCreation(t *testing.T) {
	orders := newFakeOrderStore()
	products := newFakeProductStore(milkProduct(1))
	mat := NewMaterializer(orders, products)
	sub := dailySubscription(7, 42, 1, "2024-01-01")

	outcome := mat.Materialize(context.Background(), &sub, date("2024-01-05"))
	require.Equal(t, OutcomeCreated, outcome.Kind)

	// Catalog price change after creation must not alter the order.
	changed := milkProduct(1)
	changed.Price = decimal.RequireFromString("999")
	changed.PriceExcludingTax = decimal.RequireFromString("900")
	products.set(changed)

	stored, err := orders.FindBySubscriptionAndDate(7, date("2024-01-05"))
	require.NoError(t, err)
	assert.True(t, stored.TotalAmount.Equal(decimal.NewFromInt(236)))
	assert.True(t, stored.Items[0].UnitPrice.Equal(decimal.RequireFromString("118")))
}

func TestMaterializeFailsWhenProductUnavailable(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*models.Product)
	}{
		{"out of stock", func(p *models.Product) { p.InStock = false }},
		{"subscription disallowed", func(p *models.Product) { p.AllowSubscription = false }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			product := milkProduct(1)
			tt.mutate(&product)
			orders := newFakeOrderStore()
			mat := NewMaterializer(orders, newFakeProductStore(product))
			sub := dailySubscription(7, 42, 1, "2024-01-01")

			outcome := mat.Materialize(context.Background(), &sub, date("2024-01-05"))

			assert.Equal(t, OutcomeFailed, outcome.Kind)
			assert.ErrorIs(t, outcome.Err, ErrProductUnavailable)
			assert.Equal(t, 0, orders.count(), "no partial order on failure")
		})
	}
}

func TestMaterializeFailsWhenProductMissing(t *testing.T) {
	orders := newFakeOrderStore()
	mat := NewMaterializer(orders, newFakeProductStore())
	sub := dailySubscription(7, 42, 1, "2024-01-01")

	outcome := mat.Materialize(context.Background(), &sub, date("2024-01-05"))

	assert.Equal(t, OutcomeFailed, outcome.Kind)
	assert.ErrorIs(t, outcome.Err, ErrProductUnavailable)
	assert.Equal(t, 0, orders.count())
}

func TestMaterializeTreatsDuplicateInsertAsExisting(t *testing.T) {
	// Simulates the lost race: the lookup misses but a concurrent run
	// inserts first, so our insert hits the unique index.
	orders := newFakeOrderStore()
	products := newFakeProductStore(milkProduct(1))
	mat := NewMaterializer(orders, products)
	sub := dailySubscription(7, 42, 1, "2024-01-01")

	first := mat.Materialize(context.Background(), &sub, date("2024-01-05"))
	require.Equal(t, OutcomeCreated, first.Kind)

	orders.hideOnFind = true
	second := mat.Materialize(context.Background(), &sub, date("2024-01-05"))
	assert.Equal(t, OutcomeAlreadyExists, second.Kind)
	assert.Equal(t, 1, orders.count())
}

func TestMaterializeRespectsContextCancellation(t *testing.T) {
	orders := newFakeOrderStore()
	products := newFakeProductStore(milkProduct(1))
	products.blockCh = make(chan struct{})
	defer close(products.blockCh)
	mat := NewMaterializer(orders, products)
	sub := dailySubscription(7, 42, 1, "2024-01-01")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	outcome := mat.Materialize(ctx, &sub, date("2024-01-05"))
	assert.Equal(t, OutcomeFailed, outcome.Kind)
	assert.ErrorIs(t, outcome.Err, context.Canceled)
	assert.Equal(t, 0, orders.count())
}
