package generation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/padhisneha/vedida-ecommerce-sub000/app/models"
	"github.com/padhisneha/vedida-ecommerce-sub000/internal/pkg/pricing"
)

// Materializer turns one due subscription into one persisted order.
// Guarantees: exactly one insert on success, zero writes on failure or
// when the order already exists.
type Materializer struct {
	orders   OrderStore
	products ProductStore
}

// NewMaterializer creates a materializer over the given stores.
func NewMaterializer(orders OrderStore, products ProductStore) *Materializer {
	return &Materializer{orders: orders, products: products}
}

// Materialize builds and persists the order for one subscription on one
// delivery date. The idempotency pair is (subscription id, delivery
// date): a second call for the same pair returns AlreadyExists without
// writing anything, which is what makes repeated runs for the same day
// safe.
func (m *Materializer) Materialize(ctx context.Context, sub *models.Subscription, referenceDate time.Time) Outcome {
	day := DateOnly(referenceDate)

	existing, err := m.orders.FindBySubscriptionAndDate(sub.ID, day)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return Outcome{Kind: OutcomeFailed, Reason: "order lookup failed", Err: err}
	}
	if existing != nil {
		return Outcome{Kind: OutcomeAlreadyExists, OrderID: existing.ID, OrderNumber: existing.OrderNumber}
	}

	// Re-validate every item against the current catalog before any
	// write. One unavailable product fails the whole day for this
	// subscription; a later run picks it up again once stock returns.
	lines := make([]pricing.LineItem, 0, len(sub.Items))
	orderItems := make([]models.OrderItem, 0, len(sub.Items))
	for _, item := range sub.Items {
		product, err := m.getProduct(ctx, item.ProductID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return Outcome{
					Kind:   OutcomeFailed,
					Reason: fmt.Sprintf("product %d no longer exists", item.ProductID),
					Err:    ErrProductUnavailable,
				}
			}
			return Outcome{Kind: OutcomeFailed, Reason: fmt.Sprintf("product %d lookup failed", item.ProductID), Err: err}
		}
		if !product.AvailableForSubscription() {
			return Outcome{
				Kind:   OutcomeFailed,
				Reason: fmt.Sprintf("product %d (%s) unavailable for subscription", product.ID, product.Name),
				Err:    ErrProductUnavailable,
			}
		}

		lines = append(lines, pricing.LineItem{
			PriceExcludingTax: product.PriceExcludingTax,
			CGSTPercent:       product.TaxCGSTPercent,
			SGSTPercent:       product.TaxSGSTPercent,
			Quantity:          item.Quantity,
		})
		orderItems = append(orderItems, models.OrderItem{
			ProductID:         product.ID,
			ProductName:       product.Name,
			Unit:              product.Unit,
			Quantity:          item.Quantity,
			UnitPrice:         product.Price,
			PriceExcludingTax: product.PriceExcludingTax,
			CGSTPercent:       product.TaxCGSTPercent,
			SGSTPercent:       product.TaxSGSTPercent,
		})
	}

	breakdown, err := pricing.Calculate(lines)
	if err != nil {
		return Outcome{Kind: OutcomeFailed, Reason: "pricing failed", Err: err}
	}

	sequence, err := m.orders.NextOrderNumber(day.Year())
	if err != nil {
		return Outcome{Kind: OutcomeFailed, Reason: "order number assignment failed", Err: err}
	}

	subscriptionID := sub.ID
	order := &models.Order{
		OrderNumber:           models.FormatOrderNumber(day.Year(), sequence),
		UserID:                sub.UserID,
		Type:                  models.OrderTypeSubscription,
		SubscriptionID:        &subscriptionID,
		Status:                models.OrderStatusPending,
		Items:                 orderItems,
		Subtotal:              breakdown.Subtotal,
		CGST:                  breakdown.CGST,
		SGST:                  breakdown.SGST,
		TotalAmount:           breakdown.TotalBeforeFees,
		ScheduledDeliveryDate: day,
		DeliveryAddress:       sub.DeliveryAddress,
	}

	if err := m.orders.Insert(order); err != nil {
		// A concurrent run inserted first; the unique index on
		// (subscription_id, scheduled_delivery_date) turned the race
		// into a duplicate-key error. Same as finding it up front.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return Outcome{Kind: OutcomeAlreadyExists}
		}
		return Outcome{Kind: OutcomeFailed, Reason: "order insert failed", Err: err}
	}

	return Outcome{Kind: OutcomeCreated, OrderID: order.ID, OrderNumber: order.OrderNumber}
}

// getProduct performs a catalog lookup bounded by the caller's context so
// a stuck lookup surfaces as a per-subscription error instead of hanging
// the whole run.
func (m *Materializer) getProduct(ctx context.Context, id uint) (*models.Product, error) {
	type lookup struct {
		product *models.Product
		err     error
	}
	ch := make(chan lookup, 1)
	go func() {
		product, err := m.products.GetByID(id)
		ch <- lookup{product: product, err: err}
	}()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		return res.product, res.err
	}
}
