package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	OrderTypeOneTime      = "ONE_TIME"
	OrderTypeSubscription = "SUBSCRIPTION"
)

const (
	OrderStatusPending        = "PENDING"
	OrderStatusConfirmed      = "CONFIRMED"
	OrderStatusOutForDelivery = "OUT_FOR_DELIVERY"
	OrderStatusDelivered      = "DELIVERED"
	OrderStatusCancelled      = "CANCELLED"
)

// orderTransitions is the full transition table of the order lifecycle.
// DELIVERED and CANCELLED are terminal.
var orderTransitions = map[string][]string{
	OrderStatusPending:        {OrderStatusConfirmed, OrderStatusCancelled},
	OrderStatusConfirmed:      {OrderStatusOutForDelivery, OrderStatusCancelled},
	OrderStatusOutForDelivery: {OrderStatusDelivered},
	OrderStatusDelivered:      {},
	OrderStatusCancelled:      {},
}

// Order is a concrete delivery, either placed directly at checkout
// (ONE_TIME) or materialized from a subscription (SUBSCRIPTION). Item
// prices and the total are snapshotted at creation and never recomputed.
type Order struct {
	ID                    uint            `gorm:"primaryKey" json:"id"`
	UUID                  string          `gorm:"type:char(36);uniqueIndex;not null" json:"uuid"`
	OrderNumber           string          `gorm:"type:varchar(20);uniqueIndex;not null" json:"order_number"`
	UserID                uint            `gorm:"not null;index" json:"user_id"`
	Type                  string          `gorm:"type:varchar(20);not null;default:'ONE_TIME'" json:"type"`
	SubscriptionID        *uint           `gorm:"index:ux_orders_subscription_date,unique,priority:1" json:"subscription_id,omitempty"`
	Status                string          `gorm:"type:varchar(20);not null;default:'PENDING';index" json:"status"`
	Items                 []OrderItem     `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
	Subtotal              decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"subtotal"`
	CGST                  decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"cgst"`
	SGST                  decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"sgst"`
	TotalAmount           decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"total_amount"`
	PaymentReference      string          `gorm:"type:varchar(100);default:null" json:"payment_reference,omitempty"`
	ScheduledDeliveryDate time.Time       `gorm:"type:date;not null;index:ux_orders_subscription_date,unique,priority:2" json:"scheduled_delivery_date"`
	DeliveredAt           *time.Time      `gorm:"type:timestamp;default:null" json:"delivered_at,omitempty"`
	DeliveryAddress       AddressSnapshot `gorm:"embedded" json:"delivery_address"`
	CreatedAt             time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt             time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

// OrderItem snapshots a product at order-creation time. Catalog changes
// after creation must not show up on historical orders, so name, unit
// price and tax rates are copied, not joined.
type OrderItem struct {
	ID                uint            `gorm:"primaryKey" json:"id"`
	OrderID           uint            `gorm:"not null;index" json:"order_id"`
	ProductID         uint            `gorm:"not null;index" json:"product_id"`
	ProductName       string          `gorm:"type:varchar(150);not null" json:"product_name"`
	Unit              string          `gorm:"type:varchar(30)" json:"unit"`
	Quantity          int             `gorm:"not null" json:"quantity"`
	UnitPrice         decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"unit_price"`
	PriceExcludingTax decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price_excluding_tax"`
	CGSTPercent       decimal.Decimal `gorm:"type:decimal(5,2);not null;default:0" json:"cgst_percent"`
	SGSTPercent       decimal.Decimal `gorm:"type:decimal(5,2);not null;default:0" json:"sgst_percent"`
}

// BeforeCreate assigns a public UUID before the first insert
func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.UUID == "" {
		o.UUID = uuid.New().String()
	}
	return nil
}

// FormatOrderNumber renders the human-readable order number, e.g.
// ORD-2026-00042. The sequence is monotonic per year.
func FormatOrderNumber(year int, sequence int) string {
	return fmt.Sprintf("ORD-%d-%05d", year, sequence)
}

// CanTransitionTo reports whether the order may move to the given status.
func (o *Order) CanTransitionTo(status string) bool {
	for _, next := range orderTransitions[o.Status] {
		if next == status {
			return true
		}
	}
	return false
}

// TransitionTo moves the order to the given status or fails with
// ErrInvalidTransition. DeliveredAt is set exactly on entry to DELIVERED
// and never touched again.
func (o *Order) TransitionTo(status string, now time.Time) error {
	if !o.CanTransitionTo(status) {
		return fmt.Errorf("%w: order %s -> %s", ErrInvalidTransition, o.Status, status)
	}
	o.Status = status
	if status == OrderStatusDelivered && o.DeliveredAt == nil {
		o.DeliveredAt = &now
	}
	return nil
}

// IsTerminal reports whether the order reached a final status
func (o *Order) IsTerminal() bool {
	return o.Status == OrderStatusDelivered || o.Status == OrderStatusCancelled
}
