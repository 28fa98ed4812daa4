package repository

import (
	"errors"
	"fmt"
	"time"

	"github.com/padhisneha/vedida-ecommerce-sub000/app/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// orderRepository implements the OrderRepository interface
type orderRepository struct {
	db *gorm.DB
}

// NewOrderRepository creates a new order repository instance
func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepository{db: db}
}

// Insert creates a new order with its items in a single transaction. The
// unique index on (subscription_id, scheduled_delivery_date) makes a
// duplicate subscription insert fail with gorm.ErrDuplicatedKey.
func (r *orderRepository) Insert(order *models.Order) error {
	return r.db.Create(order).Error
}

// GetByID retrieves an order with its items by ID
func (r *orderRepository) GetByID(id uint) (*models.Order, error) {
	var order models.Order
	err := r.db.Preload("Items").First(&order, id).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// GetByOrderNumber retrieves an order by its human-readable number
func (r *orderRepository) GetByOrderNumber(number string) (*models.Order, error) {
	var order models.Order
	err := r.db.Preload("Items").Where("order_number = ?", number).First(&order).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// GetByUserID retrieves a paginated list of a user's orders, newest first
func (r *orderRepository) GetByUserID(userID uint, offset, limit int) ([]models.Order, error) {
	var orders []models.Order
	err := r.db.Preload("Items").Where("user_id = ?", userID).
		Order("created_at DESC").Offset(offset).Limit(limit).Find(&orders).Error
	return orders, err
}

// ListByStatus retrieves a paginated list of orders in a given status
func (r *orderRepository) ListByStatus(status string, offset, limit int) ([]models.Order, error) {
	var orders []models.Order
	err := r.db.Preload("Items").Where("status = ?", status).
		Order("scheduled_delivery_date ASC").Offset(offset).Limit(limit).Find(&orders).Error
	return orders, err
}

// FindBySubscriptionAndDate is the idempotency lookup of the generation
// engine: at most one SUBSCRIPTION order may exist per subscription and
// delivery day.
func (r *orderRepository) FindBySubscriptionAndDate(subscriptionID uint, date time.Time) (*models.Order, error) {
	var order models.Order
	day := date.Format("2006-01-02")
	err := r.db.Where("subscription_id = ? AND scheduled_delivery_date = ?", subscriptionID, day).
		First(&order).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// NextOrderNumber increments and returns the per-year order sequence.
// The counter row is locked FOR UPDATE inside a transaction so that
// concurrent materializations cannot read the same value.
func (r *orderRepository) NextOrderNumber(year int) (int, error) {
	var next int
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var counter models.OrderCounter
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("year = ?", year).First(&counter).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			counter = models.OrderCounter{Year: year, LastNumber: 0}
			if err := tx.Create(&counter).Error; err != nil {
				return fmt.Errorf("failed to create order counter for %d: %w", year, err)
			}
		} else if err != nil {
			return err
		}

		counter.LastNumber++
		if err := tx.Save(&counter).Error; err != nil {
			return fmt.Errorf("failed to advance order counter for %d: %w", year, err)
		}
		next = counter.LastNumber
		return nil
	})
	return next, err
}

// Update updates an existing order (status transitions only; totals and
// item snapshots are frozen at creation)
func (r *orderRepository) Update(order *models.Order) error {
	return r.db.Omit("Items").Save(order).Error
}

// Count returns the total number of orders
func (r *orderRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.Order{}).Count(&count).Error
	return count, err
}
