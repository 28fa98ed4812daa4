package repository

import (
	"github.com/padhisneha/vedida-ecommerce-sub000/app/models"
	"gorm.io/gorm"
)

// subscriptionRepository implements the SubscriptionRepository interface
type subscriptionRepository struct {
	db *gorm.DB
}

// NewSubscriptionRepository creates a new subscription repository instance
func NewSubscriptionRepository(db *gorm.DB) SubscriptionRepository {
	return &subscriptionRepository{db: db}
}

// Create creates a new subscription with its items
func (r *subscriptionRepository) Create(sub *models.Subscription) error {
	return r.db.Create(sub).Error
}

// GetByID retrieves a subscription with its items by ID
func (r *subscriptionRepository) GetByID(id uint) (*models.Subscription, error) {
	var sub models.Subscription
	err := r.db.Preload("Items").First(&sub, id).Error
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

// GetByUUID retrieves a subscription by its public UUID
func (r *subscriptionRepository) GetByUUID(uuid string) (*models.Subscription, error) {
	var sub models.Subscription
	err := r.db.Preload("Items").Where("uuid = ?", uuid).First(&sub).Error
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

// GetByUserID retrieves all subscriptions of a user, newest first
func (r *subscriptionRepository) GetByUserID(userID uint) ([]models.Subscription, error) {
	var subs []models.Subscription
	err := r.db.Preload("Items").Where("user_id = ?", userID).
		Order("created_at DESC").Find(&subs).Error
	return subs, err
}

// GetByStatus retrieves all subscriptions in any of the given statuses,
// items preloaded. The generation run uses this for ACTIVE and PAUSED.
func (r *subscriptionRepository) GetByStatus(statuses ...string) ([]models.Subscription, error) {
	var subs []models.Subscription
	err := r.db.Preload("Items").Where("status IN ?", statuses).
		Order("id ASC").Find(&subs).Error
	return subs, err
}

// Update persists subscription changes. Items are frozen at creation;
// only the root row is written.
func (r *subscriptionRepository) Update(sub *models.Subscription) error {
	return r.db.Omit("Items").Save(sub).Error
}

// Count returns the total number of subscriptions
func (r *subscriptionRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.Subscription{}).Count(&count).Error
	return count, err
}
