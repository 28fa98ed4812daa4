package repository

import (
	"github.com/padhisneha/vedida-ecommerce-sub000/app/models"
	"gorm.io/gorm"
)

// addressRepository implements the AddressRepository interface
type addressRepository struct {
	db *gorm.DB
}

// NewAddressRepository creates a new address repository instance
func NewAddressRepository(db *gorm.DB) AddressRepository {
	return &addressRepository{db: db}
}

// Create creates a new address in the database
func (r *addressRepository) Create(address *models.Address) error {
	return r.db.Create(address).Error
}

// GetByID retrieves an address by its ID
func (r *addressRepository) GetByID(id uint) (*models.Address, error) {
	var address models.Address
	err := r.db.First(&address, id).Error
	if err != nil {
		return nil, err
	}
	return &address, nil
}

// GetByUserID retrieves all addresses for a user, default first
func (r *addressRepository) GetByUserID(userID uint) ([]models.Address, error) {
	var addresses []models.Address
	err := r.db.Where("user_id = ?", userID).
		Order("is_default DESC, created_at ASC").
		Find(&addresses).Error
	return addresses, err
}

// Update updates an existing address
func (r *addressRepository) Update(address *models.Address) error {
	return r.db.Save(address).Error
}

// Delete removes an address from the user's address book. Orders and
// subscriptions keep their embedded snapshots.
func (r *addressRepository) Delete(id uint) error {
	return r.db.Delete(&models.Address{}, id).Error
}

// SetDefault marks one address as the user's default and clears the flag
// on all others.
func (r *addressRepository) SetDefault(userID, addressID uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Address{}).
			Where("user_id = ?", userID).
			Update("is_default", false).Error; err != nil {
			return err
		}
		return tx.Model(&models.Address{}).
			Where("id = ? AND user_id = ?", addressID, userID).
			Update("is_default", true).Error
	})
}
