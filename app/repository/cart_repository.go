package repository

import (
	"errors"

	"github.com/padhisneha/vedida-ecommerce-sub000/app/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// cartRepository implements the CartRepository interface
type cartRepository struct {
	db *gorm.DB
}

// NewCartRepository creates a new cart repository instance
func NewCartRepository(db *gorm.DB) CartRepository {
	return &cartRepository{db: db}
}

// GetOrCreateByUserID returns the user's cart with items preloaded,
// creating an empty cart on first use.
func (r *cartRepository) GetOrCreateByUserID(userID uint) (*models.Cart, error) {
	var cart models.Cart
	err := r.db.Preload("Items").Where("user_id = ?", userID).First(&cart).Error
	if err == nil {
		return &cart, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	cart = models.Cart{UserID: userID}
	if err := r.db.Create(&cart).Error; err != nil {
		return nil, err
	}
	return &cart, nil
}

// AddItem adds a product to the cart, incrementing the quantity if the
// product is already present.
func (r *cartRepository) AddItem(cartID, productID uint, quantity int) error {
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "cart_id"}, {Name: "product_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{"quantity": gorm.Expr("quantity + ?", quantity)}),
	}).Create(&models.CartItem{
		CartID:    cartID,
		ProductID: productID,
		Quantity:  quantity,
	}).Error
}

// UpdateItemQuantity sets the quantity of a cart item
func (r *cartRepository) UpdateItemQuantity(cartID, productID uint, quantity int) error {
	result := r.db.Model(&models.CartItem{}).
		Where("cart_id = ? AND product_id = ?", cartID, productID).
		Update("quantity", quantity)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// RemoveItem removes a product from the cart
func (r *cartRepository) RemoveItem(cartID, productID uint) error {
	return r.db.Where("cart_id = ? AND product_id = ?", cartID, productID).
		Delete(&models.CartItem{}).Error
}

// Clear removes all items from the cart
func (r *cartRepository) Clear(cartID uint) error {
	return r.db.Where("cart_id = ?", cartID).Delete(&models.CartItem{}).Error
}
