package repository

import (
	"time"

	"github.com/padhisneha/vedida-ecommerce-sub000/app/models"
	"gorm.io/gorm"
)

// UserRepository defines the interface for user-related database operations
type UserRepository interface {
	Create(user *models.User) error
	GetByID(id uint) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	GetByAPIKey(key string) (*models.User, error)
	Update(user *models.User) error
	Count() (int64, error)
}

// AddressRepository defines the interface for address-book operations
type AddressRepository interface {
	Create(address *models.Address) error
	GetByID(id uint) (*models.Address, error)
	GetByUserID(userID uint) ([]models.Address, error)
	Update(address *models.Address) error
	Delete(id uint) error
	SetDefault(userID, addressID uint) error
}

// ProductRepository defines the interface for catalog operations
type ProductRepository interface {
	Create(product *models.Product) error
	GetByID(id uint) (*models.Product, error)
	GetByUUID(uuid string) (*models.Product, error)
	List(offset, limit int) ([]models.Product, error)
	ListInStock() ([]models.Product, error)
	Update(product *models.Product) error
	Count() (int64, error)
}

// CartRepository defines the interface for cart operations
type CartRepository interface {
	GetOrCreateByUserID(userID uint) (*models.Cart, error)
	AddItem(cartID, productID uint, quantity int) error
	UpdateItemQuantity(cartID, productID uint, quantity int) error
	RemoveItem(cartID, productID uint) error
	Clear(cartID uint) error
}

// OrderRepository defines the interface for order-related database
// operations, including the idempotency lookup and the per-year order
// number counter used by subscription order generation.
type OrderRepository interface {
	Insert(order *models.Order) error
	GetByID(id uint) (*models.Order, error)
	GetByOrderNumber(number string) (*models.Order, error)
	GetByUserID(userID uint, offset, limit int) ([]models.Order, error)
	ListByStatus(status string, offset, limit int) ([]models.Order, error)
	FindBySubscriptionAndDate(subscriptionID uint, date time.Time) (*models.Order, error)
	NextOrderNumber(year int) (int, error)
	Update(order *models.Order) error
	Count() (int64, error)
}

// SubscriptionRepository defines the interface for subscription records
type SubscriptionRepository interface {
	Create(sub *models.Subscription) error
	GetByID(id uint) (*models.Subscription, error)
	GetByUUID(uuid string) (*models.Subscription, error)
	GetByUserID(userID uint) ([]models.Subscription, error)
	GetByStatus(statuses ...string) ([]models.Subscription, error)
	Update(sub *models.Subscription) error
	Count() (int64, error)
}

// Repositories struct holds all repository instances
type Repositories struct {
	User         UserRepository
	Address      AddressRepository
	Product      ProductRepository
	Cart         CartRepository
	Order        OrderRepository
	Subscription SubscriptionRepository
}

// NewRepositories creates a new instance of all repositories
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		User:         NewUserRepository(db),
		Address:      NewAddressRepository(db),
		Product:      NewProductRepository(db),
		Cart:         NewCartRepository(db),
		Order:        NewOrderRepository(db),
		Subscription: NewSubscriptionRepository(db),
	}
}
