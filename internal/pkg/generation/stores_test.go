package generation

import (
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/padhisneha/vedida-ecommerce-sub000/app/models"
)

// In-memory fakes for the engine's store interfaces. The order store
// reproduces the unique-index semantics of the real schema: a second
// insert for the same (subscription, date) pair fails with
// gorm.ErrDuplicatedKey.

type fakeSubscriptionStore struct {
	mu      sync.Mutex
	subs    map[uint]models.Subscription
	failGet bool
}

func newFakeSubscriptionStore(subs ...models.Subscription) *fakeSubscriptionStore {
	s := &fakeSubscriptionStore{subs: make(map[uint]models.Subscription)}
	for _, sub := range subs {
		s.subs[sub.ID] = sub
	}
	return s
}

func (s *fakeSubscriptionStore) GetByStatus(statuses ...string) ([]models.Subscription, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failGet {
		return nil, fmt.Errorf("subscription store unavailable")
	}
	var out []models.Subscription
	for _, sub := range s.subs {
		for _, status := range statuses {
			if sub.Status == status {
				out = append(out, sub)
				break
			}
		}
	}
	return out, nil
}

func (s *fakeSubscriptionStore) Update(sub *models.Subscription) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subs[sub.ID] = *sub
	return nil
}

func (s *fakeSubscriptionStore) get(id uint) models.Subscription {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.subs[id]
}

type fakeOrderStore struct {
	mu         sync.Mutex
	orders     map[string]*models.Order
	counters   map[int]int
	nextID     uint
	hideOnFind bool
}

func newFakeOrderStore() *fakeOrderStore {
	return &fakeOrderStore{
		orders:   make(map[string]*models.Order),
		counters: make(map[int]int),
	}
}

func orderKey(subscriptionID uint, date time.Time) string {
	return fmt.Sprintf("%d|%s", subscriptionID, date.Format("2006-01-02"))
}

func (s *fakeOrderStore) Insert(order *models.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := orderKey(*order.SubscriptionID, order.ScheduledDeliveryDate)
	if _, exists := s.orders[key]; exists {
		return gorm.ErrDuplicatedKey
	}
	s.nextID++
	order.ID = s.nextID
	stored := *order
	s.orders[key] = &stored
	return nil
}

func (s *fakeOrderStore) FindBySubscriptionAndDate(subscriptionID uint, date time.Time) (*models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.hideOnFind {
		return nil, gorm.ErrRecordNotFound
	}
	order, ok := s.orders[orderKey(subscriptionID, date)]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	found := *order
	return &found, nil
}

func (s *fakeOrderStore) NextOrderNumber(year int) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.counters[year]++
	return s.counters[year], nil
}

func (s *fakeOrderStore) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.orders)
}

func (s *fakeOrderStore) all() []models.Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Order
	for _, order := range s.orders {
		out = append(out, *order)
	}
	return out
}

type fakeProductStore struct {
	mu       sync.Mutex
	products map[uint]models.Product
	// blockCh, when set, stalls GetByID until the channel is closed.
	blockCh chan struct{}
}

func newFakeProductStore(products ...models.Product) *fakeProductStore {
	s := &fakeProductStore{products: make(map[uint]models.Product)}
	for _, p := range products {
		s.products[p.ID] = p
	}
	return s
}

func (s *fakeProductStore) GetByID(id uint) (*models.Product, error) {
	if s.blockCh != nil {
		<-s.blockCh
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	product, ok := s.products[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &product, nil
}

func (s *fakeProductStore) set(p models.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products[p.ID] = p
}

// Shared fixtures

func date(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func datePtr(s string) *time.Time {
	d := date(s)
	return &d
}

func milkProduct(id uint) models.Product {
	return models.Product{
		ID:                id,
		Name:              fmt.Sprintf("Toned Milk %d", id),
		Unit:              "500ml",
		Price:             decimal.RequireFromString("118"),
		PriceExcludingTax: decimal.RequireFromString("100"),
		TaxCGSTPercent:    decimal.RequireFromString("9"),
		TaxSGSTPercent:    decimal.RequireFromString("9"),
		InStock:           true,
		AllowSubscription: true,
	}
}

func dailySubscription(id, userID, productID uint, start string) models.Subscription {
	return models.Subscription{
		ID:        id,
		UserID:    userID,
		Frequency: models.FrequencyDaily,
		Status:    models.SubscriptionStatusActive,
		StartDate: date(start),
		Items: []models.SubscriptionItem{
			{SubscriptionID: id, ProductID: productID, Quantity: 2},
		},
		DeliveryAddress: models.AddressSnapshot{
			Line1:      "12 Dairy Lane",
			City:       "Pune",
			State:      "Maharashtra",
			PostalCode: "411001",
		},
	}
}
