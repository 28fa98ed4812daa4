package generation

import (
	"errors"
	"time"

	"github.com/padhisneha/vedida-ecommerce-sub000/app/models"
)

// ErrProductUnavailable marks a per-subscription failure caused by a
// referenced product being missing, out of stock, or no longer
// subscribable. Recoverable on a later run once stock returns.
var ErrProductUnavailable = errors.New("generation: product unavailable")

// SubscriptionStore is the subscription access the engine consumes.
// Satisfied by repository.SubscriptionRepository.
type SubscriptionStore interface {
	GetByStatus(statuses ...string) ([]models.Subscription, error)
	Update(sub *models.Subscription) error
}

// OrderStore is the order access the engine consumes. Satisfied by
// repository.OrderRepository.
type OrderStore interface {
	Insert(order *models.Order) error
	FindBySubscriptionAndDate(subscriptionID uint, date time.Time) (*models.Order, error)
	NextOrderNumber(year int) (int, error)
}

// ProductStore is the catalog access the engine consumes. Satisfied by
// repository.ProductRepository.
type ProductStore interface {
	GetByID(id uint) (*models.Product, error)
}

// OutcomeKind classifies one subscription's materialization result.
type OutcomeKind int

const (
	// OutcomeCreated means exactly one new order was inserted.
	OutcomeCreated OutcomeKind = iota
	// OutcomeAlreadyExists means an order for this subscription and date
	// was already present. An informational skip, not a failure.
	OutcomeAlreadyExists
	// OutcomeFailed means no order was written for this subscription.
	OutcomeFailed
)

// Outcome is the result of materializing one subscription for one date.
type Outcome struct {
	Kind        OutcomeKind
	OrderID     uint
	OrderNumber string
	Reason      string
	Err         error
}

// RunError records why one subscription produced no order in a run.
type RunError struct {
	SubscriptionID uint   `json:"subscription_id"`
	Reason         string `json:"reason"`
}

// RunReport is what the operator sees after a generation run: aggregate
// counts plus the per-subscription failure reasons.
type RunReport struct {
	Date    string     `json:"date"`
	Created int        `json:"created"`
	Skipped int        `json:"skipped"`
	Errors  []RunError `json:"errors"`
	RanAt   time.Time  `json:"ran_at"`
}

// DateOnly normalizes a timestamp to its midnight-aligned UTC calendar
// date. Every due-date and pause comparison in the engine runs on these
// values so DST and timezone drift cannot produce off-by-one selection.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// daysBetween returns the whole-day difference between two
// midnight-aligned dates.
func daysBetween(from, to time.Time) int {
	return int(to.Sub(from).Hours() / 24)
}
