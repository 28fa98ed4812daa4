package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	FrequencyDaily         = "DAILY"
	FrequencyAlternateDays = "ALTERNATE_DAYS"
	FrequencyWeekly        = "WEEKLY"
)

const (
	SubscriptionStatusPending   = "PENDING"
	SubscriptionStatusActive    = "ACTIVE"
	SubscriptionStatusPaused    = "PAUSED"
	SubscriptionStatusCompleted = "COMPLETED"
	SubscriptionStatusCancelled = "CANCELLED"
)

// subscriptionTransitions is the transition table of the subscription
// lifecycle. COMPLETED and CANCELLED are terminal.
var subscriptionTransitions = map[string][]string{
	SubscriptionStatusPending:   {SubscriptionStatusActive, SubscriptionStatusCancelled},
	SubscriptionStatusActive:    {SubscriptionStatusPaused, SubscriptionStatusCompleted, SubscriptionStatusCancelled},
	SubscriptionStatusPaused:    {SubscriptionStatusActive, SubscriptionStatusCancelled},
	SubscriptionStatusCompleted: {},
	SubscriptionStatusCancelled: {},
}

// Subscription is a recurring order template: what to deliver, how often,
// and in which date window. Item quantities are per delivery. The
// delivery address is a snapshot taken at creation time.
type Subscription struct {
	ID              uint               `gorm:"primaryKey" json:"id"`
	UUID            string             `gorm:"type:char(36);uniqueIndex;not null" json:"uuid"`
	UserID          uint               `gorm:"not null;index" json:"user_id"`
	Frequency       string             `gorm:"type:varchar(20);not null" json:"frequency"`
	Status          string             `gorm:"type:varchar(20);not null;default:'PENDING';index" json:"status"`
	Items           []SubscriptionItem `gorm:"foreignKey:SubscriptionID;constraint:OnDelete:CASCADE" json:"items"`
	StartDate       time.Time          `gorm:"type:date;not null" json:"start_date"`
	EndDate         *time.Time         `gorm:"type:date;default:null" json:"end_date,omitempty"`
	PausedUntil     *time.Time         `gorm:"type:date;default:null" json:"paused_until,omitempty"`
	DeliveryAddress AddressSnapshot    `gorm:"embedded" json:"delivery_address"`
	CreatedAt       time.Time          `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time          `gorm:"autoUpdateTime" json:"updated_at"`
}

type SubscriptionItem struct {
	ID             uint `gorm:"primaryKey" json:"id"`
	SubscriptionID uint `gorm:"not null;index" json:"subscription_id"`
	ProductID      uint `gorm:"not null;index" json:"product_id"`
	Quantity       int  `gorm:"not null;default:1" json:"quantity"`
}

// BeforeCreate assigns a public UUID before the first insert
func (s *Subscription) BeforeCreate(tx *gorm.DB) error {
	if s.UUID == "" {
		s.UUID = uuid.New().String()
	}
	return nil
}

// ValidFrequency reports whether the given frequency is one of the
// supported delivery cadences.
func ValidFrequency(frequency string) bool {
	switch frequency {
	case FrequencyDaily, FrequencyAlternateDays, FrequencyWeekly:
		return true
	}
	return false
}

// Validate checks structural invariants: known frequency, non-empty
// items with positive quantities, and start before end when both are set.
func (s *Subscription) Validate() error {
	if !ValidFrequency(s.Frequency) {
		return fmt.Errorf("unknown frequency %q", s.Frequency)
	}
	if len(s.Items) == 0 {
		return ErrEmptyItems
	}
	for _, item := range s.Items {
		if item.Quantity < 1 {
			return fmt.Errorf("product %d: quantity must be at least 1", item.ProductID)
		}
	}
	if s.EndDate != nil && s.EndDate.Before(s.StartDate) {
		return fmt.Errorf("end date %s is before start date %s",
			s.EndDate.Format("2006-01-02"), s.StartDate.Format("2006-01-02"))
	}
	return nil
}

// CanTransitionTo reports whether the subscription may move to the given
// status.
func (s *Subscription) CanTransitionTo(status string) bool {
	for _, next := range subscriptionTransitions[s.Status] {
		if next == status {
			return true
		}
	}
	return false
}

// TransitionTo moves the subscription to the given status or fails with
// ErrInvalidTransition. PausedUntil is kept consistent with the status:
// it is set iff the subscription is PAUSED.
func (s *Subscription) TransitionTo(status string) error {
	if !s.CanTransitionTo(status) {
		return fmt.Errorf("%w: subscription %s -> %s", ErrInvalidTransition, s.Status, status)
	}
	s.Status = status
	if status != SubscriptionStatusPaused {
		s.PausedUntil = nil
	}
	return nil
}

// Accept activates a pending subscription (admin acceptance).
func (s *Subscription) Accept() error {
	if s.Status != SubscriptionStatusPending {
		return fmt.Errorf("%w: subscription %s -> %s", ErrInvalidTransition, s.Status, SubscriptionStatusActive)
	}
	return s.TransitionTo(SubscriptionStatusActive)
}

// Pause suspends deliveries until the given resume date. A pause can
// never retroactively affect today's delivery, so the resume date must be
// strictly after tomorrow relative to the request date.
func (s *Subscription) Pause(until time.Time, today time.Time) error {
	if !s.CanTransitionTo(SubscriptionStatusPaused) {
		return fmt.Errorf("%w: subscription %s -> %s", ErrInvalidTransition, s.Status, SubscriptionStatusPaused)
	}
	tomorrow := today.AddDate(0, 0, 1)
	if !until.After(tomorrow) {
		return fmt.Errorf("pause until %s must be after %s",
			until.Format("2006-01-02"), tomorrow.Format("2006-01-02"))
	}
	s.Status = SubscriptionStatusPaused
	s.PausedUntil = &until
	return nil
}

// Resume reactivates a paused subscription and clears the pause window.
// Used both for manual resume and the orchestrator's auto-resume.
func (s *Subscription) Resume() error {
	if s.Status != SubscriptionStatusPaused {
		return fmt.Errorf("%w: subscription %s -> %s", ErrInvalidTransition, s.Status, SubscriptionStatusActive)
	}
	return s.TransitionTo(SubscriptionStatusActive)
}

// Cancel terminates the subscription. Irreversible.
func (s *Subscription) Cancel() error {
	return s.TransitionTo(SubscriptionStatusCancelled)
}

// Complete marks an active subscription as finished. Only the generation
// run fires this, on the subscription's end date.
func (s *Subscription) Complete() error {
	if s.Status != SubscriptionStatusActive {
		return fmt.Errorf("%w: subscription %s -> %s", ErrInvalidTransition, s.Status, SubscriptionStatusCompleted)
	}
	return s.TransitionTo(SubscriptionStatusCompleted)
}

// IsTerminal reports whether the subscription reached a final status
func (s *Subscription) IsTerminal() bool {
	return s.Status == SubscriptionStatusCompleted || s.Status == SubscriptionStatusCancelled
}
