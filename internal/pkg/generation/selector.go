package generation

import (
	"github.com/padhisneha/vedida-ecommerce-sub000/app/models"
	"time"
)

// IsDueOn reports whether a single subscription requires a delivery on
// the given reference date. Only ACTIVE subscriptions can be due; a
// PAUSED subscription whose window has lapsed must be resumed first
// (the orchestrator does that before selection).
//
// The window is inclusive on both ends: the first delivery happens on
// the start date itself, and the end date still gets its final delivery.
func IsDueOn(sub *models.Subscription, referenceDate time.Time) bool {
	if sub.Status != models.SubscriptionStatusActive {
		return false
	}

	ref := DateOnly(referenceDate)
	start := DateOnly(sub.StartDate)
	if ref.Before(start) {
		return false
	}
	if sub.EndDate != nil && ref.After(DateOnly(*sub.EndDate)) {
		return false
	}

	diff := daysBetween(start, ref)
	switch sub.Frequency {
	case models.FrequencyDaily:
		return true
	case models.FrequencyAlternateDays:
		return diff%2 == 0
	case models.FrequencyWeekly:
		return diff%7 == 0
	}
	return false
}

// SelectDue filters the given subscriptions down to those that require a
// delivery on the reference date. Pure; performs no status transitions
// and no I/O.
func SelectDue(referenceDate time.Time, subs []models.Subscription) []models.Subscription {
	var due []models.Subscription
	for _, sub := range subs {
		if IsDueOn(&sub, referenceDate) {
			due = append(due, sub)
		}
	}
	return due
}
