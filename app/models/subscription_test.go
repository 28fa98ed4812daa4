package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func activeSubscription() *Subscription {
	return &Subscription{
		ID:        1,
		UserID:    1,
		Frequency: FrequencyDaily,
		Status:    SubscriptionStatusActive,
		StartDate: day("2024-01-01"),
		Items:     []SubscriptionItem{{ProductID: 1, Quantity: 1}},
	}
}

func TestSubscriptionLegalTransitions(t *testing.T) {
	tests := []struct {
		from string
		to   string
	}{
		{SubscriptionStatusPending, SubscriptionStatusActive},
		{SubscriptionStatusPending, SubscriptionStatusCancelled},
		{SubscriptionStatusActive, SubscriptionStatusPaused},
		{SubscriptionStatusActive, SubscriptionStatusCompleted},
		{SubscriptionStatusActive, SubscriptionStatusCancelled},
		{SubscriptionStatusPaused, SubscriptionStatusActive},
		{SubscriptionStatusPaused, SubscriptionStatusCancelled},
	}

	for _, tt := range tests {
		sub := activeSubscription()
		sub.Status = tt.from
		assert.True(t, sub.CanTransitionTo(tt.to), "%s -> %s must be legal", tt.from, tt.to)
		assert.NoError(t, sub.TransitionTo(tt.to))
		assert.Equal(t, tt.to, sub.Status)
	}
}

func TestSubscriptionIllegalTransitions(t *testing.T) {
	tests := []struct {
		from string
		to   string
	}{
		{SubscriptionStatusPending, SubscriptionStatusPaused},
		{SubscriptionStatusPending, SubscriptionStatusCompleted},
		{SubscriptionStatusPaused, SubscriptionStatusCompleted},
		{SubscriptionStatusCompleted, SubscriptionStatusActive},
		{SubscriptionStatusCancelled, SubscriptionStatusActive},
		{SubscriptionStatusCancelled, SubscriptionStatusPaused},
	}

	for _, tt := range tests {
		sub := activeSubscription()
		sub.Status = tt.from
		err := sub.TransitionTo(tt.to)
		assert.ErrorIs(t, err, ErrInvalidTransition, "%s -> %s must be rejected", tt.from, tt.to)
		assert.Equal(t, tt.from, sub.Status, "status untouched after rejected transition")
	}
}

func TestSubscriptionPauseRequiresDateAfterTomorrow(t *testing.T) {
	today := day("2024-02-01")

	sub := activeSubscription()
	assert.Error(t, sub.Pause(day("2024-02-01"), today), "pausing until today must fail")
	assert.Error(t, sub.Pause(day("2024-02-02"), today), "pause cannot touch tomorrow's delivery")
	assert.Equal(t, SubscriptionStatusActive, sub.Status)

	require.NoError(t, sub.Pause(day("2024-02-03"), today))
	assert.Equal(t, SubscriptionStatusPaused, sub.Status)
	require.NotNil(t, sub.PausedUntil)
	assert.True(t, sub.PausedUntil.Equal(day("2024-02-03")))
}

func TestSubscriptionResumeClearsPausedUntil(t *testing.T) {
	sub := activeSubscription()
	require.NoError(t, sub.Pause(day("2024-02-10"), day("2024-02-01")))

	require.NoError(t, sub.Resume())
	assert.Equal(t, SubscriptionStatusActive, sub.Status)
	assert.Nil(t, sub.PausedUntil, "pausedUntil is set iff status is PAUSED")
}

func TestSubscriptionResumeRejectedOutsidePaused(t *testing.T) {
	for _, status := range []string{
		SubscriptionStatusPending,
		SubscriptionStatusActive,
		SubscriptionStatusCompleted,
		SubscriptionStatusCancelled,
	} {
		sub := activeSubscription()
		sub.Status = status
		assert.ErrorIs(t, sub.Resume(), ErrInvalidTransition, "resume from %s", status)
	}
}

func TestSubscriptionAccept(t *testing.T) {
	sub := activeSubscription()
	sub.Status = SubscriptionStatusPending
	require.NoError(t, sub.Accept())
	assert.Equal(t, SubscriptionStatusActive, sub.Status)

	assert.ErrorIs(t, sub.Accept(), ErrInvalidTransition, "accepting twice")
}

func TestSubscriptionCompleteOnlyFromActive(t *testing.T) {
	sub := activeSubscription()
	require.NoError(t, sub.Complete())
	assert.Equal(t, SubscriptionStatusCompleted, sub.Status)

	paused := activeSubscription()
	paused.Status = SubscriptionStatusPaused
	assert.ErrorIs(t, paused.Complete(), ErrInvalidTransition)
}

func TestSubscriptionValidate(t *testing.T) {
	sub := activeSubscription()
	assert.NoError(t, sub.Validate())

	noItems := activeSubscription()
	noItems.Items = nil
	assert.ErrorIs(t, noItems.Validate(), ErrEmptyItems)

	badQty := activeSubscription()
	badQty.Items = []SubscriptionItem{{ProductID: 1, Quantity: 0}}
	assert.Error(t, badQty.Validate())

	badFreq := activeSubscription()
	badFreq.Frequency = "FORTNIGHTLY"
	assert.Error(t, badFreq.Validate())

	inverted := activeSubscription()
	end := day("2023-12-01")
	inverted.EndDate = &end
	assert.Error(t, inverted.Validate())
}
