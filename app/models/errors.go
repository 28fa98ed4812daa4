package models

import "errors"

var (
	// ErrInvalidTransition is returned when a state machine is asked to
	// perform an edge that is not part of its transition table.
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrNegativeAmount rejects negative prices, quantities or tax rates.
	ErrNegativeAmount = errors.New("amount must not be negative")

	// ErrEmptyItems rejects subscriptions and orders without line items.
	ErrEmptyItems = errors.New("items must not be empty")
)
