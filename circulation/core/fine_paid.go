package core

import (
	"time"
)

// FinePaidEventType is the event type identifier.
const FinePaidEventType = "FinePaid"

// FinePaid represents when a user pays down outstanding fines.
type FinePaid struct {
	UserID           UserIDString
	Amount           float64
	RemainingBalance float64
	OccurredAt       OccurredAt
}

// BuildFinePaid creates a new FinePaid event.
func BuildFinePaid(
	userID UserIDString,
	amount float64,
	remainingBalance float64,
	occurredAt time.Time,
) FinePaid {

	return FinePaid{
		UserID:           userID,
		Amount:           amount,
		RemainingBalance: remainingBalance,
		OccurredAt:       ToOccurredAt(occurredAt),
	}
}

// IsEventType returns the event type identifier.
func (e FinePaid) IsEventType() string {
	return FinePaidEventType
}

// HasOccurredAt returns when this event occurred.
func (e FinePaid) HasOccurredAt() time.Time {
	return e.OccurredAt
}

// IsErrorEvent returns false since this event represents a successful operation.
func (e FinePaid) IsErrorEvent() bool {
	return false
}
