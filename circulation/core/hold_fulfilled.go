package core

import (
	"time"
)

// HoldFulfilledEventType is the event type identifier.
const HoldFulfilledEventType = "HoldFulfilled"

// HoldFulfilled represents when a hold is fulfilled by checking the item out to its requester.
type HoldFulfilled struct {
	HoldID     HoldIDString
	UserID     UserIDString
	ItemID     ItemIDString
	LoanID     LoanIDString
	OccurredAt OccurredAt
}

// BuildHoldFulfilled creates a new HoldFulfilled event.
func BuildHoldFulfilled(
	holdID HoldIDString,
	userID UserIDString,
	itemID ItemIDString,
	loanID LoanIDString,
	occurredAt time.Time,
) HoldFulfilled {

	return HoldFulfilled{
		HoldID:     holdID,
		UserID:     userID,
		ItemID:     itemID,
		LoanID:     loanID,
		OccurredAt: ToOccurredAt(occurredAt),
	}
}

// IsEventType returns the event type identifier.
func (e HoldFulfilled) IsEventType() string {
	return HoldFulfilledEventType
}

// HasOccurredAt returns when this event occurred.
func (e HoldFulfilled) HasOccurredAt() time.Time {
	return e.OccurredAt
}

// IsErrorEvent returns false since this event represents a successful operation.
func (e HoldFulfilled) IsErrorEvent() bool {
	return false
}
