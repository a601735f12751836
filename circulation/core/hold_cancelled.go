package core

import (
	"time"
)

// HoldCancelledEventType is the event type identifier.
const HoldCancelledEventType = "HoldCancelled"

// HoldCancelled represents when a hold is cancelled.
type HoldCancelled struct {
	HoldID     HoldIDString
	UserID     UserIDString
	ItemID     ItemIDString
	OccurredAt OccurredAt
}

// BuildHoldCancelled creates a new HoldCancelled event.
func BuildHoldCancelled(
	holdID HoldIDString,
	userID UserIDString,
	itemID ItemIDString,
	occurredAt time.Time,
) HoldCancelled {

	return HoldCancelled{
		HoldID:     holdID,
		UserID:     userID,
		ItemID:     itemID,
		OccurredAt: ToOccurredAt(occurredAt),
	}
}

// IsEventType returns the event type identifier.
func (e HoldCancelled) IsEventType() string {
	return HoldCancelledEventType
}

// HasOccurredAt returns when this event occurred.
func (e HoldCancelled) HasOccurredAt() time.Time {
	return e.OccurredAt
}

// IsErrorEvent returns false since this event represents a successful operation.
func (e HoldCancelled) IsErrorEvent() bool {
	return false
}
