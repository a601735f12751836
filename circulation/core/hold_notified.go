package core

import (
	"time"
)

// HoldNotifiedEventType is the event type identifier.
const HoldNotifiedEventType = "HoldNotified"

// HoldNotified represents when the requester of a hold has been notified.
type HoldNotified struct {
	HoldID     HoldIDString
	UserID     UserIDString
	ItemID     ItemIDString
	OccurredAt OccurredAt
}

// BuildHoldNotified creates a new HoldNotified event.
func BuildHoldNotified(
	holdID HoldIDString,
	userID UserIDString,
	itemID ItemIDString,
	occurredAt time.Time,
) HoldNotified {

	return HoldNotified{
		HoldID:     holdID,
		UserID:     userID,
		ItemID:     itemID,
		OccurredAt: ToOccurredAt(occurredAt),
	}
}

// IsEventType returns the event type identifier.
func (e HoldNotified) IsEventType() string {
	return HoldNotifiedEventType
}

// HasOccurredAt returns when this event occurred.
func (e HoldNotified) HasOccurredAt() time.Time {
	return e.OccurredAt
}

// IsErrorEvent returns false since this event represents a successful operation.
func (e HoldNotified) IsErrorEvent() bool {
	return false
}
