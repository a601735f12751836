package core

import (
	"time"
)

// HoldPlacedEventType is the event type identifier.
const HoldPlacedEventType = "HoldPlaced"

// HoldPlaced represents when a user places a hold on an item.
type HoldPlaced struct {
	HoldID     HoldIDString
	UserID     UserIDString
	ItemID     ItemIDString
	ExpiresOn  time.Time
	OccurredAt OccurredAt
}

// BuildHoldPlaced creates a new HoldPlaced event.
func BuildHoldPlaced(
	holdID HoldIDString,
	userID UserIDString,
	itemID ItemIDString,
	expiresOn time.Time,
	occurredAt time.Time,
) HoldPlaced {

	return HoldPlaced{
		HoldID:     holdID,
		UserID:     userID,
		ItemID:     itemID,
		ExpiresOn:  ToDate(expiresOn),
		OccurredAt: ToOccurredAt(occurredAt),
	}
}

// IsEventType returns the event type identifier.
func (e HoldPlaced) IsEventType() string {
	return HoldPlacedEventType
}

// HasOccurredAt returns when this event occurred.
func (e HoldPlaced) HasOccurredAt() time.Time {
	return e.OccurredAt
}

// IsErrorEvent returns false since this event represents a successful operation.
func (e HoldPlaced) IsErrorEvent() bool {
	return false
}
