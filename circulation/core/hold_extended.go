package core

import (
	"time"
)

// HoldExtendedEventType is the event type identifier.
const HoldExtendedEventType = "HoldExtended"

// HoldExtended represents when the expiry of an active hold is moved forward.
type HoldExtended struct {
	HoldID     HoldIDString
	UserID     UserIDString
	ItemID     ItemIDString
	ExpiresOn  time.Time
	OccurredAt OccurredAt
}

// BuildHoldExtended creates a new HoldExtended event.
func BuildHoldExtended(
	holdID HoldIDString,
	userID UserIDString,
	itemID ItemIDString,
	expiresOn time.Time,
	occurredAt time.Time,
) HoldExtended {

	return HoldExtended{
		HoldID:     holdID,
		UserID:     userID,
		ItemID:     itemID,
		ExpiresOn:  ToDate(expiresOn),
		OccurredAt: ToOccurredAt(occurredAt),
	}
}

// IsEventType returns the event type identifier.
func (e HoldExtended) IsEventType() string {
	return HoldExtendedEventType
}

// HasOccurredAt returns when this event occurred.
func (e HoldExtended) HasOccurredAt() time.Time {
	return e.OccurredAt
}

// IsErrorEvent returns false since this event represents a successful operation.
func (e HoldExtended) IsErrorEvent() bool {
	return false
}
