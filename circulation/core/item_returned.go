package core

import (
	"time"
)

// ItemReturnedEventType is the event type identifier.
const ItemReturnedEventType = "ItemReturned"

// ItemReturned represents when a checked out item is returned, including the assessed fine.
type ItemReturned struct {
	LoanID     LoanIDString
	UserID     UserIDString
	ItemID     ItemIDString
	ReturnedOn time.Time
	DaysLate   int
	Fine       float64
	OccurredAt OccurredAt
}

// BuildItemReturned creates a new ItemReturned event.
func BuildItemReturned(
	loanID LoanIDString,
	userID UserIDString,
	itemID ItemIDString,
	returnedOn time.Time,
	daysLate int,
	fine float64,
	occurredAt time.Time,
) ItemReturned {

	return ItemReturned{
		LoanID:     loanID,
		UserID:     userID,
		ItemID:     itemID,
		ReturnedOn: ToDate(returnedOn),
		DaysLate:   daysLate,
		Fine:       fine,
		OccurredAt: ToOccurredAt(occurredAt),
	}
}

// IsEventType returns the event type identifier.
func (e ItemReturned) IsEventType() string {
	return ItemReturnedEventType
}

// HasOccurredAt returns when this event occurred.
func (e ItemReturned) HasOccurredAt() time.Time {
	return e.OccurredAt
}

// IsErrorEvent returns false since this event represents a successful operation.
func (e ItemReturned) IsErrorEvent() bool {
	return false
}
