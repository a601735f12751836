package core

import (
	"time"
)

// ItemCheckedOutEventType is the event type identifier.
const ItemCheckedOutEventType = "ItemCheckedOut"

// ItemCheckedOut represents when an item is checked out to a user.
type ItemCheckedOut struct {
	LoanID       LoanIDString
	UserID       UserIDString
	ItemID       ItemIDString
	ItemType     string
	CheckedOutOn time.Time
	DueOn        time.Time
	OccurredAt   OccurredAt
}

// BuildItemCheckedOut creates a new ItemCheckedOut event.
func BuildItemCheckedOut(
	loanID LoanIDString,
	userID UserIDString,
	itemID ItemIDString,
	itemType string,
	checkedOutOn time.Time,
	dueOn time.Time,
	occurredAt time.Time,
) ItemCheckedOut {

	return ItemCheckedOut{
		LoanID:       loanID,
		UserID:       userID,
		ItemID:       itemID,
		ItemType:     itemType,
		CheckedOutOn: ToDate(checkedOutOn),
		DueOn:        ToDate(dueOn),
		OccurredAt:   ToOccurredAt(occurredAt),
	}
}

// IsEventType returns the event type identifier.
func (e ItemCheckedOut) IsEventType() string {
	return ItemCheckedOutEventType
}

// HasOccurredAt returns when this event occurred.
func (e ItemCheckedOut) HasOccurredAt() time.Time {
	return e.OccurredAt
}

// IsErrorEvent returns false since this event represents a successful operation.
func (e ItemCheckedOut) IsErrorEvent() bool {
	return false
}
