package core

import (
	"time"
)

// LoanRenewedEventType is the event type identifier.
const LoanRenewedEventType = "LoanRenewed"

// LoanRenewed represents when a loan is renewed.
type LoanRenewed struct {
	LoanID     LoanIDString
	UserID     UserIDString
	ItemID     ItemIDString
	NewDueOn   time.Time
	Renewals   int
	OccurredAt OccurredAt
}

// BuildLoanRenewed creates a new LoanRenewed event.
func BuildLoanRenewed(
	loanID LoanIDString,
	userID UserIDString,
	itemID ItemIDString,
	newDueOn time.Time,
	renewals int,
	occurredAt time.Time,
) LoanRenewed {

	return LoanRenewed{
		LoanID:     loanID,
		UserID:     userID,
		ItemID:     itemID,
		NewDueOn:   ToDate(newDueOn),
		Renewals:   renewals,
		OccurredAt: ToOccurredAt(occurredAt),
	}
}

// IsEventType returns the event type identifier.
func (e LoanRenewed) IsEventType() string {
	return LoanRenewedEventType
}

// HasOccurredAt returns when this event occurred.
func (e LoanRenewed) HasOccurredAt() time.Time {
	return e.OccurredAt
}

// IsErrorEvent returns false since this event represents a successful operation.
func (e LoanRenewed) IsErrorEvent() bool {
	return false
}
