package core

import (
	"time"
)

// LoanRenewalDeniedEventType is the event type identifier.
const LoanRenewalDeniedEventType = "LoanRenewalDenied"

// LoanRenewalDenied represents when renewing a loan is denied by the renewal rules.
type LoanRenewalDenied struct {
	LoanID     LoanIDString
	UserID     UserIDString
	ItemID     ItemIDString
	Reason     string
	OccurredAt OccurredAt
}

// BuildLoanRenewalDenied creates a new LoanRenewalDenied event.
func BuildLoanRenewalDenied(
	loanID LoanIDString,
	userID UserIDString,
	itemID ItemIDString,
	reason string,
	occurredAt time.Time,
) LoanRenewalDenied {

	return LoanRenewalDenied{
		LoanID:     loanID,
		UserID:     userID,
		ItemID:     itemID,
		Reason:     reason,
		OccurredAt: ToOccurredAt(occurredAt),
	}
}

// IsEventType returns the event type identifier.
func (e LoanRenewalDenied) IsEventType() string {
	return LoanRenewalDeniedEventType
}

// HasOccurredAt returns when this event occurred.
func (e LoanRenewalDenied) HasOccurredAt() time.Time {
	return e.OccurredAt
}

// IsErrorEvent returns true since the request was rejected by a business rule.
func (e LoanRenewalDenied) IsErrorEvent() bool {
	return true
}
