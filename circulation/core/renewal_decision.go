package core

import (
	"time"
)

// RenewalDecision represents the outcome of a renewal request.
// A denied renewal is an expected business outcome, not an error.
//
// IMPORTANT: RenewalDecision should only be constructed using the provided factory methods:
// RenewalGranted(newDue) or RenewalDenied(reason).
type RenewalDecision struct {
	Outcome string    // "granted" or "denied"
	NewDue  time.Time // zero for denied decisions
	Reason  string    // empty for granted decisions
}

const (
	grantedOutcome = "granted"
	deniedOutcome  = "denied"
)

const (
	DenialReasonLoanNotActive     = "item already returned"
	DenialReasonDifferentBorrower = "different borrower"
	DenialReasonMaxRenewals       = "reached max renewals"
	DenialReasonOverdue           = "loan is overdue"
	DenialReasonConflictingHold   = "another patron has an active hold"
)

// RenewalGranted creates a RenewalDecision carrying the new due date.
func RenewalGranted(newDue time.Time) RenewalDecision {
	return RenewalDecision{
		Outcome: grantedOutcome,
		NewDue:  newDue,
	}
}

// RenewalDenied creates a RenewalDecision carrying the reason for the denial.
func RenewalDenied(reason string) RenewalDecision {
	return RenewalDecision{
		Outcome: deniedOutcome,
		Reason:  reason,
	}
}

// IsGranted returns true if the loan was renewed.
func (d RenewalDecision) IsGranted() bool {
	return d.Outcome == grantedOutcome
}
