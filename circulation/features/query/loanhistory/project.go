package loanhistory

import (
	"math"

	"github.com/AntonStoeckl/library-circulation-go/circulation/core"
	"github.com/AntonStoeckl/library-circulation-go/eventstore"
)

// Project implements the query logic to build the loan history of a user.
// This is a pure function with no side effects - it takes the domain events and a query
// and returns the projected history of the specified user.
//
// Query Logic:
//
//	GIVEN: A user with UserID
//	WHEN: LoanHistory query is executed
//	THEN: LoanHistory is returned with one entry per checkout, oldest first
//	INCLUDES: renewals (granted and denied), returns with fines, fine payments
//	IGNORES: events of other users
func Project(history core.DomainEvents, query Query) LoanHistory {
	entries := make([]LoanEntry, 0)
	positions := make(map[core.LoanIDString]int)

	result := LoanHistory{UserID: query.UserID}
	balance := 0.0

	for _, event := range history {
		switch e := event.(type) {
		case core.ItemCheckedOut:
			if e.UserID != query.UserID {
				continue
			}

			positions[e.LoanID] = len(entries)
			entries = append(entries, LoanEntry{
				LoanID:       e.LoanID,
				ItemID:       e.ItemID,
				ItemType:     e.ItemType,
				CheckedOutOn: e.CheckedOutOn,
				DueOn:        e.DueOn,
			})

		case core.LoanRenewed:
			if pos, ok := positions[e.LoanID]; ok && e.UserID == query.UserID {
				entries[pos].DueOn = e.NewDueOn
				entries[pos].Renewals = e.Renewals
			}

		case core.LoanRenewalDenied:
			if pos, ok := positions[e.LoanID]; ok && e.UserID == query.UserID {
				entries[pos].DeniedRenewals++
			}

		case core.ItemReturned:
			if pos, ok := positions[e.LoanID]; ok && e.UserID == query.UserID {
				entries[pos].ReturnedOn = e.ReturnedOn
				entries[pos].DaysLate = e.DaysLate
				entries[pos].Fine = e.Fine
				result.FinesAssessed += e.Fine
				balance += e.Fine
			}

		case core.FinePaid:
			if e.UserID == query.UserID {
				// overpayments are not credited, RemainingBalance is authoritative
				result.FinesPaid += balance - e.RemainingBalance
				balance = e.RemainingBalance
			}
		}
	}

	for _, entry := range entries {
		if entry.IsActive() {
			result.ActiveCount++
		}
	}

	result.Loans = entries
	result.FinesAssessed = roundCents(result.FinesAssessed)
	result.FinesPaid = roundCents(result.FinesPaid)
	result.OutstandingFines = math.Max(0, roundCents(balance))

	return result
}

// BuildEventFilter creates the filter for querying events related to the specified user.
func BuildEventFilter(userID core.UserIDString) eventstore.Filter {
	return eventstore.BuildEventFilter().
		Matching().
		AnyEventTypeOf(
			core.ItemCheckedOutEventType,
			core.LoanRenewedEventType,
			core.LoanRenewalDeniedEventType,
			core.ItemReturnedEventType,
			core.FinePaidEventType,
		).
		AndAnyPredicateOf(
			eventstore.P("UserID", userID),
		).
		Finalize()
}

func roundCents(amount float64) float64 {
	return math.Round(amount*100) / 100
}
