package loanhistory

import (
	"time"

	"github.com/AntonStoeckl/library-circulation-go/circulation/core"
)

// LoanEntry is one loan of the user. ReturnedOn is the zero time and ReturnDesk is empty
// while the loan is active.
type LoanEntry struct {
	LoanID         core.LoanIDString
	ItemID         core.ItemIDString
	ItemType       string
	CheckedOutOn   time.Time
	CheckoutDesk   string
	DueOn          time.Time
	ReturnedOn     time.Time
	ReturnDesk     string
	DaysLate       int
	Fine           float64
	Renewals       int
	DeniedRenewals int
}

// IsActive reports whether the item has not been returned yet.
func (e LoanEntry) IsActive() bool {
	return e.ReturnedOn.IsZero()
}

// LoanHistory represents the query result containing all loans of a user in checkout order.
type LoanHistory struct {
	UserID           core.UserIDString
	Loans            []LoanEntry
	ActiveCount      int
	FinesAssessed    float64
	FinesPaid        float64
	OutstandingFines float64
}
