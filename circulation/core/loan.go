package core

import (
	"strings"
	"time"
)

const (
	// DefaultDailyFineRate is the overdue fine per day late.
	DefaultDailyFineRate = 0.25

	// DefaultMaxRenewals is how often a loan can be renewed.
	DefaultMaxRenewals = 2
)

// Loan is the permanent record of one checkout. It is active until a return date is set,
// after which it is closed for good.
type Loan struct {
	loanID     LoanIDString
	userID     UserIDString
	itemID     ItemIDString
	due        time.Time
	returnedOn time.Time // zero while active
	renewals   int
}

// LoanOption configures a Loan, e.g. when restoring a historic record.
type LoanOption func(*Loan) error

// WithRenewals sets the number of renewals already granted.
func WithRenewals(renewals int) LoanOption {
	return func(l *Loan) error {
		if renewals < 0 {
			return ErrNegativeRenewals
		}

		l.renewals = renewals

		return nil
	}
}

// WithReturnedOn builds the loan in the closed state.
func WithReturnedOn(returnedOn time.Time) LoanOption {
	return func(l *Loan) error {
		l.returnedOn = ToDate(returnedOn)
		return nil
	}
}

// BuildLoan creates an active Loan due on the given date.
func BuildLoan(
	loanID LoanIDString,
	userID UserIDString,
	itemID ItemIDString,
	due time.Time,
	options ...LoanOption,
) (*Loan, error) {

	switch {
	case strings.TrimSpace(loanID) == "":
		return nil, ErrEmptyLoanID
	case strings.TrimSpace(userID) == "":
		return nil, ErrEmptyUserID
	case strings.TrimSpace(itemID) == "":
		return nil, ErrEmptyItemID
	}

	loan := &Loan{
		loanID: strings.TrimSpace(loanID),
		userID: strings.TrimSpace(userID),
		itemID: strings.TrimSpace(itemID),
		due:    ToDate(due),
	}

	for _, option := range options {
		if err := option(loan); err != nil {
			return nil, err
		}
	}

	return loan, nil
}

func (l *Loan) LoanID() LoanIDString { return l.loanID }
func (l *Loan) UserID() UserIDString { return l.userID }
func (l *Loan) ItemID() ItemIDString { return l.itemID }
func (l *Loan) Due() time.Time       { return l.due }
func (l *Loan) Renewals() int        { return l.renewals }

// ReturnedOn returns the return date and whether the loan has been returned.
func (l *Loan) ReturnedOn() (time.Time, bool) {
	return l.returnedOn, !l.returnedOn.IsZero()
}

// IsActive reports whether the item has not been returned yet.
func (l *Loan) IsActive() bool {
	return l.returnedOn.IsZero()
}

// IsOverdue reports whether the loan is active and today is past the due date.
func (l *Loan) IsOverdue(today time.Time) bool {
	return l.IsActive() && ToDate(today).After(l.due)
}

// DaysOverdue returns the days past the due date, 0 if the loan is not overdue.
func (l *Loan) DaysOverdue(today time.Time) int {
	if !l.IsOverdue(today) {
		return 0
	}

	return DaysBetween(l.due, today)
}

// DaysUntilDue returns the days left until the due date: 0 once returned, negative when overdue.
func (l *Loan) DaysUntilDue(today time.Time) int {
	if !l.IsActive() {
		return 0
	}

	return DaysBetween(today, l.due)
}

// CalculateFine computes the overdue fine for a return on returnDate.
//
// The fine is linear in the days late, rounded to cents, without grace period and without cap.
// For example: due 2025-01-01, returned 2025-01-20, rate 0.25 => 19 days late => 4.75.
func (l *Loan) CalculateFine(returnDate time.Time, dailyRate float64) float64 {
	daysLate := DaysBetween(l.due, returnDate)
	if daysLate <= 0 {
		return 0
	}

	return roundCents(float64(daysLate) * dailyRate)
}

// ReturnItem closes the loan, releases exactly one copy of the item and returns the fine.
// If the item refuses the copy, the loan stays active.
func (l *Loan) ReturnItem(item Circulable, returnDate time.Time, dailyRate float64) (float64, error) {
	if !l.IsActive() {
		return 0, ErrLoanAlreadyClosed
	}

	if err := item.ReturnCopy(); err != nil {
		return 0, err
	}

	l.returnedOn = ToDate(returnDate)

	return l.CalculateFine(returnDate, dailyRate), nil
}

// Borrower is what the renewal rules need to know about the requesting user.
type Borrower interface {
	UserID() UserIDString
	Role() Role
}

type renewConfig struct {
	maxRenewals  int
	allowOverdue bool
}

// RenewOption configures the renewal rules.
type RenewOption func(*renewConfig)

// WithMaxRenewals overrides how often a loan can be renewed (default 2).
func WithMaxRenewals(maxRenewals int) RenewOption {
	return func(c *renewConfig) {
		c.maxRenewals = maxRenewals
	}
}

// AllowOverdue permits renewing a loan that is already overdue.
func AllowOverdue() RenewOption {
	return func(c *renewConfig) {
		c.allowOverdue = true
	}
}

// Renew extends the loan if all renewal rules pass.
//
// Business Rules, evaluated in this order:
//
//	DENIED: "item already returned" if the loan is closed
//	DENIED: "different borrower" if the borrower is not the one who checked the item out
//	DENIED: "reached max renewals" if the loan was already renewed the maximum number of times
//	DENIED: "loan is overdue" if today is past the due date, unless overdue renewals are allowed
//	DENIED: "another patron has an active hold" if another user holds the same item actively
//	GRANTED: the due date becomes today plus the generic role-based loan period, renewals + 1
//
// The new due date deliberately ignores the item's own policy (Journal, DVD, EBook).
// A denied renewal never changes the loan.
func (l *Loan) Renew(
	borrower Borrower,
	item Circulable,
	today time.Time,
	holds []*Hold,
	options ...RenewOption,
) RenewalDecision {

	cfg := renewConfig{maxRenewals: DefaultMaxRenewals}
	for _, option := range options {
		option(&cfg)
	}

	if !l.IsActive() {
		return RenewalDenied(DenialReasonLoanNotActive)
	}

	if l.userID != borrower.UserID() {
		return RenewalDenied(DenialReasonDifferentBorrower)
	}

	if l.renewals >= cfg.maxRenewals {
		return RenewalDenied(DenialReasonMaxRenewals)
	}

	if !cfg.allowOverdue && l.IsOverdue(today) {
		return RenewalDenied(DenialReasonOverdue)
	}

	if hasConflictingHold(holds, item.ItemID(), borrower.UserID(), today) {
		return RenewalDenied(DenialReasonConflictingHold)
	}

	l.due = CalculateDueDate(today, borrower.Role())
	l.renewals++

	return RenewalGranted(l.due)
}

func hasConflictingHold(holds []*Hold, itemID ItemIDString, userID UserIDString, today time.Time) bool {
	for _, h := range holds {
		if h.ItemID() == itemID && h.UserID() != userID && h.IsActive(today) {
			return true
		}
	}

	return false
}
