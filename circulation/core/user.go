package core

import (
	"slices"
	"strings"
	"time"
)

// User is a registered library user. Loans are tracked by ID only.
type User struct {
	userID        UserIDString
	name          string
	role          Role
	activeLoanIDs []LoanIDString
	totalFines    float64
}

// BuildUser creates a User after validating the role and normalizing the name.
func BuildUser(userID UserIDString, name string, role string) (*User, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, ErrEmptyUserID
	}

	if !IsValidRole(role) {
		return nil, ErrInvalidRole
	}

	normalized, err := NormalizeName(name)
	if err != nil {
		return nil, err
	}

	return &User{
		userID:        strings.TrimSpace(userID),
		name:          normalized,
		role:          Role(role),
		activeLoanIDs: make([]LoanIDString, 0),
	}, nil
}

func (u *User) UserID() UserIDString { return u.userID }
func (u *User) Name() string         { return u.name }
func (u *User) Role() Role           { return u.role }
func (u *User) TotalFines() float64  { return u.totalFines }

// HasFines reports whether there is an outstanding balance.
func (u *User) HasFines() bool {
	return u.totalFines > 0
}

// LoanPeriodDays returns the generic loan period for the user's role.
func (u *User) LoanPeriodDays() int {
	return LoanPeriodDays(u.role)
}

// CalculateDueDate applies the generic role-based loan period to a checkout date.
func (u *User) CalculateDueDate(checkoutDate time.Time) time.Time {
	return CalculateDueDate(checkoutDate, u.role)
}

// ActiveLoanIDs returns a copy of the active loan IDs in the order they were added.
func (u *User) ActiveLoanIDs() []LoanIDString {
	return slices.Clone(u.activeLoanIDs)
}

// ActiveLoanCount returns the number of active loans.
func (u *User) ActiveLoanCount() int {
	return len(u.activeLoanIDs)
}

// HasLoan reports whether loanID is among the active loans.
func (u *User) HasLoan(loanID LoanIDString) bool {
	return slices.Contains(u.activeLoanIDs, loanID)
}

// AddLoan registers an active loan. Adding an already registered loan is a no-op.
func (u *User) AddLoan(loanID LoanIDString) {
	if u.HasLoan(loanID) {
		return
	}

	u.activeLoanIDs = append(u.activeLoanIDs, loanID)
}

// RemoveLoan unregisters an active loan.
// A loan that was never registered indicates inconsistent bookkeeping and is reported as a state error.
func (u *User) RemoveLoan(loanID LoanIDString) error {
	idx := slices.Index(u.activeLoanIDs, loanID)
	if idx < 0 {
		return ErrLoanNotHeldByUser
	}

	u.activeLoanIDs = slices.Delete(u.activeLoanIDs, idx, idx+1)

	return nil
}

// AddFine adds an amount to the outstanding balance.
func (u *User) AddFine(amount float64) error {
	if amount < 0 {
		return ErrNegativeFine
	}

	u.totalFines = roundCents(u.totalFines + amount)

	return nil
}

// PayFine reduces the outstanding balance, never below zero, and returns the remaining balance.
func (u *User) PayFine(amount float64) (float64, error) {
	if amount < 0 {
		return u.totalFines, ErrNegativePayment
	}

	u.totalFines = max(0, roundCents(u.totalFines-amount))

	return u.totalFines, nil
}
