package core

import (
	"time"
)

// Role is one of the closed set of user roles.
type Role string

const (
	RoleStudent Role = "Student"
	RoleFaculty Role = "Faculty"
	RoleStaff   Role = "Staff"
	RoleAdmin   Role = "Admin"
	RolePublic  Role = "Public"
)

const (
	shortLoanPeriodDays    = 14
	standardLoanPeriodDays = 28
)

// IsValidRole reports whether role is one of Student, Faculty, Staff, Admin or Public.
func IsValidRole(role string) bool {
	switch Role(role) {
	case RoleStudent, RoleFaculty, RoleStaff, RoleAdmin, RolePublic:
		return true
	default:
		return false
	}
}

// HasShortLoans reports whether the role borrows on the short schedule (Student, Public).
func (r Role) HasShortLoans() bool {
	return r == RoleStudent || r == RolePublic
}

// LoanPeriodDays returns the generic loan period for a role: 14 days for Student and Public, 28 otherwise.
func LoanPeriodDays(role Role) int {
	if role.HasShortLoans() {
		return shortLoanPeriodDays
	}

	return standardLoanPeriodDays
}

// CalculateDueDate applies the generic role-based loan period to a start date.
// Renewals always use this rule, independent of the item's own policy.
func CalculateDueDate(start time.Time, role Role) time.Time {
	return AddDays(start, LoanPeriodDays(role))
}
