package core

import (
	"math"
	"time"
)

// Instead of implementing full value objects, I'm using some alias types and helper methods here ...

// ItemIDString represents a catalog item identifier
type ItemIDString = string

// UserIDString represents a library user identifier
type UserIDString = string

// LoanIDString represents a loan identifier
type LoanIDString = string

// HoldIDString represents a hold identifier
type HoldIDString = string

// ISBNString represents an ISBN-10 or ISBN-13 code
type ISBNString = string

// EventTypeString represents the type of a domain event
type EventTypeString = string

// OccurredAt represents when an event occurred
type OccurredAt = time.Time

// ToDate normalizes a time to a calendar date: midnight UTC of the same year, month and day.
func ToDate(t time.Time) time.Time {
	y, m, d := t.Date()

	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Date builds a calendar date.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// AddDays returns the calendar date n days after d.
func AddDays(d time.Time, n int) time.Time {
	return ToDate(d).AddDate(0, 0, n)
}

// DaysBetween returns the number of whole calendar days from 'from' to 'to' (negative if 'to' is earlier).
func DaysBetween(from time.Time, to time.Time) int {
	return int(math.Round(ToDate(to).Sub(ToDate(from)).Hours() / 24))
}

// ToOccurredAt converts a time to OccurredAt with UTC normalization and microsecond precision
func ToOccurredAt(t time.Time) OccurredAt {
	return t.UTC().Truncate(time.Microsecond)
}

// roundCents rounds a money amount to two decimals.
func roundCents(amount float64) float64 {
	return math.Round(amount*100) / 100
}
