package core

import (
	"strings"
	"time"
)

// HoldStatus is the lifecycle state of a Hold. Fulfilled and Cancelled are terminal.
type HoldStatus string

const (
	HoldStatusActive    HoldStatus = "Active"
	HoldStatusFulfilled HoldStatus = "Fulfilled"
	HoldStatusCancelled HoldStatus = "Cancelled"
)

// Hold is a user's reservation of an item with its own expiry date.
type Hold struct {
	holdID    HoldIDString
	userID    UserIDString
	itemID    ItemIDString
	placedOn  time.Time
	expiresOn time.Time
	notified  bool
	fulfilled bool
	cancelled bool
}

// BuildHold creates an active Hold. The expiry date must not be before the placement date.
func BuildHold(
	holdID HoldIDString,
	userID UserIDString,
	itemID ItemIDString,
	placedOn time.Time,
	expiresOn time.Time,
) (*Hold, error) {

	switch {
	case strings.TrimSpace(holdID) == "":
		return nil, ErrEmptyHoldID
	case strings.TrimSpace(userID) == "":
		return nil, ErrEmptyUserID
	case strings.TrimSpace(itemID) == "":
		return nil, ErrEmptyItemID
	case ToDate(expiresOn).Before(ToDate(placedOn)):
		return nil, ErrExpiryBeforePlace
	}

	return &Hold{
		holdID:    strings.TrimSpace(holdID),
		userID:    strings.TrimSpace(userID),
		itemID:    strings.TrimSpace(itemID),
		placedOn:  ToDate(placedOn),
		expiresOn: ToDate(expiresOn),
	}, nil
}

func (h *Hold) HoldID() HoldIDString { return h.holdID }
func (h *Hold) UserID() UserIDString { return h.userID }
func (h *Hold) ItemID() ItemIDString { return h.itemID }
func (h *Hold) PlacedOn() time.Time  { return h.placedOn }
func (h *Hold) ExpiresOn() time.Time { return h.expiresOn }
func (h *Hold) Notified() bool       { return h.notified }
func (h *Hold) Fulfilled() bool      { return h.fulfilled }
func (h *Hold) Cancelled() bool      { return h.cancelled }

// Status returns the lifecycle state. Expiry is date-dependent and not a status, see IsExpired.
func (h *Hold) Status() HoldStatus {
	switch {
	case h.fulfilled:
		return HoldStatusFulfilled
	case h.cancelled:
		return HoldStatusCancelled
	default:
		return HoldStatusActive
	}
}

// IsActive reports whether the hold is neither fulfilled nor cancelled and today is not past expiry.
func (h *Hold) IsActive(today time.Time) bool {
	return !h.fulfilled && !h.cancelled && !ToDate(today).After(h.expiresOn)
}

// IsExpired reports whether the hold is unfulfilled and today is past expiry.
// Cancellation does not matter here.
func (h *Hold) IsExpired(today time.Time) bool {
	return !h.fulfilled && ToDate(today).After(h.expiresOn)
}

// Notify marks the requester as notified.
func (h *Hold) Notify() error {
	if h.fulfilled || h.cancelled {
		return ErrHoldNotActive
	}

	h.notified = true

	return nil
}

// Fulfill marks the hold as fulfilled. Fulfilling twice is allowed, fulfilled is sticky.
func (h *Hold) Fulfill() error {
	if h.cancelled {
		return ErrHoldCancelled
	}

	h.fulfilled = true

	return nil
}

// Cancel cancels the hold unless it was already fulfilled.
func (h *Hold) Cancel() error {
	if h.fulfilled {
		return ErrHoldFulfilled
	}

	h.cancelled = true

	return nil
}

// DaysUntilExpiry returns the days left until expiry: 0 once terminal, negative when past expiry.
func (h *Hold) DaysUntilExpiry(today time.Time) int {
	if h.fulfilled || h.cancelled {
		return 0
	}

	return DaysBetween(today, h.expiresOn)
}

// Extend moves the expiry date forward by additionalDays and returns the new expiry date.
func (h *Hold) Extend(additionalDays int, today time.Time) (time.Time, error) {
	if !h.IsActive(today) {
		return time.Time{}, ErrHoldNotActive
	}

	if additionalDays < 1 {
		return time.Time{}, ErrInvalidExtension
	}

	h.expiresOn = AddDays(h.expiresOn, additionalDays)

	return h.expiresOn, nil
}
