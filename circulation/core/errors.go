package core

import (
	"errors"
)

// The error taxonomy of the rules engine. Specific errors wrap exactly one of these,
// so callers can classify any returned error with errors.Is.
var (
	// ErrValidation signals malformed input at the boundary of a call.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidState signals an operation attempted from an illegal lifecycle state.
	ErrInvalidState = errors.New("invalid state")

	// ErrNotFound signals a lookup by an unknown identifier.
	ErrNotFound = errors.New("not found")

	// ErrConflict signals the insertion of a duplicate identifier.
	ErrConflict = errors.New("conflict")

	// ErrCapacity signals that no physical copy is left to check out.
	ErrCapacity = errors.New("capacity exhausted")
)

var (
	ErrEmptyItemID       = errors.Join(ErrValidation, errors.New("item ID cannot be empty"))
	ErrEmptyTitle        = errors.Join(ErrValidation, errors.New("title cannot be empty"))
	ErrNegativeCopies    = errors.Join(ErrValidation, errors.New("copies cannot be negative"))
	ErrInvalidISBN       = errors.Join(ErrValidation, errors.New("invalid ISBN"))
	ErrUnknownItemKind   = errors.Join(ErrValidation, errors.New("unknown item kind"))
	ErrEmptyUserID       = errors.Join(ErrValidation, errors.New("user ID cannot be empty"))
	ErrEmptyName         = errors.Join(ErrValidation, errors.New("name cannot be empty"))
	ErrInvalidRole       = errors.Join(ErrValidation, errors.New("invalid role, must be Student, Faculty, Staff, Admin, or Public"))
	ErrNegativeFine      = errors.Join(ErrValidation, errors.New("fine amount cannot be negative"))
	ErrNegativePayment   = errors.Join(ErrValidation, errors.New("payment amount cannot be negative"))
	ErrEmptyLoanID       = errors.Join(ErrValidation, errors.New("loan ID cannot be empty"))
	ErrNegativeRenewals  = errors.Join(ErrValidation, errors.New("renewals cannot be negative"))
	ErrEmptyHoldID       = errors.Join(ErrValidation, errors.New("hold ID cannot be empty"))
	ErrExpiryBeforePlace = errors.Join(ErrValidation, errors.New("expiry date cannot be before placement date"))
	ErrInvalidExtension  = errors.Join(ErrValidation, errors.New("extension must be at least 1 day"))
	ErrInvalidDate       = errors.Join(ErrValidation, errors.New("invalid date, expected YYYY-MM-DD"))
	ErrNegativeDailyRate = errors.Join(ErrValidation, errors.New("daily fine rate cannot be negative"))
	ErrEmptySystemName   = errors.Join(ErrValidation, errors.New("system name cannot be empty"))
)

var (
	ErrNoCopiesAvailable = errors.Join(ErrCapacity, errors.New("item has no available copies"))
	ErrAllCopiesReturned = errors.Join(ErrInvalidState, errors.New("all copies are already returned"))
	ErrLoanAlreadyClosed = errors.Join(ErrInvalidState, errors.New("loan is already closed"))
	ErrLoanNotHeldByUser = errors.Join(ErrInvalidState, errors.New("loan is not among the user's active loans"))
	ErrHoldNotActive     = errors.Join(ErrInvalidState, errors.New("hold is not active"))
	ErrHoldCancelled     = errors.Join(ErrInvalidState, errors.New("hold is cancelled"))
	ErrHoldFulfilled     = errors.Join(ErrInvalidState, errors.New("cannot cancel fulfilled hold"))
	ErrItemNotAvailable  = errors.Join(ErrCapacity, errors.New("item is not available"))
	ErrItemOnLoan        = errors.Join(ErrInvalidState, errors.New("item has active loans"))
	ErrUnknownUser       = errors.Join(ErrNotFound, errors.New("unknown user"))
	ErrUnknownItem       = errors.Join(ErrNotFound, errors.New("unknown item"))
	ErrUnknownLoan       = errors.Join(ErrNotFound, errors.New("unknown loan"))
	ErrUnknownHold       = errors.Join(ErrNotFound, errors.New("unknown hold"))
	ErrDuplicateUser     = errors.Join(ErrConflict, errors.New("user already exists"))
	ErrDuplicateItem     = errors.Join(ErrConflict, errors.New("item already exists"))
	ErrDuplicateLoan     = errors.Join(ErrConflict, errors.New("loan already exists"))
	ErrDuplicateHold     = errors.Join(ErrConflict, errors.New("hold already exists"))
)
